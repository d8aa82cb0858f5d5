package treasury

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
)

// SettlementDirection identifies which party pays the net amount
type SettlementDirection string

const (
	DirectionPayFromA SettlementDirection = "PAY_FROM_A"
	DirectionPayFromB SettlementDirection = "PAY_FROM_B"
	DirectionNone     SettlementDirection = "NONE"
)

// IsValid checks if the settlement direction is valid
func (d SettlementDirection) IsValid() bool {
	switch d {
	case DirectionPayFromA, DirectionPayFromB, DirectionNone:
		return true
	}
	return false
}

// NettingSettlement is the durable record of an executed netting run.
// Settlements are append-only: once created they are never modified, and
// the flows they consumed reference them through ConsumedBy.
type NettingSettlement struct {
	shared.TenantAggregateRoot
	AgreementID  uuid.UUID            `json:"agreement_id"`
	NettedAmount decimal.Decimal      `json:"netted_amount"`
	Currency     valueobject.Currency `json:"currency"`
	Direction    SettlementDirection  `json:"direction"`
	GrossAR      decimal.Decimal      `json:"gross_ar"`
	GrossAP      decimal.Decimal      `json:"gross_ap"`
	FlowCount    int                  `json:"flow_count"`
	ExecutedAt   time.Time            `json:"executed_at"`
	ExecutedBy   string               `json:"executed_by"`
}

// NewNettingSettlement records the outcome of an executed proposal.
// A zero netted amount is permitted so that fully offsetting positions
// still leave an audit trail; negative amounts are not.
func NewNettingSettlement(
	tenantID, agreementID uuid.UUID,
	nettedAmount, grossAR, grossAP decimal.Decimal,
	currency valueobject.Currency,
	direction SettlementDirection,
	flowCount int,
	executedBy string,
) (*NettingSettlement, error) {
	if agreementID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Agreement ID cannot be empty")
	}
	if nettedAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Netted amount cannot be negative")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Settlement direction is not valid")
	}
	if nettedAmount.IsZero() && direction != DirectionNone {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Zero settlements carry no pay direction")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Settlement currency is not valid")
	}
	if flowCount < 0 {
		return nil, shared.NewDomainError("INVALID_FLOW_COUNT", "Flow count cannot be negative")
	}

	settlement := &NettingSettlement{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AgreementID:         agreementID,
		NettedAmount:        nettedAmount,
		Currency:            currency,
		Direction:           direction,
		GrossAR:             grossAR,
		GrossAP:             grossAP,
		FlowCount:           flowCount,
		ExecutedAt:          time.Now(),
		ExecutedBy:          executedBy,
	}
	settlement.AddDomainEvent(NewNettingSettlementExecutedEvent(settlement))

	return settlement, nil
}

// NettedMoney returns the settlement amount as money in the settlement
// currency
func (s *NettingSettlement) NettedMoney() valueobject.Money {
	return valueobject.MustMoney(s.NettedAmount, s.Currency)
}
