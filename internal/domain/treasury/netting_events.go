package treasury

import (
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
)

// Netting domain event types
const (
	EventNettingAgreementActivated = "treasury.netting_agreement.activated"
	EventNettingAgreementClosed    = "treasury.netting_agreement.closed"
	EventNettingSettlementExecuted = "treasury.netting_settlement.executed"
)

// NettingAgreementActivatedEvent is raised when an agreement becomes
// active
type NettingAgreementActivatedEvent struct {
	shared.BaseDomainEvent
	PartyAName string `json:"party_a_name"`
	PartyBName string `json:"party_b_name"`
}

// NewNettingAgreementActivatedEvent creates a new agreement activated event
func NewNettingAgreementActivatedEvent(a *NettingAgreement) *NettingAgreementActivatedEvent {
	return &NettingAgreementActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventNettingAgreementActivated, "NettingAgreement", a.ID, a.TenantID),
		PartyAName:      a.PartyAName,
		PartyBName:      a.PartyBName,
	}
}

// NettingAgreementClosedEvent is raised when an agreement is closed
type NettingAgreementClosedEvent struct {
	shared.BaseDomainEvent
	PartyAName string `json:"party_a_name"`
	PartyBName string `json:"party_b_name"`
}

// NewNettingAgreementClosedEvent creates a new agreement closed event
func NewNettingAgreementClosedEvent(a *NettingAgreement) *NettingAgreementClosedEvent {
	return &NettingAgreementClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventNettingAgreementClosed, "NettingAgreement", a.ID, a.TenantID),
		PartyAName:      a.PartyAName,
		PartyBName:      a.PartyBName,
	}
}

// NettingSettlementExecutedEvent is raised when a proposal is executed
// into a settlement
type NettingSettlementExecutedEvent struct {
	shared.BaseDomainEvent
	AgreementID  string              `json:"agreement_id"`
	NettedAmount decimal.Decimal     `json:"netted_amount"`
	Direction    SettlementDirection `json:"direction"`
	FlowCount    int                 `json:"flow_count"`
}

// NewNettingSettlementExecutedEvent creates a new settlement executed event
func NewNettingSettlementExecutedEvent(s *NettingSettlement) *NettingSettlementExecutedEvent {
	return &NettingSettlementExecutedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventNettingSettlementExecuted, "NettingSettlement", s.ID, s.TenantID),
		AgreementID:     s.AgreementID.String(),
		NettedAmount:    s.NettedAmount,
		Direction:       s.Direction,
		FlowCount:       s.FlowCount,
	}
}
