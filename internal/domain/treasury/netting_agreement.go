package treasury

import (
	"time"

	"github.com/google/uuid"

	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
)

// NettingFrequency is the negotiated settlement cadence of an agreement
type NettingFrequency string

const (
	FrequencyMonthly   NettingFrequency = "MONTHLY"
	FrequencyQuarterly NettingFrequency = "QUARTERLY"
	FrequencyOnDemand  NettingFrequency = "ON_DEMAND"
)

// IsValid checks if the netting frequency is valid
func (f NettingFrequency) IsValid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyOnDemand:
		return true
	}
	return false
}

// AgreementStatus represents the lifecycle state of a netting agreement
type AgreementStatus string

const (
	AgreementStatusDraft  AgreementStatus = "DRAFT"
	AgreementStatusActive AgreementStatus = "ACTIVE"
	AgreementStatusClosed AgreementStatus = "CLOSED"
)

// IsValid checks if the agreement status is valid
func (s AgreementStatus) IsValid() bool {
	switch s {
	case AgreementStatusDraft, AgreementStatusActive, AgreementStatusClosed:
		return true
	}
	return false
}

// String returns the string representation
func (s AgreementStatus) String() string {
	return string(s)
}

// NettingAgreement is a bilateral arrangement under which mutual
// receivables and payables with a counterparty are periodically offset
// and settled as a single net payment.
type NettingAgreement struct {
	shared.TenantAggregateRoot
	PartyAID   uuid.UUID            `json:"party_a_id"`
	PartyAName string               `json:"party_a_name"`
	PartyBID   uuid.UUID            `json:"party_b_id"`
	PartyBName string               `json:"party_b_name"`
	Currency   valueobject.Currency `json:"currency"`
	Frequency  NettingFrequency     `json:"frequency"`
	Status     AgreementStatus      `json:"status"`
}

// NewNettingAgreement creates a draft netting agreement between two
// counterparties
func NewNettingAgreement(tenantID, partyAID, partyBID uuid.UUID, partyAName, partyBName string, currency valueobject.Currency, frequency NettingFrequency) (*NettingAgreement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "tenant ID cannot be empty")
	}
	if partyAID == uuid.Nil || partyBID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "both counterparties are required")
	}
	if partyAID == partyBID {
		return nil, shared.NewDomainError("INVALID_PARTY", "counterparties must be distinct")
	}
	if partyAName == "" || partyBName == "" {
		return nil, shared.NewDomainError("INVALID_PARTY", "counterparty names are required")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "unsupported netting currency")
	}
	if !frequency.IsValid() {
		return nil, shared.NewDomainError("INVALID_FREQUENCY", "invalid netting frequency")
	}

	agreement := &NettingAgreement{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PartyAID:            partyAID,
		PartyAName:          partyAName,
		PartyBID:            partyBID,
		PartyBName:          partyBName,
		Currency:            currency,
		Frequency:           frequency,
		Status:              AgreementStatusDraft,
	}

	return agreement, nil
}

// Activate transitions a draft agreement into active use
func (a *NettingAgreement) Activate() error {
	if a.Status != AgreementStatusDraft {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "only draft agreements can be activated")
	}
	a.Status = AgreementStatusActive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	a.AddDomainEvent(NewNettingAgreementActivatedEvent(a))
	return nil
}

// Close terminates an active agreement. Closed agreements retain their
// settlement history but accept no further proposals.
func (a *NettingAgreement) Close() error {
	if a.Status != AgreementStatusActive {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "only active agreements can be closed")
	}
	a.Status = AgreementStatusClosed
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	a.AddDomainEvent(NewNettingAgreementClosedEvent(a))
	return nil
}

// CanPropose reports whether the agreement accepts new proposals
func (a *NettingAgreement) CanPropose() bool {
	return a.Status == AgreementStatusActive
}
