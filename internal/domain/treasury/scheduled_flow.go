package treasury

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
)

// FlowDirection indicates whether a scheduled flow brings cash in or out
type FlowDirection string

const (
	FlowDirectionInflow  FlowDirection = "INFLOW"
	FlowDirectionOutflow FlowDirection = "OUTFLOW"
)

// IsValid checks if the direction is a valid FlowDirection
func (d FlowDirection) IsValid() bool {
	return d == FlowDirectionInflow || d == FlowDirectionOutflow
}

// String returns the string representation of FlowDirection
func (d FlowDirection) String() string {
	return string(d)
}

// FlowSource identifies the subledger a scheduled flow originates from
type FlowSource string

const (
	FlowSourceAP     FlowSource = "AP"     // Accounts payable invoice
	FlowSourceAR     FlowSource = "AR"     // Accounts receivable invoice
	FlowSourceManual FlowSource = "MANUAL" // Manually scheduled flow
)

// IsValid checks if the source is a valid FlowSource
func (s FlowSource) IsValid() bool {
	switch s {
	case FlowSourceAP, FlowSourceAR, FlowSourceManual:
		return true
	}
	return false
}

// FlowStatus represents the settlement state of a scheduled flow
type FlowStatus string

const (
	FlowStatusOpen    FlowStatus = "OPEN"
	FlowStatusSettled FlowStatus = "SETTLED"
)

// IsValid checks if the status is a valid FlowStatus
func (s FlowStatus) IsValid() bool {
	return s == FlowStatusOpen || s == FlowStatusSettled
}

// ScheduledFlow represents an expected cash movement: an open payable or
// receivable invoice, or a manually scheduled item. Flows are created by
// the AP/AR modules upstream; the cash-position engine reads them for
// forecasting and aging, and consumes them through netting settlement.
// A settled flow is immutable.
type ScheduledFlow struct {
	shared.TenantAggregateRoot
	Reference        string               `json:"reference"`
	Direction        FlowDirection        `json:"direction"`
	Source           FlowSource           `json:"source"`
	DueDate          *time.Time           `json:"due_date"`
	Amount           decimal.Decimal      `json:"amount"`
	Currency         valueobject.Currency `json:"currency"`
	CounterpartyID   uuid.UUID            `json:"counterparty_id"`
	CounterpartyName string               `json:"counterparty_name"`
	Status           FlowStatus           `json:"status"`
	NettingEligible  bool                 `json:"netting_eligible"`
	ConsumedBy       *uuid.UUID           `json:"consumed_by,omitempty"` // Netting settlement that consumed this flow
	SettledAt        *time.Time           `json:"settled_at,omitempty"`
}

// NewScheduledFlow creates a new open scheduled flow
func NewScheduledFlow(
	tenantID uuid.UUID,
	reference string,
	direction FlowDirection,
	source FlowSource,
	dueDate time.Time,
	amount decimal.Decimal,
	currency valueobject.Currency,
	counterpartyID uuid.UUID,
	counterpartyName string,
) (*ScheduledFlow, error) {
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Flow reference cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Flow direction is not valid")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Flow source is not valid")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Flow amount must be positive")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Flow currency is not valid")
	}
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be empty")
	}

	due := NormalizeDate(dueDate)
	return &ScheduledFlow{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Reference:           reference,
		Direction:           direction,
		Source:              source,
		DueDate:             &due,
		Amount:              amount,
		Currency:            currency,
		CounterpartyID:      counterpartyID,
		CounterpartyName:    counterpartyName,
		Status:              FlowStatusOpen,
		NettingEligible:     source != FlowSourceManual,
	}, nil
}

// IsOpen returns true if the flow has not been settled or consumed
func (f *ScheduledFlow) IsOpen() bool {
	return f.Status == FlowStatusOpen && f.ConsumedBy == nil
}

// DueOn reports whether the flow falls due on the given calendar day.
// Flows without a due date never match.
func (f *ScheduledFlow) DueOn(day time.Time) bool {
	if f.DueDate == nil {
		return false
	}
	return SameDay(*f.DueDate, day)
}

// SignedAmount returns the amount signed by direction: inflows positive,
// outflows negative.
func (f *ScheduledFlow) SignedAmount() decimal.Decimal {
	if f.Direction == FlowDirectionOutflow {
		return f.Amount.Neg()
	}
	return f.Amount
}

// DaysOverdue returns the number of whole days the flow is past due as of
// the given date. Zero if not overdue or without a due date.
func (f *ScheduledFlow) DaysOverdue(asOf time.Time) int {
	if f.DueDate == nil {
		return 0
	}
	days := DaysBetween(*f.DueDate, asOf)
	if days < 0 {
		return 0
	}
	return days
}

// MarkConsumed marks the flow as settled through a netting settlement.
// Returns error if the flow is not open.
func (f *ScheduledFlow) MarkConsumed(settlementID uuid.UUID, at time.Time) error {
	if !f.IsOpen() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot consume flow %s in %s status", f.Reference, f.Status))
	}
	if settlementID == uuid.Nil {
		return shared.NewDomainError("INVALID_SETTLEMENT", "Settlement ID cannot be empty")
	}

	f.Status = FlowStatusSettled
	f.ConsumedBy = &settlementID
	f.SettledAt = &at
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	return nil
}
