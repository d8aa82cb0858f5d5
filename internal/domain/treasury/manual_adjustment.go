package treasury

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
)

// AdjustmentCategory tags the origin of a manual forecast adjustment
type AdjustmentCategory string

const (
	AdjustmentCategoryManual  AdjustmentCategory = "MANUAL"
	AdjustmentCategoryTax     AdjustmentCategory = "TAX"
	AdjustmentCategoryPayroll AdjustmentCategory = "PAYROLL"
)

// IsValid checks if the category is a valid AdjustmentCategory
func (c AdjustmentCategory) IsValid() bool {
	switch c {
	case AdjustmentCategoryManual, AdjustmentCategoryTax, AdjustmentCategoryPayroll:
		return true
	}
	return false
}

// ManualAdjustment is a signed cash amount a treasurer has pinned to a
// forecast day. Positive amounts are expected inflows, negative amounts
// expected outflows. Scenario multipliers never apply to adjustments.
type ManualAdjustment struct {
	shared.TenantAggregateRoot
	AdjustmentDate time.Time          `json:"adjustment_date"`
	Amount         decimal.Decimal    `json:"amount"`
	Description    string             `json:"description"`
	Category       AdjustmentCategory `json:"category"`
}

// NewManualAdjustment creates a new manual adjustment
func NewManualAdjustment(
	tenantID uuid.UUID,
	adjustmentDate time.Time,
	amount decimal.Decimal,
	description string,
	category AdjustmentCategory,
) (*ManualAdjustment, error) {
	if amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Adjustment amount cannot be zero")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Adjustment description cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Adjustment category is not valid")
	}

	return &ManualAdjustment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AdjustmentDate:      NormalizeDate(adjustmentDate),
		Amount:              amount,
		Description:         description,
		Category:            category,
	}, nil
}

// AppliesOn reports whether the adjustment targets the given calendar day
func (a *ManualAdjustment) AppliesOn(day time.Time) bool {
	return SameDay(a.AdjustmentDate, day)
}

// IsInflow returns true if the adjustment adds cash
func (a *ManualAdjustment) IsInflow() bool {
	return a.Amount.IsPositive()
}
