package treasury

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
)

// BankAccountRepository defines the interface for bank account persistence
type BankAccountRepository interface {
	// FindByIDForTenant finds a bank account by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BankAccount, error)

	// FindByAccountNumber finds by account number for a tenant
	FindByAccountNumber(ctx context.Context, tenantID uuid.UUID, accountNumber string) (*BankAccount, error)

	// ListActive returns all active bank accounts for a tenant
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]BankAccount, error)

	// FindAllForTenant finds all bank accounts for a tenant with paging
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]BankAccount, int64, error)

	// Save creates or updates a bank account
	Save(ctx context.Context, account *BankAccount) error
}

// ScheduledFlowRepository defines the interface for scheduled flow persistence
type ScheduledFlowRepository interface {
	// FindByIDForTenant finds a scheduled flow by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ScheduledFlow, error)

	// ListOpenInRange returns open flows whose due date falls inside the
	// inclusive date range. Flows without a due date are included so the
	// forecast can surface them as warnings.
	ListOpenInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]ScheduledFlow, error)

	// ListOpenReceivables returns all open AR flows regardless of due date
	ListOpenReceivables(ctx context.Context, tenantID uuid.UUID) ([]ScheduledFlow, error)

	// ListOpenForNetting returns open netting-eligible AR and AP flows
	// against the given counterparty
	ListOpenForNetting(ctx context.Context, tenantID, counterpartyID uuid.UUID) ([]ScheduledFlow, error)

	// FindAllForTenant finds all scheduled flows for a tenant with paging
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ScheduledFlow, int64, error)

	// Save creates or updates a scheduled flow
	Save(ctx context.Context, flow *ScheduledFlow) error

	// MarkConsumed settles the given flows against a settlement record.
	// Only open flows may be consumed; consuming an already settled flow
	// is a conflict.
	MarkConsumed(ctx context.Context, tenantID uuid.UUID, flowIDs []uuid.UUID, settlementID uuid.UUID, at time.Time) error
}

// ManualAdjustmentRepository defines the interface for manual forecast
// adjustment persistence
type ManualAdjustmentRepository interface {
	// FindByIDForTenant finds an adjustment by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ManualAdjustment, error)

	// ListInRange returns adjustments dated inside the inclusive range
	ListInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]ManualAdjustment, error)

	// Save creates or updates an adjustment
	Save(ctx context.Context, adjustment *ManualAdjustment) error

	// Delete removes an adjustment
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// NettingAgreementRepository defines the interface for netting agreement
// persistence
type NettingAgreementRepository interface {
	// FindByIDForTenant finds an agreement by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*NettingAgreement, error)

	// FindByIDForUpdate loads an agreement under a row lock so that
	// concurrent executions against it serialize. Must be called inside
	// a transaction.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*NettingAgreement, error)

	// FindAllForTenant finds all agreements for a tenant with paging
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]NettingAgreement, int64, error)

	// Save creates or updates an agreement
	Save(ctx context.Context, agreement *NettingAgreement) error
}

// NettingSettlementRepository defines the interface for executed
// settlement persistence. Settlements are append-only.
type NettingSettlementRepository interface {
	// Create persists a new settlement record
	Create(ctx context.Context, settlement *NettingSettlement) error

	// FindByIDForTenant finds a settlement by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*NettingSettlement, error)

	// ListByAgreement returns settlements executed under an agreement,
	// newest first
	ListByAgreement(ctx context.Context, tenantID, agreementID uuid.UUID, filter shared.Filter) ([]NettingSettlement, int64, error)
}

// ControlAccountReader retrieves general-ledger control balances. The
// ledger is an upstream collaborator; implementations translate their
// failures into shared.ErrUpstreamUnavailable.
type ControlAccountReader interface {
	ControlBalance(ctx context.Context, tenantID uuid.UUID, accountCode string, asOf time.Time) (decimal.Decimal, error)
}

// RateResolver supplies FX conversion rates into a target currency
type RateResolver interface {
	// Rate returns the multiplier converting one unit of from into to.
	// Returns shared.ErrNotFound when no rate is known for the pair.
	Rate(ctx context.Context, from, to valueobject.Currency) (decimal.Decimal, error)
}

// TransactionManager runs a function inside a database transaction.
// Repository calls made through the callback's context join the same
// transaction.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
