package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormControlAccountReader implements ControlAccountReader over the
// ledger_balances table, which the upstream general ledger synchronizes
// into. A missing row means the ledger has not published that account;
// transport-level failures surface as ErrUpstreamUnavailable so callers
// can distinguish them from genuine data problems.
type GormControlAccountReader struct {
	db *gorm.DB
}

// NewGormControlAccountReader creates a new GormControlAccountReader
func NewGormControlAccountReader(db *gorm.DB) *GormControlAccountReader {
	return &GormControlAccountReader{db: db}
}

// ControlBalance returns the synchronized balance of a control account
func (r *GormControlAccountReader) ControlBalance(ctx context.Context, tenantID uuid.UUID, accountCode string, _ time.Time) (decimal.Decimal, error) {
	var model models.LedgerBalanceModel
	err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND account_code = ?", tenantID, accountCode).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, shared.ErrNotFound
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return decimal.Zero, shared.ErrUpstreamUnavailable
		}
		return decimal.Zero, err
	}
	return model.Balance, nil
}
