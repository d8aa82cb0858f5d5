package persistence

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
	"github.com/treasury/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRateResolver implements RateResolver over the fx_rates table.
// When only the inverse pair is stored the rate is derived from it.
type GormRateResolver struct {
	db *gorm.DB
}

// NewGormRateResolver creates a new GormRateResolver
func NewGormRateResolver(db *gorm.DB) *GormRateResolver {
	return &GormRateResolver{db: db}
}

// Rate returns the multiplier converting one unit of from into to
func (r *GormRateResolver) Rate(ctx context.Context, from, to valueobject.Currency) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	var model models.FxRateModel
	err := dbFrom(ctx, r.db).
		Where("from_currency = ? AND to_currency = ?", from, to).
		First(&model).Error
	if err == nil {
		return model.Rate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, err
	}

	// Fall back to the inverse pair
	err = dbFrom(ctx, r.db).
		Where("from_currency = ? AND to_currency = ?", to, from).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, shared.ErrNotFound
		}
		return decimal.Zero, err
	}
	if model.Rate.IsZero() {
		return decimal.Zero, shared.ErrNotFound
	}
	return decimal.NewFromInt(1).DivRound(model.Rate, 8), nil
}
