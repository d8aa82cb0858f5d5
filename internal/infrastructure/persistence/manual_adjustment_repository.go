package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/treasury"
	"github.com/treasury/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormManualAdjustmentRepository implements ManualAdjustmentRepository using GORM
type GormManualAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormManualAdjustmentRepository creates a new GormManualAdjustmentRepository
func NewGormManualAdjustmentRepository(db *gorm.DB) *GormManualAdjustmentRepository {
	return &GormManualAdjustmentRepository{db: db}
}

// FindByIDForTenant finds an adjustment by ID for a specific tenant
func (r *GormManualAdjustmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*treasury.ManualAdjustment, error) {
	var model models.ManualAdjustmentModel
	if err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListInRange returns adjustments dated inside the inclusive range
func (r *GormManualAdjustmentRepository) ListInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]treasury.ManualAdjustment, error) {
	var adjustmentModels []models.ManualAdjustmentModel
	if err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND adjustment_date >= ? AND adjustment_date <= ?", tenantID, from, to).
		Order("adjustment_date").
		Find(&adjustmentModels).Error; err != nil {
		return nil, err
	}

	adjustments := make([]treasury.ManualAdjustment, len(adjustmentModels))
	for i, model := range adjustmentModels {
		adjustments[i] = *model.ToDomain()
	}
	return adjustments, nil
}

// Save creates or updates an adjustment
func (r *GormManualAdjustmentRepository) Save(ctx context.Context, adjustment *treasury.ManualAdjustment) error {
	var model models.ManualAdjustmentModel
	model.FromDomain(adjustment)
	return dbFrom(ctx, r.db).Save(&model).Error
}

// Delete removes an adjustment
func (r *GormManualAdjustmentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.ManualAdjustmentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
