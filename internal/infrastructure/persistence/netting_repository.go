package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/treasury"
	"github.com/treasury/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNettingAgreementRepository implements NettingAgreementRepository using GORM
type GormNettingAgreementRepository struct {
	db *gorm.DB
}

// NewGormNettingAgreementRepository creates a new GormNettingAgreementRepository
func NewGormNettingAgreementRepository(db *gorm.DB) *GormNettingAgreementRepository {
	return &GormNettingAgreementRepository{db: db}
}

// FindByIDForTenant finds an agreement by ID for a specific tenant
func (r *GormNettingAgreementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*treasury.NettingAgreement, error) {
	var model models.NettingAgreementModel
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

// FindByIDForUpdate loads an agreement under a row lock so concurrent
// settlement executions against the same agreement serialize
func (r *GormNettingAgreementRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*treasury.NettingAgreement, error) {
	var model models.NettingAgreementModel
	if err := dbFrom(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all agreements for a tenant with paging
func (r *GormNettingAgreementRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]treasury.NettingAgreement, int64, error) {
	query := dbFrom(ctx, r.db).Model(&models.NettingAgreementModel{}).
		Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var agreementModels []models.NettingAgreementModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&agreementModels).Error; err != nil {
		return nil, 0, err
	}

	agreements := make([]treasury.NettingAgreement, len(agreementModels))
	for i, model := range agreementModels {
		agreements[i] = *model.ToDomain()
	}
	return agreements, total, nil
}

// Save creates or updates an agreement
func (r *GormNettingAgreementRepository) Save(ctx context.Context, agreement *treasury.NettingAgreement) error {
	var model models.NettingAgreementModel
	model.FromDomain(agreement)
	return dbFrom(ctx, r.db).Save(&model).Error
}

// GormNettingSettlementRepository implements NettingSettlementRepository using GORM
type GormNettingSettlementRepository struct {
	db *gorm.DB
}

// NewGormNettingSettlementRepository creates a new GormNettingSettlementRepository
func NewGormNettingSettlementRepository(db *gorm.DB) *GormNettingSettlementRepository {
	return &GormNettingSettlementRepository{db: db}
}

// Create persists a new settlement record. Settlements are never updated.
func (r *GormNettingSettlementRepository) Create(ctx context.Context, settlement *treasury.NettingSettlement) error {
	var model models.NettingSettlementModel
	model.FromDomain(settlement)
	return dbFrom(ctx, r.db).Create(&model).Error
}

// FindByIDForTenant finds a settlement by ID for a specific tenant
func (r *GormNettingSettlementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*treasury.NettingSettlement, error) {
	var model models.NettingSettlementModel
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

// ListByAgreement returns settlements executed under an agreement, newest first
func (r *GormNettingSettlementRepository) ListByAgreement(ctx context.Context, tenantID, agreementID uuid.UUID, filter shared.Filter) ([]treasury.NettingSettlement, int64, error) {
	query := dbFrom(ctx, r.db).Model(&models.NettingSettlementModel{}).
		Where("tenant_id = ? AND agreement_id = ?", tenantID, agreementID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var settlementModels []models.NettingSettlementModel
	if err := query.
		Order("executed_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&settlementModels).Error; err != nil {
		return nil, 0, err
	}

	settlements := make([]treasury.NettingSettlement, len(settlementModels))
	for i, model := range settlementModels {
		settlements[i] = *model.ToDomain()
	}
	return settlements, total, nil
}
