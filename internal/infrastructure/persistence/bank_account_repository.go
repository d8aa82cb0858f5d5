package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/treasury"
	"github.com/treasury/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBankAccountRepository implements BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByIDForTenant finds a bank account by ID for a specific tenant
func (r *GormBankAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*treasury.BankAccount, error) {
	var model models.BankAccountModel
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

// FindByAccountNumber finds by account number for a tenant
func (r *GormBankAccountRepository) FindByAccountNumber(ctx context.Context, tenantID uuid.UUID, accountNumber string) (*treasury.BankAccount, error) {
	var model models.BankAccountModel
	if err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND account_number = ?", tenantID, accountNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListActive returns all active bank accounts for a tenant
func (r *GormBankAccountRepository) ListActive(ctx context.Context, tenantID uuid.UUID) ([]treasury.BankAccount, error) {
	var accountModels []models.BankAccountModel
	if err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("account_number").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]treasury.BankAccount, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// FindAllForTenant finds all bank accounts for a tenant with paging
func (r *GormBankAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]treasury.BankAccount, int64, error) {
	query := dbFrom(ctx, r.db).Model(&models.BankAccountModel{}).
		Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accountModels []models.BankAccountModel
	if err := query.
		Order("account_number").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&accountModels).Error; err != nil {
		return nil, 0, err
	}

	accounts := make([]treasury.BankAccount, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, total, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *treasury.BankAccount) error {
	var model models.BankAccountModel
	model.FromDomain(account)
	return dbFrom(ctx, r.db).Save(&model).Error
}
