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

// GormScheduledFlowRepository implements ScheduledFlowRepository using GORM
type GormScheduledFlowRepository struct {
	db *gorm.DB
}

// NewGormScheduledFlowRepository creates a new GormScheduledFlowRepository
func NewGormScheduledFlowRepository(db *gorm.DB) *GormScheduledFlowRepository {
	return &GormScheduledFlowRepository{db: db}
}

// FindByIDForTenant finds a scheduled flow by ID for a specific tenant
func (r *GormScheduledFlowRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*treasury.ScheduledFlow, error) {
	var model models.ScheduledFlowModel
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

// ListOpenInRange returns open flows due inside the inclusive range,
// plus open flows without a due date so the forecast can report them.
func (r *GormScheduledFlowRepository) ListOpenInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]treasury.ScheduledFlow, error) {
	var flowModels []models.ScheduledFlowModel
	if err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND status = ?", tenantID, treasury.FlowStatusOpen).
		Where("due_date IS NULL OR (due_date >= ? AND due_date <= ?)", from, to).
		Order("due_date").
		Find(&flowModels).Error; err != nil {
		return nil, err
	}
	return toDomainFlows(flowModels), nil
}

// ListOpenReceivables returns all open AR flows regardless of due date
func (r *GormScheduledFlowRepository) ListOpenReceivables(ctx context.Context, tenantID uuid.UUID) ([]treasury.ScheduledFlow, error) {
	var flowModels []models.ScheduledFlowModel
	if err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND source = ? AND status = ?", tenantID, treasury.FlowSourceAR, treasury.FlowStatusOpen).
		Order("due_date").
		Find(&flowModels).Error; err != nil {
		return nil, err
	}
	return toDomainFlows(flowModels), nil
}

// ListOpenForNetting returns open netting-eligible AR and AP flows
// against the given counterparty
func (r *GormScheduledFlowRepository) ListOpenForNetting(ctx context.Context, tenantID, counterpartyID uuid.UUID) ([]treasury.ScheduledFlow, error) {
	var flowModels []models.ScheduledFlowModel
	if err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND counterparty_id = ?", tenantID, counterpartyID).
		Where("status = ? AND netting_eligible = ?", treasury.FlowStatusOpen, true).
		Where("source IN ?", []treasury.FlowSource{treasury.FlowSourceAR, treasury.FlowSourceAP}).
		Order("due_date").
		Find(&flowModels).Error; err != nil {
		return nil, err
	}
	return toDomainFlows(flowModels), nil
}

// FindAllForTenant finds all scheduled flows for a tenant with paging
func (r *GormScheduledFlowRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]treasury.ScheduledFlow, int64, error) {
	query := dbFrom(ctx, r.db).Model(&models.ScheduledFlowModel{}).
		Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var flowModels []models.ScheduledFlowModel
	if err := query.
		Order("due_date").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&flowModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainFlows(flowModels), total, nil
}

// Save creates or updates a scheduled flow
func (r *GormScheduledFlowRepository) Save(ctx context.Context, flow *treasury.ScheduledFlow) error {
	var model models.ScheduledFlowModel
	model.FromDomain(flow)
	return dbFrom(ctx, r.db).Save(&model).Error
}

// MarkConsumed settles the given flows against a settlement record. The
// update only touches flows that are still open; if any flow was settled
// in the meantime the whole call fails with a conflict.
func (r *GormScheduledFlowRepository) MarkConsumed(ctx context.Context, tenantID uuid.UUID, flowIDs []uuid.UUID, settlementID uuid.UUID, at time.Time) error {
	if len(flowIDs) == 0 {
		return nil
	}

	result := dbFrom(ctx, r.db).Model(&models.ScheduledFlowModel{}).
		Where("tenant_id = ? AND id IN ?", tenantID, flowIDs).
		Where("status = ? AND consumed_by IS NULL", treasury.FlowStatusOpen).
		Updates(map[string]any{
			"status":      treasury.FlowStatusSettled,
			"consumed_by": settlementID,
			"settled_at":  at,
			"updated_at":  time.Now(),
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(flowIDs)) {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func toDomainFlows(flowModels []models.ScheduledFlowModel) []treasury.ScheduledFlow {
	flows := make([]treasury.ScheduledFlow, len(flowModels))
	for i, model := range flowModels {
		flows[i] = *model.ToDomain()
	}
	return flows
}
