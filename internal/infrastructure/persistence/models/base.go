package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/treasury/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// TenantAggregateModel provides common persistence fields for
// tenant-scoped aggregate roots, including the optimistic-lock version.
type TenantAggregateModel struct {
	BaseModel
	Version  int       `gorm:"not null;default:1"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// ToDomainTenantAggregateRoot converts to domain TenantAggregateRoot
func (m *TenantAggregateModel) ToDomainTenantAggregateRoot() shared.TenantAggregateRoot {
	return shared.TenantAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.ToDomain(),
			Version:    m.Version,
		},
		TenantID: m.TenantID,
	}
}

// FromDomainTenantAggregateRoot populates from domain TenantAggregateRoot
func (m *TenantAggregateModel) FromDomainTenantAggregateRoot(t shared.TenantAggregateRoot) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Version = t.Version
	m.TenantID = t.TenantID
}
