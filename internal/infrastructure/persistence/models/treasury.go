package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
	"github.com/treasury/backend/internal/domain/treasury"
)

// BankAccountModel is the persistence model for the BankAccount aggregate root.
type BankAccountModel struct {
	TenantAggregateModel
	AccountNumber  string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_bank_account_tenant_number,priority:2"`
	Name           string               `gorm:"type:varchar(200);not null"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null"`
	CurrentBalance decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Active         bool                 `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the persistence model to a domain BankAccount entity.
func (m *BankAccountModel) ToDomain() *treasury.BankAccount {
	return &treasury.BankAccount{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		AccountNumber:       m.AccountNumber,
		Name:                m.Name,
		Currency:            m.Currency,
		CurrentBalance:      m.CurrentBalance,
		Active:              m.Active,
	}
}

// FromDomain populates the persistence model from a domain BankAccount entity.
func (m *BankAccountModel) FromDomain(a *treasury.BankAccount) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.AccountNumber = a.AccountNumber
	m.Name = a.Name
	m.Currency = a.Currency
	m.CurrentBalance = a.CurrentBalance
	m.Active = a.Active
}

// ScheduledFlowModel is the persistence model for the ScheduledFlow aggregate root.
type ScheduledFlowModel struct {
	TenantAggregateModel
	Reference        string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_flow_tenant_reference,priority:2"`
	Direction        treasury.FlowDirection `gorm:"type:varchar(10);not null"`
	Source           treasury.FlowSource    `gorm:"type:varchar(10);not null;index"`
	DueDate          *time.Time             `gorm:"index"`
	Amount           decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Currency         valueobject.Currency   `gorm:"type:varchar(3);not null"`
	CounterpartyID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	CounterpartyName string                 `gorm:"type:varchar(200)"`
	Status           treasury.FlowStatus    `gorm:"type:varchar(10);not null;default:'OPEN';index"`
	NettingEligible  bool                   `gorm:"not null;default:false"`
	ConsumedBy       *uuid.UUID             `gorm:"type:uuid;index"`
	SettledAt        *time.Time
}

// TableName returns the table name for GORM
func (ScheduledFlowModel) TableName() string {
	return "scheduled_flows"
}

// ToDomain converts the persistence model to a domain ScheduledFlow entity.
func (m *ScheduledFlowModel) ToDomain() *treasury.ScheduledFlow {
	return &treasury.ScheduledFlow{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Reference:           m.Reference,
		Direction:           m.Direction,
		Source:              m.Source,
		DueDate:             m.DueDate,
		Amount:              m.Amount,
		Currency:            m.Currency,
		CounterpartyID:      m.CounterpartyID,
		CounterpartyName:    m.CounterpartyName,
		Status:              m.Status,
		NettingEligible:     m.NettingEligible,
		ConsumedBy:          m.ConsumedBy,
		SettledAt:           m.SettledAt,
	}
}

// FromDomain populates the persistence model from a domain ScheduledFlow entity.
func (m *ScheduledFlowModel) FromDomain(f *treasury.ScheduledFlow) {
	m.FromDomainTenantAggregateRoot(f.TenantAggregateRoot)
	m.Reference = f.Reference
	m.Direction = f.Direction
	m.Source = f.Source
	m.DueDate = f.DueDate
	m.Amount = f.Amount
	m.Currency = f.Currency
	m.CounterpartyID = f.CounterpartyID
	m.CounterpartyName = f.CounterpartyName
	m.Status = f.Status
	m.NettingEligible = f.NettingEligible
	m.ConsumedBy = f.ConsumedBy
	m.SettledAt = f.SettledAt
}

// ManualAdjustmentModel is the persistence model for the ManualAdjustment aggregate root.
type ManualAdjustmentModel struct {
	TenantAggregateModel
	AdjustmentDate time.Time                   `gorm:"not null;index"`
	Amount         decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	Description    string                      `gorm:"type:varchar(500);not null"`
	Category       treasury.AdjustmentCategory `gorm:"type:varchar(20);not null;default:'MANUAL'"`
}

// TableName returns the table name for GORM
func (ManualAdjustmentModel) TableName() string {
	return "manual_adjustments"
}

// ToDomain converts the persistence model to a domain ManualAdjustment entity.
func (m *ManualAdjustmentModel) ToDomain() *treasury.ManualAdjustment {
	return &treasury.ManualAdjustment{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		AdjustmentDate:      m.AdjustmentDate,
		Amount:              m.Amount,
		Description:         m.Description,
		Category:            m.Category,
	}
}

// FromDomain populates the persistence model from a domain ManualAdjustment entity.
func (m *ManualAdjustmentModel) FromDomain(a *treasury.ManualAdjustment) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.AdjustmentDate = a.AdjustmentDate
	m.Amount = a.Amount
	m.Description = a.Description
	m.Category = a.Category
}

// NettingAgreementModel is the persistence model for the NettingAgreement aggregate root.
type NettingAgreementModel struct {
	TenantAggregateModel
	PartyAID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	PartyAName string                    `gorm:"type:varchar(200);not null"`
	PartyBID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	PartyBName string                    `gorm:"type:varchar(200);not null"`
	Currency   valueobject.Currency      `gorm:"type:varchar(3);not null"`
	Frequency  treasury.NettingFrequency `gorm:"type:varchar(20);not null"`
	Status     treasury.AgreementStatus  `gorm:"type:varchar(10);not null;default:'DRAFT';index"`
}

// TableName returns the table name for GORM
func (NettingAgreementModel) TableName() string {
	return "netting_agreements"
}

// ToDomain converts the persistence model to a domain NettingAgreement entity.
func (m *NettingAgreementModel) ToDomain() *treasury.NettingAgreement {
	return &treasury.NettingAgreement{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		PartyAID:            m.PartyAID,
		PartyAName:          m.PartyAName,
		PartyBID:            m.PartyBID,
		PartyBName:          m.PartyBName,
		Currency:            m.Currency,
		Frequency:           m.Frequency,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain NettingAgreement entity.
func (m *NettingAgreementModel) FromDomain(a *treasury.NettingAgreement) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.PartyAID = a.PartyAID
	m.PartyAName = a.PartyAName
	m.PartyBID = a.PartyBID
	m.PartyBName = a.PartyBName
	m.Currency = a.Currency
	m.Frequency = a.Frequency
	m.Status = a.Status
}

// NettingSettlementModel is the persistence model for the NettingSettlement aggregate root.
type NettingSettlementModel struct {
	TenantAggregateModel
	AgreementID  uuid.UUID                    `gorm:"type:uuid;not null;index"`
	NettedAmount decimal.Decimal              `gorm:"type:decimal(18,4);not null"`
	Currency     valueobject.Currency         `gorm:"type:varchar(3);not null"`
	Direction    treasury.SettlementDirection `gorm:"type:varchar(10);not null"`
	GrossAR      decimal.Decimal              `gorm:"type:decimal(18,4);not null"`
	GrossAP      decimal.Decimal              `gorm:"type:decimal(18,4);not null"`
	FlowCount    int                          `gorm:"not null"`
	ExecutedAt   time.Time                    `gorm:"not null;index"`
	ExecutedBy   string                       `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (NettingSettlementModel) TableName() string {
	return "netting_settlements"
}

// ToDomain converts the persistence model to a domain NettingSettlement entity.
func (m *NettingSettlementModel) ToDomain() *treasury.NettingSettlement {
	return &treasury.NettingSettlement{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		AgreementID:         m.AgreementID,
		NettedAmount:        m.NettedAmount,
		Currency:            m.Currency,
		Direction:           m.Direction,
		GrossAR:             m.GrossAR,
		GrossAP:             m.GrossAP,
		FlowCount:           m.FlowCount,
		ExecutedAt:          m.ExecutedAt,
		ExecutedBy:          m.ExecutedBy,
	}
}

// FromDomain populates the persistence model from a domain NettingSettlement entity.
func (m *NettingSettlementModel) FromDomain(s *treasury.NettingSettlement) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.AgreementID = s.AgreementID
	m.NettedAmount = s.NettedAmount
	m.Currency = s.Currency
	m.Direction = s.Direction
	m.GrossAR = s.GrossAR
	m.GrossAP = s.GrossAP
	m.FlowCount = s.FlowCount
	m.ExecutedAt = s.ExecutedAt
	m.ExecutedBy = s.ExecutedBy
}

// FxRateModel stores a conversion rate between two currencies.
// Rates are global reference data, not tenant-scoped.
type FxRateModel struct {
	BaseModel
	FromCurrency valueobject.Currency `gorm:"type:varchar(3);not null;uniqueIndex:idx_fx_rate_pair,priority:1"`
	ToCurrency   valueobject.Currency `gorm:"type:varchar(3);not null;uniqueIndex:idx_fx_rate_pair,priority:2"`
	Rate         decimal.Decimal      `gorm:"type:decimal(18,8);not null"`
}

// TableName returns the table name for GORM
func (FxRateModel) TableName() string {
	return "fx_rates"
}

// LedgerBalanceModel stores a general-ledger control-account balance as
// synchronized from the upstream ledger.
type LedgerBalanceModel struct {
	BaseModel
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_balance_account,priority:1"`
	AccountCode string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_ledger_balance_account,priority:2"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AsOf        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LedgerBalanceModel) TableName() string {
	return "ledger_balances"
}
