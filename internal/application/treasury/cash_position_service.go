package treasury

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
	"github.com/treasury/backend/internal/domain/treasury"
)

// CashPositionService provides application-level forecasting and
// liquidity operations
type CashPositionService struct {
	accountRepo    treasury.BankAccountRepository
	flowRepo       treasury.ScheduledFlowRepository
	adjustmentRepo treasury.ManualAdjustmentRepository
	rates          treasury.RateResolver
	forecastSvc    *treasury.ForecastService
}

// NewCashPositionService creates a new CashPositionService
func NewCashPositionService(
	accountRepo treasury.BankAccountRepository,
	flowRepo treasury.ScheduledFlowRepository,
	adjustmentRepo treasury.ManualAdjustmentRepository,
	rates treasury.RateResolver,
) *CashPositionService {
	return &CashPositionService{
		accountRepo:    accountRepo,
		flowRepo:       flowRepo,
		adjustmentRepo: adjustmentRepo,
		rates:          rates,
		forecastSvc:    treasury.NewForecastService(),
	}
}

// ForecastRequest carries the parameters of a forecast run
type ForecastRequest struct {
	StartDate   *time.Time `json:"start_date"`
	HorizonDays int        `json:"horizon_days" binding:"required"`
	Scenario    string     `json:"scenario"`
}

// ForecastResponse is a full forecast run with any data-quality warnings
type ForecastResponse struct {
	StartDate   time.Time                `json:"start_date"`
	HorizonDays int                      `json:"horizon_days"`
	Scenario    treasury.Scenario        `json:"scenario"`
	Days        []treasury.DailyForecast `json:"days"`
	Warnings    []treasury.FlowWarning   `json:"warnings"`
}

// GenerateForecast projects the cash position over the requested horizon.
// The projection is recomputed from current data on every call; nothing
// is cached or persisted.
func (s *CashPositionService) GenerateForecast(ctx context.Context, tenantID uuid.UUID, req ForecastRequest) (*ForecastResponse, error) {
	scenarioType := treasury.ScenarioBaseline
	if req.Scenario != "" {
		scenarioType = treasury.ScenarioType(req.Scenario)
	}
	scenario, err := treasury.ScenarioFor(scenarioType)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if req.StartDate != nil {
		start = *req.StartDate
	}
	start = treasury.NormalizeDate(start)

	if req.HorizonDays < 1 || req.HorizonDays > treasury.MaxForecastHorizonDays {
		return nil, shared.NewDomainError("INVALID_HORIZON", "Forecast horizon must be between 1 and 365 days")
	}
	end := start.AddDate(0, 0, req.HorizonDays-1)

	accounts, err := s.accountRepo.ListActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	flows, err := s.flowRepo.ListOpenInRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}
	adjustments, err := s.adjustmentRepo.ListInRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	days, warnings, err := s.forecastSvc.Generate(treasury.ForecastInput{
		StartDate:   start,
		HorizonDays: req.HorizonDays,
		Scenario:    scenario,
		Accounts:    accounts,
		Flows:       flows,
		Adjustments: adjustments,
	})
	if err != nil {
		return nil, err
	}

	return &ForecastResponse{
		StartDate:   start,
		HorizonDays: req.HorizonDays,
		Scenario:    scenario,
		Days:        days,
		Warnings:    warnings,
	}, nil
}

// GetLiquidity consolidates active account balances into the reporting
// currency
func (s *CashPositionService) GetLiquidity(ctx context.Context, tenantID uuid.UUID, reportingCurrency string) (*treasury.LiquiditySnapshot, error) {
	reporting := valueobject.DefaultCurrency
	if reportingCurrency != "" {
		reporting = valueobject.Currency(reportingCurrency)
	}

	accounts, err := s.accountRepo.ListActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return treasury.ConsolidateBalances(accounts, reporting, func(from, to valueobject.Currency) (decimal.Decimal, error) {
		return s.rates.Rate(ctx, from, to)
	})
}

// ListScenarios returns the named scenario catalog
func (s *CashPositionService) ListScenarios() []treasury.Scenario {
	return treasury.AllScenarios()
}

// CreateBankAccountRequest carries the fields of a new bank account
type CreateBankAccountRequest struct {
	AccountNumber  string          `json:"account_number" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	Currency       string          `json:"currency" binding:"required,currency"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// CreateBankAccount registers a bank account for the tenant
func (s *CashPositionService) CreateBankAccount(ctx context.Context, tenantID uuid.UUID, req CreateBankAccountRequest) (*treasury.BankAccount, error) {
	existing, err := s.accountRepo.FindByAccountNumber(ctx, tenantID, req.AccountNumber)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_ACCOUNT", "Account number already registered")
	}

	account, err := treasury.NewBankAccount(tenantID, req.AccountNumber, req.Name,
		valueobject.Currency(req.Currency), req.CurrentBalance)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListBankAccounts returns the tenant's bank accounts with paging
func (s *CashPositionService) ListBankAccounts(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[treasury.BankAccount], error) {
	accounts, total, err := s.accountRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(accounts, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CreateScheduledFlowRequest carries the fields of a new scheduled flow
type CreateScheduledFlowRequest struct {
	Reference        string          `json:"reference" binding:"required"`
	Direction        string          `json:"direction" binding:"required"`
	Source           string          `json:"source" binding:"required"`
	DueDate          time.Time       `json:"due_date" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	Currency         string          `json:"currency" binding:"required,currency"`
	CounterpartyID   uuid.UUID       `json:"counterparty_id" binding:"required"`
	CounterpartyName string          `json:"counterparty_name"`
}

// CreateScheduledFlow registers an expected cash movement
func (s *CashPositionService) CreateScheduledFlow(ctx context.Context, tenantID uuid.UUID, req CreateScheduledFlowRequest) (*treasury.ScheduledFlow, error) {
	flow, err := treasury.NewScheduledFlow(
		tenantID,
		req.Reference,
		treasury.FlowDirection(req.Direction),
		treasury.FlowSource(req.Source),
		req.DueDate,
		req.Amount,
		valueobject.Currency(req.Currency),
		req.CounterpartyID,
		req.CounterpartyName,
	)
	if err != nil {
		return nil, err
	}
	if err := s.flowRepo.Save(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// ListScheduledFlows returns the tenant's scheduled flows with paging
func (s *CashPositionService) ListScheduledFlows(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[treasury.ScheduledFlow], error) {
	flows, total, err := s.flowRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(flows, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CreateAdjustmentRequest carries the fields of a manual forecast
// adjustment. Amount is signed: positive inflow, negative outflow.
type CreateAdjustmentRequest struct {
	AdjustmentDate time.Time       `json:"adjustment_date" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Description    string          `json:"description" binding:"required"`
	Category       string          `json:"category"`
}

// CreateAdjustment pins a manual amount onto a forecast day
func (s *CashPositionService) CreateAdjustment(ctx context.Context, tenantID uuid.UUID, req CreateAdjustmentRequest) (*treasury.ManualAdjustment, error) {
	category := treasury.AdjustmentCategoryManual
	if req.Category != "" {
		category = treasury.AdjustmentCategory(req.Category)
	}

	adjustment, err := treasury.NewManualAdjustment(tenantID, req.AdjustmentDate, req.Amount, req.Description, category)
	if err != nil {
		return nil, err
	}
	if err := s.adjustmentRepo.Save(ctx, adjustment); err != nil {
		return nil, err
	}
	return adjustment, nil
}

// DeleteAdjustment removes a manual adjustment
func (s *CashPositionService) DeleteAdjustment(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.adjustmentRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.adjustmentRepo.Delete(ctx, tenantID, id)
}
