package treasury

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
	"github.com/treasury/backend/internal/domain/treasury"
)

type cashFixture struct {
	svc            *CashPositionService
	accountRepo    *fakeAccountRepo
	flowRepo       *fakeFlowRepo
	adjustmentRepo *fakeAdjustmentRepo
	tenantID       uuid.UUID
}

func newCashFixture(t *testing.T) *cashFixture {
	t.Helper()
	accountRepo := newFakeAccountRepo()
	flowRepo := newFakeFlowRepo()
	adjustmentRepo := newFakeAdjustmentRepo()
	rates := &fakeRates{rates: map[string]decimal.Decimal{
		"EUR/USD": decimal.RequireFromString("1.10"),
	}}

	return &cashFixture{
		svc:            NewCashPositionService(accountRepo, flowRepo, adjustmentRepo, rates),
		accountRepo:    accountRepo,
		flowRepo:       flowRepo,
		adjustmentRepo: adjustmentRepo,
		tenantID:       uuid.New(),
	}
}

func TestCashPositionService_GenerateForecast(t *testing.T) {
	f := newCashFixture(t)
	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)

	account, err := treasury.NewBankAccount(f.tenantID, "CH-OPER-001", "Operating",
		valueobject.USD, decimal.RequireFromString("1000.00"))
	require.NoError(t, err)
	require.NoError(t, f.accountRepo.Save(context.Background(), account))

	payable, err := treasury.NewScheduledFlow(f.tenantID, "AP-100", treasury.FlowDirectionOutflow,
		treasury.FlowSourceAP, start.AddDate(0, 0, 1), decimal.RequireFromString("200.00"),
		valueobject.USD, uuid.New(), "Supplier AG")
	require.NoError(t, err)
	require.NoError(t, f.flowRepo.Save(context.Background(), payable))

	receivable, err := treasury.NewScheduledFlow(f.tenantID, "AR-100", treasury.FlowDirectionInflow,
		treasury.FlowSourceAR, start.AddDate(0, 0, 2), decimal.RequireFromString("500.00"),
		valueobject.USD, uuid.New(), "Customer AG")
	require.NoError(t, err)
	require.NoError(t, f.flowRepo.Save(context.Background(), receivable))

	resp, err := f.svc.GenerateForecast(context.Background(), f.tenantID, ForecastRequest{
		StartDate:   &start,
		HorizonDays: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, treasury.ScenarioBaseline, resp.Scenario.Type, "scenario defaults to baseline")
	require.Len(t, resp.Days, 5)

	wantClosings := []string{"1000", "800", "1300", "1300", "1300"}
	for i, want := range wantClosings {
		assert.True(t, resp.Days[i].ClosingBalance.Equal(decimal.RequireFromString(want)),
			"day %d closing = %s, want %s", i, resp.Days[i].ClosingBalance, want)
	}
}

func TestCashPositionService_GenerateForecast_Validation(t *testing.T) {
	f := newCashFixture(t)

	_, err := f.svc.GenerateForecast(context.Background(), f.tenantID, ForecastRequest{HorizonDays: 0})
	assert.Error(t, err)

	_, err = f.svc.GenerateForecast(context.Background(), f.tenantID, ForecastRequest{
		HorizonDays: 5, Scenario: "AGGRESSIVE",
	})
	assert.Error(t, err)
}

func TestCashPositionService_GetLiquidity(t *testing.T) {
	f := newCashFixture(t)

	usd, err := treasury.NewBankAccount(f.tenantID, "CH-OPER-001", "Operating",
		valueobject.USD, decimal.RequireFromString("1000.00"))
	require.NoError(t, err)
	require.NoError(t, f.accountRepo.Save(context.Background(), usd))

	eur, err := treasury.NewBankAccount(f.tenantID, "CH-EUR-001", "EUR Account",
		valueobject.EUR, decimal.RequireFromString("200.00"))
	require.NoError(t, err)
	require.NoError(t, f.accountRepo.Save(context.Background(), eur))

	snapshot, err := f.svc.GetLiquidity(context.Background(), f.tenantID, "")
	require.NoError(t, err)

	assert.Equal(t, valueobject.USD, snapshot.ReportingCurrency)
	assert.True(t, snapshot.TotalBalance.Equal(decimal.RequireFromString("1220.00")))
}

func TestCashPositionService_CreateBankAccount_DuplicateNumber(t *testing.T) {
	f := newCashFixture(t)

	req := CreateBankAccountRequest{
		AccountNumber:  "CH-OPER-001",
		Name:           "Operating",
		Currency:       "USD",
		CurrentBalance: decimal.RequireFromString("100.00"),
	}

	_, err := f.svc.CreateBankAccount(context.Background(), f.tenantID, req)
	require.NoError(t, err)

	_, err = f.svc.CreateBankAccount(context.Background(), f.tenantID, req)
	assert.Error(t, err)
}

func TestCashPositionService_Adjustments(t *testing.T) {
	f := newCashFixture(t)

	adjustment, err := f.svc.CreateAdjustment(context.Background(), f.tenantID, CreateAdjustmentRequest{
		AdjustmentDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Amount:         decimal.RequireFromString("-300.00"),
		Description:    "Quarterly VAT",
		Category:       "TAX",
	})
	require.NoError(t, err)
	assert.Equal(t, treasury.AdjustmentCategoryTax, adjustment.Category)

	require.NoError(t, f.svc.DeleteAdjustment(context.Background(), f.tenantID, adjustment.ID))
	assert.ErrorIs(t, f.svc.DeleteAdjustment(context.Background(), f.tenantID, adjustment.ID), shared.ErrNotFound)
}

func TestReportingService_AgingReport(t *testing.T) {
	flowRepo := newFakeFlowRepo()
	tenantID := uuid.New()
	asOf := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	overdue, err := treasury.NewScheduledFlow(tenantID, "AR-OLD", treasury.FlowDirectionInflow,
		treasury.FlowSourceAR, asOf.AddDate(0, 0, -35), decimal.RequireFromString("1500.00"),
		valueobject.USD, uuid.New(), "Customer AG")
	require.NoError(t, err)
	require.NoError(t, flowRepo.Save(context.Background(), overdue))

	svc := NewReportingService(flowRepo, &fakeLedger{balance: decimal.Zero})

	report, err := svc.AgingReport(context.Background(), tenantID, &asOf)
	require.NoError(t, err)

	assert.True(t, report.Days31To60.Equal(decimal.RequireFromString("1500.00")))
	assert.True(t, report.Total.Equal(decimal.RequireFromString("1500.00")))
}

func TestReportingService_Reconcile(t *testing.T) {
	flowRepo := newFakeFlowRepo()
	tenantID := uuid.New()

	receivable, err := treasury.NewScheduledFlow(tenantID, "AR-1", treasury.FlowDirectionInflow,
		treasury.FlowSourceAR, time.Now(), decimal.RequireFromString("250.00"),
		valueobject.USD, uuid.New(), "Customer AG")
	require.NoError(t, err)
	require.NoError(t, flowRepo.Save(context.Background(), receivable))

	svc := NewReportingService(flowRepo, &fakeLedger{balance: decimal.RequireFromString("250.00")})

	result, err := svc.Reconcile(context.Background(), tenantID, ReconcileRequest{ControlAccount: "1200"})
	require.NoError(t, err)

	assert.Equal(t, treasury.ReconciliationMatched, result.Status)
	assert.True(t, result.Difference.IsZero())
}

func TestReportingService_Reconcile_LedgerTimeout(t *testing.T) {
	svc := NewReportingService(newFakeFlowRepo(), &fakeLedger{stall: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Reconcile(ctx, uuid.New(), ReconcileRequest{ControlAccount: "1200"})
	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
}
