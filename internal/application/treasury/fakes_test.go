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

// In-memory fakes backing the application service tests

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*treasury.BankAccount
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*treasury.BankAccount)}
}

func (r *fakeAccountRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*treasury.BankAccount, error) {
	acct, ok := r.accounts[id]
	if !ok || acct.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return acct, nil
}

func (r *fakeAccountRepo) FindByAccountNumber(_ context.Context, tenantID uuid.UUID, accountNumber string) (*treasury.BankAccount, error) {
	for _, acct := range r.accounts {
		if acct.TenantID == tenantID && acct.AccountNumber == accountNumber {
			return acct, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeAccountRepo) ListActive(_ context.Context, tenantID uuid.UUID) ([]treasury.BankAccount, error) {
	out := make([]treasury.BankAccount, 0)
	for _, acct := range r.accounts {
		if acct.TenantID == tenantID && acct.Active {
			out = append(out, *acct)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]treasury.BankAccount, int64, error) {
	out := make([]treasury.BankAccount, 0)
	for _, acct := range r.accounts {
		if acct.TenantID == tenantID {
			out = append(out, *acct)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAccountRepo) Save(_ context.Context, account *treasury.BankAccount) error {
	r.accounts[account.ID] = account
	return nil
}

type fakeFlowRepo struct {
	flows map[uuid.UUID]*treasury.ScheduledFlow
}

func newFakeFlowRepo() *fakeFlowRepo {
	return &fakeFlowRepo{flows: make(map[uuid.UUID]*treasury.ScheduledFlow)}
}

func (r *fakeFlowRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*treasury.ScheduledFlow, error) {
	flow, ok := r.flows[id]
	if !ok || flow.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return flow, nil
}

func (r *fakeFlowRepo) ListOpenInRange(_ context.Context, tenantID uuid.UUID, from, to time.Time) ([]treasury.ScheduledFlow, error) {
	out := make([]treasury.ScheduledFlow, 0)
	for _, f := range r.flows {
		if f.TenantID != tenantID || !f.IsOpen() {
			continue
		}
		if f.DueDate != nil && (f.DueDate.Before(from) || f.DueDate.After(to)) {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeFlowRepo) ListOpenReceivables(_ context.Context, tenantID uuid.UUID) ([]treasury.ScheduledFlow, error) {
	out := make([]treasury.ScheduledFlow, 0)
	for _, f := range r.flows {
		if f.TenantID == tenantID && f.Source == treasury.FlowSourceAR && f.IsOpen() {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFlowRepo) ListOpenForNetting(_ context.Context, tenantID, counterpartyID uuid.UUID) ([]treasury.ScheduledFlow, error) {
	out := make([]treasury.ScheduledFlow, 0)
	for _, f := range r.flows {
		if f.TenantID == tenantID && f.CounterpartyID == counterpartyID && f.IsOpen() && f.NettingEligible {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFlowRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]treasury.ScheduledFlow, int64, error) {
	out := make([]treasury.ScheduledFlow, 0)
	for _, f := range r.flows {
		if f.TenantID == tenantID {
			out = append(out, *f)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeFlowRepo) Save(_ context.Context, flow *treasury.ScheduledFlow) error {
	r.flows[flow.ID] = flow
	return nil
}

func (r *fakeFlowRepo) MarkConsumed(_ context.Context, tenantID uuid.UUID, flowIDs []uuid.UUID, settlementID uuid.UUID, at time.Time) error {
	for _, id := range flowIDs {
		flow, ok := r.flows[id]
		if !ok || flow.TenantID != tenantID {
			return shared.ErrNotFound
		}
		if err := flow.MarkConsumed(settlementID, at); err != nil {
			return err
		}
	}
	return nil
}

type fakeAdjustmentRepo struct {
	adjustments map[uuid.UUID]*treasury.ManualAdjustment
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{adjustments: make(map[uuid.UUID]*treasury.ManualAdjustment)}
}

func (r *fakeAdjustmentRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*treasury.ManualAdjustment, error) {
	adj, ok := r.adjustments[id]
	if !ok || adj.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return adj, nil
}

func (r *fakeAdjustmentRepo) ListInRange(_ context.Context, tenantID uuid.UUID, from, to time.Time) ([]treasury.ManualAdjustment, error) {
	out := make([]treasury.ManualAdjustment, 0)
	for _, adj := range r.adjustments {
		if adj.TenantID != tenantID {
			continue
		}
		if adj.AdjustmentDate.Before(from) || adj.AdjustmentDate.After(to) {
			continue
		}
		out = append(out, *adj)
	}
	return out, nil
}

func (r *fakeAdjustmentRepo) Save(_ context.Context, adjustment *treasury.ManualAdjustment) error {
	r.adjustments[adjustment.ID] = adjustment
	return nil
}

func (r *fakeAdjustmentRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	adj, ok := r.adjustments[id]
	if !ok || adj.TenantID != tenantID {
		return shared.ErrNotFound
	}
	delete(r.adjustments, id)
	return nil
}

type fakeAgreementRepo struct {
	agreements map[uuid.UUID]*treasury.NettingAgreement
}

func newFakeAgreementRepo() *fakeAgreementRepo {
	return &fakeAgreementRepo{agreements: make(map[uuid.UUID]*treasury.NettingAgreement)}
}

func (r *fakeAgreementRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*treasury.NettingAgreement, error) {
	agreement, ok := r.agreements[id]
	if !ok || agreement.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return agreement, nil
}

func (r *fakeAgreementRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*treasury.NettingAgreement, error) {
	return r.FindByIDForTenant(ctx, tenantID, id)
}

func (r *fakeAgreementRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]treasury.NettingAgreement, int64, error) {
	out := make([]treasury.NettingAgreement, 0)
	for _, a := range r.agreements {
		if a.TenantID == tenantID {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAgreementRepo) Save(_ context.Context, agreement *treasury.NettingAgreement) error {
	r.agreements[agreement.ID] = agreement
	return nil
}

type fakeSettlementRepo struct {
	settlements map[uuid.UUID]*treasury.NettingSettlement
}

func newFakeSettlementRepo() *fakeSettlementRepo {
	return &fakeSettlementRepo{settlements: make(map[uuid.UUID]*treasury.NettingSettlement)}
}

func (r *fakeSettlementRepo) Create(_ context.Context, settlement *treasury.NettingSettlement) error {
	r.settlements[settlement.ID] = settlement
	return nil
}

func (r *fakeSettlementRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*treasury.NettingSettlement, error) {
	s, ok := r.settlements[id]
	if !ok || s.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return s, nil
}

func (r *fakeSettlementRepo) ListByAgreement(_ context.Context, tenantID, agreementID uuid.UUID, _ shared.Filter) ([]treasury.NettingSettlement, int64, error) {
	out := make([]treasury.NettingSettlement, 0)
	for _, s := range r.settlements {
		if s.TenantID == tenantID && s.AgreementID == agreementID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

type fakeRates struct {
	rates map[string]decimal.Decimal
}

func (f *fakeRates) Rate(_ context.Context, from, to valueobject.Currency) (decimal.Decimal, error) {
	if rate, ok := f.rates[string(from)+"/"+string(to)]; ok {
		return rate, nil
	}
	return decimal.Zero, shared.ErrNotFound
}

// fakeTxManager runs the callback without a real transaction
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// fakeLedger serves a fixed control balance, optionally stalling to
// exercise the reconciliation timeout
type fakeLedger struct {
	balance decimal.Decimal
	stall   time.Duration
	err     error
}

func (l *fakeLedger) ControlBalance(ctx context.Context, _ uuid.UUID, _ string, _ time.Time) (decimal.Decimal, error) {
	if l.stall > 0 {
		select {
		case <-ctx.Done():
			return decimal.Zero, ctx.Err()
		case <-time.After(l.stall):
		}
	}
	if l.err != nil {
		return decimal.Zero, l.err
	}
	return l.balance, nil
}
