package treasury

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/treasury"
)

// controlReadTimeout bounds how long a reconciliation waits on the
// general ledger before reporting it unavailable
const controlReadTimeout = 5 * time.Second

// ReportingService provides receivables aging and subledger
// reconciliation. Both operations are read-only and idempotent.
type ReportingService struct {
	flowRepo treasury.ScheduledFlowRepository
	ledger   treasury.ControlAccountReader
	agingSvc *treasury.AgingService
	reconSvc *treasury.ReconciliationService
}

// NewReportingService creates a new ReportingService
func NewReportingService(
	flowRepo treasury.ScheduledFlowRepository,
	ledger treasury.ControlAccountReader,
) *ReportingService {
	return &ReportingService{
		flowRepo: flowRepo,
		ledger:   ledger,
		agingSvc: treasury.NewAgingService(),
		reconSvc: treasury.NewReconciliationService(),
	}
}

// AgingReport buckets the tenant's open receivables by days overdue
func (s *ReportingService) AgingReport(ctx context.Context, tenantID uuid.UUID, asOf *time.Time) (*treasury.AgingReport, error) {
	reportDate := time.Now()
	if asOf != nil {
		reportDate = *asOf
	}

	receivables, err := s.flowRepo.ListOpenReceivables(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return s.agingSvc.Classify(reportDate, receivables), nil
}

// ReconcileRequest identifies the control account to reconcile against
type ReconcileRequest struct {
	ControlAccount string     `json:"control_account" binding:"required"`
	AsOf           *time.Time `json:"as_of"`
}

// Reconcile compares the receivables subledger total against the
// general-ledger control balance. The ledger read is bounded by a
// timeout; an unreachable ledger surfaces as UPSTREAM_UNAVAILABLE
// rather than blocking the caller.
func (s *ReportingService) Reconcile(ctx context.Context, tenantID uuid.UUID, req ReconcileRequest) (*treasury.ReconciliationResult, error) {
	asOf := time.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	receivables, err := s.flowRepo.ListOpenReceivables(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	readCtx, cancel := context.WithTimeout(ctx, controlReadTimeout)
	defer cancel()

	controlBalance, err := s.ledger.ControlBalance(readCtx, tenantID, req.ControlAccount, asOf)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, shared.ErrUpstreamUnavailable
		}
		return nil, err
	}

	return s.reconSvc.Reconcile(asOf, req.ControlAccount, receivables, controlBalance)
}
