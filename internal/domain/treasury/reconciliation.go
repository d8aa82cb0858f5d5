package treasury

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/treasury/backend/internal/domain/shared"
)

// ReconciliationStatus describes the outcome of a subledger-to-control
// comparison
type ReconciliationStatus string

const (
	ReconciliationMatched   ReconciliationStatus = "MATCHED"
	ReconciliationUnmatched ReconciliationStatus = "UNMATCHED"
)

// reconciliationEpsilon is the maximum absolute difference still
// considered a rounding artifact rather than a real discrepancy.
var reconciliationEpsilon = decimal.RequireFromString("0.01")

// ReconciliationResult compares the receivables subledger against the
// corresponding general-ledger control account.
type ReconciliationResult struct {
	AsOf             time.Time            `json:"as_of"`
	ControlAccount   string               `json:"control_account"`
	SubledgerBalance decimal.Decimal      `json:"subledger_balance"`
	ControlBalance   decimal.Decimal      `json:"control_balance"`
	Difference       decimal.Decimal      `json:"difference"`
	Status           ReconciliationStatus `json:"status"`
}

// ReconciliationService compares subledger totals against control
// balances
type ReconciliationService struct{}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService() *ReconciliationService {
	return &ReconciliationService{}
}

// Reconcile sums the outstanding amounts of the given open receivable
// flows and compares the total against the control balance. Difference is
// always subledger minus control, so a positive difference means the
// subledger carries more than the ledger. The comparison tolerates
// rounding up to one cent.
func (s *ReconciliationService) Reconcile(asOf time.Time, controlAccount string, flows []ScheduledFlow, controlBalance decimal.Decimal) (*ReconciliationResult, error) {
	if controlAccount == "" {
		return nil, shared.NewDomainError("INVALID_CONTROL_ACCOUNT", "control account code is required")
	}

	subledger := decimal.Zero
	for _, f := range flows {
		if f.Source != FlowSourceAR || !f.IsOpen() {
			continue
		}
		subledger = subledger.Add(f.Amount)
	}

	difference := subledger.Sub(controlBalance)
	status := ReconciliationUnmatched
	if difference.Abs().LessThan(reconciliationEpsilon) {
		status = ReconciliationMatched
	}

	return &ReconciliationResult{
		AsOf:             NormalizeDate(asOf),
		ControlAccount:   controlAccount,
		SubledgerBalance: subledger,
		ControlBalance:   controlBalance,
		Difference:       difference,
		Status:           status,
	}, nil
}
