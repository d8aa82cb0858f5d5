package treasury

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
)

// ProposalLine is one open invoice contributing to a netting proposal
type ProposalLine struct {
	FlowID           uuid.UUID            `json:"flow_id"`
	Reference        string               `json:"reference"`
	Source           FlowSource           `json:"source"`
	DueDate          *time.Time           `json:"due_date"`
	OriginalAmount   decimal.Decimal      `json:"original_amount"`
	OriginalCurrency valueobject.Currency `json:"original_currency"`
	Rate             decimal.Decimal      `json:"rate"`
	ConvertedAmount  decimal.Decimal      `json:"converted_amount"`
}

// NettingProposal is a derived offset of open mutual positions under an
// agreement. Proposals are not persisted; a proposal becomes durable only
// when executed into a NettingSettlement, and the client must re-submit
// the proposed figures so staleness can be detected at execution time.
type NettingProposal struct {
	AgreementID uuid.UUID            `json:"agreement_id"`
	Currency    valueobject.Currency `json:"currency"`
	TotalAR     decimal.Decimal      `json:"total_ar"`
	TotalAP     decimal.Decimal      `json:"total_ap"`
	NetAmount   decimal.Decimal      `json:"net_amount"`
	Direction   SettlementDirection  `json:"direction"`
	Lines       []ProposalLine       `json:"lines"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// FlowIDs returns the identifiers of all constituent flows
func (p *NettingProposal) FlowIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Lines))
	for _, line := range p.Lines {
		ids = append(ids, line.FlowID)
	}
	return ids
}

// executionTolerance bounds how far the figures a client confirmed may
// drift from a freshly computed proposal before execution is refused.
var executionTolerance = decimal.RequireFromString("0.01")

// NettingService computes and validates bilateral netting proposals
type NettingService struct{}

// NewNettingService creates a new netting service
func NewNettingService() *NettingService {
	return &NettingService{}
}

// BuildProposal offsets the open netting-eligible AR and AP positions
// under the agreement into a single net amount in the agreement currency.
// Receivables are amounts the counterparty owes us, payables amounts we
// owe the counterparty: a receivable surplus means the counterparty pays.
// Flows in other currencies convert through the rate resolver; a missing
// rate aborts the proposal rather than silently excluding the flow.
func (s *NettingService) BuildProposal(ctx context.Context, agreement *NettingAgreement, flows []ScheduledFlow, rates RateResolver) (*NettingProposal, error) {
	if agreement == nil {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Agreement is required")
	}
	if !agreement.CanPropose() {
		return nil, shared.NewDomainError("AGREEMENT_NOT_ACTIVE",
			fmt.Sprintf("Cannot propose netting under %s agreement", agreement.Status))
	}

	proposal := &NettingProposal{
		AgreementID: agreement.ID,
		Currency:    agreement.Currency,
		TotalAR:     decimal.Zero,
		TotalAP:     decimal.Zero,
		Lines:       make([]ProposalLine, 0, len(flows)),
		GeneratedAt: time.Now(),
	}

	for _, f := range flows {
		if !f.IsOpen() || !f.NettingEligible {
			continue
		}
		if f.Source != FlowSourceAR && f.Source != FlowSourceAP {
			continue
		}

		rate := decimal.NewFromInt(1)
		if f.Currency != agreement.Currency {
			r, err := rates.Rate(ctx, f.Currency, agreement.Currency)
			if err != nil {
				return nil, shared.NewDomainError("RATE_UNAVAILABLE",
					fmt.Sprintf("No conversion rate from %s to %s for flow %s", f.Currency, agreement.Currency, f.Reference))
			}
			rate = r
		}
		converted := f.Amount.Mul(rate).Round(2)

		if f.Source == FlowSourceAR {
			proposal.TotalAR = proposal.TotalAR.Add(converted)
		} else {
			proposal.TotalAP = proposal.TotalAP.Add(converted)
		}

		proposal.Lines = append(proposal.Lines, ProposalLine{
			FlowID:           f.ID,
			Reference:        f.Reference,
			Source:           f.Source,
			DueDate:          f.DueDate,
			OriginalAmount:   f.Amount,
			OriginalCurrency: f.Currency,
			Rate:             rate,
			ConvertedAmount:  converted,
		})
	}

	net := proposal.TotalAR.Sub(proposal.TotalAP)
	switch {
	case net.IsPositive():
		proposal.Direction = DirectionPayFromB
	case net.IsNegative():
		proposal.Direction = DirectionPayFromA
	default:
		proposal.Direction = DirectionNone
	}
	proposal.NetAmount = net.Abs()

	return proposal, nil
}

// ValidateExecution checks the figures a client confirmed against a
// freshly computed proposal. If the open positions changed since the
// client last looked, execution is refused so nobody settles an amount
// they never saw.
func (s *NettingService) ValidateExecution(fresh *NettingProposal, confirmedAmount decimal.Decimal, confirmedDirection SettlementDirection) error {
	if confirmedAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Confirmed netting amount cannot be negative")
	}
	if !confirmedDirection.IsValid() {
		return shared.NewDomainError("INVALID_DIRECTION", "Confirmed settlement direction is not valid")
	}

	if confirmedDirection != fresh.Direction ||
		fresh.NetAmount.Sub(confirmedAmount).Abs().GreaterThanOrEqual(executionTolerance) {
		return shared.NewDomainError("STALE_PROPOSAL",
			fmt.Sprintf("Open positions changed: proposal is now %s %s %s, confirmed %s %s",
				fresh.NetAmount, fresh.Currency, fresh.Direction, confirmedAmount, confirmedDirection))
	}

	return nil
}
