package treasury

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
)

// stubRateResolver serves fixed rates keyed by "FROM/TO"
type stubRateResolver struct {
	rates map[string]decimal.Decimal
}

func (s *stubRateResolver) Rate(_ context.Context, from, to valueobject.Currency) (decimal.Decimal, error) {
	rate, ok := s.rates[string(from)+"/"+string(to)]
	if !ok {
		return decimal.Zero, shared.ErrNotFound
	}
	return rate, nil
}

func createActiveAgreement(t *testing.T, tenantID uuid.UUID) *NettingAgreement {
	agreement, err := NewNettingAgreement(
		tenantID, uuid.New(), uuid.New(),
		"Holding AG", "Subsidiary GmbH",
		valueobject.USD, FrequencyMonthly,
	)
	require.NoError(t, err)
	require.NoError(t, agreement.Activate())
	return agreement
}

func createNettingFlow(t *testing.T, tenantID uuid.UUID, source FlowSource, amount string) *ScheduledFlow {
	direction := FlowDirectionInflow
	if source == FlowSourceAP {
		direction = FlowDirectionOutflow
	}
	return createTestFlow(t, tenantID, source, direction, amount, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
}

func TestNettingService_BuildProposal_Directions(t *testing.T) {
	tenantID := uuid.New()
	svc := NewNettingService()
	resolver := &stubRateResolver{}

	tests := []struct {
		name          string
		arAmounts     []string
		apAmounts     []string
		wantNet       string
		wantDirection SettlementDirection
	}{
		{"receivable surplus", []string{"600.00", "400.00"}, []string{"300.00"}, "700.00", DirectionPayFromB},
		{"payable surplus", []string{"100.00"}, []string{"250.00", "150.00"}, "300.00", DirectionPayFromA},
		{"fully offset", []string{"500.00"}, []string{"500.00"}, "0.00", DirectionNone},
		{"no open positions", nil, nil, "0.00", DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agreement := createActiveAgreement(t, tenantID)

			flows := make([]ScheduledFlow, 0)
			for _, a := range tt.arAmounts {
				flows = append(flows, *createNettingFlow(t, tenantID, FlowSourceAR, a))
			}
			for _, a := range tt.apAmounts {
				flows = append(flows, *createNettingFlow(t, tenantID, FlowSourceAP, a))
			}

			proposal, err := svc.BuildProposal(context.Background(), agreement, flows, resolver)
			require.NoError(t, err)

			assert.True(t, proposal.NetAmount.Equal(decimal.RequireFromString(tt.wantNet)),
				"net = %s, want %s", proposal.NetAmount, tt.wantNet)
			assert.Equal(t, tt.wantDirection, proposal.Direction)
			assert.True(t, proposal.NetAmount.Equal(proposal.TotalAR.Sub(proposal.TotalAP).Abs()),
				"net amount must equal |AR - AP|")
			assert.False(t, proposal.NetAmount.IsNegative())
			assert.Len(t, proposal.Lines, len(tt.arAmounts)+len(tt.apAmounts))
		})
	}
}

func TestNettingService_BuildProposal_ExcludesConsumedAndIneligible(t *testing.T) {
	tenantID := uuid.New()
	svc := NewNettingService()
	agreement := createActiveAgreement(t, tenantID)

	consumed := createNettingFlow(t, tenantID, FlowSourceAR, "999.00")
	require.NoError(t, consumed.MarkConsumed(uuid.New(), time.Now()))

	manual := createNettingFlow(t, tenantID, FlowSourceManual, "500.00")
	assert.False(t, manual.NettingEligible)

	optedOut := createNettingFlow(t, tenantID, FlowSourceAR, "250.00")
	optedOut.NettingEligible = false

	open := createNettingFlow(t, tenantID, FlowSourceAR, "120.00")

	proposal, err := svc.BuildProposal(context.Background(), agreement,
		[]ScheduledFlow{*consumed, *manual, *optedOut, *open}, &stubRateResolver{})
	require.NoError(t, err)

	require.Len(t, proposal.Lines, 1)
	assert.Equal(t, open.ID, proposal.Lines[0].FlowID)
	assert.True(t, proposal.TotalAR.Equal(decimal.RequireFromString("120.00")))
}

func TestNettingService_BuildProposal_ConvertsForeignCurrency(t *testing.T) {
	tenantID := uuid.New()
	svc := NewNettingService()
	agreement := createActiveAgreement(t, tenantID)

	eurFlow, err := NewScheduledFlow(tenantID, "AR-EUR-1", FlowDirectionInflow, FlowSourceAR,
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		decimal.RequireFromString("100.00"), valueobject.EUR, uuid.New(), "Subsidiary GmbH")
	require.NoError(t, err)

	resolver := &stubRateResolver{rates: map[string]decimal.Decimal{
		"EUR/USD": decimal.RequireFromString("1.08"),
	}}

	proposal, err := svc.BuildProposal(context.Background(), agreement, []ScheduledFlow{*eurFlow}, resolver)
	require.NoError(t, err)

	require.Len(t, proposal.Lines, 1)
	line := proposal.Lines[0]
	assert.True(t, line.OriginalAmount.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, valueobject.EUR, line.OriginalCurrency)
	assert.True(t, line.Rate.Equal(decimal.RequireFromString("1.08")))
	assert.True(t, line.ConvertedAmount.Equal(decimal.RequireFromString("108.00")))
	assert.True(t, proposal.TotalAR.Equal(decimal.RequireFromString("108.00")))
}

func TestNettingService_BuildProposal_MissingRateFails(t *testing.T) {
	tenantID := uuid.New()
	svc := NewNettingService()
	agreement := createActiveAgreement(t, tenantID)

	gbpFlow, err := NewScheduledFlow(tenantID, "AR-GBP-1", FlowDirectionInflow, FlowSourceAR,
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		decimal.RequireFromString("100.00"), valueobject.GBP, uuid.New(), "Subsidiary GmbH")
	require.NoError(t, err)

	_, err = svc.BuildProposal(context.Background(), agreement, []ScheduledFlow{*gbpFlow}, &stubRateResolver{})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "RATE_UNAVAILABLE", domainErr.Code)
}

func TestNettingService_BuildProposal_RequiresActiveAgreement(t *testing.T) {
	tenantID := uuid.New()
	svc := NewNettingService()

	draft, err := NewNettingAgreement(tenantID, uuid.New(), uuid.New(),
		"Holding AG", "Subsidiary GmbH", valueobject.USD, FrequencyOnDemand)
	require.NoError(t, err)

	_, err = svc.BuildProposal(context.Background(), draft, nil, &stubRateResolver{})
	assert.Error(t, err)

	closed := createActiveAgreement(t, tenantID)
	require.NoError(t, closed.Close())

	_, err = svc.BuildProposal(context.Background(), closed, nil, &stubRateResolver{})
	assert.Error(t, err)
}

func TestNettingService_ValidateExecution(t *testing.T) {
	svc := NewNettingService()

	fresh := &NettingProposal{
		NetAmount: decimal.RequireFromString("700.00"),
		Currency:  valueobject.USD,
		Direction: DirectionPayFromB,
	}

	tests := []struct {
		name      string
		amount    string
		direction SettlementDirection
		wantCode  string
	}{
		{"matching figures", "700.00", DirectionPayFromB, ""},
		{"within tolerance", "700.005", DirectionPayFromB, ""},
		{"amount drifted", "650.00", DirectionPayFromB, "STALE_PROPOSAL"},
		{"direction flipped", "700.00", DirectionPayFromA, "STALE_PROPOSAL"},
		{"negative amount", "-1.00", DirectionPayFromB, "INVALID_AMOUNT"},
		{"unknown direction", "700.00", SettlementDirection("SIDEWAYS"), "INVALID_DIRECTION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateExecution(fresh, decimal.RequireFromString(tt.amount), tt.direction)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestNettingService_ValidateExecution_ZeroSettlement(t *testing.T) {
	svc := NewNettingService()

	flat := &NettingProposal{NetAmount: decimal.Zero, Currency: valueobject.USD, Direction: DirectionNone}

	// A genuinely flat position may be confirmed at zero for the audit trail
	assert.NoError(t, svc.ValidateExecution(flat, decimal.Zero, DirectionNone))

	// But confirming zero against a real open position is stale
	fresh := &NettingProposal{NetAmount: decimal.RequireFromString("10.00"), Currency: valueobject.USD, Direction: DirectionPayFromB}
	err := svc.ValidateExecution(fresh, decimal.Zero, DirectionNone)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "STALE_PROPOSAL", domainErr.Code)
}
