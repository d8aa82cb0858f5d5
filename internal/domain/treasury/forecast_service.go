package treasury

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
)

// MaxForecastHorizonDays bounds the forecast window. Anything beyond a
// year of daily projections is noise given how the inputs are scheduled.
const MaxForecastHorizonDays = 365

// ForecastInput carries the pre-fetched data a forecast run needs. The
// application layer is responsible for fetching flows and adjustments
// whose dates fall inside [StartDate, StartDate+HorizonDays); the domain
// service re-checks day membership itself, so over-fetching is harmless.
type ForecastInput struct {
	StartDate   time.Time
	HorizonDays int
	Scenario    Scenario
	Accounts    []BankAccount
	Flows       []ScheduledFlow
	Adjustments []ManualAdjustment
}

// ForecastService is a domain service that rolls scheduled flows and
// manual adjustments into a day-by-day cash balance projection. It is a
// pure computation over its input: no hidden state, deterministic,
// recomputed from current data on every call.
type ForecastService struct{}

// NewForecastService creates a new forecast service
func NewForecastService() *ForecastService {
	return &ForecastService{}
}

// Generate produces one DailyForecast per day of the horizon. Day 0 opens
// at the consolidated balance of all active accounts; each later day
// opens at the prior day's closing balance. Flows due exactly on
// StartDate belong to day 0; flows due on StartDate+HorizonDays fall
// outside the window. Malformed flow records are skipped and reported as
// warnings rather than failing the run.
func (s *ForecastService) Generate(input ForecastInput) ([]DailyForecast, []FlowWarning, error) {
	if input.HorizonDays < 1 {
		return nil, nil, shared.NewDomainError("INVALID_HORIZON", "Forecast horizon must be at least 1 day")
	}
	if input.HorizonDays > MaxForecastHorizonDays {
		return nil, nil, shared.NewDomainError("INVALID_HORIZON", "Forecast horizon exceeds the supported maximum")
	}
	if !input.Scenario.Type.IsValid() {
		return nil, nil, shared.NewDomainError("INVALID_SCENARIO", "Unknown forecast scenario")
	}

	start := NormalizeDate(input.StartDate)
	warnings := make([]FlowWarning, 0)

	flows := make([]ScheduledFlow, 0, len(input.Flows))
	for _, f := range input.Flows {
		if !f.IsOpen() {
			continue
		}
		if f.DueDate == nil {
			warnings = append(warnings, FlowWarning{
				RecordID:  f.ID,
				Reference: f.Reference,
				Reason:    "missing due date",
			})
			continue
		}
		if !f.Amount.IsPositive() {
			warnings = append(warnings, FlowWarning{
				RecordID:  f.ID,
				Reference: f.Reference,
				Reason:    "non-positive amount",
			})
			continue
		}
		flows = append(flows, f)
	}

	opening := decimal.Zero
	for _, acct := range input.Accounts {
		if acct.Active {
			opening = opening.Add(acct.CurrentBalance)
		}
	}

	forecasts := make([]DailyForecast, 0, input.HorizonDays)
	for i := 0; i < input.HorizonDays; i++ {
		day := start.AddDate(0, 0, i)

		inflow := decimal.Zero
		outflow := decimal.Zero
		details := make([]ForecastDetail, 0)

		for _, f := range flows {
			if !f.DueOn(day) {
				continue
			}
			amount := f.Amount
			source := DetailSourceManualFlow
			switch f.Source {
			case FlowSourceAR:
				amount = amount.Mul(input.Scenario.InflowMultiplier)
				source = DetailSourceAR
			case FlowSourceAP:
				amount = amount.Mul(input.Scenario.OutflowMultiplier)
				source = DetailSourceAP
			}
			if f.Direction == FlowDirectionInflow {
				inflow = inflow.Add(amount)
				details = append(details, ForecastDetail{
					Source:       source,
					ReferenceID:  f.ID,
					Reference:    f.Reference,
					Counterparty: f.CounterpartyName,
					Amount:       amount,
				})
			} else {
				outflow = outflow.Add(amount)
				details = append(details, ForecastDetail{
					Source:       source,
					ReferenceID:  f.ID,
					Reference:    f.Reference,
					Counterparty: f.CounterpartyName,
					Amount:       amount.Neg(),
				})
			}
		}

		for _, adj := range input.Adjustments {
			if !adj.AppliesOn(day) {
				continue
			}
			if adj.IsInflow() {
				inflow = inflow.Add(adj.Amount)
			} else {
				outflow = outflow.Add(adj.Amount.Abs())
			}
			details = append(details, ForecastDetail{
				Source:      DetailSourceAdjustment,
				ReferenceID: adj.ID,
				Reference:   adj.Description,
				Amount:      adj.Amount,
			})
		}

		netChange := inflow.Sub(outflow)
		closing := opening.Add(netChange)

		forecasts = append(forecasts, DailyForecast{
			Date:           day,
			OpeningBalance: opening,
			TotalInflow:    inflow,
			TotalOutflow:   outflow,
			NetChange:      netChange,
			ClosingBalance: closing,
			Details:        details,
		})

		opening = closing
	}

	return forecasts, warnings, nil
}
