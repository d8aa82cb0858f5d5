package treasury

import (
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
)

// ScenarioType names a forecast scenario
type ScenarioType string

const (
	ScenarioBaseline    ScenarioType = "BASELINE"
	ScenarioOptimistic  ScenarioType = "OPTIMISTIC"
	ScenarioPessimistic ScenarioType = "PESSIMISTIC"
)

// IsValid checks if the scenario type is known
func (s ScenarioType) IsValid() bool {
	switch s {
	case ScenarioBaseline, ScenarioOptimistic, ScenarioPessimistic:
		return true
	}
	return false
}

// String returns the string representation of ScenarioType
func (s ScenarioType) String() string {
	return string(s)
}

// Scenario is a pair of multipliers applied to projected AP/AR flows to
// model alternative cash outcomes. Manual adjustments are never scaled.
type Scenario struct {
	Type              ScenarioType    `json:"type"`
	InflowMultiplier  decimal.Decimal `json:"inflow_multiplier"`
	OutflowMultiplier decimal.Decimal `json:"outflow_multiplier"`
}

var scenarios = map[ScenarioType]Scenario{
	ScenarioBaseline: {
		Type:              ScenarioBaseline,
		InflowMultiplier:  decimal.NewFromInt(1),
		OutflowMultiplier: decimal.NewFromInt(1),
	},
	ScenarioOptimistic: {
		Type:              ScenarioOptimistic,
		InflowMultiplier:  decimal.RequireFromString("1.1"),
		OutflowMultiplier: decimal.RequireFromString("0.95"),
	},
	ScenarioPessimistic: {
		Type:              ScenarioPessimistic,
		InflowMultiplier:  decimal.RequireFromString("0.9"),
		OutflowMultiplier: decimal.RequireFromString("1.1"),
	},
}

// ScenarioFor resolves a scenario type to its multiplier pair.
// Unknown types are rejected before any data access happens.
func ScenarioFor(t ScenarioType) (Scenario, error) {
	s, ok := scenarios[t]
	if !ok {
		return Scenario{}, shared.NewDomainError("INVALID_SCENARIO", "Unknown forecast scenario: "+string(t))
	}
	return s, nil
}

// AllScenarios returns the catalog of named scenarios in a stable order
func AllScenarios() []Scenario {
	return []Scenario{
		scenarios[ScenarioBaseline],
		scenarios[ScenarioOptimistic],
		scenarios[ScenarioPessimistic],
	}
}
