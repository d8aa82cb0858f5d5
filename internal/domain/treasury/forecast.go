package treasury

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DetailSource identifies what produced a forecast detail line
type DetailSource string

const (
	DetailSourceAR         DetailSource = "AR"
	DetailSourceAP         DetailSource = "AP"
	DetailSourceManualFlow DetailSource = "MANUAL"
	DetailSourceAdjustment DetailSource = "ADJUSTMENT"
)

// ForecastDetail is one contributing line of a forecast day. Amounts are
// signed: receivables positive, payables negative, manual items as
// entered. Every detail is traceable to exactly one source record.
type ForecastDetail struct {
	Source       DetailSource    `json:"source"`
	ReferenceID  uuid.UUID       `json:"reference_id"`
	Reference    string          `json:"reference"`
	Counterparty string          `json:"counterparty,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
}

// DailyForecast is the projected cash position for a single calendar day.
// Invariants: ClosingBalance = OpeningBalance + TotalInflow - TotalOutflow,
// and each day's opening balance equals the prior day's closing balance.
type DailyForecast struct {
	Date           time.Time        `json:"date"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	TotalInflow    decimal.Decimal  `json:"total_inflow"`
	TotalOutflow   decimal.Decimal  `json:"total_outflow"`
	NetChange      decimal.Decimal  `json:"net_change"`
	ClosingBalance decimal.Decimal  `json:"closing_balance"`
	Details        []ForecastDetail `json:"details"`
}

// FlowWarning reports a malformed source record that was skipped during
// forecast generation. Warnings ride alongside the result; a single bad
// record never aborts the projection.
type FlowWarning struct {
	RecordID  uuid.UUID `json:"record_id"`
	Reference string    `json:"reference,omitempty"`
	Reason    string    `json:"reason"`
}
