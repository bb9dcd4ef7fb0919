package stats

import "time"

// Totals summarizes earnings across every counted run and sale.
type Totals struct {
	GrossWS    float64 `json:"gross_ws"`
	NetWS      float64 `json:"net_ws"`
	TotalSales int     `json:"total_sales"`
	TotalRuns  int     `json:"total_runs"`
}

// MonthlyEarning buckets earnings by calendar month (YYYY-MM).
type MonthlyEarning struct {
	Month      string  `json:"month"`
	GrossWS    float64 `json:"gross_ws"`
	NetWS      float64 `json:"net_ws"`
	SalesCount int     `json:"sales_count"`
	RunsCount  int     `json:"runs_count"`
}

// RunEarning is one run's line on the earnings chart, with a running
// cumulative net across the date-sorted run list.
type RunEarning struct {
	RunID           int64     `json:"run_id"`
	RunNumber       int64     `json:"run_number"`
	Date            time.Time `json:"date"`
	EntryFeeWS      float64   `json:"entry_fee_ws"`
	GrossWS         float64   `json:"gross_ws"`
	NetWS           float64   `json:"net_ws"`
	SalesCount      int       `json:"sales_count"`
	DropsCount      int       `json:"drops_count"`
	CumulativeNetWS float64   `json:"cumulative_net_ws"`
}

// PlayerRef identifies the player a profile is scoped to.
type PlayerRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProfileStats is the earnings profile, either global or scoped to one
// player's shares.
type ProfileStats struct {
	Player          *PlayerRef       `json:"player,omitempty"`
	Totals          Totals           `json:"totals"`
	MonthlyEarnings []MonthlyEarning `json:"monthly_earnings"`
	RunEarnings     []RunEarning     `json:"run_earnings"`
}
