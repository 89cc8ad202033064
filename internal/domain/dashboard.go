package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Period is a named dashboard reporting window.
type Period string

const (
	PeriodWeek    Period = "7d"
	PeriodQuarter Period = "3m"
	PeriodYear    Period = "1y"
	// PeriodCustom requires an explicit start and end date.
	PeriodCustom Period = "custom"
)

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodWeek, PeriodQuarter, PeriodYear, PeriodCustom:
		return true
	}
	return false
}

// DashboardQuery selects the window of the dashboard aggregate: either a
// named period or an explicit date range, never both.
type DashboardQuery struct {
	Period    Period
	StartDate Date
	EndDate   Date
}

// HasRange reports whether either range bound is set.
func (q DashboardQuery) HasRange() bool {
	return !q.StartDate.IsZero() || !q.EndDate.IsZero()
}

// Validate enforces period/range exclusivity.
func (q DashboardQuery) Validate() error {
	switch {
	case q.Period != "" && !q.Period.Valid():
		return &ValidationError{Field: "period", Reason: fmt.Sprintf("unknown period %q", q.Period)}
	case q.Period != "" && q.Period != PeriodCustom && q.HasRange():
		return &ValidationError{Field: "period", Reason: "a named period cannot be combined with a date range"}
	case (q.Period == "" || q.Period == PeriodCustom) && (q.StartDate.IsZero() || q.EndDate.IsZero()):
		return &ValidationError{Field: "period", Reason: "either a period or both start and end dates are required"}
	}
	return validateRange(q.StartDate, q.EndDate)
}

// TopEntity is the best-performing partner or good of the window.
type TopEntity struct {
	ID    *int            `json:"id,omitempty"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// DashboardSummary is the aggregate shown on the dashboard.
type DashboardSummary struct {
	TotalSales       int             `json:"total_sales"`
	TotalQuantity    decimal.Decimal `json:"total_quantity"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TopPartner       *TopEntity      `json:"top_partner"`
	TopGood          *TopEntity      `json:"top_good"`
	RecentOperations []Operation     `json:"recent_operations"`
}

// IsEmpty reports a window with no activity at all.
func (s DashboardSummary) IsEmpty() bool {
	return s.TotalSales == 0 &&
		len(s.RecentOperations) == 0 &&
		s.TopPartner == nil &&
		s.TopGood == nil
}
