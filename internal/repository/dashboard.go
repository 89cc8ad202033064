package repository

import (
	"context"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/ports"
)

// Dashboard fetches the dashboard aggregate.
type Dashboard struct {
	api ports.DashboardAPI
}

func NewDashboard(api ports.DashboardAPI) *Dashboard {
	return &Dashboard{api: api}
}

// Validate checks period/range exclusivity without I/O.
func (r *Dashboard) Validate(q domain.DashboardQuery) error {
	return q.Validate()
}

// Get validates q, then fetches the aggregate. A date range is sent as
// period=custom with both dates.
func (r *Dashboard) Get(ctx context.Context, q domain.DashboardQuery) (domain.DashboardSummary, error) {
	if err := q.Validate(); err != nil {
		return domain.DashboardSummary{}, err
	}
	return r.api.Dashboard(ctx, dashboardRequest(q))
}

func dashboardRequest(q domain.DashboardQuery) ports.DashboardRequest {
	if q.HasRange() {
		return ports.DashboardRequest{
			Period:    string(domain.PeriodCustom),
			StartDate: q.StartDate.String(),
			EndDate:   q.EndDate.String(),
		}
	}
	return ports.DashboardRequest{Period: string(q.Period)}
}
