package http

import (
	"context"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/ports"
)

const dashboardPath = "/microinvest/dashboard"

// Dashboard fetches the aggregate for the requested window.
func (c *Client) Dashboard(ctx context.Context, req ports.DashboardRequest) (domain.DashboardSummary, error) {
	params := query{}
	params.set("period", req.Period)
	params.set("start_date", req.StartDate)
	params.set("end_date", req.EndDate)

	var s domain.DashboardSummary
	if err := c.get(ctx, dashboardPath, params, &s); err != nil {
		return domain.DashboardSummary{}, err
	}
	return s, nil
}
