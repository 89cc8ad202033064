package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/ports"
)

const operationsPath = "/microinvest/operations"

// Operations searches the operation log.
func (c *Client) Operations(ctx context.Context, req ports.OperationsRequest) ([]domain.Operation, error) {
	params := query{}
	params.setInt("page", req.Page)
	params.setInt("limit", req.Limit)
	params.setInt("offset", req.Offset)
	params.set("partner_name", req.PartnerName)
	params.set("good_name", req.GoodName)
	params.set("oper_name", req.OperName)
	params.set("start_date", req.StartDate)
	params.set("end_date", req.EndDate)

	return list[domain.Operation](c, ctx, operationsPath, params, "operations")
}

// Operation fetches a single operation by id.
func (c *Client) Operation(ctx context.Context, id int) (domain.Operation, error) {
	var op domain.Operation
	req := c.r.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id))
	if err := c.do(req, http.MethodGet, operationsPath+"/{id}", &op); err != nil {
		return domain.Operation{}, err
	}
	return op, nil
}
