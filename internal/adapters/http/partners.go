package http

import (
	"context"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/ports"
)

const partnersPath = "/microinvest/partners"

// Partners searches the partner collection.
func (c *Client) Partners(ctx context.Context, req ports.PartnersRequest) ([]domain.Partner, error) {
	params := query{}
	params.setInt("page", req.Page)
	params.setInt("limit", req.Limit)
	params.set("company", req.Company)
	params.set("mol", req.MOL)
	params.set("phone", req.Phone)
	params.set("tax_no", req.TaxNo)

	return list[domain.Partner](c, ctx, partnersPath, params, "partners")
}
