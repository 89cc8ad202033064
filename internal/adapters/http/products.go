package http

import (
	"context"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/ports"
)

const productsPath = "/microinvest/products"

// Products searches the product collection.
func (c *Client) Products(ctx context.Context, req ports.ProductsRequest) ([]domain.Product, error) {
	params := query{}
	params.set("name", req.Name)
	params.set("code", req.Code)
	params.set("bar_code", req.Barcode)
	params.setInt("page", req.Page)
	params.setInt("page_size", req.PageSize)

	return list[domain.Product](c, ctx, productsPath, params, "products")
}
