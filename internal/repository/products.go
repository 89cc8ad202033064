package repository

import (
	"context"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/ports"
)

// Products searches products.
type Products struct {
	api ports.ProductAPI
}

func NewProducts(api ports.ProductAPI) *Products {
	return &Products{api: api}
}

func (r *Products) Search(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	cur, err := q.Cursor.Normalize()
	if err != nil {
		return nil, err
	}
	q = q.Trimmed()
	return r.api.Products(ctx, ports.ProductsRequest{
		Name:     q.Name,
		Code:     q.Code,
		Barcode:  q.Barcode,
		Page:     cur.Page,
		PageSize: cur.Limit,
	})
}
