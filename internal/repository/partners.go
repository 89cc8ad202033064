package repository

import (
	"context"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/ports"
)

// Partners searches partners.
type Partners struct {
	api ports.PartnerAPI
}

func NewPartners(api ports.PartnerAPI) *Partners {
	return &Partners{api: api}
}

func (r *Partners) Search(ctx context.Context, q domain.PartnerQuery) ([]domain.Partner, error) {
	cur, err := q.Cursor.Normalize()
	if err != nil {
		return nil, err
	}
	q = q.Trimmed()
	return r.api.Partners(ctx, ports.PartnersRequest{
		Page:    cur.Page,
		Limit:   cur.Limit,
		Company: q.Company,
		MOL:     q.MOL,
		Phone:   q.Phone,
		TaxNo:   q.TaxNo,
	})
}
