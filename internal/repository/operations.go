package repository

import (
	"context"
	"fmt"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/ports"
)

// Operations searches and fetches operations.
type Operations struct {
	api ports.OperationAPI
}

func NewOperations(api ports.OperationAPI) *Operations {
	return &Operations{api: api}
}

// Search sends both page and the equivalent offset so that either
// pagination style on the backend selects the same rows.
func (r *Operations) Search(ctx context.Context, q domain.OperationQuery) ([]domain.Operation, error) {
	cur, err := q.Cursor.Normalize()
	if err != nil {
		return nil, err
	}
	if err := q.ValidateRange(); err != nil {
		return nil, err
	}
	q = q.Trimmed()
	return r.api.Operations(ctx, ports.OperationsRequest{
		Page:        cur.Page,
		Limit:       cur.Limit,
		Offset:      cur.Offset(),
		PartnerName: q.PartnerName,
		GoodName:    q.GoodName,
		OperName:    q.OperationName,
		StartDate:   q.StartDate.String(),
		EndDate:     q.EndDate.String(),
	})
}

// Get fetches one operation.
func (r *Operations) Get(ctx context.Context, id int) (domain.Operation, error) {
	if id <= 0 {
		return domain.Operation{}, &domain.ValidationError{Field: "id", Reason: fmt.Sprintf("must be positive, got %d", id)}
	}
	return r.api.Operation(ctx, id)
}
