package query

import (
	"context"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/pkg/log"
)

// DashboardSource is satisfied by repository.Dashboard.
type DashboardSource interface {
	Validate(q domain.DashboardQuery) error
	Get(ctx context.Context, q domain.DashboardQuery) (domain.DashboardSummary, error)
}

// PartnerSource is satisfied by repository.Partners.
type PartnerSource interface {
	Search(ctx context.Context, q domain.PartnerQuery) ([]domain.Partner, error)
}

// ProductSource is satisfied by repository.Products.
type ProductSource interface {
	Search(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
}

// OperationSource is satisfied by repository.Operations.
type OperationSource interface {
	Search(ctx context.Context, q domain.OperationQuery) ([]domain.Operation, error)
	Get(ctx context.Context, id int) (domain.Operation, error)
}

type (
	DashboardController = Controller[domain.DashboardQuery, domain.DashboardSummary]
	PartnerController   = Controller[domain.PartnerQuery, []domain.Partner]
	ProductController   = Controller[domain.ProductQuery, []domain.Product]
	OperationController = Controller[domain.OperationQuery, []domain.Operation]
	// OperationDetailController fetches one operation by id.
	OperationDetailController = Controller[int, domain.Operation]
)

// NewDashboard validates locally and relies on the request pipeline for
// authorization; it does not require a stored token.
func NewDashboard(src DashboardSource, logger log.Logger) *DashboardController {
	return New(Config[domain.DashboardQuery, domain.DashboardSummary]{
		Name:     "dashboard",
		Fetch:    src.Get,
		Validate: src.Validate,
		IsEmpty:  domain.DashboardSummary.IsEmpty,
		Logger:   logger,
	})
}

func NewPartners(src PartnerSource, tokens TokenResolver, logger log.Logger) *PartnerController {
	return New(Config[domain.PartnerQuery, []domain.Partner]{
		Name:    "partners",
		Fetch:   src.Search,
		IsEmpty: isEmptySlice[domain.Partner],
		Tokens:  tokens,
		Logger:  logger,
	})
}

func NewProducts(src ProductSource, tokens TokenResolver, logger log.Logger) *ProductController {
	return New(Config[domain.ProductQuery, []domain.Product]{
		Name:    "products",
		Fetch:   src.Search,
		IsEmpty: isEmptySlice[domain.Product],
		Tokens:  tokens,
		Logger:  logger,
	})
}

func NewOperations(src OperationSource, tokens TokenResolver, logger log.Logger) *OperationController {
	return New(Config[domain.OperationQuery, []domain.Operation]{
		Name:    "operations",
		Fetch:   src.Search,
		IsEmpty: isEmptySlice[domain.Operation],
		Tokens:  tokens,
		Logger:  logger,
	})
}

func NewOperationDetail(src OperationSource, tokens TokenResolver, logger log.Logger) *OperationDetailController {
	return New(Config[int, domain.Operation]{
		Name:   "operation",
		Fetch:  src.Get,
		Tokens: tokens,
		Logger: logger,
	})
}

func isEmptySlice[T any](s []T) bool { return len(s) == 0 }
