package ports

import (
	"context"

	"github.com/bft-labs/distclient/internal/domain"
)

// AuthAPI covers the /auth endpoints.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token. It is sent without
	// an Authorization header.
	Login(ctx context.Context, creds domain.Credentials) (domain.Token, error)

	// Me returns the account behind the current token.
	Me(ctx context.Context) (domain.User, error)

	// Logout revokes the current token on the server.
	Logout(ctx context.Context) error
}

// DashboardRequest is the wire form of a dashboard query.
// Blank fields are omitted from the query string.
type DashboardRequest struct {
	Period    string
	StartDate string
	EndDate   string
}

// DashboardAPI covers GET /microinvest/dashboard.
type DashboardAPI interface {
	Dashboard(ctx context.Context, req DashboardRequest) (domain.DashboardSummary, error)
}

// PartnersRequest is the wire form of a partner search.
type PartnersRequest struct {
	Page    int
	Limit   int
	Company string
	MOL     string
	Phone   string
	TaxNo   string
}

// PartnerAPI covers GET /microinvest/partners.
type PartnerAPI interface {
	Partners(ctx context.Context, req PartnersRequest) ([]domain.Partner, error)
}

// ProductsRequest is the wire form of a product search.
type ProductsRequest struct {
	Name     string
	Code     string
	Barcode  string
	Page     int
	PageSize int
}

// ProductAPI covers GET /microinvest/products.
type ProductAPI interface {
	Products(ctx context.Context, req ProductsRequest) ([]domain.Product, error)
}

// OperationsRequest is the wire form of an operation search.
type OperationsRequest struct {
	Page        int
	Limit       int
	Offset      int
	PartnerName string
	GoodName    string
	OperName    string
	StartDate   string
	EndDate     string
}

// OperationAPI covers GET /microinvest/operations and /microinvest/operations/{id}.
type OperationAPI interface {
	Operations(ctx context.Context, req OperationsRequest) ([]domain.Operation, error)
	Operation(ctx context.Context, id int) (domain.Operation, error)
}
