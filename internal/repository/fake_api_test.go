package repository

import (
	"context"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/ports"
)

// fakeAPI records every request and counts calls.
type fakeAPI struct {
	calls int

	dashboardReq  ports.DashboardRequest
	partnersReq   ports.PartnersRequest
	productsReq   ports.ProductsRequest
	operationsReq ports.OperationsRequest
	operationID   int

	summary domain.DashboardSummary
	err     error
}

func (f *fakeAPI) Dashboard(ctx context.Context, req ports.DashboardRequest) (domain.DashboardSummary, error) {
	f.calls++
	f.dashboardReq = req
	return f.summary, f.err
}

func (f *fakeAPI) Partners(ctx context.Context, req ports.PartnersRequest) ([]domain.Partner, error) {
	f.calls++
	f.partnersReq = req
	return []domain.Partner{{ID: 1}}, f.err
}

func (f *fakeAPI) Products(ctx context.Context, req ports.ProductsRequest) ([]domain.Product, error) {
	f.calls++
	f.productsReq = req
	return []domain.Product{{ID: 1}}, f.err
}

func (f *fakeAPI) Operations(ctx context.Context, req ports.OperationsRequest) ([]domain.Operation, error) {
	f.calls++
	f.operationsReq = req
	return []domain.Operation{{ID: 1}}, f.err
}

func (f *fakeAPI) Operation(ctx context.Context, id int) (domain.Operation, error) {
	f.calls++
	f.operationID = id
	return domain.Operation{ID: id}, f.err
}
