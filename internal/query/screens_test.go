package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bft-labs/distclient/internal/domain"
)

type fakeDashboard struct {
	summary domain.DashboardSummary
	calls   int
}

func (f *fakeDashboard) Validate(q domain.DashboardQuery) error { return q.Validate() }

func (f *fakeDashboard) Get(ctx context.Context, q domain.DashboardQuery) (domain.DashboardSummary, error) {
	f.calls++
	return f.summary, nil
}

type fakePartners struct{ rows []domain.Partner }

func (f *fakePartners) Search(ctx context.Context, q domain.PartnerQuery) ([]domain.Partner, error) {
	return f.rows, nil
}

type fakeOperations struct{}

func (fakeOperations) Search(ctx context.Context, q domain.OperationQuery) ([]domain.Operation, error) {
	return nil, nil
}

func (fakeOperations) Get(ctx context.Context, id int) (domain.Operation, error) {
	return domain.Operation{ID: id}, nil
}

func TestDashboardController(t *testing.T) {
	src := &fakeDashboard{}
	c := NewDashboard(src, nil)

	st := c.Execute(context.Background(), domain.DashboardQuery{Period: domain.PeriodWeek, StartDate: domain.NewDate(2024, 1, 1)})
	assert.Equal(t, StatusError, st.Status)
	assert.Equal(t, 0, src.calls)

	st = c.Execute(context.Background(), domain.DashboardQuery{Period: domain.PeriodWeek})
	assert.Equal(t, StatusEmpty, st.Status)

	src.summary = domain.DashboardSummary{TotalSales: 4}
	st = c.Execute(context.Background(), domain.DashboardQuery{Period: domain.PeriodWeek})
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Equal(t, 4, st.Data.TotalSales)
}

func TestPartnerController_RequiresToken(t *testing.T) {
	tok := &tokens{err: &domain.AuthError{Reason: domain.TokenMissing}}
	c := NewPartners(&fakePartners{rows: []domain.Partner{{ID: 1}}}, tok, nil)

	st := c.Execute(context.Background(), domain.PartnerQuery{})
	assert.Equal(t, StatusError, st.Status)

	tok.err = nil
	st = c.Execute(context.Background(), domain.PartnerQuery{})
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Len(t, st.Data, 1)
}

func TestOperationControllers(t *testing.T) {
	tok := &tokens{}

	list := NewOperations(fakeOperations{}, tok, nil)
	assert.Equal(t, StatusEmpty, list.Execute(context.Background(), domain.OperationQuery{}).Status)

	detail := NewOperationDetail(fakeOperations{}, tok, nil)
	st := detail.Execute(context.Background(), 5)
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Equal(t, 5, st.Data.ID)
}
