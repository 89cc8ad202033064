package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bft-labs/distclient/internal/domain"
)

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestPartnersTable(t *testing.T) {
	tbl := PartnersTable([]domain.Partner{
		{ID: 1, Company: "Acme", TaxNo: "BG123", Discount: dec("2.5")},
		{ID: 2, Company: "Globex"},
	})

	require.Len(t, tbl.Rows, 2)
	rows := tbl.Strings()
	assert.Equal(t, "Acme", rows[0][2])
	assert.Equal(t, "2.5", rows[0][8])
	assert.Equal(t, "", rows[1][8], "missing discount renders empty")
}

func TestProductsTable_PriceInColumn(t *testing.T) {
	without := ProductsTable([]domain.Product{{ID: 1, PriceOut: dec("3")}})
	assert.NotContains(t, without.Header, "Price In")

	with := ProductsTable([]domain.Product{{ID: 1, PriceOut: dec("3"), PriceIn: dec("2")}, {ID: 2}})
	assert.Contains(t, with.Header, "Price In")
	for _, row := range with.Rows {
		assert.Len(t, row, len(with.Header))
	}
}

func TestDashboardTables(t *testing.T) {
	tables := DashboardTables(domain.DashboardSummary{
		TotalSales:   3,
		TotalRevenue: decimal.RequireFromString("99.90"),
		TopPartner:   &domain.TopEntity{Name: "Acme", Value: decimal.RequireFromString("50")},
		RecentOperations: []domain.Operation{
			{ID: 7, Date: domain.Timestamp{Time: time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)}},
		},
	})

	require.Len(t, tables, 2)
	summary := tables[0].Strings()
	assert.Equal(t, []string{"Total sales", "3"}, summary[0])
	assert.Equal(t, []string{"Top partner", "Acme (50)"}, summary[3])
	assert.Equal(t, "2024-01-02 10:30", tables[1].Strings()[0][1])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf,
		PartnersTable([]domain.Partner{{ID: 11, Company: "Acme", Discount: dec("1.5")}}),
		OperationsTable([]domain.Operation{{ID: 5, Name: "Sale", Quantity: dec("2")}}),
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Partners", "Operations"}, f.GetSheetList())

	rows, err := f.GetRows("Partners")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Company", rows[0][2])
	assert.Equal(t, "11", rows[1][0])
	assert.Equal(t, "Acme", rows[1][2])
	assert.Equal(t, "1.5", rows[1][8])

	ops, err := f.GetRows("Operations")
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "Sale", ops[1][2])
}

func TestWriteXLSX_NoTables(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteXLSX(&buf))
}
