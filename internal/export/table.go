// Package export renders query results as tables, for the terminal and
// for .xlsx files.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bft-labs/distclient/internal/domain"
)

// Table is one sheet of results. Cells hold strings, ints, decimals or
// times; nil renders empty.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Strings renders every cell as text.
func (t Table) Strings() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = text(v)
		}
		out = append(out, line)
	}
	return out
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("2006-01-02 15:04")
	default:
		return fmt.Sprint(x)
	}
}

func nullDecimal(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal
}

func intPtr(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// PartnersTable lists partners.
func PartnersTable(rows []domain.Partner) Table {
	t := Table{
		Name:   "Partners",
		Header: []string{"ID", "Code", "Company", "MOL", "City", "Phone", "Email", "Tax No", "Discount"},
	}
	for _, p := range rows {
		t.Rows = append(t.Rows, []any{p.ID, p.Code, p.Company, p.MOL, p.City, p.Phone, p.Email, p.TaxNo, nullDecimal(p.Discount)})
	}
	return t
}

// ProductsTable lists products. The purchase price column is present only
// when at least one row carries it.
func ProductsTable(rows []domain.Product) Table {
	withIn := false
	for _, p := range rows {
		if p.PriceIn.Valid {
			withIn = true
			break
		}
	}

	t := Table{
		Name:   "Products",
		Header: []string{"ID", "Code", "Barcode", "Name", "Measure", "Price Out"},
	}
	if withIn {
		t.Header = append(t.Header, "Price In")
	}
	for _, p := range rows {
		row := []any{p.ID, p.Code, p.Barcode, p.Name, p.Measure, nullDecimal(p.PriceOut)}
		if withIn {
			row = append(row, nullDecimal(p.PriceIn))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// OperationsTable lists operations.
func OperationsTable(rows []domain.Operation) Table {
	t := Table{
		Name:   "Operations",
		Header: []string{"ID", "Date", "Operation", "Partner", "Good", "Qty", "Price Out", "User"},
	}
	for _, o := range rows {
		t.Rows = append(t.Rows, []any{
			o.ID, o.Date.Time, o.Name, o.PartnerName, o.GoodName,
			nullDecimal(o.Quantity), nullDecimal(o.PriceOut), o.UserName,
		})
	}
	return t
}

// OperationDetailTable renders one operation as field/value pairs.
func OperationDetailTable(o domain.Operation) Table {
	return Table{
		Name:   "Operation",
		Header: []string{"Field", "Value"},
		Rows: [][]any{
			{"ID", o.ID},
			{"Type", intPtr(o.Type)},
			{"Operation", o.Name},
			{"Date", o.Date.Time},
			{"Partner", o.PartnerName},
			{"Good", o.GoodName},
			{"Quantity", nullDecimal(o.Quantity)},
			{"Price Out", nullDecimal(o.PriceOut)},
			{"Price In", nullDecimal(o.PriceIn)},
			{"User", o.UserName},
		},
	}
}

// DashboardTables renders the summary and its recent operations.
func DashboardTables(s domain.DashboardSummary) []Table {
	summary := Table{
		Name:   "Dashboard",
		Header: []string{"Metric", "Value"},
		Rows: [][]any{
			{"Total sales", s.TotalSales},
			{"Total quantity", s.TotalQuantity},
			{"Total revenue", s.TotalRevenue},
		},
	}
	if s.TopPartner != nil {
		summary.Rows = append(summary.Rows, []any{"Top partner", s.TopPartner.Name + " (" + s.TopPartner.Value.String() + ")"})
	}
	if s.TopGood != nil {
		summary.Rows = append(summary.Rows, []any{"Top good", s.TopGood.Name + " (" + s.TopGood.Value.String() + ")"})
	}

	recent := OperationsTable(s.RecentOperations)
	recent.Name = "Recent Operations"
	return []Table{summary, recent}
}
