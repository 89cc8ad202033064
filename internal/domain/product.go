package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a goods row as returned by the backend.
// PriceIn is only populated for staff users.
type Product struct {
	ID          int                 `json:"product_id"`
	Code        string              `json:"code,omitempty"`
	Barcode     string              `json:"bar_code,omitempty"`
	Catalog     string              `json:"catalog,omitempty"`
	Name        string              `json:"name,omitempty"`
	Measure     string              `json:"measure,omitempty"`
	Ratio       decimal.NullDecimal `json:"ratio"`
	PriceIn     decimal.NullDecimal `json:"price_in"`
	PriceOut    decimal.NullDecimal `json:"price_out"`
	MinQtty     decimal.NullDecimal `json:"min_qtty"`
	NormalQtty  decimal.NullDecimal `json:"normal_qtty"`
	Description string              `json:"description,omitempty"`
	Type        *int                `json:"type,omitempty"`
	IsRecipe    *int                `json:"is_recipe,omitempty"`
	TaxGroup    *int                `json:"tax_group,omitempty"`
	IsVeryUsed  *int                `json:"is_very_used,omitempty"`
	GroupID     *int                `json:"group_id,omitempty"`
	Deleted     *int                `json:"deleted,omitempty"`
}

// ProductQuery filters the product collection by name, code or barcode.
type ProductQuery struct {
	Cursor
	Name    string
	Code    string
	Barcode string
}

// Trimmed returns a copy with surrounding whitespace removed from filters.
func (q ProductQuery) Trimmed() ProductQuery {
	q.Name = strings.TrimSpace(q.Name)
	q.Code = strings.TrimSpace(q.Code)
	q.Barcode = strings.TrimSpace(q.Barcode)
	return q
}
