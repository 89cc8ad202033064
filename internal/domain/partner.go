package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Partner is a customer or supplier row as returned by the backend.
type Partner struct {
	ID          int                 `json:"partner_id"`
	Code        string              `json:"partner_code,omitempty"`
	Company     string              `json:"company,omitempty"`
	MOL         string              `json:"mol,omitempty"`
	City        string              `json:"city,omitempty"`
	Address     string              `json:"address,omitempty"`
	Phone       string              `json:"phone,omitempty"`
	Fax         string              `json:"fax,omitempty"`
	Email       string              `json:"email,omitempty"`
	TaxNo       string              `json:"tax_no,omitempty"`
	Bulstat     string              `json:"bulstat,omitempty"`
	BankName    string              `json:"bank_name,omitempty"`
	BankCode    string              `json:"bank_code,omitempty"`
	BankAcct    string              `json:"bank_acct,omitempty"`
	BankVATName string              `json:"bank_vat_name,omitempty"`
	BankVATCode string              `json:"bank_vat_code,omitempty"`
	BankVATAcct string              `json:"bank_vat_acct,omitempty"`
	PriceGroup  *int                `json:"price_group,omitempty"`
	Discount    decimal.NullDecimal `json:"discount"`
	Type        *int                `json:"type,omitempty"`
	IsVeryUsed  *int                `json:"is_very_used,omitempty"`
	UserID      *int                `json:"user_id,omitempty"`
	GroupID     *int                `json:"group_id,omitempty"`
	Deleted     *int                `json:"deleted,omitempty"`
	CardNumber  string              `json:"card_number,omitempty"`
	Note        string              `json:"note,omitempty"`
	PaymentDays *int                `json:"payment_days,omitempty"`
}

// PartnerQuery filters the partner collection. Blank fields are not sent.
type PartnerQuery struct {
	Cursor
	Company string
	MOL     string
	Phone   string
	TaxNo   string
}

// Trimmed returns a copy with surrounding whitespace removed from filters.
func (q PartnerQuery) Trimmed() PartnerQuery {
	q.Company = strings.TrimSpace(q.Company)
	q.MOL = strings.TrimSpace(q.MOL)
	q.Phone = strings.TrimSpace(q.Phone)
	q.TaxNo = strings.TrimSpace(q.TaxNo)
	return q
}
