package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Operation is a sale, purchase or other stock movement.
// PriceIn is only populated for staff users.
type Operation struct {
	ID          int                 `json:"operation_id"`
	Type        *int                `json:"operation_type,omitempty"`
	Name        string              `json:"operation_name,omitempty"`
	Date        Timestamp           `json:"operation_date"`
	Quantity    decimal.NullDecimal `json:"operation_qtty"`
	UserID      *int                `json:"user_id,omitempty"`
	UserName    string              `json:"user_name,omitempty"`
	PartnerID   *int                `json:"partner_id,omitempty"`
	PartnerName string              `json:"partner_name,omitempty"`
	GoodID      *int                `json:"good_id,omitempty"`
	GoodName    string              `json:"good_name,omitempty"`
	PriceOut    decimal.NullDecimal `json:"price_out"`
	PriceIn     decimal.NullDecimal `json:"price_in"`
}

// OperationQuery filters operations by partner, good and operation names
// and an optional date range (either bound may be omitted).
type OperationQuery struct {
	Cursor
	PartnerName   string
	GoodName      string
	OperationName string
	StartDate     Date
	EndDate       Date
}

// Trimmed returns a copy with surrounding whitespace removed from filters.
func (q OperationQuery) Trimmed() OperationQuery {
	q.PartnerName = strings.TrimSpace(q.PartnerName)
	q.GoodName = strings.TrimSpace(q.GoodName)
	q.OperationName = strings.TrimSpace(q.OperationName)
	return q
}

// ValidateRange rejects a start date after the end date.
func (q OperationQuery) ValidateRange() error {
	return validateRange(q.StartDate, q.EndDate)
}

func validateRange(start, end Date) error {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return &ValidationError{
			Field:  "start_date",
			Reason: fmt.Sprintf("start date %s is after end date %s", start, end),
		}
	}
	return nil
}
