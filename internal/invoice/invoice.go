package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Status is the settlement state of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusSettled Status = "settled"
)

// Statuses lists the statuses in display order.
var Statuses = []Status{StatusPending, StatusSettled}

// Field names as used by SetField, FieldErrors and the wire format.
const (
	FieldCustomerName = "customer_name"
	FieldDescription  = "description"
	FieldAmount       = "amount"
	FieldStatus       = "status"
	FieldDueDate      = "due_date"
	FieldSettledDate  = "settled_date"
)

// Fields lists every field in the order edits must be applied: status comes
// before settled_date because a settled date is only kept on settled invoices.
var Fields = []string{
	FieldCustomerName,
	FieldDescription,
	FieldAmount,
	FieldStatus,
	FieldDueDate,
	FieldSettledDate,
}

// Payload is the JSON body of POST /api/invoices and PUT /api/invoices/{id}.
// Optional dates are sent as null when absent.
type Payload struct {
	CustomerName string  `json:"customer_name"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Status       Status  `json:"status"`
	DueDate      *string `json:"due_date"`
	SettledDate  *string `json:"settled_date"`
}

// Record is an invoice as returned by GET /api/invoices/{id}. Dates are
// ISO-8601 strings, possibly with a time component; the amount may be a JSON
// number or string.
type Record struct {
	ID           string          `json:"_id,omitempty"`
	CustomerName string          `json:"customer_name"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Status       Status          `json:"status"`
	DueDate      *string         `json:"due_date"`
	SettledDate  *string         `json:"settled_date"`
}

// DateOnly drops any time component from an ISO-8601 date or timestamp,
// keeping the calendar date.
func DateOnly(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return s[:i]
	}

	return s
}
