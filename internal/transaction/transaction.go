package transaction

import "github.com/shopspring/decimal"

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// RecurringPeriod is how often a recurring transaction repeats.
type RecurringPeriod string

const (
	PeriodNone    RecurringPeriod = "none"
	PeriodWeekly  RecurringPeriod = "weekly"
	PeriodMonthly RecurringPeriod = "monthly"
	PeriodYearly  RecurringPeriod = "yearly"
)

// Periods lists the recurring periods in display order.
var Periods = []RecurringPeriod{PeriodNone, PeriodWeekly, PeriodMonthly, PeriodYearly}

// Categories is the fixed set offered before any suggestion.
var Categories = []string{"Sales", "Utilities", "Transport", "Other"}

// DefaultCategory is preselected on a new draft.
const DefaultCategory = "Sales"

// MaxTagsLength is the longest raw tag input accepted, in characters.
const MaxTagsLength = 200

// Field names as used by SetField, FieldErrors and the wire format.
const (
	FieldType            = "type"
	FieldCategory        = "category"
	FieldAmount          = "amount"
	FieldDescription     = "description"
	FieldTags            = "tags"
	FieldIsRecurring     = "isRecurring"
	FieldRecurringPeriod = "recurringPeriod"
)

// Payload is the JSON body sent to POST /api/transactions.
type Payload struct {
	Type            Type            `json:"type"`
	Category        string          `json:"category"`
	Amount          float64         `json:"amount"`
	Description     string          `json:"description"`
	Tags            []string        `json:"tags"`
	IsRecurring     bool            `json:"isRecurring"`
	RecurringPeriod RecurringPeriod `json:"recurringPeriod"`
}

// Record is a transaction as returned by the backend. The amount may arrive
// as a JSON number or string.
type Record struct {
	ID              string          `json:"_id,omitempty"`
	Type            Type            `json:"type"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Tags            []string        `json:"tags"`
	IsRecurring     bool            `json:"isRecurring"`
	RecurringPeriod RecurringPeriod `json:"recurringPeriod"`
}

// CategoryOptions returns the fixed categories followed by any suggestions
// not already among them.
func CategoryOptions(suggested []string) []string {
	opts := make([]string, 0, len(Categories)+len(suggested))
	opts = append(opts, Categories...)

	seen := make(map[string]bool, len(opts))
	for _, c := range opts {
		seen[c] = true
	}

	for _, c := range suggested {
		if seen[c] {
			continue
		}

		seen[c] = true
		opts = append(opts, c)
	}

	return opts
}
