package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ficore/internal/form"
	"github.com/MrJamesThe3rd/ficore/internal/i18n"
)

// isoMillis matches the timestamp format browsers produce for "now".
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Draft is an invoice being entered. Amount holds the raw input text and the
// dates are YYYY-MM-DD strings, empty when unset.
type Draft struct {
	CustomerName string
	Description  string
	Amount       string
	Status       Status
	DueDate      string
	SettledDate  string
}

// NewDraft returns an empty pending draft.
func NewDraft() Draft {
	return Draft{Status: StatusPending}
}

// DraftFromRecord seeds a draft from a fetched invoice, truncating dates to
// the calendar date.
func DraftFromRecord(rec Record) Draft {
	d := NewDraft()
	d.SetCustomerName(rec.CustomerName)
	d.SetDescription(rec.Description)
	d.SetAmount(rec.Amount.String())

	if rec.Status != "" {
		d.SetStatus(rec.Status)
	}

	if rec.DueDate != nil {
		d.SetDueDate(*rec.DueDate)
	}

	if rec.SettledDate != nil {
		d.SetSettledDate(*rec.SettledDate)
	}

	return d
}

func (d *Draft) SetCustomerName(name string) {
	d.CustomerName = name
}

func (d *Draft) SetDescription(desc string) {
	d.Description = desc
}

func (d *Draft) SetAmount(amount string) {
	d.Amount = amount
}

// SetStatus changes the status. Leaving settled clears the settled date.
func (d *Draft) SetStatus(s Status) {
	d.Status = s
	if s != StatusSettled {
		d.SettledDate = ""
	}
}

func (d *Draft) SetDueDate(date string) {
	d.DueDate = DateOnly(date)
}

// SetSettledDate records the settlement date. It is ignored unless the
// invoice is settled.
func (d *Draft) SetSettledDate(date string) {
	if d.Status != StatusSettled {
		return
	}

	d.SettledDate = DateOnly(date)
}

func (d Draft) value(field string) string {
	switch field {
	case FieldCustomerName:
		return d.CustomerName
	case FieldDescription:
		return d.Description
	case FieldAmount:
		return d.Amount
	case FieldStatus:
		return string(d.Status)
	case FieldDueDate:
		return d.DueDate
	case FieldSettledDate:
		return d.SettledDate
	}

	return ""
}

// Validate checks every field and returns the messages for offending ones.
// An empty result means the draft may be submitted.
func (d Draft) Validate(cat i18n.Catalog) form.FieldErrors {
	errs := form.FieldErrors{}

	for _, field := range Fields {
		if err := CheckField(cat, field, d.value(field)); err != nil {
			errs[field] = err.Error()
		}
	}

	return errs
}

// Payload serializes a validated draft. A settled invoice without a settled
// date is stamped with now.
func (d Draft) Payload(now time.Time) Payload {
	amt, _ := ParseAmount(d.Amount)

	p := Payload{
		CustomerName: strings.TrimSpace(d.CustomerName),
		Description:  strings.TrimSpace(d.Description),
		Amount:       amt.InexactFloat64(),
		Status:       d.Status,
	}

	if d.DueDate != "" {
		p.DueDate = new(d.DueDate)
	}

	if d.Status == StatusSettled {
		settled := d.SettledDate
		if settled == "" {
			settled = now.UTC().Format(isoMillis)
		}

		p.SettledDate = &settled
	}

	return p
}

// ParseAmount parses raw amount input.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

var validate = newValidator()

// rules are the per-field input constraints, applied to trimmed values.
var rules = map[string]string{
	FieldCustomerName: "required",
	FieldDescription:  "required",
	FieldAmount:       "required,amount",
	FieldStatus:       "oneof=pending settled",
	FieldDueDate:      "omitempty,datetime=2006-01-02",
	FieldSettledDate:  "omitempty,datetime=2006-01-02",
}

// messages maps a failed validator tag to a translation key.
var messages = map[string]string{
	"required": "field_required",
	"amount":   "invalid_invoice_amount",
	"oneof":    "invalid_choice",
	"datetime": "invalid_date",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// amount: a decimal number, zero or more.
	err := v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		amt, err := ParseAmount(fl.Field().String())
		return err == nil && !amt.IsNegative()
	})
	if err != nil {
		panic(fmt.Sprintf("invoice: registering amount validation: %v", err))
	}

	return v
}

// CheckField validates a single input value the way Validate does. It backs
// the per-field checks of the input-capture layer.
func CheckField(cat i18n.Catalog, field, value string) error {
	rule, ok := rules[field]
	if !ok {
		return form.ErrUnknownField
	}

	err := validate.Var(strings.TrimSpace(value), rule)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if key, ok := messages[verrs[0].Tag()]; ok {
			return errors.New(cat.T(key))
		}
	}

	return errors.New(cat.T("invalid_choice"))
}
