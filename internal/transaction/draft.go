package transaction

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ficore/internal/form"
	"github.com/MrJamesThe3rd/ficore/internal/i18n"
)

// Draft is a transaction being entered. Amount and Tags hold the raw input
// text; they are parsed at validation and serialization time.
type Draft struct {
	Type            Type
	Category        string
	Amount          string
	Description     string
	Tags            string
	IsRecurring     bool
	RecurringPeriod RecurringPeriod
}

// NewDraft returns an empty draft with the form defaults.
func NewDraft() Draft {
	return Draft{
		Type:            TypeIncome,
		Category:        DefaultCategory,
		RecurringPeriod: PeriodNone,
	}
}

func (d *Draft) SetType(t Type) {
	d.Type = t
}

func (d *Draft) SetCategory(category string) {
	d.Category = category
}

func (d *Draft) SetAmount(amount string) {
	d.Amount = amount
}

func (d *Draft) SetDescription(desc string) {
	d.Description = desc
}

func (d *Draft) SetTags(tags string) {
	d.Tags = tags
}

func (d *Draft) SetPeriod(p RecurringPeriod) {
	d.RecurringPeriod = p
}

// SetRecurring toggles recurrence. Switching it off resets the period.
func (d *Draft) SetRecurring(on bool) {
	d.IsRecurring = on
	if !on {
		d.RecurringPeriod = PeriodNone
	}
}

// Set applies an edit by wire field name.
func (d *Draft) Set(name, value string) error {
	switch name {
	case FieldType:
		d.SetType(Type(value))
	case FieldCategory:
		d.SetCategory(value)
	case FieldAmount:
		d.SetAmount(value)
	case FieldDescription:
		d.SetDescription(value)
	case FieldTags:
		d.SetTags(value)
	case FieldIsRecurring:
		d.SetRecurring(parseFlag(value))
	case FieldRecurringPeriod:
		d.SetPeriod(RecurringPeriod(value))
	default:
		return fmt.Errorf("%w: %q", form.ErrUnknownField, name)
	}

	return nil
}

// ParsedAmount returns the amount as a decimal, or false when the input is
// empty or not a number.
func (d Draft) ParsedAmount() (decimal.Decimal, bool) {
	s := strings.TrimSpace(d.Amount)
	if s == "" {
		return decimal.Zero, false
	}

	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	return amt, true
}

// Validate checks the draft and returns the messages for every offending
// field. An empty result means the draft may be submitted.
func (d Draft) Validate(cat i18n.Catalog) form.FieldErrors {
	errs := form.FieldErrors{}

	if amt, ok := d.ParsedAmount(); !ok || !amt.IsPositive() {
		errs[FieldAmount] = cat.T("invalid_amount")
	}

	if strings.TrimSpace(d.Description) == "" {
		errs[FieldDescription] = cat.T("required_field")
	}

	if utf8.RuneCountInString(d.Tags) > MaxTagsLength {
		errs[FieldTags] = cat.T("tags_too_long")
	}

	if strings.TrimSpace(d.Category) == "" {
		errs[FieldCategory] = cat.T("required_field")
	}

	if d.Type != TypeIncome && d.Type != TypeExpense {
		errs[FieldType] = cat.T("invalid_choice")
	}

	if d.IsRecurring && !slices.Contains(Periods, d.RecurringPeriod) {
		errs[FieldRecurringPeriod] = cat.T("invalid_choice")
	}

	return errs
}

// CheckField validates a single input value the way Validate does, for
// input layers that check fields as they are typed.
func CheckField(cat i18n.Catalog, name, value string) error {
	d := NewDraft()
	if err := d.Set(name, value); err != nil {
		return err
	}

	if name == FieldRecurringPeriod {
		d.IsRecurring = true
	}

	if msg, ok := d.Validate(cat)[name]; ok {
		return errors.New(msg)
	}

	return nil
}

// Payload serializes a validated draft for the backend.
func (d Draft) Payload() Payload {
	amt, _ := d.ParsedAmount()

	period := d.RecurringPeriod
	if !d.IsRecurring {
		period = PeriodNone
	}

	return Payload{
		Type:            d.Type,
		Category:        d.Category,
		Amount:          amt.InexactFloat64(),
		Description:     d.Description,
		Tags:            SplitTags(d.Tags),
		IsRecurring:     d.IsRecurring,
		RecurringPeriod: period,
	}
}

// SplitTags splits comma-separated input into trimmed, non-empty tags,
// preserving order. The result is never nil.
func SplitTags(raw string) []string {
	tags := []string{}

	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}

// parseFlag reads checkbox-style input: "on", "true", "1", "yes" are true.
func parseFlag(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "on" || s == "yes" {
		return true
	}

	b, _ := strconv.ParseBool(s)

	return b
}
