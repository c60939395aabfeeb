package transaction_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ficore/internal/form"
	"github.com/MrJamesThe3rd/ficore/internal/i18n"
	"github.com/MrJamesThe3rd/ficore/internal/transaction"
)

func validDraft() transaction.Draft {
	d := transaction.NewDraft()
	d.SetAmount("10")
	d.SetDescription("monthly sale")

	return d
}

func TestNewDraft_Defaults(t *testing.T) {
	d := transaction.NewDraft()

	assert.Equal(t, transaction.TypeIncome, d.Type)
	assert.Equal(t, "Sales", d.Category)
	assert.False(t, d.IsRecurring)
	assert.Equal(t, transaction.PeriodNone, d.RecurringPeriod)
}

func TestDraft_Validate_Amount(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr bool
	}{
		{"", true},
		{"   ", true},
		{"abc", true},
		{"0", true},
		{"0.00", true},
		{"-1", true},
		{"-0.01", true},
		{"0.01", false},
		{"25.5", false},
		{" 100 ", false},
		{"1e3", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			d := validDraft()
			d.SetAmount(tt.amount)

			errs := d.Validate(nil)
			assert.Equal(t, tt.wantErr, errs.Has(transaction.FieldAmount))
		})
	}
}

func TestDraft_Validate_Description(t *testing.T) {
	for _, desc := range []string{"", " ", "\t\n", "   \t "} {
		d := validDraft()
		d.SetDescription(desc)

		errs := d.Validate(nil)
		assert.True(t, errs.Has(transaction.FieldDescription), "description %q", desc)
	}
}

func TestDraft_Validate_Tags(t *testing.T) {
	tests := []struct {
		name    string
		tags    string
		wantErr bool
	}{
		{"Empty", "", false},
		{"Exactly200", strings.Repeat("a", 200), false},
		{"201", strings.Repeat("a", 201), true},
		{"Long", strings.Repeat("tag, ", 100), true},
		{"MultibyteCountsCharacters", strings.Repeat("ƙ", 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.SetTags(tt.tags)

			errs := d.Validate(nil)
			assert.Equal(t, tt.wantErr, errs.Has(transaction.FieldTags))
		})
	}
}

func TestDraft_Validate_Choices(t *testing.T) {
	d := validDraft()
	d.SetType("transfer")
	d.SetCategory(" ")

	errs := d.Validate(nil)
	assert.True(t, errs.Has(transaction.FieldType))
	assert.True(t, errs.Has(transaction.FieldCategory))

	d = validDraft()
	d.SetRecurring(true)
	d.SetPeriod("daily")
	assert.True(t, d.Validate(nil).Has(transaction.FieldRecurringPeriod))

	d.SetPeriod(transaction.PeriodMonthly)
	assert.Empty(t, d.Validate(nil))
}

func TestDraft_Validate_Valid(t *testing.T) {
	assert.Empty(t, validDraft().Validate(nil))
}

func TestDraft_Validate_LocalizedMessages(t *testing.T) {
	cat := i18n.Catalog{"invalid_amount": "Adadin bai dace ba"}

	d := transaction.NewDraft()
	errs := d.Validate(cat)

	assert.Equal(t, "Adadin bai dace ba", errs[transaction.FieldAmount])
	assert.Equal(t, "Description is required", errs[transaction.FieldDescription])
}

func TestDraft_SetRecurring(t *testing.T) {
	d := transaction.NewDraft()
	d.SetRecurring(true)
	d.SetPeriod(transaction.PeriodWeekly)
	assert.Equal(t, transaction.PeriodWeekly, d.RecurringPeriod)

	d.SetRecurring(false)
	assert.False(t, d.IsRecurring)
	assert.Equal(t, transaction.PeriodNone, d.RecurringPeriod)
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"client, q3", []string{"client", "q3"}},
		{" a ,, b ,", []string{"a", "b"}},
		{",,,", []string{}},
		{"z, a, z", []string{"z", "a", "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, transaction.SplitTags(tt.raw))
		})
	}
}

func TestDraft_Payload(t *testing.T) {
	d := transaction.NewDraft()
	d.SetType(transaction.TypeExpense)
	d.SetCategory("Transport")
	d.SetAmount("25.5")
	d.SetDescription("travel to client")
	d.SetTags("client, q3")
	d.SetPeriod(transaction.PeriodYearly)

	p := d.Payload()

	assert.Equal(t, transaction.Payload{
		Type:            transaction.TypeExpense,
		Category:        "Transport",
		Amount:          25.5,
		Description:     "travel to client",
		Tags:            []string{"client", "q3"},
		IsRecurring:     false,
		RecurringPeriod: transaction.PeriodNone,
	}, p)
}

func TestCategoryOptions(t *testing.T) {
	assert.Equal(t, []string{"Sales", "Utilities", "Transport", "Other"}, transaction.CategoryOptions(nil))
	assert.Equal(t,
		[]string{"Sales", "Utilities", "Transport", "Other", "Food"},
		transaction.CategoryOptions([]string{"Transport", "Food", "Food"}),
	)
}

func TestCheckField(t *testing.T) {
	assert.NoError(t, transaction.CheckField(nil, transaction.FieldAmount, "12.50"))
	assert.EqualError(t, transaction.CheckField(nil, transaction.FieldAmount, "0"), "Amount must be greater than zero")
	assert.EqualError(t, transaction.CheckField(nil, transaction.FieldRecurringPeriod, "daily"), "Please choose one of the listed options")
	assert.NoError(t, transaction.CheckField(nil, transaction.FieldRecurringPeriod, "weekly"))
	assert.ErrorIs(t, transaction.CheckField(nil, "colour", "blue"), form.ErrUnknownField)
}
