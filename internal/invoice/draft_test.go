package invoice_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ficore/internal/form"
	"github.com/MrJamesThe3rd/ficore/internal/i18n"
	"github.com/MrJamesThe3rd/ficore/internal/invoice"
)

var now = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func validDraft() invoice.Draft {
	d := invoice.NewDraft()
	d.SetCustomerName("Musa Traders")
	d.SetDescription("Consulting, April")
	d.SetAmount("1500.50")

	return d
}

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(d *invoice.Draft)
		wantErr []string
	}{
		{"Valid", func(d *invoice.Draft) {}, nil},
		{"BlankCustomer", func(d *invoice.Draft) { d.SetCustomerName("  ") }, []string{invoice.FieldCustomerName}},
		{"BlankDescription", func(d *invoice.Draft) { d.SetDescription("") }, []string{invoice.FieldDescription}},
		{"ZeroAmount", func(d *invoice.Draft) { d.SetAmount("0") }, nil},
		{"NegativeAmount", func(d *invoice.Draft) { d.SetAmount("-5") }, []string{invoice.FieldAmount}},
		{"TextAmount", func(d *invoice.Draft) { d.SetAmount("lots") }, []string{invoice.FieldAmount}},
		{"EmptyAmount", func(d *invoice.Draft) { d.SetAmount("") }, []string{invoice.FieldAmount}},
		{"UnknownStatus", func(d *invoice.Draft) { d.SetStatus("overdue") }, []string{invoice.FieldStatus}},
		{"BadDueDate", func(d *invoice.Draft) { d.SetDueDate("2024-13-45") }, []string{invoice.FieldDueDate}},
		{"DueDateTimestamp", func(d *invoice.Draft) { d.SetDueDate("2024-03-15T00:00:00Z") }, nil},
		{"BadSettledDate", func(d *invoice.Draft) {
			d.SetStatus(invoice.StatusSettled)
			d.SetSettledDate("yesterday")
		}, []string{invoice.FieldSettledDate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.edit(&d)

			errs := d.Validate(nil)
			if tt.wantErr == nil {
				assert.Empty(t, errs)
				return
			}

			assert.Equal(t, tt.wantErr, errs.Fields())
		})
	}
}

func TestDraft_Validate_Messages(t *testing.T) {
	d := invoice.NewDraft()
	d.SetAmount("-1")

	errs := d.Validate(i18n.Catalog{"field_required": "Ana bukatar wannan"})

	assert.Equal(t, "Ana bukatar wannan", errs[invoice.FieldCustomerName])
	assert.Equal(t, "Amount must be a number of zero or more", errs[invoice.FieldAmount])
}

func TestCheckField(t *testing.T) {
	assert.NoError(t, invoice.CheckField(nil, invoice.FieldDueDate, ""))
	assert.NoError(t, invoice.CheckField(nil, invoice.FieldDueDate, "2024-02-29"))
	assert.EqualError(t, invoice.CheckField(nil, invoice.FieldDueDate, "2023-02-29"), "Date must be in YYYY-MM-DD format")
	assert.ErrorIs(t, invoice.CheckField(nil, "colour", "blue"), form.ErrUnknownField)
}

func TestDraft_SettledDateFollowsStatus(t *testing.T) {
	d := validDraft()

	d.SetSettledDate("2024-04-30")
	assert.Empty(t, d.SettledDate, "pending invoices carry no settled date")

	d.SetStatus(invoice.StatusSettled)
	d.SetSettledDate("2024-04-30")
	assert.Equal(t, "2024-04-30", d.SettledDate)

	d.SetStatus(invoice.StatusPending)
	assert.Empty(t, d.SettledDate)
}

func TestDraft_Payload(t *testing.T) {
	t.Run("Pending", func(t *testing.T) {
		d := validDraft()
		d.SetDueDate("2024-06-01")

		p := d.Payload(now)

		assert.Equal(t, invoice.Payload{
			CustomerName: "Musa Traders",
			Description:  "Consulting, April",
			Amount:       1500.5,
			Status:       invoice.StatusPending,
			DueDate:      new("2024-06-01"),
		}, p)
		assert.Nil(t, p.SettledDate)
	})

	t.Run("SettledWithoutDateIsStamped", func(t *testing.T) {
		d := validDraft()
		d.SetStatus(invoice.StatusSettled)

		p := d.Payload(now)

		require.NotNil(t, p.SettledDate)
		assert.Equal(t, "2024-05-01T10:30:00.000Z", *p.SettledDate)
		assert.Nil(t, p.DueDate)
	})

	t.Run("SettledKeepsEnteredDate", func(t *testing.T) {
		d := validDraft()
		d.SetStatus(invoice.StatusSettled)
		d.SetSettledDate("2024-04-02")

		p := d.Payload(now)

		require.NotNil(t, p.SettledDate)
		assert.Equal(t, "2024-04-02", *p.SettledDate)
	})
}

func TestDraftFromRecord(t *testing.T) {
	rec := invoice.Record{
		ID:           "inv-7",
		CustomerName: "Musa Traders",
		Description:  "Consulting",
		Amount:       decimal.RequireFromString("250.00"),
		Status:       invoice.StatusSettled,
		DueDate:      new("2024-03-15T00:00:00.000Z"),
		SettledDate:  new("2024-03-20 13:45:00"),
	}

	d := invoice.DraftFromRecord(rec)

	assert.Equal(t, "250", d.Amount)
	assert.Equal(t, "2024-03-15", d.DueDate)
	assert.Equal(t, "2024-03-20", d.SettledDate)
	assert.Equal(t, invoice.StatusSettled, d.Status)

	rec.Status = ""
	assert.Equal(t, invoice.StatusPending, invoice.DraftFromRecord(rec).Status)
	assert.Empty(t, invoice.DraftFromRecord(rec).SettledDate)
}

func TestDateOnly(t *testing.T) {
	tests := map[string]string{
		"":                         "",
		"2024-03-15":               "2024-03-15",
		" 2024-03-15 ":             "2024-03-15",
		"2024-03-15T00:00:00Z":     "2024-03-15",
		"2024-03-15T23:59:59.999Z": "2024-03-15",
		"2024-03-15 08:00:00":      "2024-03-15",
	}

	for in, want := range tests {
		assert.Equal(t, want, invoice.DateOnly(in), "input %q", in)
	}
}
