package view

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/ficore/internal/i18n"
	"github.com/MrJamesThe3rd/ficore/internal/transaction"
)

// categoryKeys maps the fixed categories to their translation keys.
// Suggested categories outside this set are shown as-is.
var categoryKeys = map[string]string{
	"Sales":     "sales",
	"Utilities": "utilities",
	"Transport": "transport",
	"Other":     "other",
}

var periodKeys = map[transaction.RecurringPeriod]string{
	transaction.PeriodNone:    "none",
	transaction.PeriodWeekly:  "weekly",
	transaction.PeriodMonthly: "monthly",
	transaction.PeriodYearly:  "yearly",
}

// fieldKeys maps wire field names to their label keys where they differ.
var fieldKeys = map[string]string{
	transaction.FieldIsRecurring:     "recurring",
	transaction.FieldRecurringPeriod: "recurring_period",
}

type transactionFields struct {
	Type        string
	Category    string
	Amount      string
	Description string
	Tags        string
	IsRecurring bool
	Period      string
}

func (b *transactionFields) seed(d transaction.Draft) {
	b.Type = string(d.Type)
	b.Category = d.Category
	b.Amount = d.Amount
	b.Description = d.Description
	b.Tags = d.Tags
	b.IsRecurring = d.IsRecurring
	b.Period = string(d.RecurringPeriod)
}

func (b *transactionFields) apply(f *transaction.Form) error {
	edits := [][2]string{
		{transaction.FieldType, b.Type},
		{transaction.FieldDescription, b.Description},
		{transaction.FieldAmount, b.Amount},
		{transaction.FieldCategory, b.Category},
		{transaction.FieldTags, b.Tags},
		{transaction.FieldIsRecurring, strconv.FormatBool(b.IsRecurring)},
	}

	if b.IsRecurring {
		edits = append(edits, [2]string{transaction.FieldRecurringPeriod, b.Period})
	}

	for _, e := range edits {
		if err := f.SetField(e[0], e[1]); err != nil {
			return err
		}
	}

	return nil
}

// TransactionModel records a single transaction. Category options follow
// the description as it is typed.
type TransactionModel struct {
	CommonModel
	catalog   i18n.Catalog
	suggester transaction.Suggester

	ctrl   *transaction.Form
	fields *transactionFields
	form   *huh.Form
	saving bool
	status string
}

func NewTransactionModel(gw transaction.Gateway, suggester transaction.Suggester, cat i18n.Catalog) TransactionModel {
	m := TransactionModel{
		catalog:   cat,
		suggester: suggester,
		ctrl:      transaction.NewForm(gw, suggester, cat),
		fields:    &transactionFields{},
	}
	m.fields.seed(m.ctrl.Draft())
	m.form = m.buildForm()

	return m
}

func (m TransactionModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m TransactionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && !m.saving {
			return m, Back
		}

	case transactionSavedMsg:
		m.saving = false
		m.ctrl.Complete(msg.err)

		if msg.err == nil {
			return m, done(m.ctrl.Message())
		}

		m.status = m.ctrl.Message()

		return m.edit()
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m, Back
	case huh.StateCompleted:
		return m.submit()
	}

	return m, cmd
}

func (m TransactionModel) submit() (tea.Model, tea.Cmd) {
	if err := m.fields.apply(m.ctrl); err != nil {
		m.status = err.Error()
		return m.edit()
	}

	sub, err := m.ctrl.Prepare()
	if err != nil {
		m.status = ""
		return m.edit()
	}

	m.saving = true
	m.status = ""

	return m, func() tea.Msg {
		_, err := sub.Send(context.Background())
		return transactionSavedMsg{err: err}
	}
}

func (m TransactionModel) edit() (tea.Model, tea.Cmd) {
	m.form = m.buildForm()
	return m, m.form.Init()
}

func (m TransactionModel) categoryLabel(c string) string {
	if key, ok := categoryKeys[c]; ok {
		return m.catalog.T(key)
	}

	return c
}

func (m TransactionModel) fieldLabel(field string) string {
	if key, ok := fieldKeys[field]; ok {
		return m.catalog.T(key)
	}

	return m.catalog.T(field)
}

func (m TransactionModel) buildForm() *huh.Form {
	b, cat, suggester := m.fields, m.catalog, m.suggester

	check := func(field string) func(string) error {
		return func(s string) error {
			return transaction.CheckField(cat, field, s)
		}
	}

	periods := make([]huh.Option[string], 0, len(transaction.Periods))
	for _, p := range transaction.Periods {
		periods = append(periods, huh.NewOption(cat.T(periodKeys[p]), string(p)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(transaction.FieldType).
				Title(cat.T("type")).
				Options(
					huh.NewOption(cat.T("money_in"), string(transaction.TypeIncome)),
					huh.NewOption(cat.T("money_out"), string(transaction.TypeExpense)),
				).
				Value(&b.Type),

			huh.NewInput().
				Key(transaction.FieldDescription).
				Title(cat.T("description")).
				Value(&b.Description).
				Validate(check(transaction.FieldDescription)),

			huh.NewInput().
				Key(transaction.FieldAmount).
				Title(cat.T("amount")).
				Placeholder("0.00").
				Value(&b.Amount).
				Validate(check(transaction.FieldAmount)),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(transaction.FieldCategory).
				Title(cat.T("category")).
				DescriptionFunc(func() string {
					suggested := suggester.Suggest(b.Description)
					if len(suggested) == 0 {
						return ""
					}

					labels := make([]string, len(suggested))
					for i, s := range suggested {
						labels[i] = m.categoryLabel(s)
					}

					return cat.T("suggested") + ": " + strings.Join(labels, ", ")
				}, &b.Description).
				OptionsFunc(func() []huh.Option[string] {
					names := transaction.CategoryOptions(suggester.Suggest(b.Description))

					opts := make([]huh.Option[string], len(names))
					for i, c := range names {
						opts[i] = huh.NewOption(m.categoryLabel(c), c)
					}

					return opts
				}, &b.Description).
				Value(&b.Category),

			huh.NewInput().
				Key(transaction.FieldTags).
				Title(cat.T("tags")).
				Placeholder(cat.T("tags_placeholder")).
				Value(&b.Tags).
				Validate(check(transaction.FieldTags)),

			huh.NewConfirm().
				Key(transaction.FieldIsRecurring).
				Title(cat.T("recurring")).
				Value(&b.IsRecurring),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(transaction.FieldRecurringPeriod).
				Title(cat.T("recurring_period")).
				Options(periods...).
				Value(&b.Period),
		).WithHideFunc(func() bool {
			return !b.IsRecurring
		}),
	).WithWidth(60).WithShowHelp(false)
}

func (m TransactionModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.catalog.T("track_transaction")) + "\n\n")

	if m.status != "" {
		sb.WriteString(errorStyle.Render(m.status) + "\n\n")
	}

	if errs := m.ctrl.Errors(); len(errs) > 0 {
		sb.WriteString(fieldErrorLines(errs, m.fieldLabel) + "\n\n")
	}

	if m.saving {
		sb.WriteString(faintStyle.Render(m.catalog.T("loading")))
	} else {
		sb.WriteString(m.form.View())
	}

	sb.WriteString("\n\n" + faintStyle.Render("esc: "+m.catalog.T("back")))

	return pageStyle.Render(sb.String())
}

type transactionSavedMsg struct {
	err error
}
