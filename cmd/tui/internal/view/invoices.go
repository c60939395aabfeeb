package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/ficore/internal/i18n"
	"github.com/MrJamesThe3rd/ficore/internal/invoice"
)

type invoiceStage int

const (
	invoiceStagePrompt invoiceStage = iota
	invoiceStageLoading
	invoiceStageEditing
	invoiceStageSaving
)

// invoiceFields holds the huh bindings. It is shared by pointer so bindings
// stay valid when the model is copied.
type invoiceFields struct {
	CustomerName string
	Description  string
	Amount       string
	Status       string
	DueDate      string
	SettledDate  string
}

func (b *invoiceFields) seed(d invoice.Draft) {
	b.CustomerName = d.CustomerName
	b.Description = d.Description
	b.Amount = d.Amount
	b.Status = string(d.Status)
	b.DueDate = d.DueDate
	b.SettledDate = d.SettledDate
}

func (b *invoiceFields) apply(f *invoice.Form) error {
	values := map[string]string{
		invoice.FieldCustomerName: b.CustomerName,
		invoice.FieldDescription:  b.Description,
		invoice.FieldAmount:       b.Amount,
		invoice.FieldStatus:       b.Status,
		invoice.FieldDueDate:      b.DueDate,
		invoice.FieldSettledDate:  b.SettledDate,
	}

	for _, name := range invoice.Fields {
		if err := f.SetField(name, values[name]); err != nil {
			return err
		}
	}

	return nil
}

// InvoiceModel creates a new invoice or, when started in edit mode, asks for
// an invoice id, loads it and edits it.
type InvoiceModel struct {
	CommonModel
	gw      invoice.Gateway
	catalog i18n.Catalog
	lang    string

	ctrl    *invoice.Form
	fields  *invoiceFields
	stage   invoiceStage
	idInput textinput.Model
	spinner spinner.Model
	form    *huh.Form
	status  string
}

func NewInvoiceModel(gw invoice.Gateway, lang string, cat i18n.Catalog, edit bool) InvoiceModel {
	ti := textinput.New()
	ti.Placeholder = cat.T("invoice_id")
	ti.Width = 40
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	m := InvoiceModel{
		gw:      gw,
		catalog: cat,
		lang:    lang,
		ctrl:    invoice.NewForm(gw, cat),
		fields:  &invoiceFields{},
		idInput: ti,
		spinner: s,
	}
	m.fields.seed(m.ctrl.Draft())

	if edit {
		m.stage = invoiceStagePrompt
	} else {
		m.stage = invoiceStageEditing
		m.form = m.buildForm()
	}

	return m
}

func (m InvoiceModel) Init() tea.Cmd {
	if m.stage == invoiceStagePrompt {
		return textinput.Blink
	}

	return m.form.Init()
}

func (m InvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.stage != invoiceStageSaving {
			return m, Back
		}

	case invoiceLoadedMsg:
		if msg.err != nil {
			m.stage = invoiceStagePrompt
			m.status = m.catalog.T("error_loading")

			return m, nil
		}

		m.ctrl.Edit(msg.id, *msg.rec)
		m.fields.seed(m.ctrl.Draft())

		return m.edit()

	case invoiceSavedMsg:
		m.ctrl.Complete(msg.err)
		if msg.err == nil {
			return m, done(m.ctrl.Message())
		}

		m.status = m.ctrl.Message()

		return m.edit()
	}

	switch m.stage {
	case invoiceStagePrompt:
		return m.updatePrompt(msg)
	case invoiceStageEditing:
		return m.updateEditing(msg)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m InvoiceModel) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		id := strings.TrimSpace(m.idInput.Value())
		if id == "" {
			return m, nil
		}

		m.stage = invoiceStageLoading
		m.status = ""

		return m, tea.Batch(m.spinner.Tick, m.loadCmd(id))
	}

	var cmd tea.Cmd
	m.idInput, cmd = m.idInput.Update(msg)

	return m, cmd
}

func (m InvoiceModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m InvoiceModel) submit() (tea.Model, tea.Cmd) {
	if err := m.fields.apply(m.ctrl); err != nil {
		m.status = err.Error()
		return m.edit()
	}

	sub, err := m.ctrl.Prepare()
	if err != nil {
		// Field errors are rendered from the controller.
		m.status = ""
		return m.edit()
	}

	m.stage = invoiceStageSaving
	m.status = ""

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		_, err := sub.Send(context.Background())
		return invoiceSavedMsg{err: err}
	})
}

// edit shows a fresh huh form over the current bindings. A completed huh
// form cannot be resumed, so every return to editing builds a new one.
func (m InvoiceModel) edit() (tea.Model, tea.Cmd) {
	m.stage = invoiceStageEditing
	m.form = m.buildForm()

	return m, m.form.Init()
}

func (m InvoiceModel) buildForm() *huh.Form {
	b, cat := m.fields, m.catalog

	check := func(field string) func(string) error {
		return func(s string) error {
			return invoice.CheckField(cat, field, s)
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key(invoice.FieldCustomerName).
				Title(cat.T("customer_name")).
				Value(&b.CustomerName).
				Validate(check(invoice.FieldCustomerName)),

			huh.NewInput().
				Key(invoice.FieldDescription).
				Title(cat.T("description")).
				Value(&b.Description).
				Validate(check(invoice.FieldDescription)),

			huh.NewInput().
				Key(invoice.FieldAmount).
				Title(cat.T("amount")).
				Placeholder("0.00").
				Value(&b.Amount).
				Validate(check(invoice.FieldAmount)),

			huh.NewSelect[string]().
				Key(invoice.FieldStatus).
				Title(cat.T("status")).
				Options(
					huh.NewOption(cat.T("pending"), string(invoice.StatusPending)),
					huh.NewOption(cat.T("settled"), string(invoice.StatusSettled)),
				).
				Value(&b.Status),

			huh.NewInput().
				Key(invoice.FieldDueDate).
				Title(cat.T("due_date")).
				Placeholder("YYYY-MM-DD").
				Value(&b.DueDate).
				Validate(check(invoice.FieldDueDate)),
		),
		huh.NewGroup(
			huh.NewInput().
				Key(invoice.FieldSettledDate).
				Title(cat.T("settled_date")).
				Placeholder("YYYY-MM-DD").
				Value(&b.SettledDate).
				Validate(check(invoice.FieldSettledDate)),
		).WithHideFunc(func() bool {
			return b.Status != string(invoice.StatusSettled)
		}),
	).WithWidth(60).WithShowHelp(false)
}

func (m InvoiceModel) title() string {
	if !m.ctrl.IsEdit() {
		return titleStyle.Render(m.catalog.T("create_invoice"))
	}

	header := fmt.Sprintf("%s #%s", m.catalog.T("edit_invoice"), m.ctrl.ID())
	if amt, err := invoice.ParseAmount(m.ctrl.Draft().Amount); err == nil {
		header += " · " + i18n.FormatAmount(m.lang, amt.InexactFloat64())
	}

	return titleStyle.Render(header)
}

func (m InvoiceModel) View() string {
	var b strings.Builder

	switch m.stage {
	case invoiceStagePrompt:
		b.WriteString(titleStyle.Render(m.catalog.T("edit_invoice")) + "\n\n")
		b.WriteString(m.catalog.T("invoice_id") + "\n" + m.idInput.View())

		if m.status != "" {
			b.WriteString("\n\n" + errorStyle.Render(m.status))
		}

	case invoiceStageLoading, invoiceStageSaving:
		b.WriteString(m.title() + "\n\n" + m.spinner.View() + " " + faintStyle.Render(m.catalog.T("loading")))

	case invoiceStageEditing:
		b.WriteString(m.title() + "\n\n")

		if m.status != "" {
			b.WriteString(errorStyle.Render(m.status) + "\n\n")
		}

		if errs := m.ctrl.Errors(); len(errs) > 0 {
			b.WriteString(fieldErrorLines(errs, m.catalog.T) + "\n\n")
		}

		b.WriteString(m.form.View())
	}

	b.WriteString("\n\n" + faintStyle.Render("esc: "+m.catalog.T("back")))

	return pageStyle.Render(b.String())
}

type invoiceLoadedMsg struct {
	id  string
	rec *invoice.Record
	err error
}

type invoiceSavedMsg struct {
	err error
}

func (m InvoiceModel) loadCmd(id string) tea.Cmd {
	gw := m.gw

	return func() tea.Msg {
		rec, err := invoice.Fetch(context.Background(), gw, id)
		return invoiceLoadedMsg{id: id, rec: rec, err: err}
	}
}
