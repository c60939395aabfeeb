package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ficore/internal/form"
	"github.com/MrJamesThe3rd/ficore/internal/i18n"
)

// ErrNotFound is returned by LoadForEdit when the backend answers with an
// empty body.
var ErrNotFound = errors.New("invoice not found")

//go:generate mockgen -source=form.go -destination=gateway_mock.go -package=invoice
type Gateway interface {
	GetInvoice(ctx context.Context, id string) (*Record, error)
	CreateInvoice(ctx context.Context, p Payload) (*Record, error)
	UpdateInvoice(ctx context.Context, id string, p Payload) (*Record, error)
}

// Form drives one invoice entry, either a new invoice or an edit of an
// existing one. Like transaction.Form it belongs to a single event loop.
type Form struct {
	gw      Gateway
	catalog i18n.Catalog
	now     func() time.Time

	id      string
	draft   Draft
	state   form.State
	errs    form.FieldErrors
	message string
	key     string
}

func NewForm(gw Gateway, catalog i18n.Catalog) *Form {
	return &Form{
		gw:      gw,
		catalog: catalog,
		now:     time.Now,
		draft:   NewDraft(),
		errs:    form.FieldErrors{},
	}
}

// SetClock replaces the time source used to stamp settled invoices.
func (f *Form) SetClock(now func() time.Time) {
	f.now = now
}

func (f *Form) Draft() Draft             { return f.draft }
func (f *Form) State() form.State        { return f.state }
func (f *Form) Errors() form.FieldErrors { return f.errs }
func (f *Form) Message() string          { return f.message }

// ID is the invoice being edited, empty for a new invoice.
func (f *Form) ID() string { return f.id }

// IsEdit reports whether submitting updates an existing invoice.
func (f *Form) IsEdit() bool { return f.id != "" }

// SetID targets an existing invoice without fetching it. The web front-end
// uses it when the edited values arrive with the request.
func (f *Form) SetID(id string) {
	f.id = id
}

// Fetch loads invoice id through gw. An empty answer is ErrNotFound. It does
// not touch any Form, so front-ends may call it off their event loop and
// hand the record to Edit.
func Fetch(ctx context.Context, gw Gateway, id string) (*Record, error) {
	rec, err := gw.GetInvoice(ctx, id)
	if err == nil && rec == nil {
		err = ErrNotFound
	}

	if err != nil {
		slog.Error("failed to load invoice", "id", id, "error", err)
		return nil, fmt.Errorf("loading invoice %s: %w", id, err)
	}

	return rec, nil
}

// LoadForEdit fetches the invoice and seeds the draft from it.
func (f *Form) LoadForEdit(ctx context.Context, id string) error {
	rec, err := Fetch(ctx, f.gw, id)
	if err != nil {
		f.message = f.catalog.T("error_loading")
		return err
	}

	f.Edit(id, *rec)

	return nil
}

// Edit targets the invoice id and seeds the draft from rec. Front-ends that
// fetch off their event loop use it instead of LoadForEdit.
func (f *Form) Edit(id string, rec Record) {
	f.id = id
	f.draft = DraftFromRecord(rec)
	f.state = form.StateEditing
	f.errs = form.FieldErrors{}
	f.message = ""
	f.key = ""
}

func (f *Form) UseIdempotencyKey(key string) {
	f.key = key
}

// IdempotencyKey returns the pinned key, creating one if needed.
func (f *Form) IdempotencyKey() string {
	if f.key == "" {
		f.key = uuid.NewString()
	}

	return f.key
}

// SetField applies an edit by wire field name. Edits that change the draft
// clear the pinned idempotency key.
func (f *Form) SetField(name, value string) error {
	if f.state == form.StateSubmitting {
		return form.ErrBusy
	}

	before := f.draft

	switch name {
	case FieldCustomerName:
		f.draft.SetCustomerName(value)
	case FieldDescription:
		f.draft.SetDescription(value)
	case FieldAmount:
		f.draft.SetAmount(value)
	case FieldStatus:
		f.draft.SetStatus(Status(value))
		delete(f.errs, FieldSettledDate)
	case FieldDueDate:
		f.draft.SetDueDate(value)
	case FieldSettledDate:
		f.draft.SetSettledDate(value)
	default:
		return fmt.Errorf("%w: %q", form.ErrUnknownField, name)
	}

	f.state = form.StateEditing
	if f.draft != before {
		f.key = ""
	}

	delete(f.errs, name)

	return nil
}

// Submission is a validated, serialized draft. ID is set for updates.
type Submission struct {
	ID      string
	Payload Payload
	Key     string

	gw Gateway
}

// Send performs the single create or update call for the submission.
func (s Submission) Send(ctx context.Context) (*Record, error) {
	ctx = form.WithIdempotencyKey(ctx, s.Key)

	if s.ID != "" {
		return s.gw.UpdateInvoice(ctx, s.ID, s.Payload)
	}

	return s.gw.CreateInvoice(ctx, s.Payload)
}

// Prepare validates the draft and, when valid, moves the form to submitting.
func (f *Form) Prepare() (Submission, error) {
	switch f.state {
	case form.StateSubmitting:
		return Submission{}, form.ErrBusy
	case form.StateSucceeded:
		return Submission{}, form.ErrClosed
	}

	f.message = ""

	f.errs = f.draft.Validate(f.catalog)
	if len(f.errs) > 0 {
		f.state = form.StateFailed
		return Submission{}, form.ErrInvalid
	}

	f.state = form.StateSubmitting

	return Submission{
		ID:      f.id,
		Payload: f.draft.Payload(f.now()),
		Key:     f.IdempotencyKey(),
		gw:      f.gw,
	}, nil
}

// Complete records the outcome of a submission.
func (f *Form) Complete(err error) {
	if err != nil {
		slog.Error("failed to save invoice", "id", f.id, "error", err)

		f.state = form.StateEditing
		f.message = f.catalog.T("error_saving")

		return
	}

	f.state = form.StateSucceeded

	if f.IsEdit() {
		f.message = f.catalog.T("invoice_updated")
	} else {
		f.message = f.catalog.T("invoice_created")
	}
}

func (f *Form) Submit(ctx context.Context) error {
	sub, err := f.Prepare()
	if err != nil {
		return err
	}

	_, err = sub.Send(ctx)
	f.Complete(err)

	return err
}
