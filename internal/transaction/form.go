package transaction

import (
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ficore/internal/form"
	"github.com/MrJamesThe3rd/ficore/internal/i18n"
)

//go:generate mockgen -source=form.go -destination=gateway_mock.go -package=transaction
type Gateway interface {
	CreateTransaction(ctx context.Context, p Payload) (*Record, error)
}

type Suggester interface {
	Suggest(description string) []string
}

// Form drives one transaction entry: field edits, category suggestions,
// validation and submission. It is not safe for concurrent use; front-ends
// own one Form per screen and touch it only from their event loop.
type Form struct {
	gw        Gateway
	suggester Suggester
	catalog   i18n.Catalog

	draft       Draft
	suggestions []string
	state       form.State
	errs        form.FieldErrors
	message     string
	key         string
}

func NewForm(gw Gateway, suggester Suggester, catalog i18n.Catalog) *Form {
	return &Form{
		gw:        gw,
		suggester: suggester,
		catalog:   catalog,
		draft:     NewDraft(),
		errs:      form.FieldErrors{},
	}
}

func (f *Form) Draft() Draft             { return f.draft }
func (f *Form) State() form.State        { return f.state }
func (f *Form) Errors() form.FieldErrors { return f.errs }

// Message is the latest user-facing notice (saved / save failed), if any.
func (f *Form) Message() string { return f.message }

// Suggestions are the categories proposed for the current description.
func (f *Form) Suggestions() []string { return f.suggestions }

// CategoryOptions are the selectable categories: the fixed set plus suggestions.
func (f *Form) CategoryOptions() []string {
	return CategoryOptions(f.suggestions)
}

// UseIdempotencyKey pins the key sent with the next submission. Front-ends
// that rebuild the form per request use it to carry the key across requests.
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

// SetField applies an edit by wire field name. Any edit returns the form to
// editing; an edit that changes the draft also clears the pinned
// idempotency key.
func (f *Form) SetField(name, value string) error {
	if f.state == form.StateSubmitting {
		return form.ErrBusy
	}

	before := f.draft
	if err := f.draft.Set(name, value); err != nil {
		return err
	}

	if name == FieldDescription {
		f.suggestions = f.suggester.Suggest(value)
	}

	f.state = form.StateEditing
	if f.draft != before {
		f.key = ""
	}

	delete(f.errs, name)

	return nil
}

// Submission is a validated, serialized draft ready to be sent. It does not
// reference the Form, so it can be sent from another goroutine.
type Submission struct {
	Payload Payload
	Key     string

	gw Gateway
}

// Send performs the single create call for the submission.
func (s Submission) Send(ctx context.Context) (*Record, error) {
	return s.gw.CreateTransaction(form.WithIdempotencyKey(ctx, s.Key), s.Payload)
}

// Prepare validates the draft and, when valid, moves the form to submitting
// and returns the submission. Invalid drafts never reach the network.
func (f *Form) Prepare() (Submission, error) {
	switch f.state {
	case form.StateSubmitting:
		return Submission{}, form.ErrBusy
	case form.StateSucceeded:
		return Submission{}, form.ErrClosed
	}

	f.message = ""

	f.errs = f.draft.Validate(f.catalog)
	if !f.errs.Has(FieldCategory) && !slices.Contains(f.CategoryOptions(), f.draft.Category) {
		f.errs[FieldCategory] = f.catalog.T("invalid_choice")
	}

	if len(f.errs) > 0 {
		f.state = form.StateFailed
		return Submission{}, form.ErrInvalid
	}

	f.state = form.StateSubmitting

	return Submission{
		Payload: f.draft.Payload(),
		Key:     f.IdempotencyKey(),
		gw:      f.gw,
	}, nil
}

// Complete records the outcome of a submission.
func (f *Form) Complete(err error) {
	if err != nil {
		slog.Error("failed to save transaction", "error", err)

		f.state = form.StateEditing
		f.message = f.catalog.T("error_saving")

		return
	}

	f.state = form.StateSucceeded
	f.message = f.catalog.T("transaction_saved")
}

// Submit validates, sends and records the outcome in one step.
func (f *Form) Submit(ctx context.Context) error {
	sub, err := f.Prepare()
	if err != nil {
		return err
	}

	_, err = sub.Send(ctx)
	f.Complete(err)

	return err
}
