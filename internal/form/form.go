// Package form holds the pieces shared by the invoice and transaction entry
// flows: the submission state machine, field-scoped errors and the
// idempotency key carried with every prepared submission.
package form

import (
	"context"
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInvalid is returned when a draft has field errors and was not sent.
	ErrInvalid = errors.New("draft has invalid fields")
	// ErrBusy is returned when a submission is already outstanding.
	ErrBusy = errors.New("submission already in progress")
	// ErrClosed is returned when submitting a form that already succeeded.
	ErrClosed = errors.New("form already submitted")
	// ErrUnknownField is returned by SetField for names the draft does not have.
	ErrUnknownField = errors.New("unknown field")
)

// State is the lifecycle position of a form.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}

	return "unknown"
}

// Editable reports whether the user may keep changing the draft.
func (s State) Editable() bool {
	return s == StateEditing || s == StateFailed
}

// FieldErrors maps a field name to a user-facing message.
type FieldErrors map[string]string

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Fields returns the names with errors in a stable order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}

	sort.Strings(fields)

	return fields
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}

	return strings.Join(parts, "; ")
}

type idempotencyKey struct{}

// WithIdempotencyKey attaches the key the gateway sends as Idempotency-Key.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}

	return context.WithValue(ctx, idempotencyKey{}, key)
}

// IdempotencyKey returns the key attached with WithIdempotencyKey, if any.
func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyKey{}).(string)
	return key
}
