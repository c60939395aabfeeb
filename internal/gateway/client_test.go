package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ficore/internal/form"
	"github.com/MrJamesThe3rd/ficore/internal/gateway"
	"github.com/MrJamesThe3rd/ficore/internal/invoice"
	"github.com/MrJamesThe3rd/ficore/internal/matching"
	"github.com/MrJamesThe3rd/ficore/internal/transaction"
)

// backend is a fake accounting API recording the last request it served.
type backend struct {
	lastBody    map[string]any
	lastKey     string
	lastPath    string
	invoiceJSON string
	savedBody   string
	status      int
	errorBody   string
}

func (b *backend) routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/api/translations/{lang}", func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "lang") {
		case "ha":
			_, _ = w.Write([]byte(`{"translations":{"save":"Ajiye","count":3}}`))
		case "flat":
			_, _ = w.Write([]byte(`{"save":"Save it"}`))
		default:
			http.Error(w, "unknown language", http.StatusNotFound)
		}
	})

	r.Get("/api/invoices/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.lastPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(b.invoiceJSON))
	})

	record := func(w http.ResponseWriter, r *http.Request) {
		b.lastPath = r.URL.Path
		b.lastKey = r.Header.Get("Idempotency-Key")
		b.lastBody = nil
		_ = json.NewDecoder(r.Body).Decode(&b.lastBody)

		if b.status != 0 {
			msg := b.errorBody
			if msg == "" {
				msg = "database unavailable"
			}

			http.Error(w, msg, b.status)

			return
		}

		body := b.savedBody
		if body == "" {
			body = `{"_id":"rec-1","amount":"25.50"}`
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(body))
	}

	r.Post("/api/invoices", record)
	r.Put("/api/invoices/{id}", record)
	r.Post("/api/transactions", record)

	return r
}

func setup(t *testing.T) (*gateway.Client, *backend) {
	t.Helper()

	b := &backend{}
	srv := httptest.NewServer(b.routes())
	t.Cleanup(srv.Close)

	return gateway.NewClient(srv.URL+"/", time.Second), b
}

func TestClient_CreateTransaction(t *testing.T) {
	c, b := setup(t)

	ctx := form.WithIdempotencyKey(context.Background(), "key-1")
	rec, err := c.CreateTransaction(ctx, transaction.Payload{
		Type:            transaction.TypeExpense,
		Category:        "Transport",
		Amount:          25.5,
		Description:     "bus fare",
		Tags:            []string{"client", "q3"},
		RecurringPeriod: transaction.PeriodNone,
	})

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "rec-1", rec.ID)
	assert.True(t, decimal.RequireFromString("25.5").Equal(rec.Amount))

	assert.Equal(t, "/api/transactions", b.lastPath)
	assert.Equal(t, "key-1", b.lastKey)
	assert.Equal(t, map[string]any{
		"type":            "expense",
		"category":        "Transport",
		"amount":          25.5,
		"description":     "bus fare",
		"tags":            []any{"client", "q3"},
		"isRecurring":     false,
		"recurringPeriod": "none",
	}, b.lastBody)
}

func TestClient_InvoiceNullDates(t *testing.T) {
	c, b := setup(t)

	_, err := c.CreateInvoice(context.Background(), invoice.Payload{
		CustomerName: "Musa Traders",
		Description:  "Consulting",
		Amount:       100,
		Status:       invoice.StatusPending,
	})
	require.NoError(t, err)

	assert.Contains(t, b.lastBody, "due_date")
	assert.Nil(t, b.lastBody["due_date"])
	assert.Nil(t, b.lastBody["settled_date"])
	assert.Empty(t, b.lastKey)

	_, err = c.UpdateInvoice(context.Background(), "inv-7", invoice.Payload{Status: invoice.StatusSettled, SettledDate: new("2024-03-20")})
	require.NoError(t, err)
	assert.Equal(t, "/api/invoices/inv-7", b.lastPath)
	assert.Equal(t, "2024-03-20", b.lastBody["settled_date"])
}

func TestClient_GetInvoice(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantNil bool
		wantErr error
	}{
		{"NumberAmount", `{"_id":"inv-7","customer_name":"Musa","amount":250,"status":"settled","due_date":"2024-03-15T00:00:00.000Z","settled_date":null}`, false, nil},
		{"StringAmount", `{"_id":"inv-7","amount":"250.00"}`, false, nil},
		{"EmptyBody", "", true, nil},
		{"Malformed", `{"_id":`, true, gateway.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, b := setup(t)
			b.invoiceJSON = tt.body

			rec, err := c.GetInvoice(context.Background(), "inv-7")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, rec)
				return
			}

			require.NotNil(t, rec)
			assert.Equal(t, "inv-7", rec.ID)
			assert.True(t, decimal.NewFromInt(250).Equal(rec.Amount))
		})
	}
}

func TestClient_GetInvoice_EscapesID(t *testing.T) {
	c, b := setup(t)
	b.invoiceJSON = `{}`

	_, err := c.GetInvoice(context.Background(), "a/b c")

	require.NoError(t, err)
	assert.Equal(t, "/api/invoices/a%2Fb%20c", b.lastPath)
}

func TestClient_StatusError(t *testing.T) {
	c, b := setup(t)
	b.status = http.StatusServiceUnavailable

	_, err := c.CreateInvoice(context.Background(), invoice.Payload{})

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.MethodPost, statusErr.Method)
	assert.Equal(t, "/api/invoices", statusErr.Path)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, "database unavailable", statusErr.Body)
	assert.NotErrorIs(t, err, gateway.ErrUnreachable)
}

func TestClient_StatusError_TrimsBodyOnRuneBoundary(t *testing.T) {
	c, b := setup(t)
	b.status = http.StatusInternalServerError
	b.errorBody = "x" + strings.Repeat("é", 600)

	_, err := c.CreateTransaction(context.Background(), transaction.Payload{})

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.True(t, utf8.ValidString(statusErr.Body))
	assert.True(t, strings.HasSuffix(statusErr.Body, "é..."))
	assert.LessOrEqual(t, len(statusErr.Body), 512+len("..."))
}

func TestClient_Save_UndecodableBodySucceeds(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"PlainText", "Created"},
		{"ObjectID", `{"_id":{"$oid":"65f0"}}`},
		{"NumericID", `{"_id":42}`},
		{"TextAmount", `{"_id":"rec-1","amount":"lots"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, b := setup(t)
			b.savedBody = tt.body

			tx, err := c.CreateTransaction(context.Background(), transaction.Payload{})
			require.NoError(t, err)
			assert.Nil(t, tx)

			inv, err := c.CreateInvoice(context.Background(), invoice.Payload{})
			require.NoError(t, err)
			assert.Nil(t, inv)

			inv, err = c.UpdateInvoice(context.Background(), "inv-7", invoice.Payload{})
			require.NoError(t, err)
			assert.Nil(t, inv)
		})
	}
}

func TestTransactionForm_CreatedWithUndecodableBody(t *testing.T) {
	c, b := setup(t)
	b.savedBody = `{"_id":{"$oid":"65f0"}}`

	f := transaction.NewForm(c, matching.DefaultSuggester(), nil)
	require.NoError(t, f.SetField("amount", "5"))
	require.NoError(t, f.SetField("description", "sale"))

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, form.StateSucceeded, f.State())
	assert.Equal(t, "Transaction saved!", f.Message())
	assert.Equal(t, "/api/transactions", b.lastPath)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := gateway.NewClient(srv.URL, time.Second)

	_, err := c.CreateTransaction(context.Background(), transaction.Payload{})

	assert.ErrorIs(t, err, gateway.ErrUnreachable)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := gateway.NewClient(srv.URL, 50*time.Millisecond)

	_, err := c.GetInvoice(context.Background(), "slow")

	assert.ErrorIs(t, err, gateway.ErrUnreachable)
}

func TestClient_ContextCancelled(t *testing.T) {
	c, _ := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CreateTransaction(ctx, transaction.Payload{})

	assert.ErrorIs(t, err, gateway.ErrUnreachable)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_Translations(t *testing.T) {
	c, _ := setup(t)

	cat, err := c.Translations(context.Background(), "ha")
	require.NoError(t, err)
	assert.Equal(t, "Ajiye", cat.T("save"))
	assert.NotContains(t, cat, "count")

	cat, err = c.Translations(context.Background(), "flat")
	require.NoError(t, err)
	assert.Equal(t, "Save it", cat.T("save"))

	_, err = c.Translations(context.Background(), "xx")

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}
