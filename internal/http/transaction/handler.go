package transaction

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ficore/internal/form"
	"github.com/MrJamesThe3rd/ficore/internal/http/page"
	"github.com/MrJamesThe3rd/ficore/internal/transaction"
)

// Fields in the order posted values are applied. isRecurring precedes
// recurringPeriod because switching recurrence off resets the period.
var fields = []string{
	transaction.FieldType,
	transaction.FieldDescription,
	transaction.FieldAmount,
	transaction.FieldCategory,
	transaction.FieldTags,
	transaction.FieldIsRecurring,
	transaction.FieldRecurringPeriod,
}

type Handler struct {
	gw        transaction.Gateway
	suggester transaction.Suggester
	pages     *page.Renderer
}

func NewHandler(gw transaction.Gateway, suggester transaction.Suggester, pages *page.Renderer) *Handler {
	return &Handler{gw: gw, suggester: suggester, pages: pages}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.newForm)
	r.Post("/", h.create)
}

type transactionView struct {
	page.Page
	Message     string
	Key         string
	Draft       transaction.Draft
	Errors      form.FieldErrors
	Categories  []page.Option
	Suggestions []string
	Periods     []page.Option
}

func (h *Handler) view(p page.Page, f *transaction.Form) transactionView {
	periods := make([]page.Option, 0, len(transaction.Periods))
	for _, period := range transaction.Periods {
		periods = append(periods, page.Option{Value: string(period), Label: p.T(string(period))})
	}

	return transactionView{
		Page:        p,
		Message:     f.Message(),
		Key:         f.IdempotencyKey(),
		Draft:       f.Draft(),
		Errors:      f.Errors(),
		Categories:  p.Categories(f.CategoryOptions()),
		Suggestions: f.Suggestions(),
		Periods:     periods,
	}
}

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	p := h.pages.Page(r)
	f := transaction.NewForm(h.gw, h.suggester, p.Catalog)
	f.UseIdempotencyKey(uuid.NewString())

	h.pages.Render(w, http.StatusOK, "transaction", h.view(p, f))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := h.pages.Page(r)
	f := transaction.NewForm(h.gw, h.suggester, p.Catalog)

	for _, name := range fields {
		if _, ok := r.PostForm[name]; ok {
			_ = f.SetField(name, r.PostForm.Get(name))
		}
	}

	f.UseIdempotencyKey(r.PostForm.Get("idempotency_key"))

	err := f.Submit(r.Context())
	switch {
	case err == nil:
		http.Redirect(w, r, p.URL("/")+"&notice=transaction_saved", http.StatusSeeOther)
	case errors.Is(err, form.ErrInvalid):
		h.pages.Render(w, http.StatusUnprocessableEntity, "transaction", h.view(p, f))
	default:
		h.pages.Render(w, http.StatusBadGateway, "transaction", h.view(p, f))
	}
}
