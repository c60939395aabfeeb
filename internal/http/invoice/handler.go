package invoice

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ficore/internal/form"
	"github.com/MrJamesThe3rd/ficore/internal/gateway"
	"github.com/MrJamesThe3rd/ficore/internal/http/page"
	"github.com/MrJamesThe3rd/ficore/internal/invoice"
)

type Handler struct {
	gw    invoice.Gateway
	pages *page.Renderer
}

func NewHandler(gw invoice.Gateway, pages *page.Renderer) *Handler {
	return &Handler{gw: gw, pages: pages}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/create", h.createForm)
	r.Post("/create", h.save)
	r.Get("/update", h.lookup)
	r.Get("/update/{id}", h.updateForm)
	r.Post("/update/{id}", h.save)
}

type invoiceView struct {
	page.Page
	Heading       string
	Action        string
	ID            string
	AmountDisplay string
	Message       string
	Key           string
	Draft         invoice.Draft
	Errors        form.FieldErrors
	Statuses      []invoice.Status
}

func (h *Handler) view(p page.Page, f *invoice.Form) invoiceView {
	v := invoiceView{
		Page:     p,
		Heading:  "create_invoice",
		Action:   "/invoices/create",
		Message:  f.Message(),
		Key:      f.IdempotencyKey(),
		Draft:    f.Draft(),
		Errors:   f.Errors(),
		Statuses: invoice.Statuses,
	}

	if f.IsEdit() {
		v.Heading = "edit_invoice"
		v.ID = f.ID()
		v.Action = "/invoices/update/" + url.PathEscape(f.ID())

		if amt, err := invoice.ParseAmount(f.Draft().Amount); err == nil {
			v.AmountDisplay = p.Amount(amt.InexactFloat64())
		}
	}

	return v
}

func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	p := h.pages.Page(r)
	f := invoice.NewForm(h.gw, p.Catalog)
	f.UseIdempotencyKey(uuid.NewString())

	h.pages.Render(w, http.StatusOK, "invoice", h.view(p, f))
}

// lookup redirects the home page's id form to the edit route.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		http.Error(w, "id query parameter is required", http.StatusBadRequest)
		return
	}

	p := h.pages.Page(r)
	http.Redirect(w, r, p.URL("/invoices/update/"+url.PathEscape(id)), http.StatusSeeOther)
}

func (h *Handler) updateForm(w http.ResponseWriter, r *http.Request) {
	p := h.pages.Page(r)
	id := chi.URLParam(r, "id")

	f := invoice.NewForm(h.gw, p.Catalog)
	if err := f.LoadForEdit(r.Context(), id); err != nil {
		h.pages.Error(w, p, loadStatus(err), "error_loading")
		return
	}

	h.pages.Render(w, http.StatusOK, "invoice", h.view(p, f))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := h.pages.Page(r)

	f := invoice.NewForm(h.gw, p.Catalog)
	if id := chi.URLParam(r, "id"); id != "" {
		f.SetID(id)
	}

	for _, name := range invoice.Fields {
		if _, ok := r.PostForm[name]; ok {
			_ = f.SetField(name, r.PostForm.Get(name))
		}
	}

	// Edits clear the key, so pin it last.
	f.UseIdempotencyKey(r.PostForm.Get("idempotency_key"))

	err := f.Submit(r.Context())
	switch {
	case err == nil:
		notice := "invoice_created"
		if f.IsEdit() {
			notice = "invoice_updated"
		}

		http.Redirect(w, r, p.URL("/")+"&notice="+notice, http.StatusSeeOther)
	case errors.Is(err, form.ErrInvalid):
		h.pages.Render(w, http.StatusUnprocessableEntity, "invoice", h.view(p, f))
	default:
		h.pages.Render(w, http.StatusBadGateway, "invoice", h.view(p, f))
	}
}

func loadStatus(err error) int {
	var statusErr *gateway.StatusError
	if errors.Is(err, invoice.ErrNotFound) || (errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadGateway
}
