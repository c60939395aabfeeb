package home

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ficore/internal/http/page"
)

// notices are the translation keys accepted in ?notice=.
var notices = map[string]bool{
	"invoice_created":   true,
	"invoice_updated":   true,
	"transaction_saved": true,
}

type Handler struct {
	pages *page.Renderer
}

func NewHandler(pages *page.Renderer) *Handler {
	return &Handler{pages: pages}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.home)
}

type homeView struct {
	page.Page
	Notice string
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	p := h.pages.Page(r)

	v := homeView{Page: p}
	if key := r.URL.Query().Get("notice"); notices[key] {
		v.Notice = p.T(key)
	}

	h.pages.Render(w, http.StatusOK, "home", v)
}
