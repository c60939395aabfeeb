package matching

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ficore/internal/http/page"
	"github.com/MrJamesThe3rd/ficore/internal/transaction"
)

// Handler serves live category suggestions for the transaction form.
type Handler struct {
	suggester transaction.Suggester
	pages     *page.Renderer
}

func NewHandler(suggester transaction.Suggester, pages *page.Renderer) *Handler {
	return &Handler{suggester: suggester, pages: pages}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
}

type suggestResponse struct {
	Description string        `json:"description"`
	Suggestions []string      `json:"suggestions"`
	Options     []page.Option `json:"options"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	desc := r.URL.Query().Get("description")

	suggestions := h.suggester.Suggest(desc)
	if suggestions == nil {
		suggestions = []string{}
	}

	p := h.pages.Page(r)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestResponse{
		Description: desc,
		Suggestions: suggestions,
		Options:     p.Categories(transaction.CategoryOptions(suggestions)),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
