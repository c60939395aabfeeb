// Package page renders the server-side HTML of the web front-end.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/MrJamesThe3rd/ficore/internal/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data every template receives. Handlers embed it in their own
// view structs.
type Page struct {
	AppName   string
	Lang      string
	Languages []i18n.Language
	Catalog   i18n.Catalog
	Path      string
}

// T translates key for the page language.
func (p Page) T(key string) string {
	return p.Catalog.T(key)
}

// URL returns path with the page language appended.
func (p Page) URL(path string) string {
	return path + "?lang=" + url.QueryEscape(p.Lang)
}

// Amount formats an amount for the page language.
func (p Page) Amount(amount float64) string {
	return i18n.FormatAmount(p.Lang, amount)
}

// Option is a select entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// categoryKeys maps the fixed categories to their translation keys.
var categoryKeys = map[string]string{
	"Sales":     "sales",
	"Utilities": "utilities",
	"Transport": "transport",
	"Other":     "other",
}

// Categories labels category names for display. The fixed categories are
// translated; suggested ones are shown as-is.
func (p Page) Categories(names []string) []Option {
	opts := make([]Option, len(names))
	for i, name := range names {
		label := name
		if key, ok := categoryKeys[name]; ok {
			label = p.T(key)
		}

		opts[i] = Option{Value: name, Label: label}
	}

	return opts
}

type Renderer struct {
	appName  string
	fallback string
	src      i18n.Source
	pages    map[string]*template.Template
}

// NewRenderer parses the embedded templates. fallback is the language used
// when neither ?lang= nor Accept-Language names a supported one.
func NewRenderer(appName, fallback string, src i18n.Source) (*Renderer, error) {
	pages := make(map[string]*template.Template)

	for _, name := range []string{"home", "invoice", "transaction", "error"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}

		pages[name] = t
	}

	return &Renderer{
		appName:  appName,
		fallback: fallback,
		src:      src,
		pages:    pages,
	}, nil
}

// Page resolves the request language and loads its catalog. An unavailable
// translation service yields the default labels.
func (rd *Renderer) Page(r *http.Request) Page {
	lang := i18n.Match(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"), rd.fallback)

	return Page{
		AppName:   rd.appName,
		Lang:      lang,
		Languages: i18n.Languages,
		Catalog:   i18n.Load(r.Context(), rd.src, lang),
		Path:      r.URL.Path,
	}
}

// Render executes the named page into w with the given status.
func (rd *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := rd.pages[name]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("failed to render page", "page", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "page", name, "error", err)
	}
}

// Error renders the error page with a translated message.
func (rd *Renderer) Error(w http.ResponseWriter, p Page, status int, messageKey string) {
	rd.Render(w, status, "error", struct {
		Page
		Message string
	}{p, p.T(messageKey)})
}
