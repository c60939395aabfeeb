package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ficore/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/ficore/internal/config"
	"github.com/MrJamesThe3rd/ficore/internal/gateway"
	"github.com/MrJamesThe3rd/ficore/internal/i18n"
	"github.com/MrJamesThe3rd/ficore/internal/matching"
)

type View int

const (
	ViewHome View = iota
	ViewInvoice
	ViewTransaction
)

type model struct {
	cfg       *config.Config
	gw        *gateway.Client
	suggester *matching.Suggester

	lang    string
	catalog i18n.Catalog
	notice  string
	width   int
	height  int

	currentView     View
	homeView        view.HomeModel
	invoiceView     view.InvoiceModel
	transactionView view.TransactionModel
}

type catalogMsg struct {
	lang    string
	catalog i18n.Catalog
}

func initialModel(cfg *config.Config, suggester *matching.Suggester) model {
	lang := i18n.Match(cfg.App.Language)

	return model{
		cfg:         cfg,
		gw:          gateway.NewClient(cfg.BackendURL(), cfg.Backend.Timeout),
		suggester:   suggester,
		lang:        lang,
		catalog:     i18n.Catalog{},
		currentView: ViewHome,
		homeView:    view.NewHomeModel(cfg.App.Name, lang, i18n.Catalog{}),
	}
}

func (m model) loadCatalogCmd() tea.Cmd {
	gw, lang := m.gw, m.lang

	return func() tea.Msg {
		return catalogMsg{lang: lang, catalog: i18n.Load(context.Background(), gw, lang)}
	}
}

func (m model) Init() tea.Cmd {
	return m.loadCatalogCmd()
}

func (m *model) refreshHome() {
	m.homeView = view.NewHomeModel(m.cfg.App.Name, m.lang, m.catalog)
	m.homeView.SetNotice(m.notice)

	if m.width > 0 {
		m.homeView.SetSize(m.width, m.height)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.homeView.SetSize(msg.Width, msg.Height)

	case catalogMsg:
		// A slower response for a language the user already switched away from.
		if msg.lang != m.lang {
			return m, nil
		}

		m.catalog = msg.catalog
		m.refreshHome()

		return m, nil

	case view.SelectMsg:
		m.notice = ""
		return m.open(msg.Action)

	case view.BackMsg:
		m.currentView = ViewHome
		m.notice = ""
		m.refreshHome()

		return m, nil

	case view.DoneMsg:
		m.currentView = ViewHome
		m.notice = msg.Notice
		m.refreshHome()

		return m, nil
	}

	var cmd tea.Cmd

	switch m.currentView {
	case ViewHome:
		var newModel tea.Model
		newModel, cmd = m.homeView.Update(msg)
		m.homeView = newModel.(view.HomeModel)
	case ViewInvoice:
		var newModel tea.Model
		newModel, cmd = m.invoiceView.Update(msg)
		m.invoiceView = newModel.(view.InvoiceModel)
	case ViewTransaction:
		var newModel tea.Model
		newModel, cmd = m.transactionView.Update(msg)
		m.transactionView = newModel.(view.TransactionModel)
	}

	return m, cmd
}

func (m model) open(action view.Action) (tea.Model, tea.Cmd) {
	switch action {
	case view.ActionCreateInvoice, view.ActionEditInvoice:
		m.currentView = ViewInvoice
		m.invoiceView = view.NewInvoiceModel(m.gw, m.lang, m.catalog, action == view.ActionEditInvoice)

		return m, m.invoiceView.Init()
	case view.ActionTransaction:
		m.currentView = ViewTransaction
		m.transactionView = view.NewTransactionModel(m.gw, m.suggester, m.catalog)

		return m, m.transactionView.Init()
	case view.ActionLanguage:
		m.lang = i18n.Next(m.lang)
		slog.Info("switching language", "lang", m.lang)

		return m, m.loadCatalogCmd()
	case view.ActionQuit:
		return m, tea.Quit
	}

	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case ViewHome:
		return m.homeView.View()
	case ViewInvoice:
		return m.invoiceView.View()
	case ViewTransaction:
		return m.transactionView.View()
	}

	return "Unknown View"
}

// setupLogging sends logs to path, or discards them when path is empty. The
// terminal belongs to the UI.
func setupLogging(cfg *config.Config) (io.Closer, error) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	if cfg.Log.File == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, opts)))
		return io.NopCloser(nil), nil
	}

	f, err := tea.LogToFile(cfg.Log.File, "ficore")
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, opts)))

	return f, nil
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.Log.File, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	suggester, err := matching.LoadSuggester(cfg.Categories.RulesFile)
	if err != nil {
		slog.Error("failed to load category rules", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(cfg, suggester), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
