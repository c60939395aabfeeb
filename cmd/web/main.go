package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ficore/internal/config"
	"github.com/MrJamesThe3rd/ficore/internal/gateway"
	ficoreHttp "github.com/MrJamesThe3rd/ficore/internal/http"
	homeHandler "github.com/MrJamesThe3rd/ficore/internal/http/home"
	invoiceHandler "github.com/MrJamesThe3rd/ficore/internal/http/invoice"
	matchingHandler "github.com/MrJamesThe3rd/ficore/internal/http/matching"
	"github.com/MrJamesThe3rd/ficore/internal/http/page"
	txHandler "github.com/MrJamesThe3rd/ficore/internal/http/transaction"
	"github.com/MrJamesThe3rd/ficore/internal/matching"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	suggester, err := matching.LoadSuggester(cfg.Categories.RulesFile)
	if err != nil {
		slog.Error("failed to load category rules", "error", err)
		os.Exit(1)
	}

	gw := gateway.NewClient(cfg.BackendURL(), cfg.Backend.Timeout)

	pages, err := page.NewRenderer(cfg.App.Name, cfg.App.Language, gw)
	if err != nil {
		slog.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	var (
		homeH        = homeHandler.NewHandler(pages)
		invoiceH     = invoiceHandler.NewHandler(gw, pages)
		transactionH = txHandler.NewHandler(gw, suggester, pages)
		matchingH    = matchingHandler.NewHandler(suggester, pages)
	)

	router := ficoreHttp.New(cfg.Web.AllowedOrigins, homeH, invoiceH, transactionH, matchingH)

	port := fmt.Sprintf(":%d", cfg.Web.Port)
	slog.Info("starting server", "port", port, "backend", cfg.BackendURL())

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
