// Package main implements the entry point for the biblio API server,
// which manages the library's book catalog and loan ledger.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/openlibro/biblio-api/internal/config"
	"github.com/openlibro/biblio-api/internal/platform/logger"
	"github.com/openlibro/biblio-api/internal/service"
	"github.com/openlibro/biblio-api/internal/store"
)

// application bundles the configured dependencies the server runs with.
type application struct {
	config         *config.Config
	logger         *slog.Logger
	catalogService service.CatalogService
	ledgerService  service.LedgerService
}

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// in-memory store into the catalog and ledger services.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// One Memory instance backs both services, so every cross-aggregate
	// operation is serialized under a single discipline.
	mem := store.NewMemory()
	catalogService := service.NewCatalogService(mem.Books(), mem, appLogger)
	ledgerService := service.NewLedgerService(mem.Books(), mem.Loans(), mem, appLogger)

	return &application{
		config:         cfg,
		logger:         appLogger,
		catalogService: catalogService,
		ledgerService:  ledgerService,
	}, nil
}
