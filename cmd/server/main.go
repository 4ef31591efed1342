package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	httpadapter "github.com/dferreira/folio-backend/internal/adapter/http"
	"github.com/dferreira/folio-backend/internal/storage/sqlite"
	"github.com/dferreira/folio-backend/internal/usecase/recorder"
	"github.com/dferreira/folio-backend/internal/usecase/report"
)

const (
	defaultDBPath   = "portfolio.db"
	defaultHTTPAddr = ":8080"
	defaultAPIToken = "dev-token"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	level, err := zerolog.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	dbPath := envOr("DB_PATH", defaultDBPath)

	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("failed to open database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create schema")
	}
	log.Info().Str("path", dbPath).Msg("database ready")

	// Repositories
	dataSourceRepo := sqlite.NewDataSourceRepository(db, log)
	locationRepo := sqlite.NewLocationRepository(db, log)
	currencyRepo := sqlite.NewCurrencyRepository(db, log)
	assetRepo := sqlite.NewAssetRepository(db, log)
	marketRepo := sqlite.NewMarketRepository(db, log)
	assetMarketRepo := sqlite.NewAssetMarketRepository(db, log)
	transactionRepo := sqlite.NewTransactionRepository(db, log)
	accountRepo := sqlite.NewAccountRepository(db, log)
	rateRepo := sqlite.NewExchangeRateRepository(db, log)
	settingRepo := sqlite.NewSettingRepository(db, log)
	reportRepo := sqlite.NewReportRepository(db, log)

	// Services
	recorderSvc := recorder.NewService(locationRepo, currencyRepo, assetRepo,
		marketRepo, assetMarketRepo, dataSourceRepo, transactionRepo, log)
	reporterSvc := report.NewService(reportRepo, assetMarketRepo, currencyRepo, log)

	// HTTP adapter
	server := httpadapter.NewServer(dataSourceRepo, locationRepo, currencyRepo,
		assetRepo, marketRepo, assetMarketRepo, transactionRepo, accountRepo,
		rateRepo, settingRepo, recorderSvc, reporterSvc, log)

	addr := envOr("HTTP_ADDR", defaultHTTPAddr)
	srv := &http.Server{
		Addr:    addr,
		Handler: server.Router(envOr("API_TOKEN", defaultAPIToken)),
	}

	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(srv, log)
}

// waitForShutdown blocks until SIGTERM or SIGINT, then drains in-flight
// requests before exiting.
func waitForShutdown(srv *http.Server, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("http server stopped")
}
