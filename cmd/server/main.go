package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/config"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/infra"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/printing"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/receipt"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/repository"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/router"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Print backend chain, tried in order: thermal device, HTTP relay
	// behind a circuit breaker, PDF spool as the last resort.
	relayCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	relay := printing.NewRelayBackend(cfg.PrintRelayURL, relayCB)
	printDispatcher := printing.NewDispatcher(
		printing.NewDeviceBackend(cfg.PrinterDevice),
		relay,
		printing.NewPDFBackend(cfg.ReceiptSpoolPath),
	)

	// Worker pool for async receipt printing. Handlers are wired here
	// (composition root) so the pool has full access to infrastructure.
	storeInfo := receipt.StoreInfo{
		Name:    cfg.StoreName,
		Address: cfg.StoreAddress,
		City:    cfg.StoreCity,
	}
	jobs := worker.NewDispatcher(rdb)
	txRepo := repository.NewTransactionRepository(db)
	handlers := &worker.Handlers{
		Receipt: worker.NewReceiptWorker(txRepo, printDispatcher, storeInfo, rdb),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, relay, printDispatcher, jobs)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("transaction engine listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
