package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mediashelf/collection-helper/internal/booklore"
	"github.com/mediashelf/collection-helper/internal/catalog"
	"github.com/mediashelf/collection-helper/internal/config"
	"github.com/mediashelf/collection-helper/internal/emby"
	"github.com/mediashelf/collection-helper/internal/handler"
	"github.com/mediashelf/collection-helper/internal/llm"
	"github.com/mediashelf/collection-helper/internal/logging"
	"github.com/mediashelf/collection-helper/internal/recommend"
	"github.com/mediashelf/collection-helper/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("info", "console")
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	// ------------ Catalog backends ---------------
	embyClient := emby.NewClient(cfg.Emby.URL, cfg.Emby.APIKey, cfg.Emby.Timeout)
	bookloreClient := booklore.NewClient(cfg.Booklore.URL, cfg.Booklore.APIKey, cfg.Booklore.Timeout)
	facade := catalog.NewFacade(embyClient, bookloreClient, log)

	// ------------ LLM gateway ---------------
	var llmClient llm.Client = llm.New(cfg.LLM)
	if cfg.LLM.Breaker {
		llmClient = llm.NewBreakerClient(llmClient, log)
	}

	engine := recommend.NewEngine(facade, llmClient, cfg.LLM.Timeout, log)

	// ---------------- Server --------------------
	h := handler.NewHandler(engine, facade, log)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.Setup(h, log, cfg.Server.Timeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("llm_provider", cfg.LLM.Provider).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
