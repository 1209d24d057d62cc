package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgallion1/docqa/internal/api"
	"github.com/dgallion1/docqa/internal/config"
	"github.com/dgallion1/docqa/internal/embedding"
	"github.com/dgallion1/docqa/internal/knowledge"
	"github.com/dgallion1/docqa/internal/parser"
	"github.com/dgallion1/docqa/internal/resolver"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := config.Load()
	level, _ := config.ParseLevel(cfg.LogLevel)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	enc, err := newEncoder(cfg)
	if err != nil {
		log.Error("invalid embedding configuration", "error", err)
		os.Exit(1)
	}
	stats := embedding.NewStats(1 * time.Hour)
	enc = embedding.Instrument(enc, stats)

	// The knowledge base must be complete before any query is served.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	base, err := knowledge.Load(loadCtx, knowledge.Options{
		DocumentPath:  cfg.DocumentPath,
		QAPath:        cfg.QAPath,
		HeadingCutoff: cfg.HeadingMatchCutoff,
		Parser:        parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		Encoder:       enc,
		Logger:        log,
	})
	loadCancel()
	if err != nil {
		var loadErr *knowledge.LoadError
		if errors.As(err, &loadErr) {
			log.Error("cannot build knowledge base", "path", loadErr.Path, "error", loadErr.Err)
		} else {
			log.Error("cannot build knowledge base", "error", err)
		}
		os.Exit(1)
	}

	res := resolver.New(base, resolver.Options{
		QACutoff: cfg.QAMatchCutoff,
		MinScore: cfg.SemanticMinScore,
		TopN:     cfg.SemanticTopN,
		MaxLines: cfg.MaxAnswerLines,
		Logger:   log,
	})

	srv := api.NewServer(res, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.EmbedTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docqa", "port", cfg.Port, "model", base.Index.Model())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newEncoder(cfg config.Config) (embedding.Encoder, error) {
	if cfg.EmbedProvider == config.ProviderOpenAI {
		enc, err := embedding.NewOpenAIEncoder(cfg.EmbedAPIKey, cfg.EmbedBaseURL, cfg.EmbedModel, cfg.EmbedTimeout)
		if err != nil {
			return nil, err
		}
		return enc, nil
	}
	enc, err := embedding.NewOllamaEncoder(cfg.EmbedBaseURL, cfg.EmbedModel, cfg.EmbedTimeout)
	if err != nil {
		return nil, err
	}
	return enc, nil
}
