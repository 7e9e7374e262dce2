package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stereopair/internal/audio"
	"stereopair/internal/pair"
	"stereopair/internal/platform/config"
	"stereopair/internal/platform/logger"
	"stereopair/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "8080")
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")

	cfg := pair.Config{
		SinkName:        config.GetEnv("SINK_NAME", "stereo_pair"),
		SinkDescription: config.GetEnv("SINK_DESCRIPTION", "Stereo Pair"),
		LeftName:        config.GetEnv("LEFT_SPEAKER", ""),
		RightName:       config.GetEnv("RIGHT_SPEAKER", ""),
		SettleTimeout:   config.GetEnvMillis("SETTLE_TIMEOUT_MS", pair.DefaultSettleTimeout),
		SettlePoll:      config.GetEnvMillis("SETTLE_POLL_MS", pair.DefaultSettlePoll),
	}

	log := logger.New(logLevel, logFormat)

	if cfg.LeftName == "" || cfg.RightName == "" {
		log.Error("LEFT_SPEAKER and RIGHT_SPEAKER must be set (env or .env)")
		os.Exit(1)
	}

	svc := pair.NewService(audio.NewClient(), audio.Tools{}, cfg, log)
	met := metrics.New()
	h := pair.NewHandler(svc, log, met)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", met.Handler().ServeHTTP)
	r.Post("/rewire", h.Rewire)
	r.Get("/status", h.Status)

	addr := ":" + port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", port,
		"sink", cfg.SinkName,
		"left", cfg.LeftName,
		"right", cfg.RightName,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
