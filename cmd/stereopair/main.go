package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"stereopair/internal/audio"
	"stereopair/internal/pair"
	"stereopair/internal/platform/config"
	"stereopair/internal/platform/logger"
)

// Exit codes. Missing tools and missing speakers are operator problems with
// distinct remediations (install a package vs. re-pair a speaker), so they
// get distinct codes.
const (
	exitOK            = 0
	exitMissingDevice = 1
	exitMissingTool   = 2
	exitAudioServer   = 3
	exitUsage         = 4
)

func main() {
	_ = config.Load()

	cfg := pair.Config{
		SinkName:        config.GetEnv("SINK_NAME", "stereo_pair"),
		SinkDescription: config.GetEnv("SINK_DESCRIPTION", "Stereo Pair"),
		LeftName:        config.GetEnv("LEFT_SPEAKER", ""),
		RightName:       config.GetEnv("RIGHT_SPEAKER", ""),
		SettleTimeout:   config.GetEnvMillis("SETTLE_TIMEOUT_MS", pair.DefaultSettleTimeout),
		SettlePoll:      config.GetEnvMillis("SETTLE_POLL_MS", pair.DefaultSettlePoll),
	}

	log := logger.New(config.GetEnv("LOG_LEVEL", "info"), config.GetEnv("LOG_FORMAT", "text"))

	if cfg.LeftName == "" || cfg.RightName == "" {
		log.Error("LEFT_SPEAKER and RIGHT_SPEAKER must be set (env or .env)")
		os.Exit(exitUsage)
	}

	svc := pair.NewService(audio.NewClient(), audio.Tools{}, cfg, log)

	rep, err := svc.Run(context.Background())
	if err != nil {
		switch {
		case errors.Is(err, pair.ErrMissingTool):
			os.Exit(exitMissingTool)
		case errors.Is(err, pair.ErrMissingDevice):
			os.Exit(exitMissingDevice)
		default:
			os.Exit(exitAudioServer)
		}
	}

	if failed := rep.FailedLinks(); len(failed) > 0 {
		for _, lr := range failed {
			log.Warn("link not created",
				slog.String("source", lr.Link.Source),
				slog.String("dest", lr.Link.Dest),
				slog.String("error", lr.Err.Error()))
		}
		log.Warn("stereo pair wired partially; re-run after checking the speakers",
			slog.Int("failed_links", len(failed)))
	} else {
		log.Info("stereo pair ready", slog.String("sink", cfg.SinkName))
	}
	os.Exit(exitOK)
}
