package main

import (
	"fmt"
	"log/slog"
	"strings"

	"reelsmith/internal/api"
	"reelsmith/internal/config"
	"reelsmith/internal/logging"
	"reelsmith/internal/mediastore"
	"reelsmith/internal/notifications"
	"reelsmith/internal/pipeline"
	"reelsmith/internal/services/textgen"
	"reelsmith/internal/services/videogen"
)

// runtimeComponents holds everything a configured pipeline needs, shared by
// the serve and generate commands.
type runtimeComponents struct {
	cfg      *config.Config
	logger   *slog.Logger
	orch     *pipeline.Orchestrator
	store    *mediastore.Store
	notifier notifications.Service
	checkers map[string]api.HealthChecker
}

func buildComponents(configPath, modeOverride string) (*runtimeComponents, error) {
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	// The override gets the same normalization Load applies to the config
	// field, so --mode Render and mode = "Render" behave alike.
	if modeOverride = strings.ToLower(strings.TrimSpace(modeOverride)); modeOverride != "" {
		cfg.Pipeline.Mode = modeOverride
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	mode, err := pipeline.ParseMode(cfg.Pipeline.Mode)
	if err != nil {
		return nil, err
	}

	textClient := textgen.NewClient(textgen.Config{
		APIKey:         cfg.TextGen.APIKey,
		BaseURL:        cfg.TextGen.BaseURL,
		Model:          cfg.TextGen.Model,
		TimeoutSeconds: cfg.TextGen.TimeoutSeconds,
	})
	checkers := map[string]api.HealthChecker{"textgen": textClient}

	components := &runtimeComponents{
		cfg:      cfg,
		logger:   logger,
		notifier: notifications.NewService(cfg),
		checkers: checkers,
	}

	var renderer pipeline.VideoRenderer
	var pipelineStore pipeline.VideoStore
	if mode == pipeline.ModeRender {
		videoClient := videogen.NewClient(videogen.Config{
			APIKey:                 cfg.VideoGen.APIKey,
			BaseURL:                cfg.VideoGen.BaseURL,
			Model:                  cfg.VideoGen.Model,
			TimeoutSeconds:         cfg.VideoGen.TimeoutSeconds,
			DownloadTimeoutSeconds: cfg.VideoGen.DownloadTimeoutSeconds,
		})
		checkers["videogen"] = videoClient

		store, err := mediastore.New(cfg.Paths.VideosDir)
		if err != nil {
			return nil, err
		}
		components.store = store
		renderer = videoClient
		pipelineStore = store
	}

	orch, err := pipeline.New(mode, textClient, renderer, pipelineStore, logger)
	if err != nil {
		return nil, err
	}
	components.orch = orch
	return components, nil
}
