// Package app wires configuration, storage, clients, and services together
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wealthlens/wealthlens/internal/clients/gemini"
	"github.com/wealthlens/wealthlens/internal/common"
	"github.com/wealthlens/wealthlens/internal/interfaces"
	"github.com/wealthlens/wealthlens/internal/services/analytics"
	"github.com/wealthlens/wealthlens/internal/services/copilot"
	"github.com/wealthlens/wealthlens/internal/services/insights"
	"github.com/wealthlens/wealthlens/internal/services/networth"
	"github.com/wealthlens/wealthlens/internal/services/simulation"
	"github.com/wealthlens/wealthlens/internal/storage"
)

// App holds all initialized services, clients, and storage. It is the shared
// core behind cmd/wealthlens-server.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager

	GeminiClient interfaces.GeminiClient

	NetWorthService   interfaces.NetWorthService
	AnalyticsService  interfaces.AnalyticsService
	SimulationService interfaces.SimulationService
	InsightService    interfaces.InsightService
	CopilotService    interfaces.CopilotService

	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Config resolution: explicit path, WEALTHLENS_CONFIG, binary dir, dev fallback
	if configPath == "" {
		configPath = os.Getenv("WEALTHLENS_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "wealthlens.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/wealthlens.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Gemini is optional; without a key the copilot answers only with
	// guardrail refusals and otherwise reports itself unconfigured.
	var geminiClient interfaces.GeminiClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - copilot will be unavailable")
		} else {
			geminiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - copilot will be unavailable")
	}

	networthService := networth.NewService(storageManager, logger)
	analyticsService := analytics.NewService(storageManager, networthService, logger)
	simulationService := simulation.NewService(storageManager, analyticsService, logger)
	insightService := insights.NewService(analyticsService, logger)
	copilotService := copilot.NewService(geminiClient, logger)

	app := &App{
		Config:            config,
		Logger:            logger,
		Storage:           storageManager,
		GeminiClient:      geminiClient,
		NetWorthService:   networthService,
		AnalyticsService:  analyticsService,
		SimulationService: simulationService,
		InsightService:    insightService,
		CopilotService:    copilotService,
		StartupTime:       time.Now(),
	}

	logger.Info().
		Str("environment", config.Environment).
		Bool("copilot", geminiClient != nil).
		Msg("Application initialized")

	return app, nil
}

// Close releases storage and client resources.
func (a *App) Close() error {
	if a.GeminiClient != nil {
		if err := a.GeminiClient.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close Gemini client")
		}
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	return nil
}
