package main

import (
	"fmt"
	"os"

	"github.com/jonesrussell/north-cloud/listening/internal/api"
	"github.com/jonesrussell/north-cloud/listening/internal/config"
	"github.com/jonesrussell/north-cloud/listening/internal/elasticsearch"
	"github.com/jonesrussell/north-cloud/listening/internal/logger"
	"github.com/jonesrussell/north-cloud/listening/internal/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting listening service",
		logger.String("name", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	// Setup Elasticsearch
	esClient, err := setupElasticsearch(cfg, log)
	if err != nil {
		log.Error("Failed to create Elasticsearch client", logger.Error(err))
		return 1
	}

	return runServer(cfg, esClient, log)
}

// loadConfig loads configuration from config file.
func loadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	return config.Load(configPath)
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, err
	}
	return log.With(logger.String("service", "listening-service")), nil
}

// setupElasticsearch creates and connects the Elasticsearch client.
func setupElasticsearch(cfg *config.Config, log logger.Logger) (*elasticsearch.Client, error) {
	log.Info("Connecting to Elasticsearch", logger.String("url", cfg.Elasticsearch.URL))
	esClient, err := elasticsearch.NewClient(&cfg.Elasticsearch)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to Elasticsearch")
	return esClient, nil
}

// runServer creates the analytics service, handler, and HTTP server, then
// runs with graceful shutdown.
func runServer(cfg *config.Config, esClient *elasticsearch.Client, log logger.Logger) int {
	analytics := service.NewAnalyticsService(esClient, cfg, log)
	log.Info("Analytics service initialized")

	metrics := api.NewMetrics()
	handler := api.NewHandler(analytics, log, metrics)
	server := api.NewServer(handler, metrics, cfg, log)

	log.Info("Listening service starting",
		logger.Int("port", cfg.Service.Port),
		logger.String("index_pattern", cfg.Elasticsearch.IndexPattern),
	)

	if runErr := server.Run(); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return 1
	}

	log.Info("Listening service exited cleanly")
	return 0
}
