package main

import (
	"fmt"

	"homefinder/internal/config"
	"homefinder/internal/logging"
	"homefinder/internal/repository"
	"homefinder/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "homefinder",
	Short:         "Property listing site backed by a headless content store",
	Long:          `Serves property listings from Sanity, PostgreSQL or SQLite as HTML pages and a JSON API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// app bundles what every command needs
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	listings *service.ListingService
	close    func() error
}

func setup() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return nil, err
	}
	for _, warning := range cfg.Warnings {
		logger.Warn("ignoring config value", zap.String("reason", warning))
	}

	client, closeFn, err := newContentClient(cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	queries, err := service.QueriesFor(cfg.Content.Backend)
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	listings := service.NewListingService(client, queries, service.NewNormalizer(logger), service.ListingOptions{
		DocumentType:            cfg.Content.DocumentType,
		DetailRequiresPublished: cfg.Content.DetailRequiresPublished,
	}, logger)

	logger.Info("content store ready",
		zap.String("backend", cfg.Content.Backend),
		zap.String("document_type", cfg.Content.DocumentType),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		listings: listings,
		close: func() error {
			_ = logger.Sync()
			return closeFn()
		},
	}, nil
}

// newContentClient opens the configured backend
func newContentClient(cfg *config.Config) (repository.Client, func() error, error) {
	switch cfg.Content.Backend {
	case config.BackendSanity:
		client := repository.NewSanityClient(&cfg.Sanity, cfg.Content.QueryTimeout)
		return client, func() error { return nil }, nil
	case config.BackendPostgres:
		client, err := repository.NewSQLClient(
			repository.DriverPostgres,
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	case config.BackendSQLite:
		client, err := repository.NewSQLClient(
			repository.DriverSQLite,
			cfg.SQLite.Path,
			cfg.SQLite.MaxConnections,
			cfg.SQLite.MaxIdleConnections,
		)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown content backend %q", cfg.Content.Backend)
	}
}
