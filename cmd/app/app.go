package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/DRSN-tech/go-recommender/internal/app"
	config "github.com/DRSN-tech/go-recommender/internal/cfg"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	dataDir  string
)

var rootCmd = &cobra.Command{
	Use:   "recommender",
	Short: "Apparel catalog browsing and visual similarity service",
	Long: `Apparel catalog browsing and visual similarity service.

Without a subcommand the HTTP API is started (same as "serve").

Examples:
  recommender serve
  recommender import --data-dir ./data`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the catalog and serve the HTTP API",
	RunE:  runServe,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the file dataset into PostgreSQL and Qdrant",
	Long: `Copy the file dataset into PostgreSQL and, when QDRANT_HOST is set, into Qdrant.

After an import the service can be started with METADATA_SOURCE=postgres
and EMBEDDING_SOURCE=qdrant.`,
	RunE: runImport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "dataset directory (overrides DATASET_DIR)")

	rootCmd.AddCommand(serveCmd, importCmd)
}

func newLogger() logger.Logger {
	if logLevel != "" {
		return logger.NewSlogLoggerWithLevel(logLevel)
	}

	return logger.NewSlogLogger()
}

func loadConfig(log logger.Logger) (*config.Config, error) {
	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		return nil, err
	}

	if dataDir != "" {
		cfg.Dataset.Dir = dataDir
	}

	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	log := newLogger()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		return err
	}

	return application.Run()
}

func runImport(cmd *cobra.Command, _ []string) error {
	log := newLogger()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := app.RunImport(ctx, cfg, log); err != nil {
		log.Errorf(err, "import failed")
		return err
	}

	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
