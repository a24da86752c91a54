package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/nerrad567/smarthouse-core/schema"

	"github.com/nerrad567/smarthouse-core/internal/infrastructure/config"
	"github.com/nerrad567/smarthouse-core/internal/infrastructure/database"
	"github.com/nerrad567/smarthouse-core/internal/infrastructure/logging"
	"github.com/nerrad567/smarthouse-core/internal/smarthouse"
)

// configEnvVar names the environment variable consulted when --config is not given.
const configEnvVar = "SMARTHOUSE_CONFIG"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "smarthouse",
	Short: "Smart house device registry and statistics",
	Long: `smarthouse loads a house (floors, rooms, sensors and actuators) from a
SQLite store and answers questions about it: latest readings, daily average
temperatures and hours of high humidity. Actuator states can be switched and
persisted, and the whole house can be exported to InfluxDB and MQTT.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to config.yaml (default $"+configEnvVar+", else built-in defaults)")
}

// app bundles what every command needs: configuration, logger and the
// repository with its open store.
type app struct {
	cfg  *config.Config
	log  *logging.Logger
	repo *smarthouse.SQLiteRepository
}

// loadConfig resolves the config file from --config, then SMARTHOUSE_CONFIG,
// and falls back to defaults with environment overrides.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

// openApp loads config, sets up logging and opens the repository.
// Callers must call close when done.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := logging.New(cfg.Logging, version)

	repo, err := smarthouse.OpenSQLiteRepository(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	repo.SetLogger(log)
	log.Debug("store opened", "path", cfg.Database.Path)

	return &app{cfg: cfg, log: log, repo: repo}, nil
}

// loadHouse deep-loads the house and names it from config.
func (a *app) loadHouse(ctx context.Context) (*smarthouse.House, error) {
	house, err := a.repo.LoadHouse(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading house: %w", err)
	}
	house.Name = a.cfg.House.Name
	return house, nil
}

func (a *app) close() {
	if err := a.repo.Close(); err != nil {
		a.log.Error("error closing store", "error", err)
	}
}

// withApp runs fn with an open app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	return fn(ctx, a)
}
