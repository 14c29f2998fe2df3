// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peterkuimelis/autobattler/internal/game"
)

// Config is shared by every command. Flags override these values.
type Config struct {
	DecksFile    string `env:"AUTOBATTLER_DECKS_FILE" envDefault:"decks.yaml"`
	CatalogFile  string `env:"AUTOBATTLER_CATALOG_FILE"`
	HTTPAddr     string `env:"AUTOBATTLER_HTTP_ADDR" envDefault:":8080"`
	BatchWorkers int    `env:"AUTOBATTLER_BATCH_WORKERS" envDefault:"4"`
	MaxTurns     int    `env:"AUTOBATTLER_MAX_TURNS" envDefault:"100"`
	Logging      LoggingConfig
}

// LoggingConfig selects the operational log level and encoding.
type LoggingConfig struct {
	Level  string `env:"AUTOBATTLER_LOG_LEVEL" envDefault:"info"`
	Format string `env:"AUTOBATTLER_LOG_FORMAT" envDefault:"console"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BatchWorkers < 1 {
		return Config{}, fmt.Errorf("AUTOBATTLER_BATCH_WORKERS must be positive, got %d", cfg.BatchWorkers)
	}
	if cfg.MaxTurns < 1 {
		return Config{}, fmt.Errorf("AUTOBATTLER_MAX_TURNS must be positive, got %d", cfg.MaxTurns)
	}
	return cfg, nil
}

// NewLogger builds a zap logger. "json" selects the production encoder,
// anything else a colored console encoder.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// LoadCatalog returns the catalog file's cards, or the built-in catalog when
// no file is configured.
func (c Config) LoadCatalog() (*game.Catalog, error) {
	if c.CatalogFile == "" {
		return game.DefaultCatalog(), nil
	}
	cat, err := game.LoadCatalog(c.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", c.CatalogFile, err)
	}
	return cat, nil
}

// LoadDecks builds every deck in the decks file against cat.
func (c Config) LoadDecks(cat *game.Catalog) ([]*game.Deck, error) {
	decks, err := game.ParseDeckFile(c.DecksFile, cat)
	if err != nil {
		return nil, fmt.Errorf("load decks %s: %w", c.DecksFile, err)
	}
	return decks, nil
}
