package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
}

// StoreConfig configures the persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port      int     `yaml:"port" mapstructure:"port"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests/sec across compute endpoints
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ScoringConfig carries both scoring modes' weight tables. The specific
// numbers are tunable policy, not law; the validators only enforce the
// structural invariants (non-negative weights, correct sum).
type ScoringConfig struct {
	Feed FeedWeights `yaml:"feed" mapstructure:"feed"`
	Deal DealWeights `yaml:"deal" mapstructure:"deal"`
}

// FeedWeights are the ingestion-time score weights, in points (sum = 100).
type FeedWeights struct {
	GrossYield   float64 `yaml:"gross_yield" mapstructure:"gross_yield"`
	NetYield     float64 `yaml:"net_yield" mapstructure:"net_yield"`
	PricePerArea float64 `yaml:"price_per_area" mapstructure:"price_per_area"`
	DaysOnMarket float64 `yaml:"days_on_market" mapstructure:"days_on_market"`
}

// DealWeights are the post-underwriting score weights, as fractions
// (sum = 1.0).
type DealWeights struct {
	Financial float64 `yaml:"financial" mapstructure:"financial"`
	Value     float64 `yaml:"value" mapstructure:"value"`
	Demand    float64 `yaml:"demand" mapstructure:"demand"`
	Risk      float64 `yaml:"risk" mapstructure:"risk"`
	EPC       float64 `yaml:"epc" mapstructure:"epc"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("YIELDPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "underwrite.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 25.0)
	v.SetDefault("server.rate_burst", 50)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("scoring.feed.gross_yield", 35.0)
	v.SetDefault("scoring.feed.net_yield", 30.0)
	v.SetDefault("scoring.feed.price_per_area", 20.0)
	v.SetDefault("scoring.feed.days_on_market", 15.0)

	v.SetDefault("scoring.deal.financial", 0.40)
	v.SetDefault("scoring.deal.value", 0.20)
	v.SetDefault("scoring.deal.demand", 0.15)
	v.SetDefault("scoring.deal.risk", 0.15)
	v.SetDefault("scoring.deal.epc", 0.10)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
