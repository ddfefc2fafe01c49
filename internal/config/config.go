package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the application configuration. The rule parameters operators
// edit through the API live in a separate JSON document (see internal/store);
// this struct covers everything else.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Odoo   OdooConfig   `yaml:"odoo" mapstructure:"odoo"`
	Retry  RetryConfig  `yaml:"retry" mapstructure:"retry"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// StoreConfig locates the persisted JSON documents.
type StoreConfig struct {
	RulesPath   string `yaml:"rules_path" mapstructure:"rules_path"`
	HistoryPath string `yaml:"history_path" mapstructure:"history_path"`
}

// OdooConfig tunes the outbound ERP client. The endpoint and token come
// from the rules document, not from here.
type OdooConfig struct {
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RetryConfig configures activity-creation retries.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	Delay       time.Duration `yaml:"delay" mapstructure:"delay"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("POSENTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("store.rules_path", "config/rules.json")
	v.SetDefault("store.history_path", "config/history.json")
	v.SetDefault("odoo.rate_limit", 4.0)
	v.SetDefault("retry.max_attempts", 2)
	v.SetDefault("retry.delay", time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
