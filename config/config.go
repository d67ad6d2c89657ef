package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const productionEnv = "production"

type Config struct {
	Port       string `envconfig:"PORT"        default:"3001"`
	AdminToken string `envconfig:"ADMIN_TOKEN"`

	OpenAIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL"    default:"gpt-4o-mini"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`

	MPAccessToken string `envconfig:"MP_ACCESS_TOKEN"`
	MPBaseURL     string `envconfig:"MP_BASE_URL"     default:"https://api.mercadopago.com"`
	CurrencyID    string `envconfig:"CURRENCY_ID"     default:"CLP"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:5173"`

	Environment string `envconfig:"APP_ENV"   default:"development"`
	Debug       bool   `envconfig:"DEBUG"     default:"false"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DataFile  string   `envconfig:"DATA_FILE"  default:"data/db.json"`
	SeedFiles []string `envconfig:"SEED_FILES" default:"data/seed.json,data/products.json"`
	StaticDir string   `envconfig:"STATIC_DIR" default:"public"`

	CORSOrigins     []string      `envconfig:"CORS_ORIGINS"     default:"*"`
	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"30s"`
}

// Process reads the environment into a Config without touching .env files.
func Process() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	cfg.OpenAIBaseURL = strings.TrimRight(cfg.OpenAIBaseURL, "/")
	cfg.MPBaseURL = strings.TrimRight(cfg.MPBaseURL, "/")
	return &cfg, nil
}

func LoadConfig(logger *logrus.Logger) *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	cfg, err := Process()
	if err != nil {
		logger.Fatalf("Failed to process configuration from environment variables: %v", err)
	}

	logger.Infof("Configuration loaded: Port=%s, Environment=%s, LogLevel=%s, Debug=%t, DataFile=%s",
		cfg.Port, cfg.Environment, cfg.LogLevel, cfg.Debug, cfg.DataFile)
	logger.WithFields(logrus.Fields{
		"admin_token_set":     cfg.AdminToken != "",
		"openai_key_set":      cfg.OpenAIKey != "",
		"mp_access_token_set": cfg.MPAccessToken != "",
	}).Info("Configuration loaded: credentials")
	return cfg
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), productionEnv)
}

// ListenAddr accepts both "3001" and ":3001" forms of PORT.
func (c *Config) ListenAddr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// ApplyLogLevel sets the logger level from LOG_LEVEL, forced to debug when DEBUG is on.
func ApplyLogLevel(logger *logrus.Logger, cfg *Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	if cfg.Debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
}
