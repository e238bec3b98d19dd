// Package config reads settings from the environment, optionally seeded from a
// .env file. Every variable is prefixed with DINNER_.
package config

import (
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"dinnerconcierge/internal/database"
	"dinnerconcierge/internal/extract"
	"dinnerconcierge/internal/store"
)

const Prefix = "dinner"

// Config fields map to DINNER_ variables by splitting their names on word
// boundaries, so DBPath is read from DINNER_DB_PATH.
type Config struct {
	Store           string `split_words:"true" default:"sqlite"`
	DBPath          string `split_words:"true" default:"dinner.db"`
	MongoURI        string `split_words:"true"`
	MongoDB         string `split_words:"true" default:"dinner"`
	MongoCollection string `split_words:"true" default:"kv"`
	StorageKey      string `split_words:"true"`

	GeminiAPIKey   string        `split_words:"true"`
	GeminiModel    string        `split_words:"true"`
	GeminiBaseURL  string        `split_words:"true"`
	ExtractTimeout time.Duration `split_words:"true" default:"90s"`

	ShareBaseURL string `split_words:"true" default:"http://localhost:8080/"`
	HTTPAddr     string `split_words:"true" default:"127.0.0.1:8080"`

	LogFile  string `split_words:"true" default:"dinner.log"`
	LogLevel string `split_words:"true" default:"info"`
}

// Load reads the given .env files (or ./.env) when present, then the
// environment. A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Debugf("No .env file found or error loading it: %v", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to read configuration")
	}
	// the API key is the one setting also read without the prefix
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if cfg.GeminiAPIKey != "" {
			break
		}
		cfg.GeminiAPIKey = os.Getenv(name)
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = store.DefaultKey
	}
	return &cfg, nil
}

func (c *Config) StorageOptions() database.Options {
	return database.Options{
		Backend:         c.Store,
		SQLitePath:      c.DBPath,
		MongoURI:        c.MongoURI,
		MongoDatabase:   c.MongoDB,
		MongoCollection: c.MongoCollection,
	}
}

func (c *Config) ExtractConfig() extract.Config {
	return extract.Config{
		APIKey:  c.GeminiAPIKey,
		Model:   c.GeminiModel,
		BaseURL: c.GeminiBaseURL,
		Timeout: c.ExtractTimeout,
	}
}

// ConfigureLogger points logger at out with the configured level. The JSON
// formatter is used for log files, the text formatter for terminals.
func (c *Config) ConfigureLogger(logger *log.Logger, out io.Writer, jsonFormat bool) error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	logger.SetLevel(level)
	logger.SetOutput(out)
	if jsonFormat {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
