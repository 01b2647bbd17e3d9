// Package config loads service settings from configs/config.yml, a local
// .env file and ATELIER_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: board.base_url is read from
// ATELIER_BOARD_BASE_URL.
const EnvPrefix = "ATELIER"

type Config struct {
	Port   string       `mapstructure:"port"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Board  BoardConfig  `mapstructure:"board"`
	QOTD   QOTDConfig   `mapstructure:"qotd"`
	Server ServerConfig `mapstructure:"server"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type BoardConfig struct {
	// URLMode is "query" or "hash".
	URLMode string        `mapstructure:"url_mode"`
	BaseURL string        `mapstructure:"base_url"`
	Tick    time.Duration `mapstructure:"tick"`
}

type QOTDConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	ResponsesURL    string        `mapstructure:"responses_url"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

var defaults = map[string]any{
	"port":                       "8080",
	"log.level":                  "info",
	"log.encoding":               "console",
	"db.path":                    "data/atelier.db",
	"auth.signing_key":           "",
	"auth.token_ttl":             time.Hour,
	"board.url_mode":             "query",
	"board.base_url":             "https://atelier.place/session",
	"board.tick":                 time.Second,
	"qotd.api_key":               "",
	"qotd.model":                 "gpt-4o",
	"qotd.responses_url":         "https://api.openai.com/v1/responses",
	"qotd.max_output_tokens":     2048,
	"qotd.timeout":               30 * time.Second,
	"server.read_header_timeout": 10 * time.Second,
	"server.write_timeout":       10 * time.Second,
	"server.idle_timeout":        60 * time.Second,
	"server.shutdown_timeout":    10 * time.Second,
}

// Options locate the configuration sources. Zero values mean
// configs/config.yml and ./.env.
type Options struct {
	File    string
	EnvFile string
}

// Load reads the configuration. A missing config file or .env file is not
// an error; a malformed one is.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The OpenAI key keeps its conventional name as well.
	if err := v.BindEnv("qotd.api_key", EnvPrefix+"_QOTD_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind qotd.api_key: %w", err)
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(opts.File != "" && errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Board.URLMode = strings.ToLower(strings.TrimSpace(cfg.Board.URLMode))
	if cfg.Board.URLMode != "query" && cfg.Board.URLMode != "hash" {
		return nil, fmt.Errorf("board.url_mode must be query or hash, got %q", cfg.Board.URLMode)
	}
	return &cfg, nil
}
