package config

import (
	"os"
	"slices"
	"strconv"
	"strings"

	"kospi-insight/internal/domain"

	"github.com/creasty/defaults"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr" default:":5000"`

	YahooBaseURL     string `yaml:"yahoo_base_url" default:"https://query1.finance.yahoo.com"`
	FetchPeriod      string `yaml:"fetch_period" default:"1y"`
	FetchTimeoutSecs int    `yaml:"fetch_timeout_secs" default:"10"`
	YahooRatePerMin  int    `yaml:"yahoo_rate_per_min" default:"60"`

	TelegramBotToken string `yaml:"telegram_bot_token"`

	OpenAIAPIKey string `yaml:"openai_api_key"`
	OpenAIModel  string `yaml:"openai_model" default:"gpt-4o-mini"`

	LogLevel  string `yaml:"log_level" default:"info"`
	LogFormat string `yaml:"log_format" default:"json"`
}

// Load builds the configuration from struct defaults, the optional YAML file
// named by CONFIG_FILE, and environment variables, in increasing precedence.
func Load() *Config {
	cfg := &Config{}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("path", path).Msg("config file not readable, ignoring")
		case len(data) > 0:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("config file not parseable, ignoring")
				cfg = &Config{}
			}
		}
	}

	if err := defaults.Set(cfg); err != nil {
		log.Warn().Err(err).Msg("failed to apply config defaults")
	}

	if v := strings.TrimSpace(os.Getenv("HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("YAHOO_BASE_URL")); v != "" {
		cfg.YahooBaseURL = strings.TrimRight(v, "/")
	}

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("FETCH_PERIOD"))); v != "" {
		cfg.FetchPeriod = v
	}
	if !slices.Contains(domain.SupportedPeriods, cfg.FetchPeriod) {
		log.Warn().Str("period", cfg.FetchPeriod).Msg("unsupported FETCH_PERIOD, defaulting to 1y")
		cfg.FetchPeriod = domain.DefaultPeriod
	}

	if v := strings.TrimSpace(os.Getenv("FETCH_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeoutSecs = n
		}
	}
	if cfg.FetchTimeoutSecs <= 0 {
		cfg.FetchTimeoutSecs = 10
	}

	if v := strings.TrimSpace(os.Getenv("YAHOO_RATE_PER_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.YahooRatePerMin = n
		}
	}
	if cfg.YahooRatePerMin <= 0 {
		cfg.YahooRatePerMin = 60
	}

	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramBotToken = v
	}
	if cfg.TelegramBotToken == "" {
		log.Info().Msg("TELEGRAM_BOT_TOKEN not set, bot will be disabled")
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if cfg.OpenAIAPIKey == "" {
		log.Info().Msg("OPENAI_API_KEY not set, commentary will be disabled")
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); v != "" {
		cfg.OpenAIModel = v
	}

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))); v != "" {
		cfg.LogFormat = v
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		cfg.LogFormat = "json"
	}

	return cfg
}
