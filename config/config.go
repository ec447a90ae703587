package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the relay and the preview client.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string        `mapstructure:"SERVER_ADDRESS"` // e.g., ":3000"
	AppEnv        string        `mapstructure:"APP_ENV"`        // "production" switches gin to release mode
	ReadTimeout   time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout  time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"` // generation can take minutes
	IdleTimeout   time.Duration `mapstructure:"SERVER_IDLE_TIMEOUT"`

	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"` // "text" or "json"

	// AI Configuration
	AIProvider    string  `mapstructure:"AI_PROVIDER"` // "openai" (any OpenAI-compatible API) or "anthropic"
	AIAPIKey      string  `mapstructure:"AI_API_KEY"`
	AIBaseURL     string  `mapstructure:"AI_BASE_URL"` // empty: Gemini's OpenAI-compatible endpoint, or api.anthropic.com
	AIModel       string  `mapstructure:"AI_MODEL"`
	AIMaxTokens   int     `mapstructure:"AI_MAX_TOKENS"`
	AITemperature float32 `mapstructure:"AI_TEMPERATURE"`

	// CORS
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Tracing
	TracingEnabled  bool    `mapstructure:"TRACING_ENABLED"`
	OTLPEndpoint    string  `mapstructure:"OTLP_ENDPOINT"`
	TraceSampleRate float64 `mapstructure:"TRACE_SAMPLE_RATE"`

	// Preview Client
	PreviewAddress string  `mapstructure:"PREVIEW_ADDRESS"`
	RelayURL       string  `mapstructure:"RELAY_URL"`
	PaneMinPercent float64 `mapstructure:"PANE_MIN_PERCENT"`
	PaneMaxPercent float64 `mapstructure:"PANE_MAX_PERCENT"`
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var defaults = map[string]any{
	"SERVER_ADDRESS":       ":3000",
	"APP_ENV":              "development",
	"SERVER_READ_TIMEOUT":  15 * time.Second,
	"SERVER_WRITE_TIMEOUT": 5 * time.Minute,
	"SERVER_IDLE_TIMEOUT":  60 * time.Second,
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "text",
	"AI_PROVIDER":          ProviderOpenAI,
	"AI_API_KEY":           "",
	"AI_BASE_URL":          "", // empty selects the provider default
	"AI_MODEL":             "gemini-2.5-flash",
	"AI_MAX_TOKENS":        8192,
	"AI_TEMPERATURE":       0.7,
	"CORS_ALLOWED_ORIGINS": []string{"*"},
	"TRACING_ENABLED":      false,
	"OTLP_ENDPOINT":        "localhost:4317",
	"TRACE_SAMPLE_RATE":    1.0,
	"PREVIEW_ADDRESS":      ":5173",
	"RELAY_URL":            "http://localhost:3000",
	"PANE_MIN_PERCENT":     20.0,
	"PANE_MAX_PERCENT":     80.0,
}

// LoadEnvFile loads .env files (default ".env") into the process environment.
// Call it before LoadConfig. A missing file is not an error; found reports
// whether anything was loaded.
func LoadEnvFile(filenames ...string) (found bool, err error) {
	if err := godotenv.Load(filenames...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("error loading .env file: %w", err)
	}
	return true, nil
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)     // Path to look for the config file in
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")

	// AutomaticEnv only resolves keys viper already knows about.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", v.ConfigFileUsed())
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.AIProvider = strings.ToLower(strings.TrimSpace(config.AIProvider))

	return
}

// ValidateRelay checks the fields the generation relay cannot start without.
func (c Config) ValidateRelay() error {
	if c.AIAPIKey == "" {
		return errors.New("AI_API_KEY is required")
	}
	switch c.AIProvider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", c.AIProvider)
	}
	if c.AIModel == "" {
		return errors.New("AI_MODEL is required")
	}
	return nil
}

// ValidatePreview checks the preview client settings.
func (c Config) ValidatePreview() error {
	if c.RelayURL == "" {
		return errors.New("RELAY_URL is required")
	}
	if c.PaneMinPercent <= 0 || c.PaneMaxPercent >= 100 || c.PaneMinPercent >= c.PaneMaxPercent {
		return fmt.Errorf("pane bounds must satisfy 0 < min < max < 100, got min=%v max=%v", c.PaneMinPercent, c.PaneMaxPercent)
	}
	return nil
}
