package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App  AppConfig
	Data DataConfig
	HTTP HTTPConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"gdpdash"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type DataConfig struct {
	Path string `envconfig:"GDPDASH_DATA_PATH" default:"gdp_pcap.csv"`
}

type HTTPConfig struct {
	Addr            string        `envconfig:"GDPDASH_HTTP_ADDR" default:":8080"`
	CORSOrigins     []string      `envconfig:"GDPDASH_CORS_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"GDPDASH_SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	return &cfg, nil
}
