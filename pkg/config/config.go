package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ClientConfig configures the terminal client.
type ClientConfig struct {
	ServerURL      string        `env:"TEXTQUEST_SERVER_URL" envDefault:"http://localhost:8000"`
	LogLevel       string        `env:"TEXTQUEST_LOG_LEVEL" envDefault:"info"`
	LogFile        string        `env:"TEXTQUEST_LOG_FILE" envDefault:"textquest.log"`
	MessageLimit   int           `env:"TEXTQUEST_MESSAGE_LIMIT" envDefault:"0"`
	RequestTimeout time.Duration `env:"TEXTQUEST_REQUEST_TIMEOUT" envDefault:"30s"`
	Telemetry      bool          `env:"TEXTQUEST_TELEMETRY" envDefault:"false"`
}

// ServerConfig configures the development game server.
type ServerConfig struct {
	Port        int    `env:"TEXTQUEST_PORT" envDefault:"8000"`
	AllowOrigin string `env:"TEXTQUEST_ALLOW_ORIGIN" envDefault:"*"`
	LogLevel    string `env:"TEXTQUEST_LOG_LEVEL" envDefault:"info"`
	TLSCertFile string `env:"TEXTQUEST_TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TEXTQUEST_TLS_KEY_FILE"`
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are given. Missing files are ignored; variables already set win.
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadClientConfig() (ClientConfig, error) {
	var cfg ClientConfig
	if err := ParseEnv(&cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}
