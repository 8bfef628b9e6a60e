package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the front-end's runtime configuration, read from the
// environment.
type Config struct {
	ListenAddr     string
	BackendURL     string
	BackendTimeout time.Duration // zero disables the timeout
	Debug          bool
	OTelLogs       bool
}

// Defaults matching a backend started locally on its default port.
const (
	DefaultListenAddr = ":8080"
	DefaultBackendURL = "http://127.0.0.1:8000"
)

// LoadDotEnv loads variables from path when the file exists. Variables
// already set in the process environment win.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}

// FromEnv reads the configuration through getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		ListenAddr: DefaultListenAddr,
		BackendURL: DefaultBackendURL,
	}

	if v := getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}

	if v := getenv("BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	u, err := url.Parse(cfg.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("BACKEND_URL %q: must be an absolute http(s) URL", cfg.BackendURL)
	}

	if v := getenv("BACKEND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("BACKEND_TIMEOUT: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("BACKEND_TIMEOUT %s: must not be negative", d)
		}
		cfg.BackendTimeout = d
	}

	if cfg.Debug, err = parseBool(getenv, "DEBUG"); err != nil {
		return Config{}, err
	}
	if cfg.OTelLogs, err = parseBool(getenv, "OTEL_LOGS_ENABLED"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return FromEnv(os.Getenv)
}

func parseBool(getenv func(string) string, key string) (bool, error) {
	v := getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
