// Package config loads papersearch settings from flags, PAPERSEARCH_*
// environment variables, an optional YAML config file and a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"papersearch/internal/search"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "PAPERSEARCH"

// Keys understood by Load.
const (
	KeyBackendURL = "backend_url"
	KeyTimeout    = "timeout"
	KeyWindowDays = "window_days"
	KeySources    = "sources"
	KeyLogFile    = "log_file"
	KeyLogLevel   = "log_level"
)

// DefaultBackendURL points at a locally running backend.
const DefaultBackendURL = "http://localhost:5001"

var ErrInvalidBackendURL = errors.New("backend_url must be an absolute http(s) URL")

// Config holds resolved settings.
type Config struct {
	BackendURL string
	Timeout    time.Duration // 0 means no timeout
	WindowDays int
	Sources    search.Sources
	LogFile    string
	LogLevel   slog.Level
}

// SetDefaults registers defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackendURL, DefaultBackendURL)
	v.SetDefault(KeyTimeout, "0s")
	v.SetDefault(KeyWindowDays, search.DefaultWindowDays)
	v.SetDefault(KeySources, []string{"arxiv", "ai", "systems"})
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
}

// NewViper returns a viper instance with defaults and environment binding.
// A .env file in the working directory is loaded first without overriding
// variables already present in the environment.
func NewViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads cfgFile if set, otherwise looks for papersearch.yaml in the
// working directory and ~/.config/papersearch/config.yaml. A missing file is
// not an error. Returns the file used, or "".
func ReadFile(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("papersearch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "papersearch"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load resolves and validates settings from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		BackendURL: strings.TrimSpace(v.GetString(KeyBackendURL)),
		Timeout:    v.GetDuration(KeyTimeout),
		WindowDays: v.GetInt(KeyWindowDays),
		LogFile:    v.GetString(KeyLogFile),
	}

	u, err := url.Parse(cfg.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidBackendURL, cfg.BackendURL)
	}

	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("timeout must not be negative: %s", cfg.Timeout)
	}

	if cfg.WindowDays < search.MinWindowDays || cfg.WindowDays > search.MaxWindowDays {
		return Config{}, fmt.Errorf("%s: %w: got %d", KeyWindowDays, search.ErrWindowOutOfRange, cfg.WindowDays)
	}

	cfg.Sources, err = search.ParseSources(splitList(v.GetStringSlice(KeySources)))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeySources, err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}

	return cfg, nil
}

// splitList flattens comma-separated entries, since environment variables
// arrive as a single "a,b" string.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
