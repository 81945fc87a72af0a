// Environment-level knobs for the viewer and the registry backend.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/yumyai/protview/internal/util"
	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/source"
)

const envPrefix = "PROTVIEW"

type Config struct {
	// Viewer
	MockMode        bool
	FixtureDir      string
	RegistryURL     string
	CorrelationURL  string
	ListenAddr      string
	LogLevel        string
	RequestTimeout  time.Duration
	MaxRetries      uint64
	Concurrency     int
	SessionTTL      time.Duration
	SessionCapacity int

	// Registry backend
	RegistryListenAddr string
	DBPath             string
	MinJaccard         float64
	ImportPath         string
	ImportURL          string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("mock_mode", false)
	v.SetDefault("fixture_dir", "./public")
	v.SetDefault("registry_url", "http://localhost:8000")
	v.SetDefault("correlation_url", "http://localhost:8081")
	v.SetDefault("listen_addr", "0.0.0.0:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("max_retries", 2)
	v.SetDefault("concurrency", 8)
	v.SetDefault("session_ttl", "30m")
	v.SetDefault("session_capacity", 1024)

	v.SetDefault("registry_listen_addr", "0.0.0.0:8000")
	v.SetDefault("db_path", "./data/registry.db")
	v.SetDefault("min_jaccard", 0.4)
	v.SetDefault("import_path", "")
	v.SetDefault("import_url", "")
	return v
}

// Load reads .env (when present) into the process environment, then resolves every
// PROTVIEW_* key over its default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env found, using local environment")
	}
	return fromViper(newViper())
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		MockMode:        v.GetBool("mock_mode"),
		FixtureDir:      v.GetString("fixture_dir"),
		RegistryURL:     v.GetString("registry_url"),
		CorrelationURL:  v.GetString("correlation_url"),
		ListenAddr:      v.GetString("listen_addr"),
		LogLevel:        v.GetString("log_level"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		MaxRetries:      v.GetUint64("max_retries"),
		Concurrency:     v.GetInt("concurrency"),
		SessionTTL:      v.GetDuration("session_ttl"),
		SessionCapacity: v.GetInt("session_capacity"),

		RegistryListenAddr: v.GetString("registry_listen_addr"),
		DBPath:             v.GetString("db_path"),
		MinJaccard:         v.GetFloat64("min_jaccard"),
		ImportPath:         v.GetString("import_path"),
		ImportURL:          v.GetString("import_url"),
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.SessionCapacity <= 0 {
		cfg.SessionCapacity = 1
	}
	return cfg, nil
}

// ValidateViewer checks the settings the viewer needs for its selected source.
func (c *Config) ValidateViewer() error {
	var errs []error

	if c.MockMode {
		if !util.DirExists(c.FixtureDir) {
			errs = append(errs, fmt.Errorf("fixture dir %q does not exist", c.FixtureDir))
		} else if !util.FileExists(filepath.Join(c.FixtureDir, source.ProteinsFixture)) {
			errs = append(errs, fmt.Errorf("fixture %s missing in %q", source.ProteinsFixture, c.FixtureDir))
		}
	} else {
		if err := checkBaseURL("registry url", c.RegistryURL); err != nil {
			errs = append(errs, err)
		}
		if err := checkBaseURL("correlation url", c.CorrelationURL); err != nil {
			errs = append(errs, err)
		}
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	return errors.Join(errs...)
}

// ValidateRegistry checks the settings of the registry backend.
func (c *Config) ValidateRegistry() error {
	var errs []error

	if c.DBPath == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	if c.ImportURL != "" {
		if err := checkBaseURL("import url", c.ImportURL); err != nil {
			errs = append(errs, err)
		}
	}
	if c.MinJaccard < 0 || c.MinJaccard > 1 {
		errs = append(errs, fmt.Errorf("min jaccard %v outside [0, 1]", c.MinJaccard))
	}
	if c.ImportPath != "" && c.ImportURL == "" && !util.FileExists(c.ImportPath) {
		errs = append(errs, fmt.Errorf("import file %q does not exist", c.ImportPath))
	}

	return errors.Join(errs...)
}

func checkBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s %q must be http(s)", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s %q has no host", name, raw)
	}
	return nil
}
