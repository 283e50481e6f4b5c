package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Modes select which backend address is used.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// DefaultDevBaseURL is the local backend address used in development mode.
const DefaultDevBaseURL = "http://localhost:5000"

// DefaultPath is where the CLI looks for the config file.
const DefaultPath = ".studyguide/config.yaml"

// Config holds all studyguide configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Analysis backend
	API APIConfig `yaml:"api"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Dev stub backend
	Stub StubConfig `yaml:"stub"`
}

// APIConfig configures the analysis backend.
type APIConfig struct {
	Mode       string `yaml:"mode" validate:"required"`              // development uses dev_base_url
	BaseURL    string `yaml:"base_url" validate:"omitempty,url"`     // used outside development
	DevBaseURL string `yaml:"dev_base_url" validate:"omitempty,url"` // local backend
	Timeout    string `yaml:"timeout" validate:"omitempty,duration"` // empty = no timeout
	UserAgent  string `yaml:"user_agent,omitempty"`
}

// StubConfig configures `studyguide stub`.
type StubConfig struct {
	Addr       string `yaml:"addr" validate:"required"`
	Fixture    string `yaml:"fixture,omitempty"` // empty = embedded sample
	Watch      bool   `yaml:"watch"`
	Delay      string `yaml:"delay,omitempty" validate:"omitempty,duration"`
	FailStatus int    `yaml:"fail_status,omitempty" validate:"omitempty,min=400,max=599"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "studyguide",
		Version: "1.0.0",

		API: APIConfig{
			Mode:       ModeDevelopment,
			DevBaseURL: DefaultDevBaseURL,
		},

		UI: *DefaultUIConfig(),

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			Dir:       ".studyguide/logs",
			DebugMode: false,
		},

		Stub: StubConfig{
			Addr: ":5000",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Missing files are skipped and variables
// that are already set are left alone.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if mode := os.Getenv("STUDYGUIDE_MODE"); mode != "" {
		c.API.Mode = mode
	}

	// VITE_API_URL is what the web frontend reads; ours wins when both are set.
	if url := os.Getenv("VITE_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if url := os.Getenv("STUDYGUIDE_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if url := os.Getenv("STUDYGUIDE_DEV_API_URL"); url != "" {
		c.API.DevBaseURL = url
	}
	if timeout := os.Getenv("STUDYGUIDE_TIMEOUT"); timeout != "" {
		c.API.Timeout = timeout
	}

	if v := os.Getenv("STUDYGUIDE_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			if dark {
				c.UI.Theme = ThemeDark
			} else {
				c.UI.Theme = ThemeLight
			}
		}
	}
	if v := os.Getenv("STUDYGUIDE_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = debug
			if debug {
				c.Logging.Level = "debug"
			}
		}
	}
}

// IsDevelopment reports whether the local development backend is selected.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.API.Mode, ModeDevelopment)
}

// BaseURL returns the backend address for the active mode.
func (c *Config) BaseURL() string {
	if c.IsDevelopment() {
		if c.API.DevBaseURL == "" {
			return DefaultDevBaseURL
		}
		return c.API.DevBaseURL
	}
	return c.API.BaseURL
}

// GetTimeout returns the request timeout. Zero means none.
func (c *Config) GetTimeout() time.Duration {
	return parseDuration(c.API.Timeout)
}

// GetStubDelay returns the artificial stub latency.
func (c *Config) GetStubDelay() time.Duration {
	return parseDuration(c.Stub.Delay)
}

func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ErrNoBaseURL is returned by Validate when the active mode has no backend address.
var ErrNoBaseURL = errors.New("analysis backend URL not configured (set api.base_url, STUDYGUIDE_API_URL or VITE_API_URL)")

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.BaseURL() == "" {
		return ErrNoBaseURL
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d >= 0
	})
	return v
}
