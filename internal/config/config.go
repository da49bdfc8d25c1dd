// Package config loads and validates the process configuration.
//
// Configuration is layered: an optional YAML file first, then environment
// variables with the WEBINARSYNC_ prefix overriding file values
// (WEBINARSYNC_API_CLIENT_ID -> api.client_id). Every required setting is
// validated up front so a misconfigured process fails before any stage runs.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/webinarsync/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "WEBINARSYNC_CONFIG"

const envPrefix = "WEBINARSYNC_"

// LedgerPolicy names the lead-upload ledger semantics.
type LedgerPolicy string

const (
	// LedgerByIdentity commits every filtered lead key after the batch,
	// regardless of per-lead outcome. A lead whose target webinar does not
	// exist yet is never retried.
	LedgerByIdentity LedgerPolicy = "identity"

	// LedgerByOutcome commits only leads that were created or already
	// existed as registrants. Unmatched leads stay eligible for later runs.
	LedgerByOutcome LedgerPolicy = "outcome"
)

// APIConfig holds the remote API and OAuth settings.
type APIConfig struct {
	BaseURL             string `koanf:"base_url"`
	TokenEndpoint       string `koanf:"token_endpoint"`
	RedirectURI         string `koanf:"redirect_uri"`
	ClientID            string `koanf:"client_id"`
	ClientSecret        string `koanf:"client_secret"`
	AccountKey          string `koanf:"account_key"`
	InitialRefreshToken string `koanf:"initial_refresh_token"`
	TimeoutSeconds      int    `koanf:"timeout_seconds"`
}

// Timeout returns the HTTP client timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// FilesConfig holds the local file locations.
type FilesConfig struct {
	InputDir          string `koanf:"input_dir"`
	OutputDir         string `koanf:"output_dir"`
	UploadedKeyFile   string `koanf:"uploaded_key_file"`
	RegistrantKeyFile string `koanf:"registrant_key_file"`
	AttendeeKeyFile   string `koanf:"attendee_key_file"`
	RefreshTokenFile  string `koanf:"refresh_token_file"`
	DummyPhone        string `koanf:"dummy_phone"`
}

// SyncConfig holds the per-stage date window offsets and ledger policy.
type SyncConfig struct {
	FromDateBackward int          `koanf:"from_date_backward"` // months, negative for the past
	ToDateForward    int          `koanf:"to_date_forward"`    // months
	LedgerPolicy     LedgerPolicy `koanf:"ledger_policy"`
}

// Config is the full process configuration.
type Config struct {
	API   APIConfig   `koanf:"api"`
	Files FilesConfig `koanf:"files"`
	Sync  SyncConfig  `koanf:"sync"`
}

// Load builds the configuration from file and environment and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "load config file %s failed (%v)", path, err)
		}
	}

	// WEBINARSYNC_API_CLIENT_ID -> api.client_id
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "load environment failed (%v)", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "unmarshal failed (%v)", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 30
	}
	if cfg.Sync.LedgerPolicy == "" {
		cfg.Sync.LedgerPolicy = LedgerByIdentity
	}
}

// Validate checks every required setting and reports the first one missing.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"api.base_url", c.API.BaseURL},
		{"api.token_endpoint", c.API.TokenEndpoint},
		{"api.redirect_uri", c.API.RedirectURI},
		{"api.client_id", c.API.ClientID},
		{"api.client_secret", c.API.ClientSecret},
		{"api.account_key", c.API.AccountKey},
		{"files.input_dir", c.Files.InputDir},
		{"files.output_dir", c.Files.OutputDir},
		{"files.uploaded_key_file", c.Files.UploadedKeyFile},
		{"files.registrant_key_file", c.Files.RegistrantKeyFile},
		{"files.attendee_key_file", c.Files.AttendeeKeyFile},
		{"files.refresh_token_file", c.Files.RefreshTokenFile},
		{"files.dummy_phone", c.Files.DummyPhone},
	}
	for _, r := range required {
		if r.value == "" {
			return apperrors.Wrapf(apperrors.ErrConfiguration, "%s is required", r.key)
		}
	}

	if c.Sync.FromDateBackward == 0 {
		return apperrors.Wrapf(apperrors.ErrConfiguration, "sync.from_date_backward is required")
	}
	if c.Sync.ToDateForward == 0 {
		return apperrors.Wrapf(apperrors.ErrConfiguration, "sync.to_date_forward is required")
	}
	if c.Sync.LedgerPolicy != LedgerByIdentity && c.Sync.LedgerPolicy != LedgerByOutcome {
		return apperrors.Wrapf(apperrors.ErrConfiguration, "sync.ledger_policy must be %q or %q", LedgerByIdentity, LedgerByOutcome)
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// String renders the config for startup logging with secrets redacted.
func (c *Config) String() string {
	return fmt.Sprintf("api.base_url=%s files.input_dir=%s files.output_dir=%s sync=[%d,%d] policy=%s",
		c.API.BaseURL, c.Files.InputDir, c.Files.OutputDir,
		c.Sync.FromDateBackward, c.Sync.ToDateForward, c.Sync.LedgerPolicy)
}
