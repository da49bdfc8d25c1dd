package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-webinar-sync/internal/config"
	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
)

const validYAML = `
api:
  base_url: https://api.example.com/G2W/rest/v2
  token_endpoint: https://auth.example.com/oauth/token
  redirect_uri: https://localhost/callback
  client_id: client-id
  client_secret: client-secret
  account_key: acct-1
files:
  input_dir: /var/lib/webinarsync/in
  output_dir: /var/lib/webinarsync/out
  uploaded_key_file: uploaded.txt
  registrant_key_file: registrants.txt
  attendee_key_file: attendees.txt
  refresh_token_file: refresh_token
  dummy_phone: "0000000000"
sync:
  from_date_backward: -3
  to_date_forward: 3
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadReadsTheConfiguredFile(t *testing.T) {
	t.Setenv(config.ConfigPathEnvVar, writeConfigFile(t, validYAML))

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com/G2W/rest/v2", cfg.API.BaseURL)
	require.Equal(t, "acct-1", cfg.API.AccountKey)
	require.Equal(t, "/var/lib/webinarsync/in", cfg.Files.InputDir)
	require.Equal(t, -3, cfg.Sync.FromDateBackward)
	require.Equal(t, 3, cfg.Sync.ToDateForward)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv(config.ConfigPathEnvVar, writeConfigFile(t, validYAML))

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 30, cfg.API.TimeoutSeconds)
	require.Equal(t, config.LedgerByIdentity, cfg.Sync.LedgerPolicy)
}

func TestEnvironmentOverridesTheFile(t *testing.T) {
	t.Setenv(config.ConfigPathEnvVar, writeConfigFile(t, validYAML))
	t.Setenv("WEBINARSYNC_API_CLIENT_ID", "env-client-id")
	t.Setenv("WEBINARSYNC_SYNC_LEDGER_POLICY", "outcome")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "env-client-id", cfg.API.ClientID)
	require.Equal(t, config.LedgerByOutcome, cfg.Sync.LedgerPolicy)
}

func TestLoadFailsFastOnMissingRequiredSettings(t *testing.T) {
	t.Setenv(config.ConfigPathEnvVar, writeConfigFile(t, `
api:
  base_url: https://api.example.com
`))

	_, err := config.Load()
	require.ErrorIs(t, err, apperrors.ErrConfiguration)
	require.ErrorContains(t, err, "api.token_endpoint")
}

func TestValidateRequiresEachWindowOffset(t *testing.T) {
	t.Setenv(config.ConfigPathEnvVar, writeConfigFile(t, validYAML))
	t.Setenv("WEBINARSYNC_SYNC_FROM_DATE_BACKWARD", "0")

	_, err := config.Load()
	require.ErrorIs(t, err, apperrors.ErrConfiguration)
	require.ErrorContains(t, err, "sync.from_date_backward")
}

func TestValidateRejectsUnknownLedgerPolicy(t *testing.T) {
	t.Setenv(config.ConfigPathEnvVar, writeConfigFile(t, validYAML))
	t.Setenv("WEBINARSYNC_SYNC_LEDGER_POLICY", "sometimes")

	_, err := config.Load()
	require.ErrorIs(t, err, apperrors.ErrConfiguration)
	require.ErrorContains(t, err, "ledger_policy")
}

func TestStringRedactsSecrets(t *testing.T) {
	t.Setenv(config.ConfigPathEnvVar, writeConfigFile(t, validYAML))

	cfg, err := config.Load()
	require.NoError(t, err)

	summary := cfg.String()
	require.NotContains(t, summary, "client-secret")
	require.Contains(t, summary, "https://api.example.com/G2W/rest/v2")
}
