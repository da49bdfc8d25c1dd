// Package token owns the OAuth token lifecycle against the remote token
// endpoint: refresh with rotation of the persisted refresh token, and the
// one-time authorization-code exchange used to bootstrap credentials.
package token

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-webinar-sync/credentials"
	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
)

// maxErrorBodySize limits how much of an error response body is read.
const maxErrorBodySize = 64 * 1024

// Manager handles access token acquisition and refresh token rotation.
// The refresh token lives in the injected credentials.Store; the access
// token is returned to the caller and never stored.
type Manager struct {
	endpoint     string
	redirectURI  string
	clientID     string
	clientSecret string
	store        credentials.Store
	httpClient   *http.Client
}

// ManagerOption modifies a Manager.
type ManagerOption func(*Manager)

// WithHTTPClient overrides the HTTP client (primarily for testing).
func WithHTTPClient(c *http.Client) ManagerOption {
	return func(m *Manager) {
		m.httpClient = c
	}
}

// NewManager creates a token Manager.
func NewManager(endpoint, redirectURI, clientID, clientSecret string, store credentials.Store, timeout time.Duration, options ...ManagerOption) *Manager {
	m := &Manager{
		endpoint:     endpoint,
		redirectURI:  redirectURI,
		clientID:     clientID,
		clientSecret: clientSecret,
		store:        store,
		httpClient:   &http.Client{Timeout: timeout},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Refresh exchanges the persisted refresh token for a new access token.
// When the response carries a rotated refresh token it is persisted before
// returning; a persistence failure is logged but does not block the caller,
// since the access token is already valid for this run.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	refreshToken, err := m.store.Load()
	if err != nil {
		return "", apperrors.Wrapf(err, "token.Refresh load credential")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	tokenResponse, err := m.postTokenRequest(ctx, form)
	if err != nil {
		return "", err
	}
	if tokenResponse.AccessToken == "" {
		return "", apperrors.Wrapf(apperrors.ErrAuthentication, "token endpoint returned no access token")
	}

	if tokenResponse.RefreshToken != "" {
		if err := m.store.Save(tokenResponse.RefreshToken); err != nil {
			// The server has already rotated; if this write is lost the next
			// run cannot authenticate. Surface it loudly, but finish this run.
			log.Warn().Err(err).Msg("rotated refresh token could not be persisted; next run is at risk")
		} else {
			log.Debug().Msg("refresh token rotated and persisted")
		}
	}

	return tokenResponse.AccessToken, nil
}

// ExchangeAuthorizationCode trades a manually obtained authorization code
// for tokens. Used once to bootstrap credentials; the caller decides whether
// to persist the returned refresh token.
func (m *Manager) ExchangeAuthorizationCode(ctx context.Context, code string) (accessToken, refreshToken string, err error) {
	conf := &oauth2.Config{
		ClientID:     m.clientID,
		ClientSecret: m.clientSecret,
		RedirectURL:  m.redirectURI,
		Endpoint: oauth2.Endpoint{
			TokenURL:  m.endpoint,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return "", "", apperrors.Wrapf(apperrors.ErrAuthentication, "authorization code exchange failed (%v)", err)
	}
	return tok.AccessToken, tok.RefreshToken, nil
}

// postTokenRequest sends a form-encoded request with HTTP Basic client
// authentication and decodes the token response.
func (m *Manager) postTokenRequest(ctx context.Context, form url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrAuthentication, "build token request (%v)", err)
	}
	req.SetBasicAuth(m.clientID, m.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrAuthentication, "token request failed (%v)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		var errorResponse ErrorResponse
		if jsonErr := json.Unmarshal(body, &errorResponse); jsonErr == nil && errorResponse.Error != "" {
			return nil, apperrors.Wrapf(apperrors.ErrAuthentication, "token endpoint status %d: %s, %s",
				resp.StatusCode, errorResponse.Error, errorResponse.ErrorDescription)
		}
		return nil, apperrors.Wrapf(apperrors.ErrAuthentication, "token endpoint status %d", resp.StatusCode)
	}

	var tokenResponse Response
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrAuthentication, "decode token response (%v)", err)
	}
	return &tokenResponse, nil
}
