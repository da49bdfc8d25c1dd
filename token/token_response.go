package token

// Response is the token endpoint response for all grant types.
// Standard OAuth2 token response format as defined in RFC 6749.
type Response struct {
	// AccessToken is the opaque bearer token used against data endpoints.
	// Held in memory for the duration of one run, never persisted.
	AccessToken string `json:"access_token"`

	// TokenType is "bearer" for this API.
	TokenType string `json:"token_type"`

	// RefreshToken is the rotated replacement for the refresh token that
	// was just consumed. The server invalidates the old one, so this value
	// must be persisted immediately when present.
	RefreshToken string `json:"refresh_token"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`

	Scope     string `json:"scope"`
	Principal string `json:"principal"`
}

// ErrorResponse is the token endpoint error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
