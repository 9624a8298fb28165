package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors. Callers that see these should prompt the user
	// to run the authorization flow again.
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")
	ErrRefreshFailed    = fmt.Errorf("token refresh failed")
	ErrAuthFailed       = fmt.Errorf("authentication failed")

	// Storage errors are transient; the stored credential was not touched.
	ErrStorage = fmt.Errorf("credential storage failed")

	// Remote API errors. Known Spotify error envelopes are classified in
	// the services package, not here.
	ErrTimeout    = fmt.Errorf("operation timed out")
	ErrAPIRequest = fmt.Errorf("API request failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
