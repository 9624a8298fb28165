// Package services defines the [Remote] and [Authorizer] interfaces for the
// playback provider and implements them for the Spotify Web API.
//
// # Remote Interface
//
// [Remote] is the fixed playback operation set: play, pause, skip, volume,
// seek, search, and playback state. Every call takes the bearer token
// explicitly; the service caches nothing, so credential ownership stays with
// the token store.
//
// # Authorizer Interface
//
// [Authorizer] covers the OAuth2 half of the contract: building the login
// URL, exchanging an authorization code for a credential, and refreshing an
// expired one. [SpotifyService] implements both interfaces.
//
// # Error Handling
//
// Remote failures with a Spotify error envelope come back as [*APIError];
// the Is* helpers (for example [IsNoActiveDevice]) classify them. The string
// and reason-code matching against Spotify's error vocabulary lives entirely
// in errors.go, since those strings are a versioned contract with the API.
// Other failures wrap the shared sentinels:
//   - [shared.ErrNotAuthenticated] : request attempted with no token
//   - [shared.ErrTimeout] : the bounded per-call timeout elapsed
//   - [shared.ErrAPIRequest] : HTTP failure without a parseable envelope
package services
