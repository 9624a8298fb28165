// Spotify Web API implementation of [Remote] and [Authorizer]
//
// Endpoint paths and response shapes follow https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/maestro/internal/models"
	"github.com/desertthunder/maestro/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	defaultTimeout   = 10 * time.Second
	defaultRateLimit = 5.0
	defaultBurst     = 5
)

// playback control scopes requested during authorization
var spotifyScopes = []string{
	"user-read-private",
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-currently-playing",
	"streaming",
	"app-remote-control",
}

// SpotifyService implements [Remote] and [Authorizer] against the Spotify
// Web API. It holds no credential state; bearer tokens arrive per call.
type SpotifyService struct {
	config     *oauth2.Config
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
}

// NewSpotifyService creates a new Spotify service with the given OAuth2
// credentials and remote tuning (timeout, rate limit).
func NewSpotifyService(credentials map[string]string, remote shared.RemoteConfig) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       spotifyScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	timeout := defaultTimeout
	if remote.TimeoutSeconds > 0 {
		timeout = time.Duration(remote.TimeoutSeconds) * time.Second
	}

	limit := remote.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}
	burst := remote.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(limit), burst),
		timeout:    timeout,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// SetHTTPClient replaces the underlying HTTP client. Used by tests.
func (s *SpotifyService) SetHTTPClient(client *http.Client) {
	s.httpClient = client
}

// AuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// OAuthConfig exposes the underlying OAuth2 config for the callback handler.
func (s *SpotifyService) OAuthConfig() *oauth2.Config {
	return s.config
}

// Exchange trades an authorization code for a credential.
func (s *SpotifyService) Exchange(ctx context.Context, code string) (*models.Credential, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return credentialFromToken(token), nil
}

// Refresh trades a refresh token for a renewed credential. The remote may or
// may not rotate the refresh token; when it does not, the returned
// credential's refresh token is empty and the caller keeps the old one.
func (s *SpotifyService) Refresh(ctx context.Context, refreshToken string) (*models.Credential, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	src := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	cred := credentialFromToken(token)
	if cred.RefreshToken == refreshToken {
		// oauth2 copies the old refresh token forward; blank it so the
		// caller can tell rotation from reuse.
		cred.RefreshToken = ""
	}
	return cred, nil
}

func credentialFromToken(token *oauth2.Token) *models.Credential {
	return &models.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
		CreatedAt:    time.Now().UTC(),
	}
}

// playOptions is the request body for the play endpoint.
type playOptions struct {
	URIs       []string `json:"uris,omitempty"`
	ContextURI string   `json:"context_uri,omitempty"`
}

// Play resumes playback. Spotify requires a JSON body even for a bare
// resume, so an empty options object is always sent.
func (s *SpotifyService) Play(ctx context.Context, token string) error {
	_, err := s.do(ctx, token, "PUT", "/me/player/play", &playOptions{})
	return err
}

// PlayURI starts playback of a specific track.
func (s *SpotifyService) PlayURI(ctx context.Context, token, uri string) error {
	_, err := s.do(ctx, token, "PUT", "/me/player/play", &playOptions{URIs: []string{uri}})
	return err
}

// PlayContext starts playback of a playlist or album context.
func (s *SpotifyService) PlayContext(ctx context.Context, token, contextURI string) error {
	_, err := s.do(ctx, token, "PUT", "/me/player/play", &playOptions{ContextURI: contextURI})
	return err
}

// Pause pauses playback.
func (s *SpotifyService) Pause(ctx context.Context, token string) error {
	_, err := s.do(ctx, token, "PUT", "/me/player/pause", nil)
	return err
}

// SkipNext skips to the next track.
func (s *SpotifyService) SkipNext(ctx context.Context, token string) error {
	_, err := s.do(ctx, token, "POST", "/me/player/next", nil)
	return err
}

// SkipPrevious returns to the previous track.
func (s *SpotifyService) SkipPrevious(ctx context.Context, token string) error {
	_, err := s.do(ctx, token, "POST", "/me/player/previous", nil)
	return err
}

// SetVolume sets the playback volume (0-100).
func (s *SpotifyService) SetVolume(ctx context.Context, token string, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume must be between 0 and 100", shared.ErrInvalidArgument)
	}

	endpoint := fmt.Sprintf("/me/player/volume?volume_percent=%d", percent)
	_, err := s.do(ctx, token, "PUT", endpoint, nil)
	return err
}

// Seek jumps to a position in the current track.
func (s *SpotifyService) Seek(ctx context.Context, token string, positionMS int) error {
	if positionMS < 0 {
		return fmt.Errorf("%w: position must be positive", shared.ErrInvalidArgument)
	}

	endpoint := fmt.Sprintf("/me/player/seek?position_ms=%d", positionMS)
	_, err := s.do(ctx, token, "PUT", endpoint, nil)
	return err
}

// SearchTracks returns up to limit tracks matching the query.
func (s *SpotifyService) SearchTracks(ctx context.Context, token, query string, limit int) ([]Track, error) {
	body, err := s.do(ctx, token, "GET", searchEndpoint(query, "track", limit), nil)
	if err != nil {
		return nil, err
	}

	var response struct {
		Tracks struct {
			Items []Track `json:"items"`
		} `json:"tracks"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return response.Tracks.Items, nil
}

// SearchPlaylists returns up to limit playlists matching the query.
func (s *SpotifyService) SearchPlaylists(ctx context.Context, token, query string, limit int) ([]Playlist, error) {
	body, err := s.do(ctx, token, "GET", searchEndpoint(query, "playlist", limit), nil)
	if err != nil {
		return nil, err
	}

	// The playlists array can contain null entries for regional gaps.
	var response struct {
		Playlists struct {
			Items []*Playlist `json:"items"`
		} `json:"playlists"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	playlists := make([]Playlist, 0, len(response.Playlists.Items))
	for _, p := range response.Playlists.Items {
		if p != nil {
			playlists = append(playlists, *p)
		}
	}

	return playlists, nil
}

// PlaybackState returns the current playback session, or nil when the
// account has nothing playing (the API answers 204 with no body).
func (s *SpotifyService) PlaybackState(ctx context.Context, token string) (*PlaybackState, error) {
	body, err := s.do(ctx, token, "GET", "/me/player", nil)
	if err != nil {
		return nil, err
	}

	if len(body) == 0 {
		return nil, nil
	}

	var state PlaybackState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("failed to decode playback state: %w", err)
	}

	return &state, nil
}

func searchEndpoint(query, kind string, limit int) string {
	if limit <= 0 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}
	return fmt.Sprintf("/search?q=%s&type=%s&limit=%d", url.QueryEscape(query), kind, limit)
}

// do performs one authenticated request against the Spotify API and returns
// the raw response body. Remote error envelopes come back as [*APIError];
// timeouts wrap [shared.ErrTimeout].
func (s *SpotifyService) do(ctx context.Context, token, method, endpoint string, body any) ([]byte, error) {
	if token == "" {
		return nil, shared.ErrNotAuthenticated
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, spotifyBaseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if resp.StatusCode >= 400 {
		var apiErr APIError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.ErrorInfo.Message != "" {
			return nil, &apiErr
		}
		return nil, fmt.Errorf("%w: status %d (%s)", shared.ErrAPIRequest, resp.StatusCode, strconv.Quote(string(respBody)))
	}

	return respBody, nil
}
