package services

import (
	"context"

	"github.com/desertthunder/maestro/internal/models"
)

// Remote is the fixed playback operation set the dispatcher consumes. Every
// call takes the bearer token for the request explicitly; the credential
// store owns token lifetime, the remote client never caches one.
type Remote interface {
	// Play resumes playback on the active device.
	Play(ctx context.Context, token string) error

	// PlayURI starts playback of a specific track URI.
	PlayURI(ctx context.Context, token, uri string) error

	// PlayContext starts playback of a context URI (playlist, album).
	PlayContext(ctx context.Context, token, contextURI string) error

	// Pause pauses playback on the active device.
	Pause(ctx context.Context, token string) error

	// SkipNext skips to the next track.
	SkipNext(ctx context.Context, token string) error

	// SkipPrevious returns to the previous track.
	SkipPrevious(ctx context.Context, token string) error

	// SetVolume sets the playback volume (0-100).
	SetVolume(ctx context.Context, token string, percent int) error

	// Seek jumps to a position in the current track.
	Seek(ctx context.Context, token string, positionMS int) error

	// SearchTracks returns up to limit tracks matching the query.
	SearchTracks(ctx context.Context, token, query string, limit int) ([]Track, error)

	// SearchPlaylists returns up to limit playlists matching the query.
	SearchPlaylists(ctx context.Context, token, query string, limit int) ([]Playlist, error)

	// PlaybackState returns the current playback state, or nil when the
	// account has no playback session.
	PlaybackState(ctx context.Context, token string) (*PlaybackState, error)
}

// Authorizer is the authorization half of the remote contract: code →
// credential and refresh token → credential.
type Authorizer interface {
	// AuthURL returns the authorization URL for the user login redirect.
	AuthURL(state string) string

	// Exchange trades an authorization code for a fresh credential.
	Exchange(ctx context.Context, code string) (*models.Credential, error)

	// Refresh trades a refresh token for a renewed credential. The returned
	// credential's refresh token may be empty when the remote does not
	// rotate it.
	Refresh(ctx context.Context, refreshToken string) (*models.Credential, error)
}

// Track represents a Spotify track in search results and playback state.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	URI        string   `json:"uri"`
	DurationMS int      `json:"duration_ms"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
}

// ArtistNames joins the track's artist names for display.
func (t Track) ArtistNames() string {
	names := ""
	for i, a := range t.Artists {
		if i > 0 {
			names += ", "
		}
		names += a.Name
	}
	return names
}

// Artist represents a Spotify artist.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Album represents a Spotify album.
type Album struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Playlist represents a Spotify playlist in search results.
type Playlist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URI   string `json:"uri"`
	Owner Owner  `json:"owner"`
}

// Owner is the owning user of a playlist.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Device represents a Spotify playback device.
type Device struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	IsActive      bool   `json:"is_active"`
	VolumePercent *int   `json:"volume_percent"` // nullable in the API
}

// Volume returns the device volume, defaulting to 0 when the API omits it.
func (d Device) Volume() int {
	if d.VolumePercent == nil {
		return 0
	}
	return *d.VolumePercent
}

// PlaybackState represents the account's current playback session.
type PlaybackState struct {
	Device     Device `json:"device"`
	IsPlaying  bool   `json:"is_playing"`
	ProgressMS int    `json:"progress_ms"`
	Item       *Track `json:"item"`
}
