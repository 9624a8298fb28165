// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/maestro/internal/models"
	"github.com/desertthunder/maestro/internal/services"
)

// MockRemote is a configurable test double for [services.Remote]. Every call
// is appended to Calls so tests can assert exactly which operations ran.
type MockRemote struct {
	Calls []string

	PlayErr   error
	PauseErr  error
	SkipErr   error
	VolumeErr error
	SeekErr   error
	SearchErr error
	StateErr  error
	Tracks    []services.Track
	Playlists []services.Playlist
	State     *services.PlaybackState
}

func (m *MockRemote) record(format string, args ...any) {
	m.Calls = append(m.Calls, fmt.Sprintf(format, args...))
}

func (m *MockRemote) Play(ctx context.Context, token string) error {
	m.record("play")
	return m.PlayErr
}

func (m *MockRemote) PlayURI(ctx context.Context, token, uri string) error {
	m.record("play-uri:%s", uri)
	return m.PlayErr
}

func (m *MockRemote) PlayContext(ctx context.Context, token, contextURI string) error {
	m.record("play-context:%s", contextURI)
	return m.PlayErr
}

func (m *MockRemote) Pause(ctx context.Context, token string) error {
	m.record("pause")
	return m.PauseErr
}

func (m *MockRemote) SkipNext(ctx context.Context, token string) error {
	m.record("next")
	return m.SkipErr
}

func (m *MockRemote) SkipPrevious(ctx context.Context, token string) error {
	m.record("previous")
	return m.SkipErr
}

func (m *MockRemote) SetVolume(ctx context.Context, token string, percent int) error {
	m.record("volume:%d", percent)
	return m.VolumeErr
}

func (m *MockRemote) Seek(ctx context.Context, token string, positionMS int) error {
	m.record("seek:%d", positionMS)
	return m.SeekErr
}

func (m *MockRemote) SearchTracks(ctx context.Context, token, query string, limit int) ([]services.Track, error) {
	m.record("search-tracks:%s", query)
	return m.Tracks, m.SearchErr
}

func (m *MockRemote) SearchPlaylists(ctx context.Context, token, query string, limit int) ([]services.Playlist, error) {
	m.record("search-playlists:%s", query)
	return m.Playlists, m.SearchErr
}

func (m *MockRemote) PlaybackState(ctx context.Context, token string) (*services.PlaybackState, error) {
	m.record("state")
	return m.State, m.StateErr
}

// CallCount returns how many recorded calls have the given prefix.
func (m *MockRemote) CallCount(prefix string) int {
	count := 0
	for _, c := range m.Calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			count++
		}
	}
	return count
}

// MockRefresher is a test double for the token refresh operation.
type MockRefresher struct {
	Cred     *models.Credential
	Err      error
	Received []string
}

func (m *MockRefresher) Refresh(ctx context.Context, refreshToken string) (*models.Credential, error) {
	m.Received = append(m.Received, refreshToken)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Cred, nil
}

// MockCredentialSource returns a fixed credential for dispatcher tests.
type MockCredentialSource struct {
	Cred *models.Credential
	Err  error
}

func (m *MockCredentialSource) EnsureFresh(ctx context.Context) (*models.Credential, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Cred, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

var _ io.Writer = (*FWriter)(nil)

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
