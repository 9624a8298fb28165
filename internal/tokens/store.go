// package tokens manages the lifecycle of the persisted Spotify credential
package tokens

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/maestro/internal/models"
	"github.com/desertthunder/maestro/internal/shared"
)

// Repository is the persistence surface the store drives. Implemented by
// [repositories.CredentialRepository].
type Repository interface {
	Initialize() error
	Load() (*models.Credential, error)
	Save(*models.Credential) error
	Clear() error
}

// Refresher renews an access token from a refresh token. Implemented by
// [services.SpotifyService].
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*models.Credential, error)
}

// Store owns the single persisted credential: it decides staleness, refreshes
// through the remote, and keeps persisted and returned state consistent.
// Refreshes are serialized by a mutex, so concurrent requests that find a
// stale credential trigger at most one refresh per process; later waiters
// re-check expiry and reuse the renewed credential.
type Store struct {
	repo      Repository
	refresher Refresher
	logger    *log.Logger
	mu        sync.Mutex
}

// NewStore creates a credential [Store] backed by the given repository and refresher.
func NewStore(repo Repository, refresher Refresher, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{repo: repo, refresher: refresher, logger: logger}
}

// Initialize ensures the persisted credential record exists. Idempotent.
func (s *Store) Initialize() error {
	return s.repo.Initialize()
}

// Load returns the current persisted credential without freshness checks.
func (s *Store) Load() (*models.Credential, error) {
	return s.repo.Load()
}

// Save persists the credential as the new current state.
func (s *Store) Save(cred *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Save(cred)
}

// Clear resets the credential to the unauthenticated sentinel state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Clear()
}

// EnsureFresh returns a credential that is safe to use for a remote call,
// refreshing the stored one first when it is stale. On refresh failure the
// stored state is left untouched and the error wraps
// [shared.ErrRefreshFailed] so callers can prompt re-authorization.
func (s *Store) EnsureFresh(ctx context.Context) (*models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, err := s.repo.Load()
	if err != nil {
		return nil, err
	}

	if !cred.Expired() {
		return cred, nil
	}

	if cred.RefreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	if s.refresher == nil {
		return nil, fmt.Errorf("%w: no authorizer configured", shared.ErrRefreshFailed)
	}

	s.logger.Debug("access token stale, refreshing")

	renewed, err := s.refresher.Refresh(ctx, cred.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	// The remote only sometimes rotates the refresh token. The old one
	// stays valid until it is superseded, so keep it when no rotation
	// happened.
	if renewed.RefreshToken == "" {
		renewed.RefreshToken = cred.RefreshToken
	}
	renewed.CreatedAt = cred.CreatedAt

	if err := s.repo.Save(renewed); err != nil {
		return nil, err
	}

	s.logger.Info("access token refreshed", "expires_at", renewed.ExpiresAt)

	return renewed, nil
}
