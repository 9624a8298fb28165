package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/maestro/internal/models"
	"github.com/desertthunder/maestro/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testCredential() *models.Credential {
	return &models.Credential{
		AccessToken:  "access-token-1",
		RefreshToken: "refresh-token-1",
		ExpiresAt:    time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}
}

func TestCredentialRepository(t *testing.T) {
	t.Run("InitializeCreatesSentinel", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		if err := repo.Initialize(); err != nil {
			t.Fatalf("failed to initialize: %v", err)
		}

		_, err := repo.Load()
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated from sentinel, got %v", err)
		}
	})

	t.Run("InitializeIdempotent", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		if err := repo.Initialize(); err != nil {
			t.Fatalf("failed to initialize: %v", err)
		}

		cred := testCredential()
		if err := repo.Save(cred); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}

		// Second Initialize must not overwrite the authenticated row.
		if err := repo.Initialize(); err != nil {
			t.Fatalf("second initialize failed: %v", err)
		}

		loaded, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load credential: %v", err)
		}

		if loaded.AccessToken != cred.AccessToken {
			t.Errorf("expected access token %s, got %s", cred.AccessToken, loaded.AccessToken)
		}
	})

	t.Run("SaveLoadRoundTrip", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		if err := repo.Initialize(); err != nil {
			t.Fatalf("failed to initialize: %v", err)
		}

		cred := testCredential()
		if err := repo.Save(cred); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}

		loaded, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load credential: %v", err)
		}

		if loaded.AccessToken != cred.AccessToken {
			t.Errorf("access token mismatch: got %s", loaded.AccessToken)
		}
		if loaded.RefreshToken != cred.RefreshToken {
			t.Errorf("refresh token mismatch: got %s", loaded.RefreshToken)
		}
		if !loaded.ExpiresAt.Equal(cred.ExpiresAt) {
			t.Errorf("expiry mismatch: got %v, want %v", loaded.ExpiresAt, cred.ExpiresAt)
		}
		if loaded.CreatedAt.IsZero() || loaded.UpdatedAt.IsZero() {
			t.Error("timestamps should be set after save")
		}
	})

	t.Run("SaveReplacesWholesale", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		if err := repo.Initialize(); err != nil {
			t.Fatalf("failed to initialize: %v", err)
		}

		first := testCredential()
		if err := repo.Save(first); err != nil {
			t.Fatalf("failed to save first credential: %v", err)
		}

		second := &models.Credential{
			AccessToken:  "access-token-2",
			RefreshToken: "refresh-token-2",
			ExpiresAt:    time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second),
		}
		if err := repo.Save(second); err != nil {
			t.Fatalf("failed to save second credential: %v", err)
		}

		loaded, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load credential: %v", err)
		}

		if loaded.AccessToken != "access-token-2" || loaded.RefreshToken != "refresh-token-2" {
			t.Errorf("expected second credential, got %+v", loaded)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM credentials").Scan(&count); err != nil {
			t.Fatalf("failed to count rows: %v", err)
		}
		if count != 1 {
			t.Errorf("expected a single credential row, got %d", count)
		}
	})

	t.Run("SaveRejectsInvalid", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		if err := repo.Initialize(); err != nil {
			t.Fatalf("failed to initialize: %v", err)
		}

		if err := repo.Save(&models.Credential{RefreshToken: "only"}); err == nil {
			t.Error("expected validation error saving credential without access token")
		}
	})

	t.Run("ClearResetsToSentinel", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		if err := repo.Initialize(); err != nil {
			t.Fatalf("failed to initialize: %v", err)
		}

		if err := repo.Save(testCredential()); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear credential: %v", err)
		}

		_, err := repo.Load()
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated after clear, got %v", err)
		}
	})

	t.Run("LoadWithoutInitialize", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)
		_, err := repo.Load()
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated with no row, got %v", err)
		}
	})
}
