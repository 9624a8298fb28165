package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/maestro/internal/models"
	"github.com/desertthunder/maestro/internal/shared"
)

// credentialID is the primary key of the single credential row. The service
// controls one account, so the table never holds more than this row.
const credentialID = "default"

// CredentialRepository persists the [models.Credential] record in SQLite.
// The row is replaced wholesale on every save so readers never observe a
// half-written credential.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Initialize ensures the credential row exists, inserting the empty sentinel
// when none is present. Idempotent: an already-authenticated row is left
// untouched.
func (r *CredentialRepository) Initialize() error {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM credentials WHERE id = ?)", credentialID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%w: failed to check credential row: %v", shared.ErrStorage, err)
	}

	if exists {
		return nil
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO credentials (id, access_token, refresh_token, expires_at, created_at, updated_at)
		VALUES (?, '', '', NULL, ?, ?)
	`

	if _, err := r.db.Exec(query, credentialID, now, now); err != nil {
		return fmt.Errorf("%w: failed to insert sentinel credential: %v", shared.ErrStorage, err)
	}

	return nil
}

// Load returns the current credential, or [shared.ErrNotAuthenticated] when
// only the sentinel state is present.
func (r *CredentialRepository) Load() (*models.Credential, error) {
	query := `
		SELECT access_token, refresh_token, expires_at, created_at, updated_at
		FROM credentials
		WHERE id = ?
	`

	var (
		accessToken  string
		refreshToken string
		expiresAt    sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := r.db.QueryRow(query, credentialID).Scan(&accessToken, &refreshToken, &expiresAt, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query credential: %v", shared.ErrStorage, err)
	}

	cred := &models.Credential{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
	if expiresAt.Valid {
		cred.ExpiresAt = expiresAt.Time
	}

	if cred.Empty() {
		return nil, shared.ErrNotAuthenticated
	}

	return cred, nil
}

// Save replaces the stored credential with the given one in a single
// statement. Validation runs first so a malformed credential never reaches
// disk.
func (r *CredentialRepository) Save(cred *models.Credential) error {
	if err := cred.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	created := cred.CreatedAt
	if created.IsZero() {
		created = now
	}

	query := `
		INSERT OR REPLACE INTO credentials (id, access_token, refresh_token, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, credentialID, cred.AccessToken, cred.RefreshToken, cred.ExpiresAt, created, now)
	if err != nil {
		return fmt.Errorf("%w: failed to save credential: %v", shared.ErrStorage, err)
	}

	cred.CreatedAt = created
	cred.UpdatedAt = now

	return nil
}

// Clear resets the stored credential to the sentinel state. Used by logout.
func (r *CredentialRepository) Clear() error {
	now := time.Now().UTC()
	query := `
		INSERT OR REPLACE INTO credentials (id, access_token, refresh_token, expires_at, created_at, updated_at)
		VALUES (?, '', '', NULL, ?, ?)
	`

	if _, err := r.db.Exec(query, credentialID, now, now); err != nil {
		return fmt.Errorf("%w: failed to clear credential: %v", shared.ErrStorage, err)
	}

	return nil
}
