// Package repositories provides SQLite-backed persistence for maestro.
//
// The only persisted record is the Spotify credential, held in a single-row
// table keyed by a fixed id. [CredentialRepository.Save] replaces the row in
// one INSERT OR REPLACE so a concurrent reader sees either the old or the new
// credential, never a partial write. Absent or blank token columns signal
// "not authenticated" and surface as [shared.ErrNotAuthenticated]; all other
// failures wrap [shared.ErrStorage] so callers can tell a transient storage
// problem from a missing authorization.
package repositories
