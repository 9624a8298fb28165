// package models defines the data model for the maestro remote control service
package models

import (
	"fmt"
	"time"
)

// ExpiryMargin is subtracted from a credential's expiry when deciding
// staleness, so a token is never sent on a request it could expire during.
const ExpiryMargin = 60 * time.Second

// Credential represents one Spotify authorization grant: the access/refresh
// token pair plus expiry. The credential repository owns the canonical copy;
// everything else works with snapshots.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Empty reports whether the credential is the uninitialized sentinel state.
func (c *Credential) Empty() bool {
	return c == nil || (c.AccessToken == "" && c.RefreshToken == "")
}

// Validate checks that a non-sentinel credential is internally consistent.
func (c *Credential) Validate() error {
	if c.AccessToken == "" {
		return fmt.Errorf("credential missing access token")
	}
	if c.ExpiresAt.IsZero() {
		return fmt.Errorf("credential missing expiry")
	}
	if !c.CreatedAt.IsZero() && c.ExpiresAt.Before(c.CreatedAt) {
		return fmt.Errorf("credential expiry precedes creation")
	}
	return nil
}

// ExpiredAt reports whether the access token should be considered stale at
// the given instant. An absent or incomplete credential is always stale.
func (c *Credential) ExpiredAt(now time.Time) bool {
	if c.Empty() || c.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(c.ExpiresAt.Add(-ExpiryMargin))
}

// Expired reports staleness relative to the current clock.
func (c *Credential) Expired() bool {
	return c.ExpiredAt(time.Now())
}
