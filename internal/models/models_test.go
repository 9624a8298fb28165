package models

import (
	"testing"
	"time"
)

func TestCredentialExpiredAt(t *testing.T) {
	now := time.Now()

	tc := []struct {
		name string
		cred *Credential
		want bool
	}{
		{name: "nil credential", cred: nil, want: true},
		{name: "empty sentinel", cred: &Credential{}, want: true},
		{
			name: "expiry exactly now",
			cred: &Credential{AccessToken: "a", RefreshToken: "r", ExpiresAt: now},
			want: true,
		},
		{
			name: "expiry inside margin",
			cred: &Credential{AccessToken: "a", RefreshToken: "r", ExpiresAt: now.Add(30 * time.Second)},
			want: true,
		},
		{
			name: "expiry just past margin",
			cred: &Credential{AccessToken: "a", RefreshToken: "r", ExpiresAt: now.Add(61 * time.Second)},
			want: false,
		},
		{
			name: "expiry in the past",
			cred: &Credential{AccessToken: "a", RefreshToken: "r", ExpiresAt: now.Add(-5 * time.Second)},
			want: true,
		},
		{
			name: "missing expiry",
			cred: &Credential{AccessToken: "a", RefreshToken: "r"},
			want: true,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cred.ExpiredAt(now)
			if got != tt.want {
				t.Errorf("ExpiredAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCredentialValidate(t *testing.T) {
	now := time.Now()

	t.Run("valid", func(t *testing.T) {
		cred := &Credential{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    now.Add(time.Hour),
			CreatedAt:    now,
		}
		if err := cred.Validate(); err != nil {
			t.Errorf("expected valid credential, got %v", err)
		}
	})

	t.Run("missing access token", func(t *testing.T) {
		cred := &Credential{RefreshToken: "refresh", ExpiresAt: now.Add(time.Hour)}
		if err := cred.Validate(); err == nil {
			t.Error("expected error for missing access token")
		}
	})

	t.Run("expiry before creation", func(t *testing.T) {
		cred := &Credential{
			AccessToken: "access",
			ExpiresAt:   now.Add(-time.Hour),
			CreatedAt:   now,
		}
		if err := cred.Validate(); err == nil {
			t.Error("expected error for expiry preceding creation")
		}
	})
}

func TestCredentialEmpty(t *testing.T) {
	if !(&Credential{}).Empty() {
		t.Error("zero credential should be empty")
	}

	cred := &Credential{AccessToken: "a"}
	if cred.Empty() {
		t.Error("credential with access token should not be empty")
	}

	cred = &Credential{RefreshToken: "r"}
	if cred.Empty() {
		t.Error("credential with refresh token should not be empty")
	}
}
