package services

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is Spotify's error envelope: {"error": {"status": ..., "message": ..., "reason": ...}}.
//
// The reason field only appears on player endpoints. All string matching
// against the remote's error vocabulary lives in this file; the exact
// messages are a versioned contract with the Spotify Web API.
type APIError struct {
	ErrorInfo struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Reason  string `json:"reason"`
	} `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify API error %d: %s", e.ErrorInfo.Status, e.ErrorInfo.Message)
}

// IsNoActiveDevice reports whether the error means no playback device is
// active on the account.
func IsNoActiveDevice(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.ErrorInfo.Reason == "NO_ACTIVE_DEVICE" {
		return true
	}
	return apiErr.ErrorInfo.Status == 404 &&
		strings.Contains(strings.ToLower(apiErr.ErrorInfo.Message), "no active device")
}

// IsPremiumRequired reports whether the error means the account lacks the
// premium subscription playback control requires.
func IsPremiumRequired(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.ErrorInfo.Reason == "PREMIUM_REQUIRED" {
		return true
	}
	return apiErr.ErrorInfo.Status == 403 &&
		strings.Contains(strings.ToLower(apiErr.ErrorInfo.Message), "premium")
}

// IsNotFound reports whether the error is a plain 404 for a missing resource
// (as opposed to the player's no-active-device 404).
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorInfo.Status == 404 && !IsNoActiveDevice(err)
}

// IsUnauthorized reports whether the remote rejected the bearer token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorInfo.Status == 401
}
