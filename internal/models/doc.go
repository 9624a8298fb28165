// Package models defines domain entities shared across the maestro service.
//
// The package contains two categories of types:
//
// 1. The persistent entity:
//   - [Credential] : the Spotify access/refresh token pair with expiry, the
//     single record persisted by the credential repository
//
// 2. Command vocabulary shared by the interpreter, dispatcher, webhook, and
// CLI output:
//   - [Intent] : the parsed form of one free-form command
//   - [Outcome] : the uniform success/failure result of dispatching an Intent
//   - [PlaybackDetails] : structured now-playing data attached to status
//     outcomes
//
// Staleness policy lives on Credential itself ([Credential.ExpiredAt] with
// [ExpiryMargin]) so the store, dispatcher, and tests share one definition.
package models
