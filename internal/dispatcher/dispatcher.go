// package dispatcher executes parsed playback intents against the remote
// player and folds every result into a uniform [models.Outcome].
package dispatcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/maestro/internal/interpreter"
	"github.com/desertthunder/maestro/internal/models"
	"github.com/desertthunder/maestro/internal/services"
	"github.com/desertthunder/maestro/internal/shared"
)

// volumeStep is the increment applied by the relative volume intents.
const volumeStep = 10

// CredentialSource hands out a credential guaranteed valid for at least the
// next minute (see [models.ExpiryMargin]).
type CredentialSource interface {
	EnsureFresh(ctx context.Context) (*models.Credential, error)
}

// User-facing guidance messages. These are the only failure text that leaves
// the dispatcher; raw error detail rides in Outcome.Detail.
const (
	msgNotAuthenticated = "Not authenticated with Spotify - please authenticate first"
	msgStorageTrouble   = "Credential storage is temporarily unavailable - please try again"
	msgNoActiveDevice   = "No active Spotify device - open Spotify on a device and try again"
	msgPremiumRequired  = "Spotify Premium is required to control playback"
	msgNotFound         = "The requested resource was not found on Spotify"
	msgTimeout          = "Spotify did not respond in time - please try again"
	msgNotUnderstood    = "I did not understand that command"
	msgGenericFailure   = "Failed to process command"
)

// Dispatcher maps intents to remote playback operations.
type Dispatcher struct {
	remote services.Remote
	source CredentialSource
	logger *log.Logger
}

func New(remote services.Remote, source CredentialSource, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Dispatcher{remote: remote, source: source, logger: logger}
}

// Handle parses free-form command text and dispatches the resulting intent.
func (d *Dispatcher) Handle(ctx context.Context, text string) models.Outcome {
	d.logger.Info("received command", "command", text)
	intent := interpreter.Parse(text)
	d.logger.Debug("parsed command", "action", intent.Action, "query", intent.Query, "level", intent.Level)
	return d.Dispatch(ctx, intent)
}

// Dispatch executes one intent and classifies the result. It never returns
// an error: remote and credential failures become Success=false outcomes
// with a user-appropriate message.
func (d *Dispatcher) Dispatch(ctx context.Context, intent models.Intent) models.Outcome {
	if intent.Action == models.ActionUnknown {
		return models.Outcome{
			Success:         false,
			Message:         msgNotUnderstood,
			OriginalCommand: intent.Original,
		}
	}

	cred, err := d.source.EnsureFresh(ctx)
	if err != nil {
		return d.credentialOutcome(err)
	}
	token := cred.AccessToken

	switch intent.Action {
	case models.ActionPlay:
		if err := d.remote.Play(ctx, token); err != nil {
			return d.classify(err)
		}
		return success("Playback started")

	case models.ActionPause:
		if err := d.remote.Pause(ctx, token); err != nil {
			return d.classify(err)
		}
		return success("Playback paused")

	case models.ActionNext:
		if err := d.remote.SkipNext(ctx, token); err != nil {
			return d.classify(err)
		}
		return success("Skipped to next track")

	case models.ActionPrevious:
		if err := d.remote.SkipPrevious(ctx, token); err != nil {
			return d.classify(err)
		}
		return success("Skipped to previous track")

	case models.ActionSetVolume:
		if err := d.remote.SetVolume(ctx, token, intent.Level); err != nil {
			return d.classify(err)
		}
		return success(fmt.Sprintf("Volume set to %d%%", intent.Level))

	case models.ActionVolumeUp:
		return d.adjustVolume(ctx, token, volumeStep)

	case models.ActionVolumeDown:
		return d.adjustVolume(ctx, token, -volumeStep)

	case models.ActionSearchPlay:
		return d.searchAndPlay(ctx, token, intent.Query)

	case models.ActionPlayPlaylist:
		return d.playPlaylist(ctx, token, intent.Query)

	case models.ActionStatus:
		return d.status(ctx, token)
	}

	return models.Outcome{
		Success:         false,
		Message:         msgNotUnderstood,
		OriginalCommand: intent.Original,
	}
}

// Seek jumps to a position in the current track. There is no natural-language
// seek intent; the CLI player command calls this directly.
func (d *Dispatcher) Seek(ctx context.Context, positionMS int) models.Outcome {
	cred, err := d.source.EnsureFresh(ctx)
	if err != nil {
		return d.credentialOutcome(err)
	}
	if err := d.remote.Seek(ctx, cred.AccessToken, positionMS); err != nil {
		return d.classify(err)
	}
	return success(fmt.Sprintf("Seeked to %s", shared.FormatDuration(positionMS)))
}

func (d *Dispatcher) adjustVolume(ctx context.Context, token string, delta int) models.Outcome {
	state, err := d.remote.PlaybackState(ctx, token)
	if err != nil {
		return d.classify(err)
	}
	if state == nil {
		return models.Outcome{Success: false, Message: msgNoActiveDevice}
	}

	volume := state.Device.Volume() + delta
	if volume > 100 {
		volume = 100
	}
	if volume < 0 {
		volume = 0
	}
	if err := d.remote.SetVolume(ctx, token, volume); err != nil {
		return d.classify(err)
	}
	if delta > 0 {
		return success(fmt.Sprintf("Volume increased to %d%%", volume))
	}
	return success(fmt.Sprintf("Volume decreased to %d%%", volume))
}

func (d *Dispatcher) searchAndPlay(ctx context.Context, token, query string) models.Outcome {
	tracks, err := d.remote.SearchTracks(ctx, token, query, 1)
	if err != nil {
		return d.classify(err)
	}
	if len(tracks) == 0 {
		return models.Outcome{Success: false, Message: fmt.Sprintf("No tracks found for %q", query)}
	}

	track := tracks[0]
	if err := d.remote.PlayURI(ctx, token, track.URI); err != nil {
		return d.classify(err)
	}
	return success(fmt.Sprintf("Playing %q by %s", track.Name, track.ArtistNames()))
}

func (d *Dispatcher) playPlaylist(ctx context.Context, token, query string) models.Outcome {
	playlists, err := d.remote.SearchPlaylists(ctx, token, query, 1)
	if err != nil {
		return d.classify(err)
	}
	if len(playlists) == 0 {
		return models.Outcome{Success: false, Message: fmt.Sprintf("No playlists found for %q", query)}
	}

	playlist := playlists[0]
	if err := d.remote.PlayContext(ctx, token, playlist.URI); err != nil {
		return d.classify(err)
	}
	return success(fmt.Sprintf("Playing playlist %q", playlist.Name))
}

func (d *Dispatcher) status(ctx context.Context, token string) models.Outcome {
	state, err := d.remote.PlaybackState(ctx, token)
	if err != nil {
		// Having no active device is not a failure for a status query.
		if services.IsNoActiveDevice(err) {
			return success(msgNoActiveDevice)
		}
		return d.classify(err)
	}
	if state == nil || state.Item == nil {
		return success("Not currently playing anything")
	}

	item := state.Item
	artists := item.ArtistNames()
	return models.Outcome{
		Success: true,
		Message: fmt.Sprintf("Currently playing %q by %s", item.Name, artists),
		Details: &models.PlaybackDetails{
			Track:     item.Name,
			Artists:   artists,
			Album:     item.Album.Name,
			IsPlaying: state.IsPlaying,
			Volume:    state.Device.Volume(),
			Device:    state.Device.Name,
		},
	}
}

// credentialOutcome maps credential store failures. Authentication problems
// prompt re-authorization; storage problems are transient and retryable.
func (d *Dispatcher) credentialOutcome(err error) models.Outcome {
	d.logger.Warn("credential unavailable", "error", err)
	if errors.Is(err, shared.ErrStorage) {
		return models.Outcome{Success: false, Message: msgStorageTrouble, Detail: err.Error()}
	}
	return models.Outcome{Success: false, Message: msgNotAuthenticated, Detail: err.Error()}
}

// classify translates a remote call failure into a user-facing outcome. Raw
// error text only ever lands in Detail.
func (d *Dispatcher) classify(err error) models.Outcome {
	d.logger.Warn("remote call failed", "error", err)
	switch {
	case services.IsNoActiveDevice(err):
		return models.Outcome{Success: false, Message: msgNoActiveDevice}
	case services.IsPremiumRequired(err):
		return models.Outcome{Success: false, Message: msgPremiumRequired}
	case services.IsNotFound(err):
		return models.Outcome{Success: false, Message: msgNotFound}
	case services.IsUnauthorized(err):
		return models.Outcome{Success: false, Message: msgNotAuthenticated, Detail: err.Error()}
	case errors.Is(err, shared.ErrTimeout):
		return models.Outcome{Success: false, Message: msgTimeout, Detail: err.Error()}
	}
	return models.Outcome{Success: false, Message: msgGenericFailure, Detail: err.Error()}
}

func success(message string) models.Outcome {
	return models.Outcome{Success: true, Message: message}
}
