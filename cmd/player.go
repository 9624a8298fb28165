package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/maestro/internal/formatter"
	"github.com/desertthunder/maestro/internal/models"
	"github.com/desertthunder/maestro/internal/shared"
)

// PlayerStatus shows the current playback state.
func (r *Runner) PlayerStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}

	cred, err := r.source.EnsureFresh(ctx)
	if err != nil {
		return fmt.Errorf("credential unavailable: %w", err)
	}

	state, err := r.remote.PlaybackState(ctx, cred.AccessToken)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(state, true)
	}
	return r.writePlain("%s", formatter.FormatPlayback(state))
}

// PlayerPlay resumes playback, or searches for and plays the given query.
func (r *Runner) PlayerPlay(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}

	intent := models.Intent{Action: models.ActionPlay}
	if query := strings.TrimSpace(cmd.StringArg("query")); query != "" {
		intent = models.Intent{Action: models.ActionSearchPlay, Query: query}
	}

	return r.writeOutcome(r.dispatcher.Dispatch(ctx, intent))
}

// PlayerPause pauses playback.
func (r *Runner) PlayerPause(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}
	return r.writeOutcome(r.dispatcher.Dispatch(ctx, models.Intent{Action: models.ActionPause}))
}

// PlayerNext skips to the next track.
func (r *Runner) PlayerNext(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}
	return r.writeOutcome(r.dispatcher.Dispatch(ctx, models.Intent{Action: models.ActionNext}))
}

// PlayerPrevious returns to the previous track.
func (r *Runner) PlayerPrevious(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}
	return r.writeOutcome(r.dispatcher.Dispatch(ctx, models.Intent{Action: models.ActionPrevious}))
}

// PlayerVolume sets the playback volume.
func (r *Runner) PlayerVolume(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}

	level, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(cmd.StringArg("level")), "%"))
	if err != nil {
		return fmt.Errorf("%w: volume must be a number", shared.ErrInvalidArgument)
	}
	if level < 0 || level > 100 {
		return fmt.Errorf("%w: volume must be between 0 and 100", shared.ErrInvalidArgument)
	}

	return r.writeOutcome(r.dispatcher.Dispatch(ctx, models.Intent{Action: models.ActionSetVolume, Level: level}))
}

// PlayerSeek seeks to a position (in seconds) in the current track.
func (r *Runner) PlayerSeek(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}

	seconds, err := strconv.Atoi(strings.TrimSpace(cmd.StringArg("position")))
	if err != nil || seconds < 0 {
		return fmt.Errorf("%w: position must be a positive number of seconds", shared.ErrInvalidArgument)
	}

	return r.writeOutcome(r.dispatcher.Seek(ctx, seconds*1000))
}

// PlayerSearch searches tracks or playlists and prints the results.
func (r *Runner) PlayerSearch(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}

	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	kind := cmd.String("type")
	limit := cmd.Int("limit")

	cred, err := r.source.EnsureFresh(ctx)
	if err != nil {
		return fmt.Errorf("credential unavailable: %w", err)
	}

	switch kind {
	case "track":
		tracks, err := r.remote.SearchTracks(ctx, cred.AccessToken, query, int(limit))
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		if cmd.Bool("json") {
			return r.writeJSON(tracks, true)
		}
		return r.writePlain("%s", formatter.FormatTracks(tracks))
	case "playlist":
		playlists, err := r.remote.SearchPlaylists(ctx, cred.AccessToken, query, int(limit))
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		if cmd.Bool("json") {
			return r.writeJSON(playlists, true)
		}
		return r.writePlain("%s", formatter.FormatPlaylists(playlists))
	}

	return fmt.Errorf("%w: type must be track or playlist", shared.ErrInvalidArgument)
}

// Command dispatches one free-form text command.
func (r *Runner) Command(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}

	text := strings.TrimSpace(cmd.StringArg("text"))
	if text == "" {
		return fmt.Errorf("%w: command text", shared.ErrMissingArgument)
	}

	outcome := r.dispatcher.Handle(ctx, text)
	if cmd.Bool("json") {
		return r.writeJSON(outcome, true)
	}
	return r.writeOutcome(outcome)
}

func (r *Runner) writeOutcome(outcome models.Outcome) error {
	return r.writePlain("%s", formatter.FormatOutcome(outcome))
}
