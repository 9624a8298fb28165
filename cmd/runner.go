package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/maestro/internal/dispatcher"
	"github.com/desertthunder/maestro/internal/services"
	"github.com/desertthunder/maestro/internal/shared"
	"github.com/desertthunder/maestro/internal/tokens"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	spotify    *services.SpotifyService
	remote     services.Remote
	store      *tokens.Store
	source     dispatcher.CredentialSource
	dispatcher *dispatcher.Dispatcher
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Spotify *services.SpotifyService
	Remote  services.Remote
	Store   *tokens.Store
	Source  dispatcher.CredentialSource
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration. The
// dispatcher is wired when both a remote and a credential source exist.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Source == nil && opts.Store != nil {
		opts.Source = opts.Store
	}

	r := &Runner{
		config:  opts.Config,
		spotify: opts.Spotify,
		remote:  opts.Remote,
		store:   opts.Store,
		source:  opts.Source,
		logger:  opts.Logger,
		output:  opts.Output,
	}

	if r.remote != nil && r.source != nil {
		r.dispatcher = dispatcher.New(r.remote, r.source, r.logger)
	}

	return r
}

// SetLogger swaps the active logger, propagating it to the dispatcher.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	if r.remote != nil && r.source != nil {
		r.dispatcher = dispatcher.New(r.remote, r.source, logger)
	}
}

// requireDispatcher guards command actions that need the full playback stack.
func (r *Runner) requireDispatcher() error {
	if r.dispatcher == nil {
		return fmt.Errorf("%w: Spotify credentials not configured, run 'maestro setup' and fill in config.toml", shared.ErrMissingConfig)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
