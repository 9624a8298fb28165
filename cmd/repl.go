package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/maestro/internal/shared"
	"github.com/desertthunder/maestro/internal/ui"
)

// REPL launches the interactive command prompt.
func (r *Runner) REPL(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with the TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/maestro-repl.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, log.DebugLevel)
	r.SetLogger(fileLogger)

	if err := ui.Run(ctx, r.dispatcher); err != nil {
		return fmt.Errorf("error running REPL: %w", err)
	}

	return nil
}
