// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes the config file, database, and credential record.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize configuration, database, and migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// authCommand handles the Spotify authorization lifecycle.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Spotify authorization",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authorize with Spotify using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show the stored credential's state",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored credential",
				Action: r.AuthLogout,
			},
		},
	}
}

// playerCommand exposes direct playback operations.
func playerCommand(r *Runner) *cli.Command {
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}

	return &cli.Command{
		Name:    "player",
		Aliases: []string{"p"},
		Usage:   "Control Spotify playback",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show current playback state",
				Flags:  []cli.Flag{jsonFlag},
				Action: r.PlayerStatus,
			},
			{
				Name:   "play",
				Usage:  "Resume playback, or search and play the given query",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Action: r.PlayerPlay,
			},
			{
				Name:   "pause",
				Usage:  "Pause playback",
				Action: r.PlayerPause,
			},
			{
				Name:   "next",
				Usage:  "Skip to the next track",
				Action: r.PlayerNext,
			},
			{
				Name:    "previous",
				Aliases: []string{"prev"},
				Usage:   "Return to the previous track",
				Action:  r.PlayerPrevious,
			},
			{
				Name:  "volume",
				Usage: "Set volume (0-100)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "level"},
				},
				Action: r.PlayerVolume,
			},
			{
				Name:  "seek",
				Usage: "Seek to a position in seconds",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "position"},
				},
				Action: r.PlayerSeek,
			},
			{
				Name:  "search",
				Usage: "Search tracks or playlists",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "Search type: track or playlist",
						Value: "track",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
					jsonFlag,
				},
				Action: r.PlayerSearch,
			},
		},
	}
}

// commandCommand dispatches one free-form command, the same path the webhook uses.
func commandCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "command",
		Aliases: []string{"do"},
		Usage:   "Run a natural-language playback command",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "text"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the outcome as JSON",
			},
		},
		Action: r.Command,
	}
}

// serveCommand starts the webhook server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the assistant webhook and OAuth endpoints",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override the configured port",
			},
		},
		Action: r.Serve,
	}
}

// replCommand launches the interactive terminal REPL.
func replCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Interactive command prompt",
		Action: r.REPL,
	}
}
