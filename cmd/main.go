package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/maestro/internal/repositories"
	"github.com/desertthunder/maestro/internal/services"
	"github.com/desertthunder/maestro/internal/shared"
	"github.com/desertthunder/maestro/internal/tokens"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	var spotify *services.SpotifyService
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map(), config.Remote)
		if err != nil {
			logger.Warn("failed to create Spotify service", "error", err)
		} else {
			spotify = svc
		}
	}

	var refresher tokens.Refresher
	if spotify != nil {
		refresher = spotify
	}

	var store *tokens.Store
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		repo := repositories.NewCredentialRepository(db)
		store = tokens.NewStore(repo, refresher, logger)
	} else {
		logger.Warn("failed to open database, run 'maestro setup'", "error", err)
	}

	opts := RunnerOpts{
		Config:  config,
		Spotify: spotify,
		Store:   store,
		Logger:  logger,
	}
	if spotify != nil {
		opts.Remote = spotify
	}
	runner := NewRunner(opts)

	app := &cli.Command{
		Name:    "maestro",
		Usage:   "Command-driven Spotify remote control",
		Version: "0.3.0",
		Commands: []*cli.Command{
			setupCommand(runner),
			authCommand(runner),
			playerCommand(runner),
			commandCommand(runner),
			serveCommand(runner),
			replCommand(runner),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
