package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/maestro/internal/models"
	"github.com/desertthunder/maestro/internal/server"
	"github.com/desertthunder/maestro/internal/shared"
)

// AuthLogin runs the OAuth2 authorization flow and persists the resulting
// credential.
//
// Starts a local HTTP server, opens the browser for user authorization, and
// exchanges the auth code for a credential saved under the single record.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in config.toml", shared.ErrMissingConfig)
	}
	if r.store == nil {
		return fmt.Errorf("%w: database unavailable, run 'maestro setup' first", shared.ErrStorage)
	}

	cred, err := r.doOAuth(ctx)
	if err != nil {
		return err
	}

	if err := r.store.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize credential record: %w", err)
	}
	if err := r.store.Save(cred); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Credential saved, valid until %s\n\n", cred.ExpiresAt.Local().Format(time.RFC1123))
	r.writePlain("You can now use: maestro player status\n")

	return nil
}

// AuthStatus reports the stored credential's state without refreshing it.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: database unavailable, run 'maestro setup' first", shared.ErrStorage)
	}

	cred, err := r.store.Load()
	if err != nil {
		r.writePlain("✗ Not authenticated\n")
		r.writePlain("Run 'maestro auth login' to authorize\n")
		return nil
	}

	if cred.Expired() {
		r.writePlain("⚠ Access token expired (refreshes on next command)\n")
	} else {
		r.writePlain("✓ Authenticated\n")
	}
	r.writePlain("Expires: %s\n", cred.ExpiresAt.Local().Format(time.RFC1123))
	if cred.RefreshToken == "" {
		r.writePlain("⚠ No refresh token stored, re-authorization will be required\n")
	}

	return nil
}

// AuthLogout discards the stored credential.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: database unavailable, run 'maestro setup' first", shared.ErrStorage)
	}

	if err := r.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}

	r.writePlain("✓ Logged out\n")
	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server.
func (r *Runner) doOAuth(ctx context.Context) (*models.Credential, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := r.spotify.AuthURL(state)
	oauthHandler := server.NewOAuthHandler(r.spotify, state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	httpServer := &http.Server{
		Addr:    r.config.Server.Addr(),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server at %v", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(authFlowTimeout)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}

	if result.Credential == nil {
		return nil, fmt.Errorf("%w: no credential received", shared.ErrAuthFailed)
	}

	return result.Credential, nil
}
