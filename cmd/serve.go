package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/maestro/internal/server"
	"github.com/desertthunder/maestro/internal/shared"
)

// Serve runs the webhook server: the assistant command endpoint, the health
// check, and the OAuth login/callback routes.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireDispatcher(); err != nil {
		return err
	}
	if r.store == nil {
		return fmt.Errorf("%w: database unavailable, run 'maestro setup' first", shared.ErrStorage)
	}

	addr := r.config.Server.Addr()
	if port := cmd.Int("port"); port > 0 {
		addr = fmt.Sprintf("%s:%d", r.config.Server.Host, port)
	}

	if r.config.Server.APIKey == "" {
		r.logger.Warn("no API key configured, webhook endpoint is unprotected")
	}

	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))

	// The webhook route carries its own router so the API key gate does not
	// apply to the OAuth and health routes.
	webhook := server.NewBasicRouter()
	webhook.Use(server.VerifyAPIKey(r.config.Server.APIKey))
	webhook.Handler(server.NewCommandHandler(r.dispatcher))
	router.Handle("POST", "/ai/command", webhook)

	router.Handler(server.NewHealthHandler(func(ctx context.Context) bool {
		cred, err := r.store.Load()
		return err == nil && !cred.Empty()
	}))

	router.Handler(&serveAuthHandler{runner: r, ctx: ctx})

	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("serving webhook at %v", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		r.logger.Info("shutting down", "signal", sig)
	case <-ctx.Done():
		r.logger.Info("shutting down", "reason", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// authFlowTimeout bounds how long an authorization flow may sit waiting for
// the user to finish in the browser.
const authFlowTimeout = 2 * time.Minute

// serveAuthHandler wraps per-flow OAuth handlers: each /login starts a fresh
// flow (new state, new single-shot callback) and a goroutine saves the
// resulting credential. The current flow is guarded by a mutex because
// /login and /callback arrive on separate request goroutines.
type serveAuthHandler struct {
	runner  *Runner
	ctx     context.Context
	timeout time.Duration

	mu      sync.Mutex
	current *server.OAuthHandler
}

func (h *serveAuthHandler) Routes() []string {
	return []string{"/login", "/callback"}
}

func (h *serveAuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path == "/login" {
		state, err := shared.GenerateState()
		if err != nil {
			http.Error(w, "Failed to start authorization", http.StatusInternalServerError)
			return
		}

		handler := server.NewOAuthHandler(h.runner.spotify, state)
		h.mu.Lock()
		h.current = handler
		h.mu.Unlock()

		go h.await(handler)

		handler.ServeHTTP(w, req)
		return
	}

	h.mu.Lock()
	current := h.current
	h.mu.Unlock()

	if current == nil {
		http.Error(w, "No authorization in progress", http.StatusBadRequest)
		return
	}
	current.ServeHTTP(w, req)
}

// await persists the flow's credential when the callback delivers one. The
// wait is bounded: a flow the user abandons in the browser stops consuming a
// goroutine once the timeout passes or the server shuts down.
func (h *serveAuthHandler) await(handler *server.OAuthHandler) {
	r := h.runner

	ctx := h.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := h.timeout
	if timeout <= 0 {
		timeout = authFlowTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			r.logger.Warn("authorization failed", "error", result.Error())
			return
		}
		if err := r.store.Initialize(); err != nil {
			r.logger.Error("failed to initialize credential record", "error", err)
			return
		}
		if err := r.store.Save(result.Credential); err != nil {
			r.logger.Error("failed to save credential", "error", err)
			return
		}
		r.logger.Info("authorization complete, credential saved")
	case <-ctx.Done():
	case <-timer.C:
		r.logger.Warn("authorization flow abandoned", "timeout", timeout)
	}
}
