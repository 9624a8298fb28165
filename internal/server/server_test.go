package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/maestro/internal/models"
	"github.com/desertthunder/maestro/internal/shared"
)

// stubCommandService echoes a canned outcome and records the text it saw.
type stubCommandService struct {
	outcome  models.Outcome
	received []string
}

func (s *stubCommandService) Handle(ctx context.Context, text string) models.Outcome {
	s.received = append(s.received, text)
	return s.outcome
}

// stubAuthorizer implements services.Authorizer for callback tests.
type stubAuthorizer struct {
	cred *models.Credential
	err  error
}

func (s *stubAuthorizer) AuthURL(state string) string {
	return "https://accounts.example.com/authorize?state=" + state
}

func (s *stubAuthorizer) Exchange(ctx context.Context, code string) (*models.Credential, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cred, nil
}

func (s *stubAuthorizer) Refresh(ctx context.Context, refreshToken string) (*models.Credential, error) {
	return nil, fmt.Errorf("not implemented")
}

func TestVerifyAPIKey(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("ValidKey", func(t *testing.T) {
		handler := VerifyAPIKey("secret")(inner)
		req := httptest.NewRequest("POST", "/ai/command", nil)
		req.Header.Set("X-API-Key", "secret")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("InvalidKey", func(t *testing.T) {
		handler := VerifyAPIKey("secret")(inner)
		req := httptest.NewRequest("POST", "/ai/command", nil)
		req.Header.Set("X-API-Key", "wrong")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Invalid API key") {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		handler := VerifyAPIKey("secret")(inner)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/ai/command", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("EmptyConfiguredKeyDisablesCheck", func(t *testing.T) {
		handler := VerifyAPIKey("")(inner)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/ai/command", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

func TestCommandHandler(t *testing.T) {
	t.Run("DispatchesCommand", func(t *testing.T) {
		service := &stubCommandService{
			outcome: models.Outcome{Success: true, Message: "Playback started"},
		}
		handler := NewCommandHandler(service)

		body := strings.NewReader(`{"command": "play"}`)
		req := httptest.NewRequest("POST", "/ai/command", body)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if len(service.received) != 1 || service.received[0] != "play" {
			t.Errorf("received = %v", service.received)
		}

		var outcome models.Outcome
		if err := json.NewDecoder(rec.Body).Decode(&outcome); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !outcome.Success || outcome.Message != "Playback started" {
			t.Errorf("outcome = %+v", outcome)
		}
	})

	t.Run("FailedOutcomeStillAnswers200", func(t *testing.T) {
		service := &stubCommandService{
			outcome: models.Outcome{Success: false, Message: "I did not understand that command"},
		}
		handler := NewCommandHandler(service)

		req := httptest.NewRequest("POST", "/ai/command", strings.NewReader(`{"command": "gibberish"}`))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("MissingCommand", func(t *testing.T) {
		handler := NewCommandHandler(&stubCommandService{})

		for _, body := range []string{`{}`, `{"command": ""}`, `not json`} {
			req := httptest.NewRequest("POST", "/ai/command", strings.NewReader(body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("body %q: status = %d, want 400", body, rec.Code)
			}
		}
	})

	t.Run("RejectsGet", func(t *testing.T) {
		handler := NewCommandHandler(&stubCommandService{})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/ai/command", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("Authenticated", func(t *testing.T) {
		handler := NewHealthHandler(func(ctx context.Context) bool { return true })
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

		var payload map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload["status"] != "ok" || payload["authenticated"] != true {
			t.Errorf("payload = %v", payload)
		}
	})

	t.Run("NilCheckMeansUnauthenticated", func(t *testing.T) {
		handler := NewHealthHandler(nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

		var payload map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload["authenticated"] != false {
			t.Errorf("payload = %v", payload)
		}
	})
}

func TestOAuthHandler(t *testing.T) {
	cred := &models.Credential{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	t.Run("LoginRedirects", func(t *testing.T) {
		handler := NewOAuthHandler(&stubAuthorizer{cred: cred}, "state123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/login", nil))

		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d, want 302", rec.Code)
		}
		if loc := rec.Header().Get("Location"); !strings.Contains(loc, "state123") {
			t.Errorf("Location = %q", loc)
		}
	})

	t.Run("CallbackDeliversCredential", func(t *testing.T) {
		handler := NewOAuthHandler(&stubAuthorizer{cred: cred}, "state123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/callback?code=abc&state=state123", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Error() != nil {
			t.Fatalf("result error = %v", result.Error())
		}
		if result.Credential.AccessToken != "access" {
			t.Errorf("credential = %+v", result.Credential)
		}
	})

	t.Run("StateMismatch", func(t *testing.T) {
		handler := NewOAuthHandler(&stubAuthorizer{cred: cred}, "state123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/callback?code=abc&state=evil", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if result := <-handler.Result(); result.Error() == nil {
			t.Error("expected state error")
		}
	})

	t.Run("MissingCode", func(t *testing.T) {
		handler := NewOAuthHandler(&stubAuthorizer{cred: cred}, "state123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/callback?state=state123&error=access_denied", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("SecondCallbackRejected", func(t *testing.T) {
		handler := NewOAuthHandler(&stubAuthorizer{cred: cred}, "state123")

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest("GET", "/callback?code=abc&state=state123", nil))

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest("GET", "/callback?code=def&state=state123", nil))

		if second.Code != http.StatusBadRequest {
			t.Errorf("replayed callback status = %d, want 400", second.Code)
		}
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("MethodFiltering", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle("POST", "/only-post", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/only-post", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("GET status = %d, want 405", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/only-post", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("POST status = %d, want 200", rec.Code)
		}
	})

	t.Run("MiddlewareOrder", func(t *testing.T) {
		var order []string
		tag := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(tag("outer"), tag("inner"))
		router.Handle("GET", "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		want := []string{"outer", "inner", "handler"}
		for i, name := range want {
			if i >= len(order) || order[i] != name {
				t.Fatalf("order = %v, want %v", order, want)
			}
		}
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)

	router := NewBasicRouter()
	router.Use(RequestLogger(logger))
	router.Handle("GET", "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	line := buf.String()
	for _, want := range []string{"method=GET", "path=/ping", "status=204", "id="} {
		if !strings.Contains(line, want) {
			t.Errorf("expected log line to contain %q, got %q", want, line)
		}
	}
}
