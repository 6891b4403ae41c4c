package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quiz-gen/backend/internal/models"
	"github.com/quiz-gen/backend/internal/session"
)

var testSecret = []byte("test-signing-key")

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	token, expiresAt, err := issuer.Issue("abc")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("expected expiry in the future")
	}

	id, err := issuer.Parse(token)
	if err != nil || id != "abc" {
		t.Errorf("expected session id 'abc', got %q, %v", id, err)
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	token, _, _ := issuer.Issue("abc")

	other := NewTokenIssuer([]byte("another-key"), time.Hour)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong key, got %v", err)
	}

	expired := NewTokenIssuer(testSecret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.Issue("abc")
	if _, err := issuer.Parse(old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}

	if _, err := issuer.Parse("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func newTestManager() (*Manager, *session.Store) {
	store := session.NewStore()
	return NewManager(store, NewTokenIssuer(testSecret, time.Hour), NewCookieStore(testSecret, 3600)), store
}

func echoSessionHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := SessionID(r.Context())
		w.Write([]byte(id))
	})
}

func TestCreateSession_BearerAndCookie(t *testing.T) {
	mgr, store := newTestManager()

	rec := httptest.NewRecorder()
	mgr.CreateSession(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp models.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !store.Exists(resp.SessionID) {
		t.Fatal("expected session to be stored")
	}

	protected := mgr.Middleware(echoSessionHandler())

	// Bearer token
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quiz", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	out := httptest.NewRecorder()
	protected.ServeHTTP(out, req)
	if out.Code != http.StatusOK || out.Body.String() != resp.SessionID {
		t.Errorf("bearer: expected 200 with session id, got %d %q", out.Code, out.Body.String())
	}

	// Cookie
	req = httptest.NewRequest(http.MethodGet, "/api/v1/quiz", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	out = httptest.NewRecorder()
	protected.ServeHTTP(out, req)
	if out.Code != http.StatusOK || out.Body.String() != resp.SessionID {
		t.Errorf("cookie: expected 200 with session id, got %d %q", out.Code, out.Body.String())
	}
}

func TestMiddleware_Rejects(t *testing.T) {
	mgr, store := newTestManager()
	protected := mgr.Middleware(echoSessionHandler())

	deleted := store.Create()
	token, _, _ := mgr.tokens.Issue(deleted.ID)
	store.Delete(deleted.ID)

	tests := []struct {
		name   string
		header string
	}{
		{"no credentials", ""},
		{"not bearer", "Basic abc"},
		{"bad token", "Bearer nope"},
		{"session gone", "Bearer " + token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/quiz", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}
