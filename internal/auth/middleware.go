package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/quiz-gen/backend/internal/models"
	"github.com/quiz-gen/backend/internal/session"
)

const (
	cookieName      = "quiz-session"
	cookieSessionID = "session_id"
)

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionID extracts the resolved session id from the request context.
func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

// WithSessionID returns ctx carrying id, as the middleware would.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// Manager issues session identities and resolves them on incoming requests.
type Manager struct {
	store   *session.Store
	tokens  *TokenIssuer
	cookies sessions.Store
}

func NewManager(store *session.Store, tokens *TokenIssuer, cookies sessions.Store) *Manager {
	return &Manager{store: store, tokens: tokens, cookies: cookies}
}

// NewCookieStore builds the cookie store used for browser clients.
func NewCookieStore(secret []byte, maxAge int) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// resolve reads the session id from a bearer token first, then the cookie.
func (m *Manager) resolve(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			return "", false
		}
		id, err := m.tokens.Parse(tokenString)
		if err != nil {
			return "", false
		}
		return id, true
	}

	cookie, err := m.cookies.Get(r, cookieName)
	if err != nil {
		return "", false
	}
	id, ok := cookie.Values[cookieSessionID].(string)
	return id, ok && id != ""
}

// Middleware rejects requests without a live session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := m.resolve(r)
		if !ok || !m.store.Exists(id) {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Session required. Create one with POST /api/v1/sessions"})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[handler] encode response: %v", err)
	}
}
