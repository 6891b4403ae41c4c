package auth

import (
	"log"
	"net/http"

	"github.com/quiz-gen/backend/internal/models"
)

// CreateSession starts a fresh quiz session. Browsers get a cookie; API
// clients use the returned bearer token.
func (m *Manager) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := m.store.Create()

	token, expiresAt, err := m.tokens.Issue(sess.ID)
	if err != nil {
		log.Printf("[auth] issue token: %v", err)
		m.store.Delete(sess.ID)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create session"})
		return
	}

	cookie, _ := m.cookies.Get(r, cookieName)
	cookie.Values[cookieSessionID] = sess.ID
	if err := cookie.Save(r, w); err != nil {
		log.Printf("[auth] save session cookie: %v", err)
	}

	writeJSON(w, http.StatusCreated, models.SessionResponse{
		SessionID: sess.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
