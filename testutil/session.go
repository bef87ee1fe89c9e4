package testutil

import (
	"net/http"
	"testing"
	"time"

	"tarefas/model"
	"tarefas/services"
)

const SessionSecret = "0123456789abcdef0123456789abcdef"

func NewSessionService() *services.SessionService {
	return services.NewSessionService(SessionSecret, time.Hour)
}

// SessionCookie returns a valid session cookie for identity.
func SessionCookie(t *testing.T, sessions *services.SessionService, identity model.Identity) *http.Cookie {
	t.Helper()
	token, err := sessions.CreateSessionToken(identity)
	if err != nil {
		t.Fatalf("create session token: %v", err)
	}
	return &http.Cookie{Name: "session", Value: token}
}
