package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tarefas/model"
	"tarefas/services"
)

const (
	SessionCookie = "session"
	identityKey   = "identity"
)

// SessionMiddleware resolves the identity carried by the session cookie.
// A missing or invalid cookie leaves the request anonymous.
func SessionMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil && token != "" {
			if identity, err := sessions.ParseSessionToken(token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// RequireSession redirects anonymous requests to the home page before any
// handler runs.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Identity(c); !ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Identity returns the signed-in identity, if any.
func Identity(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return model.Identity{}, false
	}
	identity, ok := v.(model.Identity)
	return identity, ok
}

// IdentityPtr is Identity shaped for templates: nil when anonymous.
func IdentityPtr(c *gin.Context) *model.Identity {
	identity, ok := Identity(c)
	if !ok {
		return nil
	}
	return &identity
}

// SetSessionCookie stores token as the HTTP-only session cookie.
func SetSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", c.Request.TLS != nil, true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
}
