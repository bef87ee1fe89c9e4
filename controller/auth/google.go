package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tarefas/dto"
	"tarefas/middleware"
	"tarefas/services"
)

func GoogleSignInController(router *gin.Engine, verifier services.IdentityVerifier, sessions *services.SessionService) {
	router.POST("/auth/google", func(c *gin.Context) {
		GoogleSignIn(c, verifier, sessions)
	})
}

// GoogleSignIn exchanges a Firebase ID token (Google provider) for a session
// cookie.
func GoogleSignIn(c *gin.Context, verifier services.IdentityVerifier, sessions *services.SessionService) {
	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	identity, err := verifier.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		slog.Warn("rejected id token", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := sessions.CreateSessionToken(identity)
	if err != nil {
		slog.Error("failed to create session token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	middleware.SetSessionCookie(c, token, int(sessions.TTL().Seconds()))
	slog.Info("signed in", "email", identity.Email)
	c.JSON(http.StatusOK, gin.H{"redirect": "/dashboard"})
}
