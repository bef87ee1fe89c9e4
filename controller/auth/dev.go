package auth

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/starfederation/datastar-go/datastar"

	"tarefas/dto"
	"tarefas/middleware"
	"tarefas/model"
	"tarefas/services"
	"tarefas/views"
)

// DevSignInController accepts any email/name pair. Only registered when the
// server runs with AUTH_MODE=dev.
func DevSignInController(router *gin.Engine, sessions *services.SessionService) {
	router.POST("/auth/dev", func(c *gin.Context) {
		DevSignIn(c, sessions)
	})
}

func DevSignIn(c *gin.Context, sessions *services.SessionService) {
	var req dto.DevSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sse := datastar.NewSSE(c.Writer, c.Request)
		_ = views.Toast(sse, views.ToastError, "Type a valid email and a name")
		return
	}

	token, err := sessions.CreateSessionToken(model.Identity{Email: req.Email, Name: req.Name})
	if err != nil {
		slog.Error("failed to create session token", "error", err)
		sse := datastar.NewSSE(c.Writer, c.Request)
		_ = views.Toast(sse, views.ToastError, "Failed to create session")
		return
	}

	// The cookie has to be set before the event stream sends its headers.
	middleware.SetSessionCookie(c, token, int(sessions.TTL().Seconds()))
	sse := datastar.NewSSE(c.Writer, c.Request)
	_ = views.Redirect(sse, "/dashboard")
}
