package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tarefas/middleware"
)

func SignOutController(router *gin.Engine) {
	router.POST("/auth/signout", SignOut)
}

func SignOut(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}
