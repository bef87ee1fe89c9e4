package home

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"tarefas/middleware"
	"tarefas/services"
	"tarefas/views"
)

func HomeController(router *gin.Engine, store services.Store, authMode string, firebase views.FirebaseWeb) {
	router.GET("/", func(c *gin.Context) {
		Home(c, store, authMode, firebase)
	})
}

// Home renders the landing page with the total number of tasks and comments.
func Home(c *gin.Context, store services.Store, authMode string, firebase views.FirebaseWeb) {
	var taskCount, commentCount int64
	unavailable := false

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		taskCount, err = store.CountTasks(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		commentCount, err = store.CountComments(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		// The sign-in button must still render.
		slog.Error("failed to count documents", "error", err)
		unavailable = true
	}

	views.HTML(c, http.StatusOK, "home", views.HomePage{
		Header:            views.Header{Identity: middleware.IdentityPtr(c)},
		TaskCount:         taskCount,
		CommentCount:      commentCount,
		CountsUnavailable: unavailable,
		AuthMode:          authMode,
		Firebase:          firebase,
	})
}
