package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/starfederation/datastar-go/datastar"

	"tarefas/dto"
	"tarefas/middleware"
	"tarefas/model"
	"tarefas/services"
	"tarefas/views"
)

const keepAliveInterval = 25 * time.Second

func DashboardController(router *gin.Engine, store services.TaskStore, publicURL string) {
	routes := router.Group("/dashboard", middleware.RequireSession())
	{
		routes.GET("", func(c *gin.Context) {
			Dashboard(c, store)
		})
		routes.GET("/events", func(c *gin.Context) {
			TaskEvents(c, store)
		})
		routes.POST("/tasks", func(c *gin.Context) {
			CreateTask(c, store)
		})
		routes.DELETE("/tasks/:id", func(c *gin.Context) {
			DeleteTask(c, store)
		})
		routes.POST("/tasks/:id/share", func(c *gin.Context) {
			ShareTask(c, publicURL)
		})
	}
}

// Dashboard renders the panel with a first snapshot of the owner's tasks;
// TaskEvents keeps it current afterwards.
func Dashboard(c *gin.Context, store services.TaskStore) {
	identity, _ := middleware.Identity(c)

	tasks, err := store.ListTasksByOwner(c.Request.Context(), identity.Email)
	if err != nil {
		slog.Error("failed to list tasks", "owner", identity.Email, "error", err)
		c.String(http.StatusInternalServerError, "Failed to load tasks")
		return
	}

	views.HTML(c, http.StatusOK, "dashboard", views.DashboardPage{
		Header:   views.Header{Identity: &identity},
		TaskList: views.TaskList{Tasks: tasks},
	})
}

// TaskEvents streams the owner's task list: every change pushed by the store
// re-renders #tasks. The store listener lives exactly as long as the request.
func TaskEvents(c *gin.Context, store services.TaskStore) {
	identity, _ := middleware.Identity(c)
	sse := datastar.NewSSE(c.Writer, c.Request)

	ctx, cancel := context.WithCancel(sse.Context())
	defer cancel()

	updates := make(chan []model.Task)
	errc := make(chan error, 1)
	go func() {
		errc <- store.WatchTasksByOwner(ctx, identity.Email, func(tasks []model.Task) error {
			select {
			case updates <- tasks:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case tasks := <-updates:
			if err := views.Patch(sse, "tasks", views.TaskList{Tasks: tasks}); err != nil {
				slog.Error("failed to push task list", "owner", identity.Email, "error", err)
				return
			}
		case err := <-errc:
			if err != nil && ctx.Err() == nil {
				slog.Error("task subscription failed", "owner", identity.Email, "error", err)
				_ = views.Toast(sse, views.ToastError, "Lost connection to your tasks, reload the page")
			}
			return
		}
	}
}

func CreateTask(c *gin.Context, store services.TaskStore) {
	identity, _ := middleware.Identity(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sse := datastar.NewSSE(c.Writer, c.Request)
		_ = views.Toast(sse, views.ToastError, "Invalid input")
		return
	}

	sse := datastar.NewSSE(c.Writer, c.Request)
	if req.Input == "" {
		_ = views.Toast(sse, views.ToastError, "Type a task first!")
		return
	}

	task := model.Task{
		Text:    req.Input,
		Public:  req.Public,
		Owner:   identity.Email,
		Created: time.Now(),
	}
	if _, err := store.CreateTask(c.Request.Context(), &task); err != nil {
		slog.Error("failed to create task", "owner", identity.Email, "error", err)
		_ = views.Toast(sse, views.ToastError, "Failed to create task")
		return
	}

	_ = sse.MarshalAndPatchSignals(map[string]any{"input": "", "public": false})
	_ = views.Toast(sse, views.ToastSuccess, "Task created!")
}

// DeleteTask removes one of the caller's own tasks. Comments pointing at it
// are left in place.
func DeleteTask(c *gin.Context, store services.TaskStore) {
	identity, _ := middleware.Identity(c)
	id := c.Param("id")
	ctx := c.Request.Context()
	sse := datastar.NewSSE(c.Writer, c.Request)

	task, err := store.GetTask(ctx, id)
	if errors.Is(err, services.ErrTaskNotFound) {
		_ = views.Toast(sse, views.ToastError, "Task not found")
		return
	}
	if err != nil {
		slog.Error("failed to load task", "task_id", id, "error", err)
		_ = views.Toast(sse, views.ToastError, "Failed to delete task")
		return
	}
	if task.Owner != identity.Email {
		_ = views.Toast(sse, views.ToastError, "You can only delete your own tasks")
		return
	}

	if err := store.DeleteTask(ctx, id); err != nil {
		slog.Error("failed to delete task", "task_id", id, "error", err)
		_ = views.Toast(sse, views.ToastError, "Failed to delete task")
		return
	}

	_ = views.Remove(sse, "#task-"+id)
	_ = views.Toast(sse, views.ToastSuccess, "Task deleted!")
}

// ShareTask copies the public link of a task to the visitor's clipboard.
func ShareTask(c *gin.Context, publicURL string) {
	sse := datastar.NewSSE(c.Writer, c.Request)
	_ = views.CopyToClipboard(sse, services.ShareURL(publicURL, c.Param("id")))
	_ = views.Toast(sse, views.ToastSuccess, "URL copied!")
}
