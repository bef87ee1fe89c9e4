package task

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/sync/errgroup"

	"tarefas/dto"
	"tarefas/middleware"
	"tarefas/model"
	"tarefas/services"
	"tarefas/views"
)

func TaskController(router *gin.Engine, tasks services.TaskStore, comments services.CommentStore) {
	router.GET("/task/:id", func(c *gin.Context) {
		TaskDetail(c, tasks, comments)
	})
	routes := router.Group("/task/:id/comments")
	{
		routes.POST("", func(c *gin.Context) {
			CreateComment(c, comments)
		})
		routes.DELETE("/:commentId", middleware.RequireSession(), func(c *gin.Context) {
			DeleteComment(c, comments)
		})
	}
}

// TaskDetail renders a public task with its comments. Missing and private
// tasks send everyone back home, the owner included.
func TaskDetail(c *gin.Context, tasks services.TaskStore, comments services.CommentStore) {
	id := c.Param("id")
	viewer := middleware.IdentityPtr(c)

	var (
		task        *model.Task
		allComments []model.Comment
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		allComments, err = comments.ListCommentsByTask(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		task, err = tasks.GetTask(ctx, id)
		return err
	})

	err := g.Wait()
	if errors.Is(err, services.ErrTaskNotFound) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		slog.Error("failed to load task page", "task_id", id, "error", err)
		c.String(http.StatusInternalServerError, "Failed to load task")
		return
	}
	if !task.Public {
		c.Redirect(http.StatusFound, "/")
		return
	}

	views.HTML(c, http.StatusOK, "task", views.TaskPage{
		Header:   views.Header{Identity: viewer},
		Task:     *task,
		Comments: views.NewCommentItems(allComments, viewer),
	})
}

// CreateComment attaches a comment to a task and appends it to the page.
func CreateComment(c *gin.Context, comments services.CommentStore) {
	taskID := c.Param("id")

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sse := datastar.NewSSE(c.Writer, c.Request)
		_ = views.Toast(sse, views.ToastError, "Invalid input")
		return
	}

	sse := datastar.NewSSE(c.Writer, c.Request)
	if req.Comment == "" {
		_ = views.Toast(sse, views.ToastError, "Type a comment first!")
		return
	}
	identity, ok := middleware.Identity(c)
	if !ok {
		_ = views.Toast(sse, views.ToastError, "Sign in to comment")
		return
	}

	comment := model.Comment{
		TaskID:     taskID,
		Text:       req.Comment,
		Author:     identity.Email,
		AuthorName: identity.Name,
		Created:    time.Now(),
	}
	if _, err := comments.CreateComment(c.Request.Context(), &comment); err != nil {
		slog.Error("failed to create comment", "task_id", taskID, "error", err)
		_ = views.Toast(sse, views.ToastError, "Failed to add comment")
		return
	}

	_ = views.Remove(sse, "#no-comments")
	_ = views.Patch(sse, "comment", views.NewCommentItem(comment, &identity),
		datastar.WithSelector("#comments"), datastar.WithMode(datastar.ElementPatchModeAppend))
	_ = sse.MarshalAndPatchSignals(map[string]any{"comment": ""})
	_ = views.Toast(sse, views.ToastSuccess, "Comment added to the task!")
}

// DeleteComment removes a comment written by the caller.
func DeleteComment(c *gin.Context, comments services.CommentStore) {
	identity, _ := middleware.Identity(c)
	taskID := c.Param("id")
	id := c.Param("commentId")
	ctx := c.Request.Context()
	sse := datastar.NewSSE(c.Writer, c.Request)

	comment, err := comments.GetComment(ctx, id)
	if err == nil && comment.TaskID != taskID {
		err = services.ErrCommentNotFound
	}
	if errors.Is(err, services.ErrCommentNotFound) {
		_ = views.Toast(sse, views.ToastError, "Comment not found")
		return
	}
	if err != nil {
		slog.Error("failed to load comment", "comment_id", id, "error", err)
		_ = views.Toast(sse, views.ToastError, "Failed to delete comment")
		return
	}
	if comment.Author != identity.Email {
		_ = views.Toast(sse, views.ToastError, "You can only delete your own comments")
		return
	}

	if err := comments.DeleteComment(ctx, id); err != nil {
		slog.Error("failed to delete comment", "comment_id", id, "error", err)
		_ = views.Toast(sse, views.ToastError, "Failed to delete comment")
		return
	}

	_ = views.Remove(sse, "#comment-"+id)
	_ = views.Toast(sse, views.ToastSuccess, "Comment deleted!")
}
