package services

import (
	"context"

	"tarefas/model"
)

// TaskStore is the task half of the document store.
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) (string, error)
	DeleteTask(ctx context.Context, id string) error
	// GetTask returns ErrTaskNotFound when no document has the id.
	GetTask(ctx context.Context, id string) (*model.Task, error)
	// ListTasksByOwner returns the owner's tasks, newest first.
	ListTasksByOwner(ctx context.Context, owner string) ([]model.Task, error)
	// WatchTasksByOwner calls onChange with the owner's full task list, newest
	// first, once at start and again after every change. It blocks until ctx is
	// done (returning nil), onChange fails, or the store fails.
	WatchTasksByOwner(ctx context.Context, owner string, onChange func([]model.Task) error) error
	CountTasks(ctx context.Context) (int64, error)
}

// CommentStore is the comment half of the document store.
type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) (string, error)
	DeleteComment(ctx context.Context, id string) error
	// GetComment returns ErrCommentNotFound when no document has the id.
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	ListCommentsByTask(ctx context.Context, taskID string) ([]model.Comment, error)
	CountComments(ctx context.Context) (int64, error)
}

type Store interface {
	TaskStore
	CommentStore
	Close() error
}
