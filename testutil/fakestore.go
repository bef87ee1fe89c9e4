// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tarefas/model"
	"tarefas/services"
)

// FakeStore is an in-memory services.Store that records every write.
type FakeStore struct {
	mu       sync.Mutex
	tasks    map[string]model.Task
	comments map[string]model.Comment
	nextID   int

	CreatedTasks    []model.Task
	DeletedTasks    []string
	CreatedComments []model.Comment
	DeletedComments []string

	// Error injection
	CreateTaskErr    error
	DeleteTaskErr    error
	GetTaskErr       error
	ListTasksErr     error
	CreateCommentErr error
	ListCommentsErr  error
	CountErr         error
}

var _ services.Store = (*FakeStore)(nil)

func NewFakeStore() *FakeStore {
	return &FakeStore{
		tasks:    map[string]model.Task{},
		comments: map[string]model.Comment{},
	}
}

// AddTask seeds a task without recording it as a write.
func (f *FakeStore) AddTask(task model.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task.Created.IsZero() {
		task.Created = time.Now()
	}
	f.tasks[task.ID] = task
}

// AddComment seeds a comment without recording it as a write.
func (f *FakeStore) AddComment(comment model.Comment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[comment.ID] = comment
}

func (f *FakeStore) Close() error { return nil }

func (f *FakeStore) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *FakeStore) CreateTask(_ context.Context, task *model.Task) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreatedTasks = append(f.CreatedTasks, *task)
	if f.CreateTaskErr != nil {
		return "", f.CreateTaskErr
	}
	task.ID = f.newID("task")
	f.tasks[task.ID] = *task
	return task.ID, nil
}

func (f *FakeStore) DeleteTask(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeletedTasks = append(f.DeletedTasks, id)
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	delete(f.tasks, id)
	return nil
}

func (f *FakeStore) GetTask(_ context.Context, id string) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetTaskErr != nil {
		return nil, f.GetTaskErr
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, services.ErrTaskNotFound
	}
	return &task, nil
}

func (f *FakeStore) ListTasksByOwner(_ context.Context, owner string) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	tasks := []model.Task{}
	for _, task := range f.tasks {
		if task.Owner == owner {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Created.After(tasks[j].Created) })
	return tasks, nil
}

// WatchTasksByOwner delivers a single snapshot and returns.
func (f *FakeStore) WatchTasksByOwner(ctx context.Context, owner string, onChange func([]model.Task) error) error {
	tasks, err := f.ListTasksByOwner(ctx, owner)
	if err != nil {
		return err
	}
	return onChange(tasks)
}

func (f *FakeStore) CountTasks(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CountErr != nil {
		return 0, f.CountErr
	}
	return int64(len(f.tasks)), nil
}

func (f *FakeStore) CreateComment(_ context.Context, comment *model.Comment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreatedComments = append(f.CreatedComments, *comment)
	if f.CreateCommentErr != nil {
		return "", f.CreateCommentErr
	}
	comment.ID = f.newID("comment")
	f.comments[comment.ID] = *comment
	return comment.ID, nil
}

func (f *FakeStore) DeleteComment(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeletedComments = append(f.DeletedComments, id)
	delete(f.comments, id)
	return nil
}

func (f *FakeStore) GetComment(_ context.Context, id string) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, services.ErrCommentNotFound
	}
	return &comment, nil
}

func (f *FakeStore) ListCommentsByTask(_ context.Context, taskID string) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListCommentsErr != nil {
		return nil, f.ListCommentsErr
	}
	comments := []model.Comment{}
	for _, c := range f.comments {
		if c.TaskID == taskID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (f *FakeStore) CountComments(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CountErr != nil {
		return 0, f.CountErr
	}
	return int64(len(f.comments)), nil
}
