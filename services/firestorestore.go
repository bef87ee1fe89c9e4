package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tarefas/model"
)

const (
	TasksCollection    = "tarefas"
	CommentsCollection = "comments"
)

// FirestoreStore keeps tasks and comments in Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) CreateTask(ctx context.Context, task *model.Task) (string, error) {
	id := uuid.New().String()
	if task.Created.IsZero() {
		task.Created = time.Now()
	}
	if _, err := s.client.Collection(TasksCollection).Doc(id).Set(ctx, task); err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}
	task.ID = id
	return id, nil
}

func (s *FirestoreStore) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.client.Collection(TasksCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	snap, err := s.client.Collection(TasksCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return taskFromSnapshot(snap)
}

func (s *FirestoreStore) ownerQuery(owner string) firestore.Query {
	return s.client.Collection(TasksCollection).
		Where("user", "==", owner).
		OrderBy("created", firestore.Desc)
}

func (s *FirestoreStore) ListTasksByOwner(ctx context.Context, owner string) ([]model.Task, error) {
	tasks, err := collectTasks(s.ownerQuery(owner).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("list tasks of %s: %w", owner, err)
	}
	return tasks, nil
}

// WatchTasksByOwner follows the owner query with a realtime listener. The
// listener is stopped as soon as ctx ends.
func (s *FirestoreStore) WatchTasksByOwner(ctx context.Context, owner string, onChange func([]model.Task) error) error {
	it := s.ownerQuery(owner).Snapshots(ctx)
	defer it.Stop()

	for {
		qs, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled || errors.Is(err, iterator.Done) {
				return nil
			}
			return fmt.Errorf("watch tasks of %s: %w", owner, err)
		}

		tasks, err := collectTasks(qs.Documents)
		if err != nil {
			return fmt.Errorf("watch tasks of %s: %w", owner, err)
		}
		if err := onChange(tasks); err != nil {
			return err
		}
	}
}

func (s *FirestoreStore) CountTasks(ctx context.Context) (int64, error) {
	return count(ctx, s.client.Collection(TasksCollection).Query)
}

func (s *FirestoreStore) CreateComment(ctx context.Context, comment *model.Comment) (string, error) {
	id := uuid.New().String()
	if comment.Created.IsZero() {
		comment.Created = time.Now()
	}
	if _, err := s.client.Collection(CommentsCollection).Doc(id).Set(ctx, comment); err != nil {
		return "", fmt.Errorf("create comment: %w", err)
	}
	comment.ID = id
	return id, nil
}

func (s *FirestoreStore) DeleteComment(ctx context.Context, id string) error {
	if _, err := s.client.Collection(CommentsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete comment %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	snap, err := s.client.Collection(CommentsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment %s: %w", id, err)
	}

	var comment model.Comment
	if err := snap.DataTo(&comment); err != nil {
		return nil, fmt.Errorf("decode comment %s: %w", id, err)
	}
	comment.ID = snap.Ref.ID
	return &comment, nil
}

func (s *FirestoreStore) ListCommentsByTask(ctx context.Context, taskID string) ([]model.Comment, error) {
	iter := s.client.Collection(CommentsCollection).Where("taskId", "==", taskID).Documents(ctx)
	defer iter.Stop()

	comments := []model.Comment{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list comments of %s: %w", taskID, err)
		}

		var comment model.Comment
		if err := doc.DataTo(&comment); err != nil {
			return nil, fmt.Errorf("decode comment %s: %w", doc.Ref.ID, err)
		}
		comment.ID = doc.Ref.ID
		comments = append(comments, comment)
	}
	return comments, nil
}

func (s *FirestoreStore) CountComments(ctx context.Context) (int64, error) {
	return count(ctx, s.client.Collection(CommentsCollection).Query)
}

func collectTasks(iter *firestore.DocumentIterator) ([]model.Task, error) {
	defer iter.Stop()

	tasks := []model.Task{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		task, err := taskFromSnapshot(doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func taskFromSnapshot(snap *firestore.DocumentSnapshot) (*model.Task, error) {
	var task model.Task
	if err := snap.DataTo(&task); err != nil {
		return nil, fmt.Errorf("decode task %s: %w", snap.Ref.ID, err)
	}
	task.ID = snap.Ref.ID
	return &task, nil
}

func count(ctx context.Context, q firestore.Query) (int64, error) {
	res, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count: unexpected aggregation result %T", res["all"])
	}
	return v.GetIntegerValue(), nil
}
