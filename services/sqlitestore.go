package services

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"tarefas/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps tasks and comments in a local SQLite file. Realtime
// listeners are emulated in-process: every write wakes all watchers, which
// re-run their query.
type SQLiteStore struct {
	db  *sql.DB
	hub *changeHub
}

// OpenSQLiteStore opens (creating if needed) the database at path and brings
// its schema up to date.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, hub: newChangeHub()}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	dir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, dir)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate sqlite: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateTask(ctx context.Context, task *model.Task) (string, error) {
	id := uuid.New().String()
	if task.Created.IsZero() {
		task.Created = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, text, public, owner, created) VALUES (?, ?, ?, ?, ?)`,
		id, task.Text, task.Public, task.Owner, task.Created.UnixNano())
	if err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}
	task.ID = id
	s.hub.broadcast()
	return id, nil
}

// DeleteTask is a no-op for unknown ids, like a Firestore document delete.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	s.hub.broadcast()
	return nil
}

func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, text, public, owner, created FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

func (s *SQLiteStore) ListTasksByOwner(ctx context.Context, owner string) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, public, owner, created FROM tasks
		 WHERE owner = ? ORDER BY created DESC, rowid DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list tasks of %s: %w", owner, err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks of %s: %w", owner, err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) WatchTasksByOwner(ctx context.Context, owner string, onChange func([]model.Task) error) error {
	ch, cancel := s.hub.subscribe()
	defer cancel()

	for {
		tasks, err := s.ListTasksByOwner(ctx, owner)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := onChange(tasks); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ch:
		}
	}
}

func (s *SQLiteStore) CountTasks(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) CreateComment(ctx context.Context, comment *model.Comment) (string, error) {
	id := uuid.New().String()
	if comment.Created.IsZero() {
		comment.Created = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (id, task_id, text, author, author_name, created) VALUES (?, ?, ?, ?, ?, ?)`,
		id, comment.TaskID, comment.Text, comment.Author, comment.AuthorName, comment.Created.UnixNano())
	if err != nil {
		return "", fmt.Errorf("create comment: %w", err)
	}
	comment.ID = id
	return id, nil
}

func (s *SQLiteStore) DeleteComment(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete comment %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, task_id, text, author, author_name, created FROM comments WHERE id = ?`, id)
	comment, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment %s: %w", id, err)
	}
	return comment, nil
}

func (s *SQLiteStore) ListCommentsByTask(ctx context.Context, taskID string) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task_id, text, author, author_name, created FROM comments
		 WHERE task_id = ? ORDER BY created, rowid`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments of %s: %w", taskID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("list comments of %s: %w", taskID, err)
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func (s *SQLiteStore) CountComments(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*model.Task, error) {
	var (
		task    model.Task
		created int64
	)
	if err := row.Scan(&task.ID, &task.Text, &task.Public, &task.Owner, &created); err != nil {
		return nil, err
	}
	task.Created = time.Unix(0, created)
	return &task, nil
}

func scanComment(row scanner) (*model.Comment, error) {
	var (
		comment model.Comment
		created int64
	)
	if err := row.Scan(&comment.ID, &comment.TaskID, &comment.Text, &comment.Author, &comment.AuthorName, &created); err != nil {
		return nil, err
	}
	comment.Created = time.Unix(0, created)
	return &comment, nil
}
