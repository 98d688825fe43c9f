package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/johnwards/taskboard/internal/domain"
)

// CommentStore defines the interface for comment persistence.
type CommentStore interface {
	Create(ctx context.Context, in domain.CommentInput) (*domain.Comment, error)
	Get(ctx context.Context, id int64) (*domain.Comment, error)
	ListByTask(ctx context.Context, taskID int64) ([]*domain.Comment, error)
}

// SQLiteCommentStore implements CommentStore backed by SQLite.
type SQLiteCommentStore struct {
	db *sql.DB
}

// NewSQLiteCommentStore creates a new SQLiteCommentStore.
func NewSQLiteCommentStore(db *sql.DB) *SQLiteCommentStore {
	return &SQLiteCommentStore{db: db}
}

// Create inserts a new comment.
func (s *SQLiteCommentStore) Create(ctx context.Context, in domain.CommentInput) (*domain.Comment, error) {
	if in.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}

	ts := now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (content, task_id, author_id, created_at) VALUES (?, ?, ?, ?)`,
		in.Content, in.TaskID, in.AuthorID, formatTime(ts),
	)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", classify(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &domain.Comment{
		ID:        id,
		Content:   in.Content,
		TaskID:    in.TaskID,
		AuthorID:  in.AuthorID,
		CreatedAt: ts,
	}, nil
}

// Get retrieves a comment by ID.
func (s *SQLiteCommentStore) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	c, err := scanComment(s.db.QueryRowContext(ctx,
		`SELECT id, content, task_id, author_id, created_at FROM comments WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get comment %d: %w", id, err)
	}
	return c, nil
}

// ListByTask returns a task's comments, oldest first.
func (s *SQLiteCommentStore) ListByTask(ctx context.Context, taskID int64) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, task_id, author_id, created_at FROM comments
		 WHERE task_id = ? ORDER BY created_at ASC, id ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var comments []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("list comments: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return comments, nil
}

func scanComment(row scanner) (*domain.Comment, error) {
	var (
		c         domain.Comment
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.Content, &c.TaskID, &c.AuthorID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}

	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}
