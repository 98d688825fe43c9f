package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/johnwards/taskboard/internal/domain"
)

// TagStore defines the interface for tag persistence.
type TagStore interface {
	UpsertByName(ctx context.Context, in domain.TagInput) (*domain.Tag, error)
	Get(ctx context.Context, id int64) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
}

// SQLiteTagStore implements TagStore backed by SQLite.
type SQLiteTagStore struct {
	db *sql.DB
}

// NewSQLiteTagStore creates a new SQLiteTagStore.
func NewSQLiteTagStore(db *sql.DB) *SQLiteTagStore {
	return &SQLiteTagStore{db: db}
}

// UpsertByName inserts a tag unless one with the same name already exists.
// An existing row is returned unchanged, including its color.
func (s *SQLiteTagStore) UpsertByName(ctx context.Context, in domain.TagInput) (*domain.Tag, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: tag name is required", ErrInvalidInput)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (name, color, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO NOTHING`,
		in.Name, in.Color, formatTime(now()),
	); err != nil {
		return nil, fmt.Errorf("upsert tag %s: %w", in.Name, classify(err))
	}

	return s.GetByName(ctx, in.Name)
}

// Get retrieves a tag by ID.
func (s *SQLiteTagStore) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	t, err := scanTag(s.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at FROM tags WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get tag %d: %w", id, err)
	}
	return t, nil
}

// GetByName retrieves a tag by name.
func (s *SQLiteTagStore) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	t, err := scanTag(s.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at FROM tags WHERE name = ?`, name))
	if err != nil {
		return nil, fmt.Errorf("get tag %s: %w", name, err)
	}
	return t, nil
}

// List returns all tags ordered by ID.
func (s *SQLiteTagStore) List(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, created_at FROM tags ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("list tags: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return tags, nil
}

func scanTag(row scanner) (*domain.Tag, error) {
	var (
		t         domain.Tag
		createdAt string
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Color, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan tag: %w", err)
	}

	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}
