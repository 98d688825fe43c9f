package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/johnwards/taskboard/internal/domain"
)

// Store holds all sub-stores and owns the database handle.
type Store struct {
	DB       *sql.DB
	Persons  PersonStore
	Tags     TagStore
	Tasks    TaskStore
	Comments CommentStore
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB) *Store {
	return &Store{
		DB:       db,
		Persons:  NewSQLitePersonStore(db),
		Tags:     NewSQLiteTagStore(db),
		Tasks:    NewSQLiteTaskStore(db),
		Comments: NewSQLiteCommentStore(db),
	}
}

// UpsertPerson upserts a person keyed by email.
func (s *Store) UpsertPerson(ctx context.Context, in domain.PersonInput) (*domain.Person, error) {
	return s.Persons.UpsertByEmail(ctx, in)
}

// UpsertTag upserts a tag keyed by name.
func (s *Store) UpsertTag(ctx context.Context, in domain.TagInput) (*domain.Tag, error) {
	return s.Tags.UpsertByName(ctx, in)
}

// CreateTask inserts a task and connects its tags.
func (s *Store) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	return s.Tasks.Create(ctx, in)
}

// CreateComment inserts a comment.
func (s *Store) CreateComment(ctx context.Context, in domain.CommentInput) (*domain.Comment, error) {
	return s.Comments.Create(ctx, in)
}

// Counts holds row counts per table.
type Counts struct {
	Persons  int `json:"persons"`
	Tags     int `json:"tags"`
	Tasks    int `json:"tasks"`
	TaskTags int `json:"taskTags"`
	Comments int `json:"comments"`
}

// Count returns the number of rows in each table.
func (s *Store) Count(ctx context.Context) (Counts, error) {
	var c Counts
	targets := []struct {
		table string
		dst   *int
	}{
		{"persons", &c.Persons},
		{"tags", &c.Tags},
		{"tasks", &c.Tasks},
		{"task_tags", &c.TaskTags},
		{"comments", &c.Comments},
	}
	for _, tg := range targets {
		if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+tg.table).Scan(tg.dst); err != nil { //nolint:gosec // table names are hardcoded constants
			return Counts{}, fmt.Errorf("count %s: %w", tg.table, err)
		}
	}
	return c, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
