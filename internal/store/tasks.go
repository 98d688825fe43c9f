package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/johnwards/taskboard/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	Get(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Children(ctx context.Context, parentID int64) ([]*domain.Task, error)
	Tags(ctx context.Context, taskID int64) ([]*domain.Tag, error)
}

// SQLiteTaskStore implements TaskStore backed by SQLite.
type SQLiteTaskStore struct {
	db *sql.DB
}

// NewSQLiteTaskStore creates a new SQLiteTaskStore.
func NewSQLiteTaskStore(db *sql.DB) *SQLiteTaskStore {
	return &SQLiteTaskStore{db: db}
}

const taskColumns = `id, title, description, status, priority, creator_id, assignee_id,
	parent_id, due_date, created_at, updated_at`

// Create inserts a task and connects it to the given tags in one transaction.
// Tasks have no natural key, so every call adds a new row.
func (s *SQLiteTaskStore) Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = domain.StatusTodo
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, in.Status)
	}
	if !in.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, in.Priority)
	}

	ts := now()
	tsStr := formatTime(ts)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tasks (title, description, status, priority, creator_id, assignee_id,
			parent_id, due_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.Description, string(in.Status), string(in.Priority), in.CreatorID,
		nullInt(in.AssigneeID), nullInt(in.ParentID), nullTime(in.DueDate), tsStr, tsStr,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", classify(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	tagIDs := make([]int64, 0, len(in.TagIDs))
	seen := make(map[int64]bool, len(in.TagIDs))
	for _, tagID := range in.TagIDs {
		if seen[tagID] {
			continue
		}
		seen[tagID] = true

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_tags (task_id, tag_id, created_at) VALUES (?, ?, ?)`,
			id, tagID, tsStr,
		); err != nil {
			return nil, fmt.Errorf("connect tag %d: %w", tagID, classify(err))
		}
		tagIDs = append(tagIDs, tagID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit task: %w", err)
	}

	var due *time.Time
	if in.DueDate != nil {
		d := in.DueDate.UTC().Truncate(time.Millisecond)
		due = &d
	}

	return &domain.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		CreatorID:   in.CreatorID,
		AssigneeID:  in.AssigneeID,
		ParentID:    in.ParentID,
		DueDate:     due,
		TagIDs:      tagIDs,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}

// Get retrieves a task by ID, including its tag IDs.
func (s *SQLiteTaskStore) Get(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	if t.TagIDs, err = s.tagIDs(ctx, id); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all tasks ordered by ID.
func (s *SQLiteTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id ASC`)
}

// Children returns the direct subtasks of parentID.
func (s *SQLiteTaskStore) Children(ctx context.Context, parentID int64) ([]*domain.Task, error) {
	return s.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE parent_id = ? ORDER BY id ASC`, parentID)
}

// Tags returns the tags connected to a task.
func (s *SQLiteTaskStore) Tags(ctx context.Context, taskID int64) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.color, t.created_at
		 FROM tags t JOIN task_tags tt ON tt.tag_id = t.id
		 WHERE tt.task_id = ? ORDER BY t.id ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("task tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("task tags: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return tags, nil
}

func (s *SQLiteTaskStore) query(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	// Close before issuing tag queries; the pool holds a single connection.
	_ = rows.Close()

	for _, t := range tasks {
		if t.TagIDs, err = s.tagIDs(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (s *SQLiteTaskStore) tagIDs(ctx context.Context, taskID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag_id FROM task_tags WHERE task_id = ? ORDER BY tag_id ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("task tag ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tag id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return ids, nil
}

func scanTask(row scanner) (*domain.Task, error) {
	var (
		t                    domain.Task
		status, priority     string
		assignee, parent     sql.NullInt64
		due                  sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &t.CreatorID,
		&assignee, &parent, &due, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.Status = domain.Status(status)
	t.Priority = domain.Priority(priority)
	t.AssigneeID = intPtr(assignee)
	t.ParentID = intPtr(parent)

	var err error
	if t.DueDate, err = timePtr(due); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
