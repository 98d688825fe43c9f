package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/johnwards/taskboard/internal/domain"
)

// PersonStore defines the interface for person persistence.
type PersonStore interface {
	UpsertByEmail(ctx context.Context, in domain.PersonInput) (*domain.Person, error)
	Get(ctx context.Context, id int64) (*domain.Person, error)
	GetByEmail(ctx context.Context, email string) (*domain.Person, error)
	List(ctx context.Context) ([]*domain.Person, error)
}

// SQLitePersonStore implements PersonStore backed by SQLite.
type SQLitePersonStore struct {
	db *sql.DB
}

// NewSQLitePersonStore creates a new SQLitePersonStore.
func NewSQLitePersonStore(db *sql.DB) *SQLitePersonStore {
	return &SQLitePersonStore{db: db}
}

const personColumns = `id, email, name, role, created_at, updated_at`

// UpsertByEmail inserts a person unless one with the same email already
// exists. An existing row is returned unchanged.
func (s *SQLitePersonStore) UpsertByEmail(ctx context.Context, in domain.PersonInput) (*domain.Person, error) {
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}

	ts := formatTime(now())
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO persons (email, name, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO NOTHING`,
		in.Email, in.Name, string(in.Role), ts, ts,
	); err != nil {
		return nil, fmt.Errorf("upsert person %s: %w", in.Email, classify(err))
	}

	return s.GetByEmail(ctx, in.Email)
}

// Get retrieves a single person by ID.
func (s *SQLitePersonStore) Get(ctx context.Context, id int64) (*domain.Person, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM persons WHERE id = ?`, id)
	p, err := scanPerson(row)
	if err != nil {
		return nil, fmt.Errorf("get person %d: %w", id, err)
	}
	return p, nil
}

// GetByEmail retrieves a single person by email.
func (s *SQLitePersonStore) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM persons WHERE email = ?`, email)
	p, err := scanPerson(row)
	if err != nil {
		return nil, fmt.Errorf("get person %s: %w", email, err)
	}
	return p, nil
}

// List returns all persons ordered by ID.
func (s *SQLitePersonStore) List(ctx context.Context) ([]*domain.Person, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+personColumns+` FROM persons ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var persons []*domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("list persons: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return persons, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(row scanner) (*domain.Person, error) {
	var (
		p                    domain.Person
		role                 string
		createdAt, updatedAt string
	)
	if err := row.Scan(&p.ID, &p.Email, &p.Name, &role, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}
	p.Role = domain.Role(role)

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
