// Package seed populates a taskboard database with a fixed set of sample
// records: two people, two tags, a task with a subtask and one comment.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/johnwards/taskboard/internal/domain"
)

// Client is the persistence surface the seeder writes through.
type Client interface {
	UpsertPerson(ctx context.Context, in domain.PersonInput) (*domain.Person, error)
	UpsertTag(ctx context.Context, in domain.TagInput) (*domain.Tag, error)
	CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	CreateComment(ctx context.Context, in domain.CommentInput) (*domain.Comment, error)
	Close() error
}

// Result holds the records written by a seed run, in creation order.
type Result struct {
	Persons  []*domain.Person  `json:"persons"`
	Tags     []*domain.Tag     `json:"tags"`
	Tasks    []*domain.Task    `json:"tasks"`
	Comments []*domain.Comment `json:"comments"`
}

// Run seeds c and then closes it. Close is called exactly once whether or
// not seeding succeeded; a close failure is joined onto the returned error.
func Run(ctx context.Context, c Client, now time.Time) (res *Result, err error) {
	defer func() {
		if cerr := c.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close: %w", cerr))
		}
	}()

	slog.Info("seeding database")
	res, err = Seed(ctx, c, now)
	if err != nil {
		return nil, err
	}
	slog.Info("seeding finished",
		"persons", len(res.Persons),
		"tags", len(res.Tags),
		"tasks", len(res.Tasks),
		"comments", len(res.Comments),
	)
	return res, nil
}

// Seed writes the sample records in dependency order: persons, tags, tasks,
// comments. Persons and tags are upserted by email and name; tasks and
// comments are always inserted, so repeated runs add new ones. The first
// error aborts the run.
func Seed(ctx context.Context, c Client, now time.Time) (*Result, error) {
	res := &Result{}

	a, err := c.UpsertPerson(ctx, alice)
	if err != nil {
		return nil, fmt.Errorf("seed person %s: %w", alice.Email, err)
	}
	b, err := c.UpsertPerson(ctx, bob)
	if err != nil {
		return nil, fmt.Errorf("seed person %s: %w", bob.Email, err)
	}
	res.Persons = append(res.Persons, a, b)

	urgentTag, err := c.UpsertTag(ctx, urgent)
	if err != nil {
		return nil, fmt.Errorf("seed tag %s: %w", urgent.Name, err)
	}
	frontendTag, err := c.UpsertTag(ctx, frontend)
	if err != nil {
		return nil, fmt.Errorf("seed tag %s: %w", frontend.Name, err)
	}
	res.Tags = append(res.Tags, urgentTag, frontendTag)

	due := now.Add(DueIn)
	setup, err := c.CreateTask(ctx, domain.TaskInput{
		Title:       setupTitle,
		Description: setupDescription,
		Status:      domain.StatusTodo,
		Priority:    domain.PriorityHigh,
		CreatorID:   a.ID,
		AssigneeID:  &b.ID,
		DueDate:     &due,
		TagIDs:      []int64{urgentTag.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("seed task %q: %w", setupTitle, err)
	}

	login, err := c.CreateTask(ctx, domain.TaskInput{
		Title:       loginTitle,
		Description: loginDescription,
		Status:      domain.StatusInProgress,
		Priority:    domain.PriorityMedium,
		CreatorID:   b.ID,
		AssigneeID:  &b.ID,
		ParentID:    &setup.ID,
		TagIDs:      []int64{frontendTag.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("seed task %q: %w", loginTitle, err)
	}
	res.Tasks = append(res.Tasks, setup, login)

	comment, err := c.CreateComment(ctx, domain.CommentInput{
		Content:  resetReminder,
		TaskID:   login.ID,
		AuthorID: a.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("seed comment: %w", err)
	}
	res.Comments = append(res.Comments, comment)

	return res, nil
}
