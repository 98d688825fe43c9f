package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/johnwards/taskboard/internal/domain"
	"github.com/johnwards/taskboard/internal/seed"
	"github.com/johnwards/taskboard/internal/store"
	"github.com/johnwards/taskboard/internal/testhelpers"
)

var _ seed.Client = (*store.Store)(nil)

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(testhelpers.NewMigratedDB(t))
}

func TestSeedEmptyStore(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	res, err := seed.Seed(ctx, s, time.Now())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if len(res.Persons) != 2 || len(res.Tags) != 2 || len(res.Tasks) != 2 || len(res.Comments) != 1 {
		t.Errorf("result sizes = %d/%d/%d/%d, want 2/2/2/1",
			len(res.Persons), len(res.Tags), len(res.Tasks), len(res.Comments))
	}

	got, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	want := store.Counts{Persons: 2, Tags: 2, Tasks: 2, TaskTags: 2, Comments: 1}
	if got != want {
		t.Errorf("counts = %+v, want %+v", got, want)
	}
}

func TestSeedRerunDuplicatesOnlyTasksAndComments(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	first, err := seed.Seed(ctx, s, time.Now())
	if err != nil {
		t.Fatalf("seed (run 1): %v", err)
	}
	second, err := seed.Seed(ctx, s, time.Now())
	if err != nil {
		t.Fatalf("seed (run 2): %v", err)
	}

	got, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	want := store.Counts{Persons: 2, Tags: 2, Tasks: 4, TaskTags: 4, Comments: 2}
	if got != want {
		t.Errorf("counts = %+v, want %+v", got, want)
	}

	for i := range first.Persons {
		if first.Persons[i].ID != second.Persons[i].ID {
			t.Errorf("person %d: id changed from %d to %d", i, first.Persons[i].ID, second.Persons[i].ID)
		}
	}
	for i := range first.Tags {
		if first.Tags[i].ID != second.Tags[i].ID {
			t.Errorf("tag %d: id changed from %d to %d", i, first.Tags[i].ID, second.Tags[i].ID)
		}
	}
	if first.Tasks[0].ID == second.Tasks[0].ID {
		t.Error("expected a new task row on the second run")
	}
}

func TestSeedRelations(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	res, err := seed.Seed(ctx, s, time.Now())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	alice, bob := res.Persons[0], res.Persons[1]
	urgent, frontend := res.Tags[0], res.Tags[1]
	setup, login := res.Tasks[0], res.Tasks[1]

	gotSetup, err := s.Tasks.Get(ctx, setup.ID)
	if err != nil {
		t.Fatalf("get setup task: %v", err)
	}
	if gotSetup.CreatorID != alice.ID {
		t.Errorf("setup creator = %d, want %d", gotSetup.CreatorID, alice.ID)
	}
	if gotSetup.AssigneeID == nil || *gotSetup.AssigneeID != bob.ID {
		t.Errorf("setup assignee = %v, want %d", gotSetup.AssigneeID, bob.ID)
	}
	if gotSetup.ParentID != nil {
		t.Errorf("setup parent = %d, want none", *gotSetup.ParentID)
	}
	if gotSetup.Status != domain.StatusTodo || gotSetup.Priority != domain.PriorityHigh {
		t.Errorf("setup status/priority = %s/%s, want TODO/HIGH", gotSetup.Status, gotSetup.Priority)
	}
	if len(gotSetup.TagIDs) != 1 || gotSetup.TagIDs[0] != urgent.ID {
		t.Errorf("setup tags = %v, want [%d]", gotSetup.TagIDs, urgent.ID)
	}

	gotLogin, err := s.Tasks.Get(ctx, login.ID)
	if err != nil {
		t.Fatalf("get login task: %v", err)
	}
	if gotLogin.ParentID == nil || *gotLogin.ParentID != setup.ID {
		t.Errorf("login parent = %v, want %d", gotLogin.ParentID, setup.ID)
	}
	if gotLogin.CreatorID != bob.ID {
		t.Errorf("login creator = %d, want %d", gotLogin.CreatorID, bob.ID)
	}
	if gotLogin.DueDate != nil {
		t.Errorf("login due date = %v, want none", gotLogin.DueDate)
	}
	if gotLogin.Status != domain.StatusInProgress || gotLogin.Priority != domain.PriorityMedium {
		t.Errorf("login status/priority = %s/%s, want IN_PROGRESS/MEDIUM", gotLogin.Status, gotLogin.Priority)
	}
	if len(gotLogin.TagIDs) != 1 || gotLogin.TagIDs[0] != frontend.ID {
		t.Errorf("login tags = %v, want [%d]", gotLogin.TagIDs, frontend.ID)
	}

	comments, err := s.Comments.ListByTask(ctx, login.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment on login task, got %d", len(comments))
	}
	if comments[0].AuthorID != alice.ID {
		t.Errorf("comment author = %d, want %d", comments[0].AuthorID, alice.ID)
	}
	if comments[0].TaskID != login.ID {
		t.Errorf("comment task = %d, want %d", comments[0].TaskID, login.ID)
	}
}

func TestSeedDueDate(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	at := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	res, err := seed.Seed(ctx, s, at)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := s.Tasks.Get(ctx, res.Tasks[0].ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.DueDate == nil {
		t.Fatal("expected a due date on the first task")
	}
	if want := at.Add(7 * 24 * time.Hour); !got.DueDate.Equal(want) {
		t.Errorf("due date = %v, want %v", got.DueDate, want)
	}
}

func TestSeedDueDateFollowsCreation(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	res, err := seed.Seed(ctx, s, time.Now())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	task := res.Tasks[0]
	drift := task.DueDate.Sub(task.CreatedAt) - seed.DueIn
	if drift < 0 {
		drift = -drift
	}
	if drift > 5*time.Second {
		t.Errorf("due date is %v away from creation + 7d", drift)
	}
}

func TestSeedLeavesExistingPersonUnchanged(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	existing, err := s.Persons.UpsertByEmail(ctx, domain.PersonInput{
		Email: "alice@example.com",
		Name:  "Alice Already-Here",
		Role:  domain.RoleDesigner,
	})
	if err != nil {
		t.Fatalf("pre-seed person: %v", err)
	}

	res, err := seed.Seed(ctx, s, time.Now())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	got := res.Persons[0]
	if got.ID != existing.ID {
		t.Errorf("id = %d, want %d", got.ID, existing.ID)
	}
	if got.Name != "Alice Already-Here" || got.Role != domain.RoleDesigner {
		t.Errorf("person was modified: name=%q role=%q", got.Name, got.Role)
	}
}
