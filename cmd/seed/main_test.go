package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/johnwards/taskboard/internal/config"
	"github.com/johnwards/taskboard/internal/database"
	"github.com/johnwards/taskboard/internal/events"
	"github.com/johnwards/taskboard/internal/store"
)

type recordingPublisher struct {
	events     []events.Event
	publishErr error
	closes     int
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error {
	p.closes++
	return nil
}

func countRows(t *testing.T, path string) store.Counts {
	t.Helper()

	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	s := store.New(db)
	defer func() { _ = s.Close() }()

	c, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return c
}

func TestRunSeedsFileDatabase(t *testing.T) {
	cfg := config.Config{DBPath: filepath.Join(t.TempDir(), "taskboard.db")}
	pub := &recordingPublisher{}

	if err := run(cfg, pub); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := store.Counts{Persons: 2, Tags: 2, Tasks: 2, TaskTags: 2, Comments: 1}
	if got := countRows(t, cfg.DBPath); got != want {
		t.Errorf("counts = %+v, want %+v", got, want)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	if pub.events[0].Type != events.TypeSeedCompleted || len(pub.events[0].TaskIDs) != 2 {
		t.Errorf("unexpected event: %+v", pub.events[0])
	}
	if pub.closes != 1 {
		t.Errorf("publisher closed %d times, want 1", pub.closes)
	}
}

func TestRunTwiceKeepsPeopleAndTagsUnique(t *testing.T) {
	cfg := config.Config{DBPath: filepath.Join(t.TempDir(), "taskboard.db")}

	for i := 0; i < 2; i++ {
		if err := run(cfg, events.Nop{}); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	want := store.Counts{Persons: 2, Tags: 2, Tasks: 4, TaskTags: 4, Comments: 2}
	if got := countRows(t, cfg.DBPath); got != want {
		t.Errorf("counts = %+v, want %+v", got, want)
	}
}

func TestRunFailsWhenDatabaseCannotOpen(t *testing.T) {
	// A regular file in the parent path blocks creating the data dir.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	cfg := config.Config{DBPath: filepath.Join(blocker, "taskboard.db")}
	pub := &recordingPublisher{}

	if err := run(cfg, pub); err == nil {
		t.Fatal("expected error for directory database path")
	}
	if len(pub.events) != 0 {
		t.Errorf("expected no events, got %d", len(pub.events))
	}
	if pub.closes != 1 {
		t.Errorf("publisher closed %d times, want 1", pub.closes)
	}
}

func TestRunIgnoresPublishFailure(t *testing.T) {
	cfg := config.Config{DBPath: filepath.Join(t.TempDir(), "taskboard.db")}
	pub := &recordingPublisher{publishErr: errors.New("broker down")}

	if err := run(cfg, pub); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestNewPublisher(t *testing.T) {
	if _, ok := newPublisher(config.Config{}).(events.Nop); !ok {
		t.Error("expected Nop publisher without brokers")
	}
	p := newPublisher(config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "seeds"})
	if _, ok := p.(*events.KafkaPublisher); !ok {
		t.Errorf("publisher = %T, want *events.KafkaPublisher", p)
	}
	_ = p.Close()
}
