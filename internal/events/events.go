// Package events publishes notifications about completed seed runs.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/johnwards/taskboard/internal/seed"
)

// TypeSeedCompleted is the event type emitted after a successful seed run.
const TypeSeedCompleted = "seed.completed"

// Event is the JSON payload published for a seed run.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	PersonIDs  []int64   `json:"personIds"`
	TagIDs     []int64   `json:"tagIds"`
	TaskIDs    []int64   `json:"taskIds"`
	CommentIDs []int64   `json:"commentIds"`
}

// SeedCompleted builds the event for a finished seed run.
func SeedCompleted(res *seed.Result, at time.Time) Event {
	ev := Event{
		Type:       TypeSeedCompleted,
		OccurredAt: at.UTC(),
		PersonIDs:  []int64{},
		TagIDs:     []int64{},
		TaskIDs:    []int64{},
		CommentIDs: []int64{},
	}
	if res == nil {
		return ev
	}
	for _, p := range res.Persons {
		ev.PersonIDs = append(ev.PersonIDs, p.ID)
	}
	for _, t := range res.Tags {
		ev.TagIDs = append(ev.TagIDs, t.ID)
	}
	for _, t := range res.Tasks {
		ev.TaskIDs = append(ev.TaskIDs, t.ID)
	}
	for _, c := range res.Comments {
		ev.CommentIDs = append(ev.CommentIDs, c.ID)
	}
	return ev
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop discards events.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic, keyed by event type.
type KafkaPublisher struct {
	w messageWriter
}

// NewKafkaPublisher returns a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}}
}

// Publish implements Publisher.
func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", ev.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.Type),
		Value: payload,
		Time:  ev.OccurredAt,
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
