package domain

import "time"

// Tag is a label attached to tasks. Name is the natural key.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// TagInput holds the fields used when a tag is first created.
type TagInput struct {
	Name  string
	Color string
}
