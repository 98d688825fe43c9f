package domain

import "time"

// Comment is a note left on a task by a person.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	TaskID    int64     `json:"taskId"`
	AuthorID  int64     `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentInput holds the data needed to create a comment.
type CommentInput struct {
	Content  string
	TaskID   int64
	AuthorID int64
}
