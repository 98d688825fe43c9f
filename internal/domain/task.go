package domain

import "time"

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusInReview   Status = "IN_REVIEW"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInReview, StatusDone:
		return true
	}
	return false
}

// Priority ranks tasks.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work. ParentID links subtasks to their parent; AssigneeID,
// ParentID and DueDate are optional.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	CreatorID   int64      `json:"creatorId"`
	AssigneeID  *int64     `json:"assigneeId,omitempty"`
	ParentID    *int64     `json:"parentId,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	TagIDs      []int64    `json:"tagIds"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskInput holds the data needed to create a task. TagIDs must reference
// existing tags; they are connected in the same transaction as the insert.
type TaskInput struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	CreatorID   int64
	AssigneeID  *int64
	ParentID    *int64
	DueDate     *time.Time
	TagIDs      []int64
}
