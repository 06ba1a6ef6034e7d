// internal/models/task.go
package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusInProgress TaskStatus = "in_progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusBlocked, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task represents a single task on the board. BucketID is empty while the
// task is off the board (completed); OrderInBucket is its zero-based slot
// within the owning bucket and stays dense after every mutation.
type Task struct {
	ID             string       `json:"id"`
	OwnerID        string       `json:"owner_id"`
	BucketID       string       `json:"bucket_id,omitempty"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	Tags           []string     `json:"tags,omitempty"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	ReminderSentAt *time.Time   `json:"reminder_sent_at,omitempty"`
	OrderInBucket  int          `json:"order_in_bucket"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	BucketID *string
	Status   *TaskStatus
	Priority *TaskPriority
}
