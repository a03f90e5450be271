package models

import (
	"encoding/json"
	"time"
)

// Task represents one durable unit of asynchronous search or booking work
type Task struct {
	ID int64 `json:"-" db:"id"`

	// Task identification
	TaskID string `json:"task_id" db:"task_id"`
	Kind   string `json:"kind" db:"kind"` // search, booking

	// Status
	Status string `json:"status" db:"status"` // PENDING, PROCESSING, COMPLETED, FAILED

	// Payloads. RequestJSON is immutable after creation; ResultJSON is set
	// only on COMPLETED, ErrorMessage only on FAILED.
	RequestJSON  string  `json:"-" db:"request_json"`
	ResultJSON   *string `json:"-" db:"result_json"`
	ErrorMessage *string `json:"-" db:"error_message"`

	// Timestamps. CompletedAt is set exactly once, at the terminal transition.
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// Task kind constants
const (
	TaskKindSearch  = "search"
	TaskKindBooking = "booking"
)

// Task status constants
const (
	TaskStatusPending    = "PENDING"
	TaskStatusProcessing = "PROCESSING"
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusFailed     = "FAILED"
)

// IsTerminal reports whether the status admits no further transitions
func (t *Task) IsTerminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusFailed
}

// TaskView is the client-facing rendering of a task. Result and error are
// exposed only once the task has reached a terminal state.
type TaskView struct {
	TaskID      string      `json:"task_id"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	Result      interface{} `json:"result,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// View renders the task for clients
func (t *Task) View() *TaskView {
	view := &TaskView{
		TaskID:      t.TaskID,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
	if t.Status == TaskStatusCompleted && t.ResultJSON != nil {
		view.Result = json.RawMessage(*t.ResultJSON)
	}
	if t.Status == TaskStatusFailed && t.ErrorMessage != nil {
		view.Error = *t.ErrorMessage
	}
	return view
}
