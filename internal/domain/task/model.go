package task

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is a board column.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority is the task's urgency band.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// positionGap is the spacing between appended tasks, leaving room to drop
// a task between two neighbors without renumbering.
const positionGap = 1000

// Task is a planning board card. EventID is nil for board-wide tasks not
// tied to a specific event. Position orders cards within their column;
// fractional values are valid and expected after reordering.
type Task struct {
	ID          uuid.UUID  `json:"task_id" gorm:"type:uuid;primary_key"`
	Title       string     `json:"title" gorm:"type:varchar(200);not null"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Status      Status     `json:"status" gorm:"type:varchar(20);not null;default:'todo';index:idx_task_status"`
	Priority    Priority   `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	Position    float64    `json:"position" gorm:"not null"`
	EventID     *uuid.UUID `json:"event_id,omitempty" gorm:"type:uuid;index:idx_task_event"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty" gorm:"type:uuid"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// BeforeCreate hook for UUID generation
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	EventID     *uuid.UUID `json:"event_id,omitempty"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest is a partial update. Nil fields are left untouched;
// Position moves the card within its column.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Position    *float64   `json:"position,omitempty"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Fields returns the column map of the fields present in the request.
func (r *UpdateTaskRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.Priority != nil {
		fields["priority"] = *r.Priority
	}
	if r.Position != nil {
		fields["position"] = *r.Position
	}
	if r.AssigneeID != nil {
		fields["assignee_id"] = *r.AssigneeID
	}
	if r.DueDate != nil {
		fields["due_date"] = *r.DueDate
	}
	return fields
}
