package tasks_models

import (
	"time"

	tasks_enums "taskflow/internal/features/tasks/enums"
	users_models "taskflow/internal/features/users/models"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID                `json:"id"          gorm:"column:id;type:uuid;primaryKey"`
	Title       string                   `json:"title"       gorm:"column:title"`
	Description *string                  `json:"description" gorm:"column:description"`
	BoardID     uuid.UUID                `json:"boardId"     gorm:"column:board_id"`
	AssigneeID  *uuid.UUID               `json:"assigneeId"  gorm:"column:assignee_id"`
	Priority    tasks_enums.TaskPriority `json:"priority"    gorm:"column:priority"`
	Status      tasks_enums.TaskStatus   `json:"status"      gorm:"column:status"`
	DueDate     *time.Time               `json:"dueDate"     gorm:"column:due_date"`
	Position    int                      `json:"position"    gorm:"column:position"`
	CreatedByID uuid.UUID                `json:"createdById" gorm:"column:created_by_id"`
	CompletedAt *time.Time               `json:"completedAt" gorm:"column:completed_at"`
	CreatedAt   time.Time                `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time                `json:"updatedAt"   gorm:"column:updated_at"`

	Assignee  *users_models.User `json:"assignee,omitempty"  gorm:"foreignKey:AssigneeID"`
	CreatedBy *users_models.User `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) IsCompleted() bool {
	return t.Status == tasks_enums.TaskStatusDone
}

// ApplyStatus moves the task to next and keeps CompletedAt in step:
// entering done stamps it, leaving done clears it, staying done keeps it.
func (t *Task) ApplyStatus(next tasks_enums.TaskStatus, now time.Time) {
	previous := t.Status
	t.Status = next

	if next != tasks_enums.TaskStatusDone {
		t.CompletedAt = nil
		return
	}

	if previous != tasks_enums.TaskStatusDone || t.CompletedAt == nil {
		completedAt := now.UTC()
		t.CompletedAt = &completedAt
	}
}
