package tasks_interfaces

import (
	projects_interfaces "taskflow/internal/features/projects/interfaces"

	"github.com/google/uuid"
)

// TaskDeletionListener follows the same contract as the project and board
// listeners: cleanup runs only after the task row is deleted.
type TaskDeletionListener interface {
	OnBeforeTaskDeletion(taskID uuid.UUID) (projects_interfaces.DeletionCleanup, error)
}
