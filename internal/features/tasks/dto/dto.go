package tasks_dto

import (
	tasks_enums "taskflow/internal/features/tasks/enums"
	tasks_models "taskflow/internal/features/tasks/models"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	Title       string                    `json:"title"       binding:"required,min=1,max=255"`
	Description *string                   `json:"description"`
	BoardID     uuid.UUID                 `json:"boardId"     binding:"required"`
	AssigneeID  *uuid.UUID                `json:"assigneeId"`
	Priority    *tasks_enums.TaskPriority `json:"priority"    binding:"omitempty,task_priority"`
	Status      *tasks_enums.TaskStatus   `json:"status"      binding:"omitempty,task_status"`
	DueDate     *string                   `json:"dueDate"`
}

// UpdateTaskRequestDTO carries only the fields to change. An empty DueDate
// clears it; Unassign clears the assignee.
type UpdateTaskRequestDTO struct {
	Title       *string                   `json:"title"       binding:"omitempty,min=1,max=255"`
	Description *string                   `json:"description"`
	BoardID     *uuid.UUID                `json:"boardId"`
	AssigneeID  *uuid.UUID                `json:"assigneeId"`
	Unassign    bool                      `json:"unassign"`
	Priority    *tasks_enums.TaskPriority `json:"priority"    binding:"omitempty,task_priority"`
	Status      *tasks_enums.TaskStatus   `json:"status"      binding:"omitempty,task_status"`
	DueDate     *string                   `json:"dueDate"`
	Position    *int                      `json:"position"    binding:"omitempty,min=0"`
}

type ListTasksRequestDTO struct {
	BoardID   string `form:"boardId"`
	ProjectID string `form:"projectId"`
}

type ListTasksResponseDTO struct {
	Tasks []tasks_models.Task `json:"tasks"`
}
