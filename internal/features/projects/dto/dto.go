package projects_dto

import (
	"time"

	projects_models "taskflow/internal/features/projects/models"
	tasks_enums "taskflow/internal/features/tasks/enums"
	users_dto "taskflow/internal/features/users/dto"
	users_enums "taskflow/internal/features/users/enums"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Title       string  `json:"title"       binding:"required,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Color       *string `json:"color"       binding:"omitempty,hexcolor"`
}

// UpdateProjectRequestDTO changes only the fields that are present.
type UpdateProjectRequestDTO struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Color       *string `json:"color"       binding:"omitempty,hexcolor"`
}

type ProjectResponseDTO struct {
	ID           uuid.UUID                `json:"id"`
	Title        string                   `json:"title"`
	Description  *string                  `json:"description"`
	Color        string                   `json:"color"`
	OwnerID      uuid.UUID                `json:"ownerId"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
	MembersCount int64                    `json:"membersCount"`
	BoardsCount  int64                    `json:"boardsCount"`
	UserRole     *users_enums.ProjectRole `json:"userRole,omitempty"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

// ProjectDetailsResponseDTO is a project with its boards and their tasks,
// both ordered by position.
type ProjectDetailsResponseDTO struct {
	ProjectResponseDTO
	Owner  *users_dto.UserSummaryDTO `json:"owner"`
	Boards []projects_models.Board   `json:"boards"`
}


// Membership DTOs
type AddMemberRequestDTO struct {
	Email string                  `json:"email" binding:"required,email"`
	Role  users_enums.ProjectRole `json:"role"  binding:"required,project_role"`
}

type ChangeMemberRoleRequestDTO struct {
	Role users_enums.ProjectRole `json:"role" binding:"required,project_role"`
}

type ProjectMemberResponseDTO struct {
	ID        uuid.UUID               `json:"id"`
	ProjectID uuid.UUID               `json:"projectId"`
	UserID    uuid.UUID               `json:"userId"`
	Name      string                  `json:"name"`
	Email     string                  `json:"email"`
	Role      users_enums.ProjectRole `json:"role"`
	JoinedAt  time.Time               `json:"joinedAt"`
}

type GetMembersResponseDTO struct {
	Members []ProjectMemberResponseDTO `json:"members"`
}

// Board DTOs
type CreateBoardRequestDTO struct {
	Title    string                  `json:"title"    binding:"required,min=1,max=255"`
	Position *int                    `json:"position" binding:"omitempty,min=0"`
	Status   *tasks_enums.TaskStatus `json:"status"   binding:"omitempty,task_status"`
}

// UpdateBoardRequestDTO changes only the fields that are present. Set
// ClearStatus to drop an explicit status mapping.
type UpdateBoardRequestDTO struct {
	Title       *string                 `json:"title"       binding:"omitempty,min=1,max=255"`
	Position    *int                    `json:"position"    binding:"omitempty,min=0"`
	Status      *tasks_enums.TaskStatus `json:"status"      binding:"omitempty,task_status"`
	ClearStatus bool                    `json:"clearStatus"`
}

type ListBoardsResponseDTO struct {
	Boards []projects_models.Board `json:"boards"`
}
