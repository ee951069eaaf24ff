package projects_models

import (
	"time"

	users_enums "taskflow/internal/features/users/enums"

	"github.com/google/uuid"
)

// ProjectMember is unique per (project_id, user_id).
type ProjectMember struct {
	ID        uuid.UUID               `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	ProjectID uuid.UUID               `json:"projectId" gorm:"column:project_id"`
	UserID    uuid.UUID               `json:"userId"    gorm:"column:user_id"`
	Role      users_enums.ProjectRole `json:"role"      gorm:"column:role"`
	JoinedAt  time.Time               `json:"joinedAt"  gorm:"column:joined_at"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
