package activities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GetActivitiesRequest struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate"`
}

type GetActivitiesResponse struct {
	Activities []*ActivityDTO `json:"activities"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}

type ActivityDTO struct {
	ID        uuid.UUID      `json:"id"        gorm:"column:id"`
	Type      ActivityType   `json:"type"      gorm:"column:type"`
	Entity    EntityType     `json:"entity"    gorm:"column:entity"`
	EntityID  uuid.UUID      `json:"entityId"  gorm:"column:entity_id"`
	UserID    uuid.UUID      `json:"userId"    gorm:"column:user_id"`
	ProjectID uuid.UUID      `json:"projectId" gorm:"column:project_id"`
	Details   *string        `json:"details"   gorm:"column:details"`
	Metadata  datatypes.JSON `json:"metadata"  gorm:"column:metadata" swaggertype:"object"`
	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at"`
	UserName  *string        `json:"userName"  gorm:"column:user_name"`
	UserEmail *string        `json:"userEmail" gorm:"column:user_email"`
	Message   string         `json:"message"   gorm:"-"`
}
