package activities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Activity is an append-only feed entry. Rows go away only with their project.
type Activity struct {
	ID        uuid.UUID      `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	Type      ActivityType   `json:"type"      gorm:"column:type"`
	Entity    EntityType     `json:"entity"    gorm:"column:entity"`
	EntityID  uuid.UUID      `json:"entityId"  gorm:"column:entity_id;type:uuid"`
	UserID    uuid.UUID      `json:"userId"    gorm:"column:user_id;type:uuid"`
	ProjectID uuid.UUID      `json:"projectId" gorm:"column:project_id;type:uuid"`
	Details   *string        `json:"details"   gorm:"column:details"`
	Metadata  datatypes.JSON `json:"metadata"  gorm:"column:metadata"`
	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at"`
}

func (Activity) TableName() string {
	return "activities"
}
