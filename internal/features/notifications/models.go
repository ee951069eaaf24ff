package notifications

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID        `json:"userId"    gorm:"column:user_id;type:uuid"`
	Type      NotificationType `json:"type"      gorm:"column:type"`
	Title     string           `json:"title"     gorm:"column:title"`
	Message   string           `json:"message"   gorm:"column:message"`
	Link      *string          `json:"link"      gorm:"column:link"`
	Read      bool             `json:"read"      gorm:"column:read"`
	CreatedAt time.Time        `json:"createdAt" gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
