package projects_models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultProjectColor = "#6366f1"

type Project struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;type:uuid;primaryKey"`
	Title       string    `json:"title"       gorm:"column:title"`
	Description *string   `json:"description" gorm:"column:description"`
	Color       string    `json:"color"       gorm:"column:color"`
	OwnerID     uuid.UUID `json:"ownerId"     gorm:"column:owner_id"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   gorm:"column:updated_at"`

	Boards []Board `json:"boards,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string {
	return "projects"
}
