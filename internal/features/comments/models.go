package comments

import (
	"time"

	users_models "taskflow/internal/features/users/models"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	Content   string    `json:"content"   gorm:"column:content"`
	TaskID    uuid.UUID `json:"taskId"    gorm:"column:task_id"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`

	User *users_models.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Comment) TableName() string {
	return "comments"
}
