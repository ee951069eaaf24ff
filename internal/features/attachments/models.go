package attachments

import (
	"path"
	"time"

	users_models "taskflow/internal/features/users/models"

	"github.com/google/uuid"
)

const fileURLPrefix = "/uploads/attachments/"

type Attachment struct {
	ID           uuid.UUID `json:"id"           gorm:"column:id;type:uuid;primaryKey"`
	FileName     string    `json:"fileName"     gorm:"column:file_name"`
	FileURL      string    `json:"fileUrl"      gorm:"column:file_url"`
	FileSize     int64     `json:"fileSize"     gorm:"column:file_size"`
	FileType     string    `json:"fileType"     gorm:"column:file_type"`
	TaskID       uuid.UUID `json:"taskId"       gorm:"column:task_id"`
	UploadedByID uuid.UUID `json:"uploadedById" gorm:"column:uploaded_by_id"`
	CreatedAt    time.Time `json:"createdAt"    gorm:"column:created_at"`

	UploadedBy *users_models.User `json:"uploadedBy,omitempty" gorm:"foreignKey:UploadedByID"`
}

func (Attachment) TableName() string {
	return "attachments"
}

// StoredName is the file name inside the attachments directory.
func (a *Attachment) StoredName() string {
	return path.Base(a.FileURL)
}
