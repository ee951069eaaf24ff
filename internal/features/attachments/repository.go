package attachments

import (
	"errors"
	"time"

	"taskflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttachmentRepository struct{}

func (r *AttachmentRepository) Create(attachment *Attachment) error {
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}

	attachment.CreatedAt = time.Now().UTC()

	return storage.GetDb().Omit(clause.Associations).Create(attachment).Error
}

func (r *AttachmentRepository) GetByID(attachmentID uuid.UUID) (*Attachment, error) {
	var attachment Attachment

	if err := storage.GetDb().Where("id = ?", attachmentID).First(&attachment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &attachment, nil
}

func (r *AttachmentRepository) GetByTask(taskID uuid.UUID) ([]*Attachment, error) {
	attachments := make([]*Attachment, 0)

	err := storage.GetDb().
		Preload("UploadedBy").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&attachments).Error

	return attachments, err
}

func (r *AttachmentRepository) GetByBoard(boardID uuid.UUID) ([]*Attachment, error) {
	attachments := make([]*Attachment, 0)

	err := storage.GetDb().
		Joins("JOIN tasks ON tasks.id = attachments.task_id").
		Where("tasks.board_id = ?", boardID).
		Find(&attachments).Error

	return attachments, err
}

func (r *AttachmentRepository) GetByProject(projectID uuid.UUID) ([]*Attachment, error) {
	attachments := make([]*Attachment, 0)

	err := storage.GetDb().
		Joins("JOIN tasks ON tasks.id = attachments.task_id").
		Joins("JOIN boards ON boards.id = tasks.board_id").
		Where("boards.project_id = ?", projectID).
		Find(&attachments).Error

	return attachments, err
}

func (r *AttachmentRepository) Delete(tx *gorm.DB, attachmentID uuid.UUID) error {
	return tx.Delete(&Attachment{}, "id = ?", attachmentID).Error
}
