package comments

import (
	"errors"
	"time"

	"taskflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository struct{}

func (r *CommentRepository) Create(comment *Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	return storage.GetDb().Omit(clause.Associations).Create(comment).Error
}

func (r *CommentRepository) GetByID(commentID uuid.UUID) (*Comment, error) {
	var comment Comment

	if err := storage.GetDb().Preload("User").Where("id = ?", commentID).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &comment, nil
}

// GetByTask returns the newest comments first.
func (r *CommentRepository) GetByTask(taskID uuid.UUID) ([]*Comment, error) {
	comments := make([]*Comment, 0)

	err := storage.GetDb().
		Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&comments).Error

	return comments, err
}

func (r *CommentRepository) UpdateContent(commentID uuid.UUID, content string) error {
	return storage.GetDb().
		Model(&Comment{}).
		Where("id = ?", commentID).
		Updates(map[string]any{"content": content, "updated_at": time.Now().UTC()}).Error
}

func (r *CommentRepository) Delete(commentID uuid.UUID) error {
	return storage.GetDb().Delete(&Comment{}, "id = ?", commentID).Error
}
