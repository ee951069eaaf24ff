package notifications

import (
	"errors"

	"taskflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository struct{}

func (r *NotificationRepository) Create(notification *Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}

	return storage.GetDb().Create(notification).Error
}

func (r *NotificationRepository) GetByID(id uuid.UUID) (*Notification, error) {
	var notification Notification

	if err := storage.GetDb().Where("id = ?", id).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &notification, nil
}

func (r *NotificationRepository) GetByUser(userID uuid.UUID, unreadOnly bool, limit int) ([]*Notification, error) {
	var notifications = make([]*Notification, 0)

	query := storage.GetDb().Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error

	return notifications, err
}

func (r *NotificationRepository) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().Model(&Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error

	return count, err
}

func (r *NotificationRepository) MarkRead(id uuid.UUID) error {
	return storage.GetDb().Model(&Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}

func (r *NotificationRepository) MarkAllRead(userID uuid.UUID) (int64, error) {
	result := storage.GetDb().Model(&Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)

	return result.RowsAffected, result.Error
}

func (r *NotificationRepository) Delete(id uuid.UUID) error {
	return storage.GetDb().Delete(&Notification{}, "id = ?", id).Error
}
