package notifications

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	users_models "taskflow/internal/features/users/models"
	cache_utils "taskflow/internal/util/cache"
	errors_utils "taskflow/internal/util/errors"
	"taskflow/internal/cache"
	"taskflow/internal/util/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	defaultNotificationsLimit = 50
	maxNotificationsLimit     = 100

	unreadCountCachePrefix = "taskflow:notifications:unread:"
	unreadCountCacheExpiry = 5 * time.Minute
)

type NotificationService struct {
	notificationRepository *NotificationRepository
	logger                 *slog.Logger

	unreadCountGroup singleflight.Group
	unreadCountOnce  sync.Once
	unreadCountCache *cache_utils.CacheUtil[int64]
}

// Notify stores a notification for the recipient. Failures are logged and
// never reach the caller.
func (s *NotificationService) Notify(
	recipientID uuid.UUID,
	notificationType NotificationType,
	title string,
	message string,
	link *string,
) {
	notification := &Notification{
		UserID:    recipientID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		Link:      link,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	err := s.notificationRepository.Create(notification)
	metrics.RecordNotification(string(notificationType), err)

	if err != nil {
		s.logger.Error("failed to create notification",
			"type", notificationType,
			"recipientId", recipientID,
			"error", err)
		return
	}

	s.invalidateUnreadCount(recipientID)
}

func (s *NotificationService) GetNotifications(
	user *users_models.User,
	request *GetNotificationsRequest,
) (*GetNotificationsResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultNotificationsLimit
	}
	limit = min(limit, maxNotificationsLimit)

	notifications, err := s.notificationRepository.GetByUser(user.ID, request.UnreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	unreadCount, err := s.GetUnreadCount(user)
	if err != nil {
		return nil, err
	}

	return &GetNotificationsResponse{
		Notifications: notifications,
		UnreadCount:   unreadCount,
	}, nil
}

// GetUnreadCount serves from Valkey when it can. Concurrent misses for the
// same user share one database count.
func (s *NotificationService) GetUnreadCount(user *users_models.User) (int64, error) {
	key := user.ID.String()

	if cached := s.counts().Get(key); cached != nil {
		return *cached, nil
	}

	value, err, _ := s.unreadCountGroup.Do(key, func() (any, error) {
		count, err := s.notificationRepository.CountUnread(user.ID)
		if err != nil {
			return int64(0), err
		}

		s.counts().Set(key, &count)

		return count, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return value.(int64), nil
}

func (s *NotificationService) MarkRead(user *users_models.User, notificationID uuid.UUID) (*Notification, error) {
	notification, err := s.getOwnNotification(user, notificationID)
	if err != nil {
		return nil, err
	}

	if !notification.Read {
		if err := s.notificationRepository.MarkRead(notification.ID); err != nil {
			return nil, fmt.Errorf("failed to mark notification read: %w", err)
		}

		notification.Read = true
		s.invalidateUnreadCount(user.ID)
	}

	return notification, nil
}

func (s *NotificationService) MarkAllRead(user *users_models.User) error {
	if _, err := s.notificationRepository.MarkAllRead(user.ID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	s.invalidateUnreadCount(user.ID)

	return nil
}

func (s *NotificationService) Delete(user *users_models.User, notificationID uuid.UUID) error {
	notification, err := s.getOwnNotification(user, notificationID)
	if err != nil {
		return err
	}

	if err := s.notificationRepository.Delete(notification.ID); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	s.invalidateUnreadCount(user.ID)

	return nil
}

// getOwnNotification hides other users' notifications behind NotFound.
func (s *NotificationService) getOwnNotification(
	user *users_models.User,
	notificationID uuid.UUID,
) (*Notification, error) {
	notification, err := s.notificationRepository.GetByID(notificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	if notification == nil || notification.UserID != user.ID {
		return nil, errors_utils.NewNotFound("Notification not found")
	}

	return notification, nil
}

func (s *NotificationService) invalidateUnreadCount(userID uuid.UUID) {
	s.counts().Invalidate(userID.String())
}

func (s *NotificationService) counts() *cache_utils.CacheUtil[int64] {
	s.unreadCountOnce.Do(func() {
		s.unreadCountCache = cache_utils.NewCacheUtilWithExpiry[int64](
			cache.GetCache(),
			unreadCountCachePrefix,
			unreadCountCacheExpiry,
		)
	})

	return s.unreadCountCache
}
