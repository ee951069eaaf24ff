package attachments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	errors_utils "taskflow/internal/util/errors"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const (
	maxConcurrentUploads = 3
	uploadKeyPrefix      = "taskflow:concurrent_uploads:user:"
	// stale counters from crashed requests expire on their own
	uploadSlotTimeout = 10 * time.Minute
)

// UploadLimiter caps in-flight uploads per user across all instances.
type UploadLimiter struct {
	client func() valkey.Client
	logger *slog.Logger
}

func (l *UploadLimiter) AcquireUploadSlot(userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := l.client()
	key := uploadKeyPrefix + userID.String()

	currentCount, err := client.Do(ctx, client.B().Incr().Key(key).Build()).AsInt64()
	if err != nil {
		return fmt.Errorf("failed to increment upload counter: %w", err)
	}

	if currentCount > maxConcurrentUploads {
		client.Do(ctx, client.B().Decr().Key(key).Build())
		return errors_utils.NewValidationf(
			"Too many uploads in progress (%d/%d)", currentCount-1, maxConcurrentUploads,
		)
	}

	client.Do(ctx, client.B().Expire().Key(key).Seconds(int64(uploadSlotTimeout.Seconds())).Build())

	return nil
}

func (l *UploadLimiter) ReleaseUploadSlot(userID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := l.client()
	key := uploadKeyPrefix + userID.String()

	if err := client.Do(ctx, client.B().Decr().Key(key).Build()).Error(); err != nil {
		l.logger.Error("Failed to release upload slot",
			slog.String("userId", userID.String()),
			slog.String("error", err.Error()))
	}
}

func (l *UploadLimiter) GetActiveUploadCount(userID uuid.UUID) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := l.client()
	key := uploadKeyPrefix + userID.String()

	count, err := client.Do(ctx, client.B().Get().Key(key).Build()).AsInt64()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, nil
		}

		return 0, fmt.Errorf("failed to get upload counter: %w", err)
	}

	return count, nil
}
