package downdetect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"taskflow/internal/storage"
	cache_utils "taskflow/internal/util/cache"
)

const databaseProbeTimeout = 3 * time.Second

// DowndetectService probes the backing stores. Cache probe panics count as
// failures.
type DowndetectService struct {
	logger *slog.Logger
}

func (s *DowndetectService) IsAvailable() error {
	if err := s.probeDatabase(); err != nil {
		s.logger.Warn("database probe failed", slog.String("error", err.Error()))
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := s.probeCache(); err != nil {
		s.logger.Warn("cache probe failed", slog.String("error", err.Error()))
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

func (s *DowndetectService) probeDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), databaseProbeTimeout)
	defer cancel()

	var result int
	if err := storage.GetDb().WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return err
	}

	if result != 1 {
		return fmt.Errorf("unexpected probe result %d", result)
	}

	return nil
}

func (s *DowndetectService) probeCache() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache probe panicked: %v", r)
		}
	}()

	return cache_utils.TestCacheConnection()
}
