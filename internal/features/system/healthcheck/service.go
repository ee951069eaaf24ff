package system_healthcheck

import (
	"fmt"

	"taskflow/internal/downdetect"
	"taskflow/internal/features/disk"
)

type HealthcheckService struct {
	diskService       *disk.DiskService
	downdetectService *downdetect.DowndetectService
}

// IsHealthy extends the availability check with the free space reserve on
// the uploads volume.
func (s *HealthcheckService) IsHealthy() error {
	if err := s.downdetectService.IsAvailable(); err != nil {
		return err
	}

	if err := s.diskService.EnsureFreeSpace(0); err != nil {
		return fmt.Errorf("disk check failed: %w", err)
	}

	return nil
}
