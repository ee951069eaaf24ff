package disk

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"taskflow/internal/config"
	errors_utils "taskflow/internal/util/errors"

	psdisk "github.com/shirou/gopsutil/v4/disk"
)

const bytesInMB = 1024 * 1024

type DiskService struct {
	logger *slog.Logger
}

// GetDiskUsage reports usage of the volume holding the uploads directory.
func (s *DiskService) GetDiskUsage() (*DiskUsage, error) {
	path := config.GetEnv().UploadsDir

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	usage, err := psdisk.Usage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk usage: %w", err)
	}

	return &DiskUsage{
		Platform:        runtime.GOOS,
		Path:            path,
		TotalSpaceBytes: usage.Total,
		UsedSpaceBytes:  usage.Used,
		FreeSpaceBytes:  usage.Free,
		UsedPercent:     usage.UsedPercent,
	}, nil
}

// EnsureFreeSpace fails when writing requiredBytes would leave less than
// MIN_FREE_DISK_MB on the uploads volume.
func (s *DiskService) EnsureFreeSpace(requiredBytes int64) error {
	usage, err := s.GetDiskUsage()
	if err != nil {
		return err
	}

	reserve := config.GetEnv().MinFreeDiskMB * bytesInMB
	required := uint64(max(requiredBytes, 0)) + reserve

	if usage.FreeSpaceBytes < required {
		s.logger.Warn("uploads volume is running out of space",
			"freeBytes", usage.FreeSpaceBytes,
			"requiredBytes", required)

		return errors_utils.NewDependencyFailure("Not enough disk space to store the file", nil)
	}

	return nil
}
