package attachments

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafeFileNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

type FileStorage interface {
	Save(name string, content io.Reader) (int64, error)
	Open(name string) (io.ReadCloser, error)
	// Remove returns an error matching fs.ErrNotExist when the file is gone.
	Remove(name string) error
}

// LocalFileStorage keeps files flat in one directory.
type LocalFileStorage struct {
	dir func() string
}

func (s *LocalFileStorage) Save(name string, content io.Reader) (int64, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create attachments directory: %w", err)
	}

	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	size, err := io.Copy(file, content)
	closeErr := file.Close()

	if err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(filepath.Join(dir, name))
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	return size, nil
}

func (s *LocalFileStorage) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir(), name))
}

func (s *LocalFileStorage) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir(), name))
}

// SanitizeFileName replaces everything outside [a-zA-Z0-9.-] with an
// underscore, so the result never contains a path separator.
func SanitizeFileName(name string) string {
	sanitized := unsafeFileNameChars.ReplaceAllString(name, "_")
	if sanitized == "" {
		return "file"
	}

	return sanitized
}

func buildStoredName(originalName string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), SanitizeFileName(originalName))
}
