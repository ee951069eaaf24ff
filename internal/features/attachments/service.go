package attachments

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"taskflow/internal/config"
	"taskflow/internal/features/activities"
	"taskflow/internal/features/disk"
	projects_access "taskflow/internal/features/projects/access"
	projects_interfaces "taskflow/internal/features/projects/interfaces"
	tasks_services "taskflow/internal/features/tasks/services"
	users_models "taskflow/internal/features/users/models"
	"taskflow/internal/storage"
	errors_utils "taskflow/internal/util/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	bytesInMB       = 1024 * 1024
	defaultFileType = "application/octet-stream"
)

type AttachmentService struct {
	attachmentRepository *AttachmentRepository
	fileStorage          FileStorage
	taskService          *tasks_services.TaskService
	diskService          *disk.DiskService
	uploadLimiter        *UploadLimiter
	activityService      *activities.ActivityService
	logger               *slog.Logger
}

func (s *AttachmentService) GetAttachments(taskID uuid.UUID, user *users_models.User) (*ListAttachmentsResponse, error) {
	if _, _, err := s.taskService.GetTaskForAction(taskID, user, projects_access.ActionView); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepository.GetByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachments: %w", err)
	}

	return &ListAttachmentsResponse{Attachments: attachments}, nil
}

// UploadAttachment stores content under a unique name and records it. A
// specific client content type is kept. An empty or generic one is replaced
// by the type sniffed from the content.
func (s *AttachmentService) UploadAttachment(
	taskID uuid.UUID,
	fileName string,
	size int64,
	contentType string,
	content io.ReadSeeker,
	user *users_models.User,
) (*Attachment, error) {
	task, board, err := s.taskService.GetTaskForAction(taskID, user, projects_access.ActionWriteAttachment)
	if err != nil {
		return nil, err
	}

	maxSizeMB := config.GetEnv().MaxAttachmentSizeMB
	if size > maxSizeMB*bytesInMB {
		return nil, errors_utils.NewValidationf("File exceeds the %d MB limit", maxSizeMB)
	}

	if err := s.diskService.EnsureFreeSpace(size); err != nil {
		return nil, err
	}

	if err := s.uploadLimiter.AcquireUploadSlot(user.ID); err != nil {
		return nil, err
	}
	defer s.uploadLimiter.ReleaseUploadSlot(user.ID)

	fileType, err := resolveFileType(contentType, content)
	if err != nil {
		return nil, err
	}

	storedName := buildStoredName(fileName, time.Now())

	written, err := s.fileStorage.Save(storedName, io.LimitReader(content, maxSizeMB*bytesInMB+1))
	if err != nil {
		return nil, errors_utils.NewDependencyFailure("Failed to store file", err)
	}

	if written > maxSizeMB*bytesInMB {
		s.removeStoredFile(storedName)
		return nil, errors_utils.NewValidationf("File exceeds the %d MB limit", maxSizeMB)
	}

	attachment := &Attachment{
		FileName:     fileName,
		FileURL:      fileURLPrefix + storedName,
		FileSize:     written,
		FileType:     fileType,
		TaskID:       task.ID,
		UploadedByID: user.ID,
	}

	if err := s.attachmentRepository.Create(attachment); err != nil {
		s.removeStoredFile(storedName)
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}

	s.activityService.Record(
		activities.ActivityTypeAttached,
		activities.EntityTypeTask,
		task.ID,
		user.ID,
		board.ProjectID,
		&attachment.FileName,
		map[string]any{"attachmentId": attachment.ID, "fileSize": attachment.FileSize},
	)

	attachment.UploadedBy = user

	return attachment, nil
}

// OpenAttachment returns the record and a reader over the stored file. The
// caller closes the reader.
func (s *AttachmentService) OpenAttachment(
	attachmentID uuid.UUID,
	user *users_models.User,
) (*Attachment, io.ReadCloser, error) {
	attachment, err := s.getAttachmentForAction(attachmentID, user, projects_access.ActionView)
	if err != nil {
		return nil, nil, err
	}

	file, err := s.fileStorage.Open(attachment.StoredName())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, errors_utils.NewNotFound("File not found")
		}

		return nil, nil, errors_utils.NewDependencyFailure("Failed to open file", err)
	}

	return attachment, file, nil
}

// DeleteAttachment removes the record and the file together. A file that is
// already gone does not block the delete; any other removal error rolls the
// record back.
func (s *AttachmentService) DeleteAttachment(attachmentID uuid.UUID, user *users_models.User) error {
	attachment, err := s.getAttachmentForAction(attachmentID, user, projects_access.ActionWriteAttachment)
	if err != nil {
		return err
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.attachmentRepository.Delete(tx, attachment.ID); err != nil {
			return fmt.Errorf("failed to delete attachment: %w", err)
		}

		if err := s.fileStorage.Remove(attachment.StoredName()); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("attachment file already missing", "attachmentId", attachment.ID, "file", attachment.FileURL)
				return nil
			}

			return errors_utils.NewDependencyFailure("Failed to delete file", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("attachment deleted", "attachmentId", attachment.ID, "taskId", attachment.TaskID, "userId", user.ID)

	return nil
}

func (s *AttachmentService) OnBeforeTaskDeletion(taskID uuid.UUID) (projects_interfaces.DeletionCleanup, error) {
	attachments, err := s.attachmentRepository.GetByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task attachments: %w", err)
	}

	return s.fileCleanup(attachments), nil
}

func (s *AttachmentService) OnBeforeBoardDeletion(boardID uuid.UUID) (projects_interfaces.DeletionCleanup, error) {
	attachments, err := s.attachmentRepository.GetByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board attachments: %w", err)
	}

	return s.fileCleanup(attachments), nil
}

func (s *AttachmentService) OnBeforeProjectDeletion(projectID uuid.UUID) (projects_interfaces.DeletionCleanup, error) {
	attachments, err := s.attachmentRepository.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project attachments: %w", err)
	}

	return s.fileCleanup(attachments), nil
}

// fileCleanup removes stored files once their rows are gone with the
// cascade. A file that cannot be removed is logged and left as an orphan.
func (s *AttachmentService) fileCleanup(attachments []*Attachment) projects_interfaces.DeletionCleanup {
	if len(attachments) == 0 {
		return nil
	}

	return func() {
		for _, attachment := range attachments {
			err := s.fileStorage.Remove(attachment.StoredName())
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				s.logger.Error("failed to remove attachment file",
					slog.String("attachmentId", attachment.ID.String()),
					slog.String("file", attachment.StoredName()),
					slog.String("error", err.Error()))
			}
		}
	}
}

func (s *AttachmentService) getAttachmentForAction(
	attachmentID uuid.UUID,
	user *users_models.User,
	action projects_access.Action,
) (*Attachment, error) {
	attachment, err := s.attachmentRepository.GetByID(attachmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}

	if attachment == nil {
		return nil, errors_utils.NewNotFound("Attachment not found")
	}

	if _, _, err := s.taskService.GetTaskForAction(attachment.TaskID, user, action); err != nil {
		if errors.Is(err, errors_utils.ErrNotFound) {
			return nil, errors_utils.NewNotFound("Attachment not found")
		}

		return nil, err
	}

	return attachment, nil
}

func (s *AttachmentService) removeStoredFile(storedName string) {
	if err := s.fileStorage.Remove(storedName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("failed to remove orphaned attachment file", "file", storedName, "error", err)
	}
}

// resolveFileType trusts a specific client type and sniffs the content
// otherwise. The reader is rewound before returning.
func resolveFileType(contentType string, content io.ReadSeeker) (string, error) {
	contentType = strings.TrimSpace(contentType)
	if contentType != "" && contentType != defaultFileType {
		return contentType, nil
	}

	detected, err := mimetype.DetectReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}

	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}

	return detected.String(), nil
}
