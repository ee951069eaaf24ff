package attachments

import (
	"path/filepath"
	"sync"

	"taskflow/internal/cache"
	"taskflow/internal/config"
	"taskflow/internal/features/activities"
	"taskflow/internal/features/disk"
	projects_services "taskflow/internal/features/projects/services"
	tasks_services "taskflow/internal/features/tasks/services"
	"taskflow/internal/util/logger"
)

var attachmentRepository = &AttachmentRepository{}

var fileStorage = &LocalFileStorage{
	attachmentsDir,
}

var uploadLimiter = &UploadLimiter{
	cache.GetCache,
	logger.GetLogger(),
}

var attachmentService = &AttachmentService{
	attachmentRepository,
	fileStorage,
	tasks_services.GetTaskService(),
	disk.GetDiskService(),
	uploadLimiter,
	activities.GetActivityService(),
	logger.GetLogger(),
}

var attachmentController = &AttachmentController{
	attachmentService,
}

func GetAttachmentService() *AttachmentService {
	return attachmentService
}

func GetAttachmentController() *AttachmentController {
	return attachmentController
}

var setupOnce sync.Once

// SetupDependencies registers file cleanup ahead of task, board and
// project deletion. Safe to call more than once.
func SetupDependencies() {
	setupOnce.Do(func() {
		tasks_services.GetTaskService().AddTaskDeletionListener(attachmentService)
		projects_services.GetBoardService().AddBoardDeletionListener(attachmentService)
		projects_services.GetProjectService().AddProjectDeletionListener(attachmentService)
	})
}

func attachmentsDir() string {
	return filepath.Join(config.GetEnv().UploadsDir, "attachments")
}
