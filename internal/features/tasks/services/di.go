package tasks_services

import (
	"taskflow/internal/features/activities"
	"taskflow/internal/features/notifications"
	projects_services "taskflow/internal/features/projects/services"
	tasks_interfaces "taskflow/internal/features/tasks/interfaces"
	tasks_repositories "taskflow/internal/features/tasks/repositories"
	"taskflow/internal/util/logger"
)

var taskRepository = &tasks_repositories.TaskRepository{}

var taskService = &TaskService{
	taskRepository,
	projects_services.GetBoardService(),
	projects_services.GetAccessService(),
	projects_services.GetProjectService(),
	activities.GetActivityService(),
	notifications.GetNotificationService(),
	logger.GetLogger(),
	[]tasks_interfaces.TaskDeletionListener{},
}

func GetTaskService() *TaskService {
	return taskService
}
