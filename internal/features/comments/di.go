package comments

import (
	"taskflow/internal/features/activities"
	"taskflow/internal/features/notifications"
	tasks_services "taskflow/internal/features/tasks/services"
	"taskflow/internal/util/logger"
)

var commentRepository = &CommentRepository{}

var commentService = &CommentService{
	commentRepository,
	tasks_services.GetTaskService(),
	activities.GetActivityService(),
	notifications.GetNotificationService(),
	logger.GetLogger(),
}

var commentController = &CommentController{
	commentService,
}

func GetCommentService() *CommentService {
	return commentService
}

func GetCommentController() *CommentController {
	return commentController
}
