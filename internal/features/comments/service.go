package comments

import (
	"errors"
	"fmt"
	"log/slog"

	"taskflow/internal/features/activities"
	"taskflow/internal/features/notifications"
	projects_access "taskflow/internal/features/projects/access"
	tasks_services "taskflow/internal/features/tasks/services"
	users_models "taskflow/internal/features/users/models"
	errors_utils "taskflow/internal/util/errors"

	"github.com/google/uuid"
)

type CommentService struct {
	commentRepository   *CommentRepository
	taskService         *tasks_services.TaskService
	activityService     *activities.ActivityService
	notificationService *notifications.NotificationService
	logger              *slog.Logger
}

func (s *CommentService) GetComments(taskID uuid.UUID, user *users_models.User) (*ListCommentsResponse, error) {
	if _, _, err := s.taskService.GetTaskForAction(taskID, user, projects_access.ActionView); err != nil {
		return nil, err
	}

	comments, err := s.commentRepository.GetByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return &ListCommentsResponse{Comments: comments}, nil
}

func (s *CommentService) CreateComment(
	taskID uuid.UUID,
	request *CreateCommentRequest,
	user *users_models.User,
) (*Comment, error) {
	task, board, err := s.taskService.GetTaskForAction(taskID, user, projects_access.ActionWriteComment)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		Content: request.Content,
		TaskID:  task.ID,
		UserID:  user.ID,
	}

	if err := s.commentRepository.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.activityService.Record(
		activities.ActivityTypeCommented,
		activities.EntityTypeTask,
		task.ID,
		user.ID,
		board.ProjectID,
		&task.Title,
		map[string]any{"commentId": comment.ID},
	)

	if task.AssigneeID != nil && *task.AssigneeID != user.ID {
		link := fmt.Sprintf("/projects/%s?task=%s", board.ProjectID, task.ID)
		s.notificationService.Notify(
			*task.AssigneeID,
			notifications.NotificationTypeTaskComment,
			"New Comment",
			fmt.Sprintf("%s commented on \"%s\"", user.Name, task.Title),
			&link,
		)
	}

	comment.User = user

	return comment, nil
}

func (s *CommentService) UpdateComment(
	commentID uuid.UUID,
	request *UpdateCommentRequest,
	user *users_models.User,
) (*Comment, error) {
	comment, err := s.getOwnComment(commentID, user)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepository.UpdateContent(comment.ID, request.Content); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	updated, err := s.commentRepository.GetByID(comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return updated, nil
}

func (s *CommentService) DeleteComment(commentID uuid.UUID, user *users_models.User) error {
	comment, err := s.getOwnComment(commentID, user)
	if err != nil {
		return err
	}

	if err := s.commentRepository.Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.Info("comment deleted", "commentId", comment.ID, "taskId", comment.TaskID, "userId", user.ID)

	return nil
}

// getOwnComment hides comments on tasks the user cannot see. Changes need
// comment write access on the project and authorship.
func (s *CommentService) getOwnComment(commentID uuid.UUID, user *users_models.User) (*Comment, error) {
	comment, err := s.commentRepository.GetByID(commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if comment == nil {
		return nil, errors_utils.NewNotFound("Comment not found")
	}

	if _, _, err := s.taskService.GetTaskForAction(comment.TaskID, user, projects_access.ActionWriteComment); err != nil {
		if errors.Is(err, errors_utils.ErrNotFound) {
			return nil, errors_utils.NewNotFound("Comment not found")
		}

		return nil, err
	}

	if comment.UserID != user.ID {
		return nil, errors_utils.NewForbidden("Only the author can change this comment")
	}

	return comment, nil
}
