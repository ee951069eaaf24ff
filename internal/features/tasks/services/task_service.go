package tasks_services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskflow/internal/features/activities"
	"taskflow/internal/features/notifications"
	projects_access "taskflow/internal/features/projects/access"
	projects_interfaces "taskflow/internal/features/projects/interfaces"
	projects_models "taskflow/internal/features/projects/models"
	projects_services "taskflow/internal/features/projects/services"
	tasks_dto "taskflow/internal/features/tasks/dto"
	tasks_enums "taskflow/internal/features/tasks/enums"
	tasks_interfaces "taskflow/internal/features/tasks/interfaces"
	tasks_models "taskflow/internal/features/tasks/models"
	tasks_repositories "taskflow/internal/features/tasks/repositories"
	users_models "taskflow/internal/features/users/models"
	"taskflow/internal/storage"
	errors_utils "taskflow/internal/util/errors"
	time_parser "taskflow/internal/util/time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskService struct {
	taskRepository        *tasks_repositories.TaskRepository
	boardService          *projects_services.BoardService
	accessService         *projects_services.AccessService
	projectService        *projects_services.ProjectService
	activityService       *activities.ActivityService
	notificationService   *notifications.NotificationService
	logger                *slog.Logger
	taskDeletionListeners []tasks_interfaces.TaskDeletionListener
}

func (s *TaskService) AddTaskDeletionListener(listener tasks_interfaces.TaskDeletionListener) {
	s.taskDeletionListeners = append(s.taskDeletionListeners, listener)
}

func (s *TaskService) CreateTask(
	request *tasks_dto.CreateTaskRequestDTO,
	user *users_models.User,
) (*tasks_models.Task, error) {
	board, err := s.boardService.GetBoardForAction(request.BoardID, user, projects_access.ActionWriteTask)
	if err != nil {
		return nil, err
	}

	if request.AssigneeID != nil {
		if err := s.ensureAssignable(*request.AssigneeID, board.ProjectID); err != nil {
			return nil, err
		}
	}

	dueDate, err := parseDueDate(request.DueDate)
	if err != nil {
		return nil, err
	}

	task := &tasks_models.Task{
		Title:       request.Title,
		Description: request.Description,
		BoardID:     board.ID,
		AssigneeID:  request.AssigneeID,
		Priority:    tasks_enums.TaskPriorityMedium,
		DueDate:     dueDate,
		CreatedByID: user.ID,
	}

	if request.Priority != nil {
		task.Priority = *request.Priority
	}

	status := tasks_enums.TaskStatusTodo
	if request.Status != nil {
		status = *request.Status
	}
	task.ApplyStatus(status, time.Now())

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		position, err := s.taskRepository.GetNextPosition(tx, board.ID)
		if err != nil {
			return fmt.Errorf("failed to get task position: %w", err)
		}
		task.Position = position

		if err := s.taskRepository.CreateTask(tx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activityService.Record(
		activities.ActivityTypeCreated,
		activities.EntityTypeTask,
		task.ID,
		user.ID,
		board.ProjectID,
		&task.Title,
		map[string]any{"boardId": board.ID},
	)

	if task.AssigneeID != nil {
		s.onAssigned(task, board.ProjectID, user)
	}

	s.projectService.TouchProject(board.ProjectID)

	return s.reload(task.ID)
}

func (s *TaskService) GetTask(taskID uuid.UUID, user *users_models.User) (*tasks_models.Task, error) {
	task, _, err := s.GetTaskForAction(taskID, user, projects_access.ActionView)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// ListTasks lists the tasks of one board or of a whole project. Exactly one
// of boardID and projectID must be set.
func (s *TaskService) ListTasks(
	boardID *uuid.UUID,
	projectID *uuid.UUID,
	user *users_models.User,
) (*tasks_dto.ListTasksResponseDTO, error) {
	if (boardID == nil) == (projectID == nil) {
		return nil, errors_utils.NewValidation("Specify either boardId or projectId")
	}

	var tasks []tasks_models.Task
	var err error

	if boardID != nil {
		if _, err := s.boardService.GetBoardForAction(*boardID, user, projects_access.ActionView); err != nil {
			return nil, err
		}

		tasks, err = s.taskRepository.GetTasksByBoard(*boardID)
	} else {
		if _, err := s.accessService.RequireAction(*projectID, user, projects_access.ActionView); err != nil {
			return nil, err
		}

		tasks, err = s.taskRepository.GetTasksByProject(*projectID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &tasks_dto.ListTasksResponseDTO{Tasks: tasks}, nil
}

// UpdateTask applies a partial update. The previous status is read under a
// row lock so completedAt follows the persisted value. Without an explicit
// status, a board move infers one from the destination board.
func (s *TaskService) UpdateTask(
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskRequestDTO,
	user *users_models.User,
) (*tasks_models.Task, error) {
	_, board, err := s.GetTaskForAction(taskID, user, projects_access.ActionWriteTask)
	if err != nil {
		return nil, err
	}

	destination := board
	if request.BoardID != nil && *request.BoardID != board.ID {
		destination, err = s.boardService.GetBoard(*request.BoardID)
		if err != nil {
			return nil, err
		}

		if destination == nil || destination.ProjectID != board.ProjectID {
			return nil, errors_utils.NewValidation("Board not found in this project")
		}
	}

	if request.AssigneeID != nil && !request.Unassign {
		if err := s.ensureAssignable(*request.AssigneeID, board.ProjectID); err != nil {
			return nil, err
		}
	}

	var dueDate *time.Time
	if request.DueDate != nil {
		dueDate, err = parseDueDate(request.DueDate)
		if err != nil {
			return nil, err
		}
	}

	var previous tasks_models.Task
	var updated *tasks_models.Task

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		task, err := s.taskRepository.GetTaskForUpdate(tx, taskID)
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}

		if task == nil {
			return errors_utils.NewNotFound("Task not found")
		}

		previous = *task

		if request.Title != nil {
			task.Title = *request.Title
		}

		if request.Description != nil {
			task.Description = request.Description
		}

		if request.Priority != nil {
			task.Priority = *request.Priority
		}

		if request.DueDate != nil {
			task.DueDate = dueDate
		}

		if request.Unassign {
			task.AssigneeID = nil
		} else if request.AssigneeID != nil {
			task.AssigneeID = request.AssigneeID
		}

		moved := false
		if request.BoardID != nil {
			moved = destination.ID != task.BoardID
			task.BoardID = destination.ID
		}

		if request.Position != nil {
			task.Position = *request.Position
		} else if moved {
			position, err := s.taskRepository.GetNextPosition(tx, destination.ID)
			if err != nil {
				return fmt.Errorf("failed to get task position: %w", err)
			}
			task.Position = position
		}

		if request.Status != nil {
			task.ApplyStatus(*request.Status, time.Now())
		} else if moved {
			if inferred, ok := tasks_enums.InferStatusFromBoard(destination.Title, destination.Status); ok {
				task.ApplyStatus(inferred, time.Now())
			}
		}

		if err := s.taskRepository.UpdateTask(tx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordUpdateActivities(&previous, updated, board, destination, user)
	s.projectService.TouchProject(board.ProjectID)

	return s.reload(taskID)
}

// DeleteTask removes the task. Deletion listeners run first so stored
// attachment files go away before the rows cascade.
func (s *TaskService) DeleteTask(taskID uuid.UUID, user *users_models.User) error {
	task, board, err := s.GetTaskForAction(taskID, user, projects_access.ActionWriteTask)
	if err != nil {
		return err
	}

	cleanups := make([]projects_interfaces.DeletionCleanup, 0, len(s.taskDeletionListeners))
	for _, listener := range s.taskDeletionListeners {
		cleanup, err := listener.OnBeforeTaskDeletion(taskID)
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		if cleanup != nil {
			cleanups = append(cleanups, cleanup)
		}
	}

	if err := s.taskRepository.DeleteTask(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	for _, cleanup := range cleanups {
		cleanup()
	}

	s.activityService.Record(
		activities.ActivityTypeDeleted,
		activities.EntityTypeTask,
		task.ID,
		user.ID,
		board.ProjectID,
		&task.Title,
		nil,
	)

	s.projectService.TouchProject(board.ProjectID)

	return nil
}

// GetTaskForAction loads a task and its board and checks action against
// the owning project. A user outside the project sees the task as missing.
func (s *TaskService) GetTaskForAction(
	taskID uuid.UUID,
	user *users_models.User,
	action projects_access.Action,
) (*tasks_models.Task, *projects_models.Board, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task == nil {
		return nil, nil, errors_utils.NewNotFound("Task not found")
	}

	board, err := s.boardService.GetBoard(task.BoardID)
	if err != nil {
		return nil, nil, err
	}

	if board == nil {
		return nil, nil, errors_utils.NewNotFound("Task not found")
	}

	if _, err := s.accessService.RequireAction(board.ProjectID, user, action); err != nil {
		if errors.Is(err, errors_utils.ErrNotFound) {
			return nil, nil, errors_utils.NewNotFound("Task not found")
		}

		return nil, nil, err
	}

	return task, board, nil
}

func (s *TaskService) ensureAssignable(assigneeID uuid.UUID, projectID uuid.UUID) error {
	role, err := s.accessService.ResolveRole(assigneeID, projectID)
	if err != nil {
		return err
	}

	if role == nil {
		return errors_utils.NewValidation("Assignee must be a project member")
	}

	return nil
}

func (s *TaskService) recordUpdateActivities(
	previous *tasks_models.Task,
	updated *tasks_models.Task,
	fromBoard *projects_models.Board,
	toBoard *projects_models.Board,
	user *users_models.User,
) {
	projectID := fromBoard.ProjectID
	recorded := false

	if previous.BoardID != updated.BoardID {
		details := fmt.Sprintf("from %s to %s", fromBoard.Title, toBoard.Title)
		s.activityService.Record(
			activities.ActivityTypeMoved,
			activities.EntityTypeTask,
			updated.ID,
			user.ID,
			projectID,
			&details,
			map[string]any{"title": updated.Title, "fromBoardId": fromBoard.ID, "toBoardId": toBoard.ID},
		)
		recorded = true
	}

	if !previous.IsCompleted() && updated.IsCompleted() {
		s.activityService.Record(
			activities.ActivityTypeCompleted,
			activities.EntityTypeTask,
			updated.ID,
			user.ID,
			projectID,
			&updated.Title,
			nil,
		)
		recorded = true
	}

	if !sameAssignee(previous.AssigneeID, updated.AssigneeID) {
		if updated.AssigneeID == nil {
			s.activityService.Record(
				activities.ActivityTypeUnassigned,
				activities.EntityTypeTask,
				updated.ID,
				user.ID,
				projectID,
				&updated.Title,
				map[string]any{"previousAssigneeId": previous.AssigneeID},
			)
		} else {
			s.onAssigned(updated, projectID, user)
		}
		recorded = true
	}

	if !recorded {
		s.activityService.Record(
			activities.ActivityTypeUpdated,
			activities.EntityTypeTask,
			updated.ID,
			user.ID,
			projectID,
			&updated.Title,
			nil,
		)
	}
}

func (s *TaskService) onAssigned(task *tasks_models.Task, projectID uuid.UUID, user *users_models.User) {
	s.activityService.Record(
		activities.ActivityTypeAssigned,
		activities.EntityTypeTask,
		task.ID,
		user.ID,
		projectID,
		&task.Title,
		map[string]any{"assigneeId": task.AssigneeID},
	)

	if *task.AssigneeID == user.ID {
		return
	}

	link := fmt.Sprintf("/projects/%s?task=%s", projectID, task.ID)
	s.notificationService.Notify(
		*task.AssigneeID,
		notifications.NotificationTypeTaskAssigned,
		"Task Assigned",
		fmt.Sprintf("%s assigned you to \"%s\"", user.Name, task.Title),
		&link,
	)
}

func (s *TaskService) reload(taskID uuid.UUID) (*tasks_models.Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task == nil {
		return nil, errors_utils.NewNotFound("Task not found")
	}

	return task, nil
}

func parseDueDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	dueDate, err := time_parser.ParseDueDate(*value)
	if err != nil {
		return nil, errors_utils.NewValidation("Invalid due date")
	}

	return dueDate, nil
}

func sameAssignee(a *uuid.UUID, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
