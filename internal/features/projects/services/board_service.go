package projects_services

import (
	"fmt"
	"log/slog"

	"taskflow/internal/features/activities"
	projects_access "taskflow/internal/features/projects/access"
	projects_dto "taskflow/internal/features/projects/dto"
	projects_interfaces "taskflow/internal/features/projects/interfaces"
	projects_models "taskflow/internal/features/projects/models"
	projects_repositories "taskflow/internal/features/projects/repositories"
	users_models "taskflow/internal/features/users/models"
	errors_utils "taskflow/internal/util/errors"

	"github.com/google/uuid"
)

type BoardService struct {
	boardRepository        *projects_repositories.BoardRepository
	accessService          *AccessService
	activityService        *activities.ActivityService
	logger                 *slog.Logger
	boardDeletionListeners []projects_interfaces.BoardDeletionListener
}

func (s *BoardService) AddBoardDeletionListener(listener projects_interfaces.BoardDeletionListener) {
	s.boardDeletionListeners = append(s.boardDeletionListeners, listener)
}

func (s *BoardService) GetBoards(projectID uuid.UUID, user *users_models.User) (*projects_dto.ListBoardsResponseDTO, error) {
	if _, err := s.accessService.RequireAction(projectID, user, projects_access.ActionView); err != nil {
		return nil, err
	}

	boards, err := s.boardRepository.GetBoardsByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get boards: %w", err)
	}

	return &projects_dto.ListBoardsResponseDTO{Boards: boards}, nil
}

func (s *BoardService) CreateBoard(
	projectID uuid.UUID,
	request *projects_dto.CreateBoardRequestDTO,
	user *users_models.User,
) (*projects_models.Board, error) {
	if _, err := s.accessService.RequireAction(projectID, user, projects_access.ActionManageBoards); err != nil {
		return nil, err
	}

	board := &projects_models.Board{
		Title:     request.Title,
		ProjectID: projectID,
		Status:    request.Status,
	}

	if request.Position != nil {
		board.Position = *request.Position
	} else {
		position, err := s.boardRepository.GetNextPosition(projectID)
		if err != nil {
			return nil, fmt.Errorf("failed to get board position: %w", err)
		}
		board.Position = position
	}

	if err := s.boardRepository.CreateBoard(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	s.activityService.Record(
		activities.ActivityTypeCreated,
		activities.EntityTypeBoard,
		board.ID,
		user.ID,
		projectID,
		&board.Title,
		nil,
	)

	return board, nil
}

func (s *BoardService) UpdateBoard(
	boardID uuid.UUID,
	request *projects_dto.UpdateBoardRequestDTO,
	user *users_models.User,
) (*projects_models.Board, error) {
	board, err := s.GetBoardForAction(boardID, user, projects_access.ActionManageBoards)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		board.Title = *request.Title
	}

	if request.Position != nil {
		board.Position = *request.Position
	}

	if request.ClearStatus {
		board.Status = nil
	} else if request.Status != nil {
		board.Status = request.Status
	}

	if err := s.boardRepository.UpdateBoard(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	s.activityService.Record(
		activities.ActivityTypeUpdated,
		activities.EntityTypeBoard,
		board.ID,
		user.ID,
		board.ProjectID,
		&board.Title,
		nil,
	)

	return board, nil
}

// DeleteBoard removes the board and, through FK cascades, its tasks.
// Deletion listeners run first and any error aborts.
func (s *BoardService) DeleteBoard(boardID uuid.UUID, user *users_models.User) error {
	board, err := s.GetBoardForAction(boardID, user, projects_access.ActionManageBoards)
	if err != nil {
		return err
	}

	cleanups := make([]projects_interfaces.DeletionCleanup, 0, len(s.boardDeletionListeners))
	for _, listener := range s.boardDeletionListeners {
		cleanup, err := listener.OnBeforeBoardDeletion(boardID)
		if err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}

		if cleanup != nil {
			cleanups = append(cleanups, cleanup)
		}
	}

	if err := s.boardRepository.DeleteBoard(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	runCleanups(cleanups)

	s.activityService.Record(
		activities.ActivityTypeDeleted,
		activities.EntityTypeBoard,
		board.ID,
		user.ID,
		board.ProjectID,
		&board.Title,
		nil,
	)

	return nil
}

// GetBoardForAction loads a board and checks action against the project it
// belongs to. A missing board and a board the user cannot see both read as
// not found.
func (s *BoardService) GetBoardForAction(
	boardID uuid.UUID,
	user *users_models.User,
	action projects_access.Action,
) (*projects_models.Board, error) {
	board, err := s.boardRepository.GetBoardByID(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	if board == nil {
		return nil, errors_utils.NewNotFound("Board not found")
	}

	if _, err := s.accessService.RequireAction(board.ProjectID, user, action); err != nil {
		return nil, err
	}

	return board, nil
}

// GetBoard loads a board without an access check, for callers that have
// already authorized against its project.
func (s *BoardService) GetBoard(boardID uuid.UUID) (*projects_models.Board, error) {
	board, err := s.boardRepository.GetBoardByID(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	return board, nil
}
