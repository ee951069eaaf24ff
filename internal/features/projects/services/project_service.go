package projects_services

import (
	"fmt"
	"log/slog"
	"time"

	"taskflow/internal/features/activities"
	projects_access "taskflow/internal/features/projects/access"
	projects_dto "taskflow/internal/features/projects/dto"
	projects_interfaces "taskflow/internal/features/projects/interfaces"
	projects_models "taskflow/internal/features/projects/models"
	projects_repositories "taskflow/internal/features/projects/repositories"
	users_dto "taskflow/internal/features/users/dto"
	users_enums "taskflow/internal/features/users/enums"
	users_models "taskflow/internal/features/users/models"
	users_services "taskflow/internal/features/users/services"
	errors_utils "taskflow/internal/util/errors"
	"taskflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService struct {
	projectRepository        *projects_repositories.ProjectRepository
	membershipRepository     *projects_repositories.MembershipRepository
	boardRepository          *projects_repositories.BoardRepository
	accessService            *AccessService
	userService              *users_services.UserService
	activityService          *activities.ActivityService
	logger                   *slog.Logger
	projectDeletionListeners []projects_interfaces.ProjectDeletionListener
}

func (s *ProjectService) AddProjectDeletionListener(listener projects_interfaces.ProjectDeletionListener) {
	s.projectDeletionListeners = append(s.projectDeletionListeners, listener)
}

// CreateProject stores the project together with its default boards and
// the creator's OWNER membership.
func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectDetailsResponseDTO, error) {
	now := time.Now().UTC()

	project := &projects_models.Project{
		ID:          uuid.New(),
		Title:       request.Title,
		Description: request.Description,
		Color:       projects_models.DefaultProjectColor,
		OwnerID:     creator.ID,
		CreatedAt:   now,
	}

	if request.Color != nil && *request.Color != "" {
		project.Color = *request.Color
	}

	boards := projects_models.NewDefaultBoards(project.ID, now)

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepository.CreateProject(tx, project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		if err := s.boardRepository.CreateBoards(tx, boards); err != nil {
			return fmt.Errorf("failed to create default boards: %w", err)
		}

		return s.membershipRepository.CreateMember(tx, &projects_models.ProjectMember{
			ProjectID: project.ID,
			UserID:    creator.ID,
			Role:      users_enums.ProjectRoleOwner,
			JoinedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.activityService.Record(
		activities.ActivityTypeCreated,
		activities.EntityTypeProject,
		project.ID,
		creator.ID,
		project.ID,
		&project.Title,
		nil,
	)

	ownerRole := users_enums.ProjectRoleOwner
	owner := users_services.ToUserSummary(creator)

	return &projects_dto.ProjectDetailsResponseDTO{
		ProjectResponseDTO: toProjectResponse(project, 1, int64(len(boards)), &ownerRole),
		Owner:              &owner,
		Boards:             boards,
	}, nil
}

func (s *ProjectService) GetUserProjects(user *users_models.User) (*projects_dto.ListProjectsResponseDTO, error) {
	projects, err := s.projectRepository.GetProjectsForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	return &projects_dto.ListProjectsResponseDTO{
		Projects: projects,
	}, nil
}

func (s *ProjectService) GetProject(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ProjectDetailsResponseDTO, error) {
	role, err := s.accessService.RequireAction(projectID, user, projects_access.ActionView)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepository.GetProjectWithBoards(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, errors_utils.NewNotFound("Project not found")
	}

	membersCount, err := s.projectRepository.CountMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count project members: %w", err)
	}

	var owner *users_dto.UserSummaryDTO
	if ownerUser, err := s.userService.GetUserByID(project.OwnerID); err == nil {
		summary := users_services.ToUserSummary(ownerUser)
		owner = &summary
	}

	boards := project.Boards
	if boards == nil {
		boards = []projects_models.Board{}
	}

	return &projects_dto.ProjectDetailsResponseDTO{
		ProjectResponseDTO: toProjectResponse(project, membersCount, int64(len(boards)), &role),
		Owner:              owner,
		Boards:             boards,
	}, nil
}

func (s *ProjectService) UpdateProject(
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	role, err := s.accessService.RequireAction(projectID, user, projects_access.ActionUpdateProject)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, errors_utils.NewNotFound("Project not found")
	}

	if request.Title != nil {
		project.Title = *request.Title
	}

	if request.Description != nil {
		project.Description = request.Description
	}

	if request.Color != nil && *request.Color != "" {
		project.Color = *request.Color
	}

	if err := s.projectRepository.UpdateProject(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.activityService.Record(
		activities.ActivityTypeUpdated,
		activities.EntityTypeProject,
		project.ID,
		user.ID,
		project.ID,
		&project.Title,
		nil,
	)

	membersCount, err := s.projectRepository.CountMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count project members: %w", err)
	}

	boardsCount, err := s.projectRepository.CountBoards(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count project boards: %w", err)
	}

	response := toProjectResponse(project, membersCount, boardsCount, &role)
	return &response, nil
}

// DeleteProject asks the deletion listeners to prepare first. Any listener
// error aborts the deletion. Listener cleanups run only after the row is
// deleted. Database rows below the project go through FK cascades.
func (s *ProjectService) DeleteProject(projectID uuid.UUID, user *users_models.User) error {
	if _, err := s.accessService.RequireAction(projectID, user, projects_access.ActionDeleteProject); err != nil {
		return err
	}

	cleanups := make([]projects_interfaces.DeletionCleanup, 0, len(s.projectDeletionListeners))
	for _, listener := range s.projectDeletionListeners {
		cleanup, err := listener.OnBeforeProjectDeletion(projectID)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}

		if cleanup != nil {
			cleanups = append(cleanups, cleanup)
		}
	}

	if err := s.projectRepository.DeleteProject(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	runCleanups(cleanups)

	s.logger.Info("project deleted", "projectId", projectID, "userId", user.ID)

	return nil
}

func (s *ProjectService) GetProjectActivities(
	projectID uuid.UUID,
	user *users_models.User,
	request *activities.GetActivitiesRequest,
) (*activities.GetActivitiesResponse, error) {
	if _, err := s.accessService.RequireAction(projectID, user, projects_access.ActionView); err != nil {
		return nil, err
	}

	return s.activityService.GetProjectActivities(projectID, request)
}

// TouchProject marks the project as recently active. Failures are logged.
func (s *ProjectService) TouchProject(projectID uuid.UUID) {
	if err := s.projectRepository.Touch(projectID); err != nil {
		s.logger.Error("failed to touch project", "projectId", projectID, "error", err)
	}
}

func runCleanups(cleanups []projects_interfaces.DeletionCleanup) {
	for _, cleanup := range cleanups {
		cleanup()
	}
}

func toProjectResponse(
	project *projects_models.Project,
	membersCount int64,
	boardsCount int64,
	role *users_enums.ProjectRole,
) projects_dto.ProjectResponseDTO {
	return projects_dto.ProjectResponseDTO{
		ID:           project.ID,
		Title:        project.Title,
		Description:  project.Description,
		Color:        project.Color,
		OwnerID:      project.OwnerID,
		CreatedAt:    project.CreatedAt,
		UpdatedAt:    project.UpdatedAt,
		MembersCount: membersCount,
		BoardsCount:  boardsCount,
		UserRole:     role,
	}
}
