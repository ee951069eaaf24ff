package projects_services

import (
	"fmt"

	projects_access "taskflow/internal/features/projects/access"
	projects_repositories "taskflow/internal/features/projects/repositories"
	users_enums "taskflow/internal/features/users/enums"
	users_models "taskflow/internal/features/users/models"
	errors_utils "taskflow/internal/util/errors"

	"github.com/google/uuid"
)

type AccessService struct {
	projectRepository    *projects_repositories.ProjectRepository
	membershipRepository *projects_repositories.MembershipRepository
}

// ResolveRole returns the user's role in the project, or nil when they are
// neither its owner nor a member. The owner always resolves to OWNER.
func (s *AccessService) ResolveRole(userID uuid.UUID, projectID uuid.UUID) (*users_enums.ProjectRole, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, errors_utils.NewNotFound("Project not found")
	}

	if project.OwnerID == userID {
		ownerRole := users_enums.ProjectRoleOwner
		return &ownerRole, nil
	}

	member, err := s.membershipRepository.GetMember(projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project member: %w", err)
	}

	if member == nil {
		return nil, nil
	}

	return &member.Role, nil
}

// RequireAction resolves the actor's role and checks it against action.
// The resolved role is returned for callers with role-dependent rules.
func (s *AccessService) RequireAction(
	projectID uuid.UUID,
	actor *users_models.User,
	action projects_access.Action,
) (users_enums.ProjectRole, error) {
	role, err := s.ResolveRole(actor.ID, projectID)
	if err != nil {
		return "", err
	}

	if err := projects_access.Authorize(role, action); err != nil {
		return "", err
	}

	return *role, nil
}
