package projects_services

import (
	"errors"
	"fmt"
	"log/slog"

	"taskflow/internal/config"
	"taskflow/internal/features/activities"
	"taskflow/internal/features/notifications"
	projects_access "taskflow/internal/features/projects/access"
	projects_dto "taskflow/internal/features/projects/dto"
	projects_interfaces "taskflow/internal/features/projects/interfaces"
	projects_models "taskflow/internal/features/projects/models"
	projects_repositories "taskflow/internal/features/projects/repositories"
	users_enums "taskflow/internal/features/users/enums"
	users_models "taskflow/internal/features/users/models"
	users_services "taskflow/internal/features/users/services"
	errors_utils "taskflow/internal/util/errors"
	"taskflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipService struct {
	membershipRepository *projects_repositories.MembershipRepository
	projectRepository    *projects_repositories.ProjectRepository
	accessService        *AccessService
	userService          *users_services.UserService
	activityService      *activities.ActivityService
	notificationService  *notifications.NotificationService
	inviteEmailSender    projects_interfaces.InviteEmailSender
	logger               *slog.Logger
}

func (s *MembershipService) SetInviteEmailSender(sender projects_interfaces.InviteEmailSender) {
	s.inviteEmailSender = sender
}

func (s *MembershipService) GetMembers(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	if _, err := s.accessService.RequireAction(projectID, user, projects_access.ActionView); err != nil {
		return nil, err
	}

	members, err := s.membershipRepository.GetProjectMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	return &projects_dto.GetMembersResponseDTO{
		Members: members,
	}, nil
}

// AddMember adds an existing user by email. The invitee is notified in-app
// and by email.
func (s *MembershipService) AddMember(
	projectID uuid.UUID,
	request *projects_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) (*projects_dto.ProjectMemberResponseDTO, error) {
	actorRole, err := s.accessService.RequireAction(projectID, addedBy, projects_access.ActionManageMembers)
	if err != nil {
		return nil, err
	}

	if !projects_access.CanManageRole(actorRole, request.Role) {
		return nil, errors_utils.NewForbidden("Only project owners can grant the OWNER role")
	}

	targetUser, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return nil, err
	}

	if targetUser == nil {
		return nil, errors_utils.NewNotFound("User not found")
	}

	existing, err := s.membershipRepository.GetMember(projectID, targetUser.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project member: %w", err)
	}

	if existing != nil {
		return nil, errors_utils.NewValidation("User is already a member")
	}

	member := &projects_models.ProjectMember{
		ProjectID: projectID,
		UserID:    targetUser.ID,
		Role:      request.Role,
	}

	if err := s.membershipRepository.CreateMember(storage.GetDb(), member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors_utils.NewValidation("User is already a member")
		}

		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil || project == nil {
		s.logger.Error("failed to load project after adding member", "projectId", projectID, "error", err)
		project = &projects_models.Project{ID: projectID}
	}

	link := projectLink(projectID)
	s.notificationService.Notify(
		targetUser.ID,
		notifications.NotificationTypeTeamInvite,
		"Added to Project",
		fmt.Sprintf("You've been added to a project by %s", addedBy.Name),
		&link,
	)

	if s.inviteEmailSender != nil {
		s.inviteEmailSender.SendTeamInviteEmail(
			targetUser.Email,
			addedBy.Name,
			project.Title,
			string(request.Role),
			config.GetEnv().AppBaseURL+link,
		)
	}

	details := fmt.Sprintf("added %s as %s", targetUser.Email, request.Role)
	s.activityService.Record(
		activities.ActivityTypeMemberAdded,
		activities.EntityTypeProject,
		projectID,
		addedBy.ID,
		projectID,
		&details,
		map[string]any{"memberUserId": targetUser.ID, "role": request.Role},
	)

	return toMemberResponse(member, targetUser), nil
}

// ChangeMemberRole runs under a lock on the project row so the owner count
// it checks cannot change before commit.
func (s *MembershipService) ChangeMemberRole(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	request *projects_dto.ChangeMemberRoleRequestDTO,
	changedBy *users_models.User,
) (*projects_dto.ProjectMemberResponseDTO, error) {
	var target *projects_models.ProjectMember
	var project *projects_models.Project
	var previousRole users_enums.ProjectRole

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		var err error

		project, err = s.lockProject(tx, projectID)
		if err != nil {
			return err
		}

		actorRole, err := s.resolveRoleTx(tx, project, changedBy.ID)
		if err != nil {
			return err
		}

		if err := projects_access.Authorize(actorRole, projects_access.ActionManageMembers); err != nil {
			return err
		}

		target, err = s.membershipRepository.GetMemberTx(tx, projectID, memberUserID)
		if err != nil {
			return fmt.Errorf("failed to get project member: %w", err)
		}

		if target == nil {
			return errors_utils.NewNotFound("Member not found")
		}

		previousRole = target.Role
		if previousRole == request.Role {
			return nil
		}

		if !projects_access.CanManageRole(*actorRole, previousRole) ||
			!projects_access.CanManageRole(*actorRole, request.Role) {
			return errors_utils.NewForbidden("Only project owners can grant or revoke the OWNER role")
		}

		if previousRole == users_enums.ProjectRoleOwner {
			if err := s.ensureAnotherOwner(tx, projectID); err != nil {
				return err
			}
		}

		if err := s.membershipRepository.UpdateRole(tx, target.ID, request.Role); err != nil {
			return fmt.Errorf("failed to update member role: %w", err)
		}

		target.Role = request.Role

		if previousRole == users_enums.ProjectRoleOwner && project.OwnerID == target.UserID {
			return s.transferOwnership(tx, projectID, target.UserID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	targetUser, err := s.userService.GetUserByID(memberUserID)
	if err != nil {
		return nil, err
	}

	if previousRole != request.Role {
		details := fmt.Sprintf("changed %s from %s to %s", targetUser.Email, previousRole, request.Role)
		s.activityService.Record(
			activities.ActivityTypeRoleChanged,
			activities.EntityTypeProject,
			projectID,
			changedBy.ID,
			projectID,
			&details,
			map[string]any{"memberUserId": memberUserID, "from": previousRole, "to": request.Role},
		)

		if memberUserID != changedBy.ID {
			link := projectLink(projectID)
			s.notificationService.Notify(
				memberUserID,
				notifications.NotificationTypeRoleChanged,
				"Role Changed",
				fmt.Sprintf("Your role in %s was changed to %s by %s", project.Title, request.Role, changedBy.Name),
				&link,
			)
		}
	}

	return toMemberResponse(target, targetUser), nil
}

// RemoveMember lets ADMIN and above remove others, and anyone remove
// themselves. Like ChangeMemberRole it holds the project row lock.
func (s *MembershipService) RemoveMember(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	var project *projects_models.Project
	isSelf := memberUserID == removedBy.ID

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		var err error

		project, err = s.lockProject(tx, projectID)
		if err != nil {
			return err
		}

		actorRole, err := s.resolveRoleTx(tx, project, removedBy.ID)
		if err != nil {
			return err
		}

		if err := projects_access.Authorize(actorRole, projects_access.ActionView); err != nil {
			return err
		}

		target, err := s.membershipRepository.GetMemberTx(tx, projectID, memberUserID)
		if err != nil {
			return fmt.Errorf("failed to get project member: %w", err)
		}

		if target == nil {
			return errors_utils.NewNotFound("Member not found")
		}

		if !isSelf {
			if err := projects_access.Authorize(actorRole, projects_access.ActionManageMembers); err != nil {
				return err
			}

			if !projects_access.CanManageRole(*actorRole, target.Role) {
				return errors_utils.NewForbidden("Only project owners can remove an owner")
			}
		}

		if target.Role == users_enums.ProjectRoleOwner {
			if err := s.ensureAnotherOwner(tx, projectID); err != nil {
				return err
			}
		}

		if err := s.membershipRepository.DeleteMember(tx, target.ID); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

		if project.OwnerID == target.UserID {
			return s.transferOwnership(tx, projectID, target.UserID)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.activityService.Record(
		activities.ActivityTypeMemberRemoved,
		activities.EntityTypeProject,
		projectID,
		removedBy.ID,
		projectID,
		nil,
		map[string]any{"memberUserId": memberUserID},
	)

	if !isSelf {
		s.notificationService.Notify(
			memberUserID,
			notifications.NotificationTypeRemovedFromProject,
			"Removed from Project",
			fmt.Sprintf("You've been removed from %s by %s", project.Title, removedBy.Name),
			nil,
		)
	}

	return nil
}

func (s *MembershipService) lockProject(tx *gorm.DB, projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectForUpdate(tx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock project: %w", err)
	}

	if project == nil {
		return nil, errors_utils.NewNotFound("Project not found")
	}

	return project, nil
}

// resolveRoleTx mirrors AccessService.ResolveRole against the locked row.
func (s *MembershipService) resolveRoleTx(
	tx *gorm.DB,
	project *projects_models.Project,
	userID uuid.UUID,
) (*users_enums.ProjectRole, error) {
	if project.OwnerID == userID {
		ownerRole := users_enums.ProjectRoleOwner
		return &ownerRole, nil
	}

	member, err := s.membershipRepository.GetMemberTx(tx, project.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project member: %w", err)
	}

	if member == nil {
		return nil, nil
	}

	return &member.Role, nil
}

func (s *MembershipService) ensureAnotherOwner(tx *gorm.DB, projectID uuid.UUID) error {
	owners, err := s.membershipRepository.CountOwners(tx, projectID)
	if err != nil {
		return fmt.Errorf("failed to count project owners: %w", err)
	}

	if owners <= 1 {
		return errors_utils.NewInvariantViolation("Cannot remove the last owner")
	}

	return nil
}

// transferOwnership moves owner_id to the earliest-joined remaining OWNER.
func (s *MembershipService) transferOwnership(tx *gorm.DB, projectID uuid.UUID, departingUserID uuid.UUID) error {
	successor, err := s.membershipRepository.GetEarliestOwner(tx, projectID, departingUserID)
	if err != nil {
		return fmt.Errorf("failed to find next project owner: %w", err)
	}

	if successor == nil {
		return errors_utils.NewInvariantViolation("Cannot remove the last owner")
	}

	if err := s.projectRepository.UpdateOwner(tx, projectID, successor.UserID); err != nil {
		return fmt.Errorf("failed to transfer project ownership: %w", err)
	}

	s.logger.Info("project ownership transferred",
		slog.String("projectId", projectID.String()),
		slog.String("from", departingUserID.String()),
		slog.String("to", successor.UserID.String()))

	return nil
}

func projectLink(projectID uuid.UUID) string {
	return "/projects/" + projectID.String()
}

func toMemberResponse(
	member *projects_models.ProjectMember,
	user *users_models.User,
) *projects_dto.ProjectMemberResponseDTO {
	return &projects_dto.ProjectMemberResponseDTO{
		ID:        member.ID,
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      member.Role,
		JoinedAt:  member.JoinedAt,
	}
}
