package projects_access

import (
	users_enums "taskflow/internal/features/users/enums"
	errors_utils "taskflow/internal/util/errors"
)

type Action string

const (
	ActionView            Action = "VIEW"
	ActionWriteTask       Action = "WRITE_TASK"
	ActionWriteComment    Action = "WRITE_COMMENT"
	ActionWriteAttachment Action = "WRITE_ATTACHMENT"
	ActionManageBoards    Action = "MANAGE_BOARDS"
	ActionUpdateProject   Action = "UPDATE_PROJECT"
	ActionManageMembers   Action = "MANAGE_MEMBERS"
	ActionDeleteProject   Action = "DELETE_PROJECT"
)

var minimumRoles = map[Action]users_enums.ProjectRole{
	ActionView:            users_enums.ProjectRoleViewer,
	ActionWriteTask:       users_enums.ProjectRoleMember,
	ActionWriteComment:    users_enums.ProjectRoleMember,
	ActionWriteAttachment: users_enums.ProjectRoleMember,
	ActionManageBoards:    users_enums.ProjectRoleAdmin,
	ActionUpdateProject:   users_enums.ProjectRoleAdmin,
	ActionManageMembers:   users_enums.ProjectRoleAdmin,
	ActionDeleteProject:   users_enums.ProjectRoleOwner,
}

// MinimumRole returns the least privileged role allowed to perform action.
// Unknown actions require OWNER.
func MinimumRole(action Action) users_enums.ProjectRole {
	role, ok := minimumRoles[action]
	if !ok {
		return users_enums.ProjectRoleOwner
	}

	return role
}

// Authorize checks a resolved project role against an action. A nil role
// means the caller has no relationship to the project, which is reported
// as not found so project existence does not leak.
func Authorize(role *users_enums.ProjectRole, action Action) error {
	if role == nil {
		return errors_utils.NewNotFound("Project not found")
	}

	if !role.IsAtLeast(MinimumRole(action)) {
		return errors_utils.NewForbidden("Insufficient permissions")
	}

	return nil
}

// CanManageRole reports whether actorRole may grant, revoke or remove a
// membership holding targetRole. OWNER memberships are reserved to owners.
func CanManageRole(actorRole users_enums.ProjectRole, targetRole users_enums.ProjectRole) bool {
	if targetRole == users_enums.ProjectRoleOwner {
		return actorRole == users_enums.ProjectRoleOwner
	}

	return actorRole.IsAtLeast(users_enums.ProjectRoleAdmin)
}
