package users_enums

type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "OWNER"
	ProjectRoleAdmin  ProjectRole = "ADMIN"
	ProjectRoleMember ProjectRole = "MEMBER"
	ProjectRoleViewer ProjectRole = "VIEWER"
)

// IsValid validates the ProjectRole
func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleOwner, ProjectRoleAdmin, ProjectRoleMember, ProjectRoleViewer:
		return true
	default:
		return false
	}
}

// Rank orders roles from least to most privileged. Unknown roles rank 0.
func (r ProjectRole) Rank() int {
	switch r {
	case ProjectRoleViewer:
		return 1
	case ProjectRoleMember:
		return 2
	case ProjectRoleAdmin:
		return 3
	case ProjectRoleOwner:
		return 4
	default:
		return 0
	}
}

func (r ProjectRole) IsAtLeast(required ProjectRole) bool {
	return r.IsValid() && r.Rank() >= required.Rank()
}
