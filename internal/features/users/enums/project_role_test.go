package users_enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsAtLeast_ForEveryRolePair_FollowsOwnerAdminMemberViewerOrder(t *testing.T) {
	ordered := []ProjectRole{ProjectRoleViewer, ProjectRoleMember, ProjectRoleAdmin, ProjectRoleOwner}

	for i, role := range ordered {
		for j, required := range ordered {
			assert.Equal(t, i >= j, role.IsAtLeast(required), "%s at least %s", role, required)
		}
	}
}

func Test_IsAtLeast_WhenRoleIsUnknown_ReturnsFalse(t *testing.T) {
	unknown := ProjectRole("SUPERUSER")

	assert.False(t, unknown.IsValid())
	assert.False(t, unknown.IsAtLeast(ProjectRoleViewer))
	assert.Equal(t, 0, unknown.Rank())
}
