package projects_controllers

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"taskflow/internal/features/notifications"
	projects_dto "taskflow/internal/features/projects/dto"
	projects_testing "taskflow/internal/features/projects/testing"
	users_dto "taskflow/internal/features/users/dto"
	users_enums "taskflow/internal/features/users/enums"
	users_testing "taskflow/internal/features/users/testing"
	test_utils "taskflow/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func membersURL(projectID uuid.UUID) string {
	return "/api/v1/projects/" + projectID.String() + "/members"
}

func memberURL(projectID uuid.UUID, userID uuid.UUID) string {
	return fmt.Sprintf("/api/v1/projects/%s/members/%s", projectID, userID)
}

func getMemberRole(t *testing.T, projectID uuid.UUID, userID uuid.UUID, requester *users_dto.SignInResponseDTO) *users_enums.ProjectRole {
	t.Helper()

	var members projects_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, createProjectTestRouter(), membersURL(projectID), "Bearer "+requester.Token, http.StatusOK, &members,
	)

	for _, member := range members.Members {
		if member.UserID == userID {
			return &member.Role
		}
	}

	return nil
}

func Test_AddMember_WithExistingUser_MemberAddedAndNotified(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUserWithName("Olivia")
	invitee := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Team", owner)

	var response projects_dto.ProjectMemberResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t, router, membersURL(project.ID), "Bearer "+owner.Token,
		projects_dto.AddMemberRequestDTO{Email: invitee.Email, Role: users_enums.ProjectRoleMember},
		http.StatusOK, &response,
	)

	assert.Equal(t, invitee.UserID, response.UserID)
	assert.Equal(t, users_enums.ProjectRoleMember, response.Role)
	assert.Equal(t, invitee.Email, response.Email)

	inbox, err := notifications.GetNotificationService().GetNotifications(
		users_testing.GetTestUser(invitee.UserID), &notifications.GetNotificationsRequest{},
	)
	assert.NoError(t, err)
	assert.Len(t, inbox.Notifications, 1)
	assert.Equal(t, notifications.NotificationTypeTeamInvite, inbox.Notifications[0].Type)
	assert.Equal(t, "Added to Project", inbox.Notifications[0].Title)
	assert.Equal(t, "You've been added to a project by Olivia", inbox.Notifications[0].Message)
	assert.Equal(t, "/projects/"+project.ID.String(), *inbox.Notifications[0].Link)
	assert.Equal(t, int64(1), inbox.UnreadCount)
}

func Test_AddMember_WhenEmailIsUnknown_ReturnsNotFound(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Team", owner)

	resp := test_utils.MakePostRequest(
		t, router, membersURL(project.ID), "Bearer "+owner.Token,
		projects_dto.AddMemberRequestDTO{Email: "nobody-" + uuid.New().String() + "@example.com", Role: users_enums.ProjectRoleMember},
		http.StatusNotFound,
	)

	assert.Contains(t, string(resp.Body), "User not found")
}

func Test_AddMember_WhenUserIsAlreadyMember_ReturnsBadRequestAndKeepsOneRow(t *testing.T) {
	router := createProjectTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)

	resp := test_utils.MakePostRequest(
		t, router, membersURL(project.ID), "Bearer "+owner.Token,
		projects_dto.AddMemberRequestDTO{Email: member.Email, Role: users_enums.ProjectRoleAdmin},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "User is already a member")

	var members projects_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, membersURL(project.ID), "Bearer "+owner.Token, http.StatusOK, &members,
	)

	count := 0
	for _, m := range members.Members {
		if m.UserID == member.UserID {
			count++
			assert.Equal(t, users_enums.ProjectRoleMember, m.Role)
		}
	}
	assert.Equal(t, 1, count)
}

func Test_AddMember_WithInvalidRole_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Team", owner)

	test_utils.MakePostRequest(
		t, router, membersURL(project.ID), "Bearer "+owner.Token,
		map[string]string{"email": invitee.Email, "role": "SUPERUSER"},
		http.StatusBadRequest,
	)
}

func Test_AddMember_WhenAdminGrantsOwner_ReturnsForbidden(t *testing.T) {
	router := createProjectTestRouter()
	project, _, admin := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleAdmin)
	invitee := users_testing.CreateTestUser()

	test_utils.MakePostRequest(
		t, router, membersURL(project.ID), "Bearer "+admin.Token,
		projects_dto.AddMemberRequestDTO{Email: invitee.Email, Role: users_enums.ProjectRoleOwner},
		http.StatusForbidden,
	)

	test_utils.MakePostRequest(
		t, router, membersURL(project.ID), "Bearer "+admin.Token,
		projects_dto.AddMemberRequestDTO{Email: invitee.Email, Role: users_enums.ProjectRoleAdmin},
		http.StatusOK,
	)
}

func Test_AddMember_WhenUserIsMember_ReturnsForbidden(t *testing.T) {
	router := createProjectTestRouter()
	project, _, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)
	invitee := users_testing.CreateTestUser()

	test_utils.MakePostRequest(
		t, router, membersURL(project.ID), "Bearer "+member.Token,
		projects_dto.AddMemberRequestDTO{Email: invitee.Email, Role: users_enums.ProjectRoleViewer},
		http.StatusForbidden,
	)
}

func Test_ListMembers_WhenUserIsNotMember_ReturnsNotFound(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Team", owner)

	test_utils.MakeGetRequest(t, router, membersURL(project.ID), "Bearer "+outsider.Token, http.StatusNotFound)
}

func Test_ChangeMemberRole_WhenOwnerPromotesMember_RoleChangedAndNotified(t *testing.T) {
	router := createProjectTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)

	var response projects_dto.ProjectMemberResponseDTO
	test_utils.MakePutRequestAndUnmarshal(
		t, router, memberURL(project.ID, member.UserID)+"/role", "Bearer "+owner.Token,
		projects_dto.ChangeMemberRoleRequestDTO{Role: users_enums.ProjectRoleAdmin},
		http.StatusOK, &response,
	)

	assert.Equal(t, users_enums.ProjectRoleAdmin, response.Role)
	assert.Equal(t, users_enums.ProjectRoleAdmin, *getMemberRole(t, project.ID, member.UserID, owner))

	inbox, err := notifications.GetNotificationService().GetNotifications(
		users_testing.GetTestUser(member.UserID), &notifications.GetNotificationsRequest{},
	)
	assert.NoError(t, err)
	assert.Equal(t, notifications.NotificationTypeRoleChanged, inbox.Notifications[0].Type)
}

func Test_ChangeMemberRole_WhenDowngradingLastOwner_ReturnsConflict(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Solo", owner)

	resp := test_utils.MakePutRequest(
		t, router, memberURL(project.ID, owner.UserID)+"/role", "Bearer "+owner.Token,
		projects_dto.ChangeMemberRoleRequestDTO{Role: users_enums.ProjectRoleAdmin},
		http.StatusConflict,
	)

	assert.Contains(t, string(resp.Body), "Cannot remove the last owner")
	assert.Equal(t, users_enums.ProjectRoleOwner, *getMemberRole(t, project.ID, owner.UserID, owner))
}

func Test_ChangeMemberRole_WhenProjectOwnerDowngradesSelf_OwnershipMovesToOtherOwner(t *testing.T) {
	router := createProjectTestRouter()
	project, owner, coOwner := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleOwner)

	test_utils.MakePutRequest(
		t, router, memberURL(project.ID, owner.UserID)+"/role", "Bearer "+owner.Token,
		projects_dto.ChangeMemberRoleRequestDTO{Role: users_enums.ProjectRoleMember},
		http.StatusOK,
	)

	var details projects_dto.ProjectDetailsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/projects/"+project.ID.String(), "Bearer "+coOwner.Token, http.StatusOK, &details,
	)
	assert.Equal(t, coOwner.UserID, details.OwnerID)

	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/projects/"+project.ID.String(), "Bearer "+owner.Token, http.StatusOK, &details,
	)
	assert.Equal(t, users_enums.ProjectRoleMember, *details.UserRole)
}

func Test_ChangeMemberRole_WhenAdminChangesOwner_ReturnsForbidden(t *testing.T) {
	router := createProjectTestRouter()
	project, owner, admin := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleAdmin)

	test_utils.MakePutRequest(
		t, router, memberURL(project.ID, owner.UserID)+"/role", "Bearer "+admin.Token,
		projects_dto.ChangeMemberRoleRequestDTO{Role: users_enums.ProjectRoleViewer},
		http.StatusForbidden,
	)
}

func Test_ChangeMemberRole_WhenMemberIsMissing_ReturnsNotFound(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Team", owner)

	test_utils.MakePutRequest(
		t, router, memberURL(project.ID, uuid.New())+"/role", "Bearer "+owner.Token,
		projects_dto.ChangeMemberRoleRequestDTO{Role: users_enums.ProjectRoleViewer},
		http.StatusNotFound,
	)
}

func Test_RemoveMember_WhenOwnerRemovesMember_MemberRemovedAndNotified(t *testing.T) {
	router := createProjectTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)

	test_utils.MakeDeleteRequest(t, router, memberURL(project.ID, member.UserID), "Bearer "+owner.Token, http.StatusOK)

	assert.Nil(t, getMemberRole(t, project.ID, member.UserID, owner))
	test_utils.MakeGetRequest(
		t, router, "/api/v1/projects/"+project.ID.String(), "Bearer "+member.Token, http.StatusNotFound,
	)

	inbox, err := notifications.GetNotificationService().GetNotifications(
		users_testing.GetTestUser(member.UserID), &notifications.GetNotificationsRequest{},
	)
	assert.NoError(t, err)
	assert.Equal(t, notifications.NotificationTypeRemovedFromProject, inbox.Notifications[0].Type)
}

func Test_RemoveMember_WhenViewerRemovesSelf_Succeeds(t *testing.T) {
	router := createProjectTestRouter()
	project, owner, viewer := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleViewer)

	test_utils.MakeDeleteRequest(t, router, memberURL(project.ID, viewer.UserID), "Bearer "+viewer.Token, http.StatusOK)

	assert.Nil(t, getMemberRole(t, project.ID, viewer.UserID, owner))
}

func Test_RemoveMember_WhenMemberRemovesOther_ReturnsForbidden(t *testing.T) {
	router := createProjectTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)

	test_utils.MakeDeleteRequest(t, router, memberURL(project.ID, owner.UserID), "Bearer "+member.Token, http.StatusForbidden)
}

func Test_RemoveMember_WhenMemberRemovesPeerThenAdminRemovesPeer_OnlyAdminSucceeds(t *testing.T) {
	router := createProjectTestRouter()
	project, owner, admin := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleAdmin)
	member := users_testing.CreateTestUser()
	peer := users_testing.CreateTestUser()
	projects_testing.AddMemberToProject(project.ID, member, users_enums.ProjectRoleMember, owner)
	projects_testing.AddMemberToProject(project.ID, peer, users_enums.ProjectRoleMember, owner)

	test_utils.MakeDeleteRequest(t, router, memberURL(project.ID, peer.UserID), "Bearer "+member.Token, http.StatusForbidden)
	assert.Equal(t, users_enums.ProjectRoleMember, *getMemberRole(t, project.ID, peer.UserID, owner))

	test_utils.MakeDeleteRequest(t, router, memberURL(project.ID, peer.UserID), "Bearer "+admin.Token, http.StatusOK)
	assert.Nil(t, getMemberRole(t, project.ID, peer.UserID, owner))

	test_utils.MakeGetRequest(t, router, membersURL(project.ID), "Bearer "+peer.Token, http.StatusNotFound)
}

func Test_RemoveMember_WhenRemovingLastOwner_ReturnsConflict(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Solo", owner)

	resp := test_utils.MakeDeleteRequest(
		t, router, memberURL(project.ID, owner.UserID), "Bearer "+owner.Token, http.StatusConflict,
	)

	assert.Contains(t, string(resp.Body), "Cannot remove the last owner")
}

func Test_RemoveMember_WhenBothOwnersLeaveConcurrently_ExactlyOneSucceeds(t *testing.T) {
	router := createProjectTestRouter()
	project, owner, coOwner := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleOwner)

	leavers := []*users_dto.SignInResponseDTO{owner, coOwner}
	statuses := make([]int, len(leavers))

	var start sync.WaitGroup
	var done sync.WaitGroup
	start.Add(1)

	for i, leaver := range leavers {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()

			w := projects_testing.MakeAPIRequest(
				router, http.MethodDelete, memberURL(project.ID, leaver.UserID), "Bearer "+leaver.Token, nil,
			)
			statuses[i] = w.Code
		}()
	}

	start.Done()
	done.Wait()

	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusConflict}, statuses)

	remaining := owner
	if statuses[0] == http.StatusOK {
		remaining = coOwner
	}

	var details projects_dto.ProjectDetailsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/projects/"+project.ID.String(), "Bearer "+remaining.Token, http.StatusOK, &details,
	)

	assert.Equal(t, remaining.UserID, details.OwnerID)
	assert.Equal(t, int64(1), details.MembersCount)
	assert.Equal(t, users_enums.ProjectRoleOwner, *details.UserRole)
}
