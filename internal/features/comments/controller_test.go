package comments

import (
	"net/http"
	"testing"

	"taskflow/internal/features/notifications"
	projects_testing "taskflow/internal/features/projects/testing"
	tasks_dto "taskflow/internal/features/tasks/dto"
	tasks_services "taskflow/internal/features/tasks/services"
	tasks_testing "taskflow/internal/features/tasks/testing"
	users_enums "taskflow/internal/features/users/enums"
	users_testing "taskflow/internal/features/users/testing"
	test_utils "taskflow/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createCommentTestRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(GetCommentController())
}

func commentsURL(taskID uuid.UUID) string {
	return "/api/v1/tasks/" + taskID.String() + "/comments"
}

func commentURL(commentID uuid.UUID) string {
	return "/api/v1/comments/" + commentID.String()
}

func Test_CreateComment_WhenTaskHasOtherAssignee_NotifiesAssignee(t *testing.T) {
	router := createCommentTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)
	task := tasks_testing.CreateTestTask("Discuss", project, owner)

	_, err := tasks_services.GetTaskService().UpdateTask(
		task.ID,
		&tasks_dto.UpdateTaskRequestDTO{AssigneeID: &member.UserID},
		users_testing.GetTestUser(owner.UserID),
	)
	assert.NoError(t, err)

	var comment Comment
	test_utils.MakePostRequestAndUnmarshal(
		t, router, commentsURL(task.ID), "Bearer "+owner.Token,
		CreateCommentRequest{Content: "Can you take a look?"}, http.StatusOK, &comment,
	)

	assert.Equal(t, "Can you take a look?", comment.Content)
	assert.Equal(t, owner.UserID, comment.UserID)

	inbox, err := notifications.GetNotificationService().GetNotifications(
		users_testing.GetTestUser(member.UserID),
		&notifications.GetNotificationsRequest{},
	)
	assert.NoError(t, err)
	assert.Equal(t, notifications.NotificationTypeTaskComment, inbox.Notifications[0].Type)
	assert.Equal(t, "New Comment", inbox.Notifications[0].Title)
}

func Test_CreateComment_WhenAuthorIsAssignee_DoesNotNotify(t *testing.T) {
	router := createCommentTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Self notes", owner)
	task := tasks_testing.CreateTestTask("Mine", project, owner)

	_, err := tasks_services.GetTaskService().UpdateTask(
		task.ID,
		&tasks_dto.UpdateTaskRequestDTO{AssigneeID: &owner.UserID},
		users_testing.GetTestUser(owner.UserID),
	)
	assert.NoError(t, err)

	test_utils.MakePostRequest(
		t, router, commentsURL(task.ID), "Bearer "+owner.Token,
		CreateCommentRequest{Content: "note to self"}, http.StatusOK,
	)

	inbox, err := notifications.GetNotificationService().GetNotifications(
		users_testing.GetTestUser(owner.UserID),
		&notifications.GetNotificationsRequest{},
	)
	assert.NoError(t, err)
	assert.Empty(t, inbox.Notifications)
}

func Test_CreateComment_WhenUserIsViewer_ReturnsForbidden(t *testing.T) {
	router := createCommentTestRouter()
	project, owner, viewer := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleViewer)
	task := tasks_testing.CreateTestTask("Read only", project, owner)

	test_utils.MakePostRequest(
		t, router, commentsURL(task.ID), "Bearer "+viewer.Token,
		CreateCommentRequest{Content: "hello"}, http.StatusForbidden,
	)
}

func Test_CreateComment_WithEmptyContent_ReturnsBadRequest(t *testing.T) {
	router := createCommentTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Empty", owner)
	task := tasks_testing.CreateTestTask("Blank", project, owner)

	test_utils.MakePostRequest(
		t, router, commentsURL(task.ID), "Bearer "+owner.Token,
		CreateCommentRequest{Content: ""}, http.StatusBadRequest,
	)
}

func Test_GetComments_WhenUserIsViewer_ReturnsNewestFirst(t *testing.T) {
	router := createCommentTestRouter()
	project, owner, viewer := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleViewer)
	task := tasks_testing.CreateTestTask("Thread", project, owner)

	test_utils.MakePostRequest(t, router, commentsURL(task.ID), "Bearer "+owner.Token, CreateCommentRequest{Content: "first"}, http.StatusOK)
	test_utils.MakePostRequest(t, router, commentsURL(task.ID), "Bearer "+owner.Token, CreateCommentRequest{Content: "second"}, http.StatusOK)

	var response ListCommentsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router, commentsURL(task.ID), "Bearer "+viewer.Token, http.StatusOK, &response)

	assert.Len(t, response.Comments, 2)
	assert.Equal(t, "second", response.Comments[0].Content)
	assert.Equal(t, owner.Email, response.Comments[0].User.Email)
}

func Test_GetComments_WhenUserIsNotMember_ReturnsNotFound(t *testing.T) {
	router := createCommentTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Closed thread", owner)
	task := tasks_testing.CreateTestTask("Hidden", project, owner)

	test_utils.MakeGetRequest(t, router, commentsURL(task.ID), "Bearer "+outsider.Token, http.StatusNotFound)
}

func Test_UpdateComment_WhenUserIsAuthor_UpdatesContent(t *testing.T) {
	router := createCommentTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Edits", owner)
	task := tasks_testing.CreateTestTask("Typo", project, owner)

	var comment Comment
	test_utils.MakePostRequestAndUnmarshal(
		t, router, commentsURL(task.ID), "Bearer "+owner.Token, CreateCommentRequest{Content: "teh"}, http.StatusOK, &comment,
	)

	var updated Comment
	test_utils.MakePutRequestAndUnmarshal(
		t, router, commentURL(comment.ID), "Bearer "+owner.Token, UpdateCommentRequest{Content: "the"}, http.StatusOK, &updated,
	)

	assert.Equal(t, "the", updated.Content)
}

func Test_UpdateComment_WhenUserIsNotAuthor_ReturnsForbidden(t *testing.T) {
	router := createCommentTestRouter()
	project, owner, admin := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleAdmin)
	task := tasks_testing.CreateTestTask("Ownership", project, owner)

	var comment Comment
	test_utils.MakePostRequestAndUnmarshal(
		t, router, commentsURL(task.ID), "Bearer "+owner.Token, CreateCommentRequest{Content: "mine"}, http.StatusOK, &comment,
	)

	test_utils.MakePutRequest(
		t, router, commentURL(comment.ID), "Bearer "+admin.Token, UpdateCommentRequest{Content: "yours"}, http.StatusForbidden,
	)
	test_utils.MakeDeleteRequest(t, router, commentURL(comment.ID), "Bearer "+admin.Token, http.StatusForbidden)
}

func Test_UpdateComment_WhenAuthorIsDowngradedToViewer_ReturnsForbidden(t *testing.T) {
	router := createCommentTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)
	task := tasks_testing.CreateTestTask("Downgrade", project, owner)

	var comment Comment
	test_utils.MakePostRequestAndUnmarshal(
		t, router, commentsURL(task.ID), "Bearer "+member.Token, CreateCommentRequest{Content: "draft"}, http.StatusOK, &comment,
	)

	projects_testing.ChangeMemberRole(project.ID, member, users_enums.ProjectRoleViewer, owner)

	test_utils.MakePutRequest(
		t, router, commentURL(comment.ID), "Bearer "+member.Token, UpdateCommentRequest{Content: "edited"}, http.StatusForbidden,
	)
	test_utils.MakeDeleteRequest(t, router, commentURL(comment.ID), "Bearer "+member.Token, http.StatusForbidden)

	var response ListCommentsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router, commentsURL(task.ID), "Bearer "+member.Token, http.StatusOK, &response)
	assert.Len(t, response.Comments, 1)
	assert.Equal(t, "draft", response.Comments[0].Content)
}

func Test_UpdateComment_WhenUserIsNotMember_ReturnsNotFound(t *testing.T) {
	router := createCommentTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Hidden comments", owner)
	task := tasks_testing.CreateTestTask("Secret", project, owner)

	var comment Comment
	test_utils.MakePostRequestAndUnmarshal(
		t, router, commentsURL(task.ID), "Bearer "+owner.Token, CreateCommentRequest{Content: "private"}, http.StatusOK, &comment,
	)

	test_utils.MakePutRequest(
		t, router, commentURL(comment.ID), "Bearer "+outsider.Token, UpdateCommentRequest{Content: "x"}, http.StatusNotFound,
	)
}

func Test_DeleteComment_WhenUserIsAuthor_RemovesComment(t *testing.T) {
	router := createCommentTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)
	task := tasks_testing.CreateTestTask("Cleanup", project, owner)

	var comment Comment
	test_utils.MakePostRequestAndUnmarshal(
		t, router, commentsURL(task.ID), "Bearer "+member.Token, CreateCommentRequest{Content: "oops"}, http.StatusOK, &comment,
	)

	test_utils.MakeDeleteRequest(t, router, commentURL(comment.ID), "Bearer "+member.Token, http.StatusOK)

	var response ListCommentsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router, commentsURL(task.ID), "Bearer "+owner.Token, http.StatusOK, &response)
	assert.Empty(t, response.Comments)
}

func Test_DeleteComment_WhenCommentDoesNotExist_ReturnsNotFound(t *testing.T) {
	router := createCommentTestRouter()
	owner := users_testing.CreateTestUser()

	test_utils.MakeDeleteRequest(t, router, commentURL(uuid.New()), "Bearer "+owner.Token, http.StatusNotFound)
}
