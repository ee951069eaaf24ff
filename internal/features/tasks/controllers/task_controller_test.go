package tasks_controllers

import (
	"net/http"
	"testing"

	"taskflow/internal/features/activities"
	"taskflow/internal/features/notifications"
	projects_dto "taskflow/internal/features/projects/dto"
	projects_services "taskflow/internal/features/projects/services"
	projects_testing "taskflow/internal/features/projects/testing"
	tasks_dto "taskflow/internal/features/tasks/dto"
	tasks_enums "taskflow/internal/features/tasks/enums"
	tasks_models "taskflow/internal/features/tasks/models"
	tasks_testing "taskflow/internal/features/tasks/testing"
	users_enums "taskflow/internal/features/users/enums"
	users_testing "taskflow/internal/features/users/testing"
	test_utils "taskflow/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func createTaskTestRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(GetTaskController())
}

func taskURL(taskID uuid.UUID) string {
	return "/api/v1/tasks/" + taskID.String()
}

func updateTask(
	t *testing.T,
	router *gin.Engine,
	taskID uuid.UUID,
	token string,
	request tasks_dto.UpdateTaskRequestDTO,
) tasks_models.Task {
	t.Helper()

	var task tasks_models.Task
	test_utils.MakePutRequestAndUnmarshal(t, router, taskURL(taskID), "Bearer "+token, request, http.StatusOK, &task)

	return task
}

func Test_CreateTask_WhenUserIsMember_CreatesTaskWithDefaults(t *testing.T) {
	router := createTaskTestRouter()
	project, _, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)

	var task tasks_models.Task
	test_utils.MakePostRequestAndUnmarshal(
		t, router, "/api/v1/tasks", "Bearer "+member.Token,
		tasks_dto.CreateTaskRequestDTO{
			Title:   "Write release notes",
			BoardID: projects_testing.GetBoardIDByTitle(project, "To Do"),
		},
		http.StatusOK, &task,
	)

	assert.Equal(t, "Write release notes", task.Title)
	assert.Equal(t, tasks_enums.TaskPriorityMedium, task.Priority)
	assert.Equal(t, tasks_enums.TaskStatusTodo, task.Status)
	assert.Equal(t, 1, task.Position)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, member.UserID, task.CreatedByID)
	assert.NotNil(t, task.CreatedBy)
	assert.Equal(t, member.Email, task.CreatedBy.Email)
}

func Test_CreateTask_OnBoardWithTasks_AppendsAfterLastPosition(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Positions", owner)

	tasks_testing.CreateTestTask("First", project, owner)
	tasks_testing.CreateTestTask("Second", project, owner)

	var task tasks_models.Task
	test_utils.MakePostRequestAndUnmarshal(
		t, router, "/api/v1/tasks", "Bearer "+owner.Token,
		tasks_dto.CreateTaskRequestDTO{Title: "Third", BoardID: projects_testing.GetBoardIDByTitle(project, "To Do")},
		http.StatusOK, &task,
	)

	assert.Equal(t, 3, task.Position)
}

func Test_CreateTask_WhenUserIsViewer_ReturnsForbidden(t *testing.T) {
	router := createTaskTestRouter()
	project, _, viewer := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleViewer)

	test_utils.MakePostRequest(
		t, router, "/api/v1/tasks", "Bearer "+viewer.Token,
		tasks_dto.CreateTaskRequestDTO{Title: "Nope", BoardID: projects_testing.GetBoardIDByTitle(project, "To Do")},
		http.StatusForbidden,
	)
}

func Test_CreateTask_WhenUserIsNotMember_ReturnsNotFound(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Private", owner)

	test_utils.MakePostRequest(
		t, router, "/api/v1/tasks", "Bearer "+outsider.Token,
		tasks_dto.CreateTaskRequestDTO{Title: "Nope", BoardID: projects_testing.GetBoardIDByTitle(project, "To Do")},
		http.StatusNotFound,
	)
}

func Test_CreateTask_WhenAssigneeIsNotMember_ReturnsBadRequest(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Assignees", owner)

	test_utils.MakePostRequest(
		t, router, "/api/v1/tasks", "Bearer "+owner.Token,
		tasks_dto.CreateTaskRequestDTO{
			Title:      "Delegate",
			BoardID:    projects_testing.GetBoardIDByTitle(project, "To Do"),
			AssigneeID: &outsider.UserID,
		},
		http.StatusBadRequest,
	)
}

func Test_CreateTask_WithInvalidDueDate_ReturnsBadRequest(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Due dates", owner)
	dueDate := "next tuesday"

	test_utils.MakePostRequest(
		t, router, "/api/v1/tasks", "Bearer "+owner.Token,
		tasks_dto.CreateTaskRequestDTO{
			Title:   "Plan",
			BoardID: projects_testing.GetBoardIDByTitle(project, "To Do"),
			DueDate: &dueDate,
		},
		http.StatusBadRequest,
	)
}

func Test_CreateTask_WithAssignee_NotifiesAssignee(t *testing.T) {
	router := createTaskTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)

	var task tasks_models.Task
	test_utils.MakePostRequestAndUnmarshal(
		t, router, "/api/v1/tasks", "Bearer "+owner.Token,
		tasks_dto.CreateTaskRequestDTO{
			Title:      "Fix login",
			BoardID:    projects_testing.GetBoardIDByTitle(project, "To Do"),
			AssigneeID: &member.UserID,
		},
		http.StatusOK, &task,
	)

	assert.NotNil(t, task.Assignee)
	assert.Equal(t, member.UserID, task.Assignee.ID)

	inbox, err := notifications.GetNotificationService().GetNotifications(
		users_testing.GetTestUser(member.UserID),
		&notifications.GetNotificationsRequest{},
	)
	assert.NoError(t, err)
	assert.Len(t, inbox.Notifications, 2)
	assert.Equal(t, notifications.NotificationTypeTaskAssigned, inbox.Notifications[0].Type)
	assert.Equal(t, "Task Assigned", inbox.Notifications[0].Title)
}

func Test_UpdateTask_ThroughTodoDoneInProgressDone_TracksCompletedAt(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Round trip", owner)
	task := tasks_testing.CreateTestTask("Ship it", project, owner)

	done := tasks_enums.TaskStatusDone
	inProgress := tasks_enums.TaskStatusInProgress

	updated := updateTask(t, router, task.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{Status: &done})
	assert.Equal(t, tasks_enums.TaskStatusDone, updated.Status)
	assert.NotNil(t, updated.CompletedAt)

	updated = updateTask(t, router, task.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{Status: &inProgress})
	assert.Equal(t, tasks_enums.TaskStatusInProgress, updated.Status)
	assert.Nil(t, updated.CompletedAt)

	updated = updateTask(t, router, task.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{Status: &done})
	assert.Equal(t, tasks_enums.TaskStatusDone, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func Test_UpdateTask_WhenMovedToDoneBoard_InfersDoneStatus(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Moves", owner)
	task := tasks_testing.CreateTestTask("Review PR", project, owner)

	doneBoardID := projects_testing.GetBoardIDByTitle(project, "Done")
	updated := updateTask(t, router, task.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{BoardID: &doneBoardID})

	assert.Equal(t, doneBoardID, updated.BoardID)
	assert.Equal(t, tasks_enums.TaskStatusDone, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
	assert.Equal(t, 1, updated.Position)

	feed, err := activities.GetActivityService().GetProjectActivities(project.ID, &activities.GetActivitiesRequest{})
	assert.NoError(t, err)

	var types []activities.ActivityType
	for _, activity := range feed.Activities {
		types = append(types, activity.Type)
	}
	assert.Contains(t, types, activities.ActivityTypeMoved)
	assert.Contains(t, types, activities.ActivityTypeCompleted)
}

func Test_UpdateTask_WhenMovedWithExplicitStatus_ExplicitStatusWins(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Explicit", owner)
	task := tasks_testing.CreateTestTask("Audit", project, owner)

	doneBoardID := projects_testing.GetBoardIDByTitle(project, "Done")
	todo := tasks_enums.TaskStatusTodo
	updated := updateTask(t, router, task.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{
		BoardID: &doneBoardID,
		Status:  &todo,
	})

	assert.Equal(t, doneBoardID, updated.BoardID)
	assert.Equal(t, tasks_enums.TaskStatusTodo, updated.Status)
	assert.Nil(t, updated.CompletedAt)
}

func Test_UpdateTask_WhenMovedToUnmappedBoard_UsesBoardTitle(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Heuristic", owner)
	task := tasks_testing.CreateTestTask("Deploy", project, owner)

	board, err := projects_services.GetBoardService().CreateBoard(
		project.ID,
		&projects_dto.CreateBoardRequestDTO{Title: "Work in progress"},
		users_testing.GetTestUser(owner.UserID),
	)
	assert.NoError(t, err)

	updated := updateTask(t, router, task.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{BoardID: &board.ID})

	assert.Equal(t, tasks_enums.TaskStatusInProgress, updated.Status)
}

func Test_UpdateTask_WhenBoardBelongsToAnotherProject_ReturnsBadRequest(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Source", owner)
	other := projects_testing.CreateTestProject("Other", owner)
	task := tasks_testing.CreateTestTask("Stay", project, owner)

	otherBoardID := projects_testing.GetBoardIDByTitle(other, "Done")
	test_utils.MakePutRequest(
		t, router, taskURL(task.ID), "Bearer "+owner.Token,
		tasks_dto.UpdateTaskRequestDTO{BoardID: &otherBoardID}, http.StatusBadRequest,
	)
}

func Test_UpdateTask_WithUnassign_ClearsAssignee(t *testing.T) {
	router := createTaskTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)
	task := tasks_testing.CreateTestTask("Handoff", project, owner)

	updated := updateTask(t, router, task.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{AssigneeID: &member.UserID})
	assert.Equal(t, member.UserID, *updated.AssigneeID)

	updated = updateTask(t, router, task.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{Unassign: true})
	assert.Nil(t, updated.AssigneeID)
}

func Test_UpdateTask_WithEmptyDueDate_ClearsDueDate(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Deadlines", owner)
	task := tasks_testing.CreateTestTask("Invoice", project, owner)

	dueDate := "2030-05-01T12:00:00Z"
	updated := updateTask(t, router, task.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{DueDate: &dueDate})
	assert.NotNil(t, updated.DueDate)

	empty := ""
	updated = updateTask(t, router, task.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{DueDate: &empty})
	assert.Nil(t, updated.DueDate)
}

func Test_UpdateTask_WhenUserIsViewer_ReturnsForbidden(t *testing.T) {
	router := createTaskTestRouter()
	project, owner, viewer := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleViewer)
	task := tasks_testing.CreateTestTask("Locked", project, owner)
	title := "Renamed"

	test_utils.MakePutRequest(
		t, router, taskURL(task.ID), "Bearer "+viewer.Token,
		tasks_dto.UpdateTaskRequestDTO{Title: &title}, http.StatusForbidden,
	)
}

func Test_GetTask_WhenUserIsViewer_ReturnsTask(t *testing.T) {
	router := createTaskTestRouter()
	project, owner, viewer := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleViewer)
	task := tasks_testing.CreateTestTask("Visible", project, owner)

	var response tasks_models.Task
	test_utils.MakeGetRequestAndUnmarshal(t, router, taskURL(task.ID), "Bearer "+viewer.Token, http.StatusOK, &response)

	assert.Equal(t, task.ID, response.ID)
	assert.Equal(t, owner.UserID, response.CreatedBy.ID)
}

func Test_GetTask_WhenUserIsNotMember_ReturnsNotFound(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Hidden", owner)
	task := tasks_testing.CreateTestTask("Secret", project, owner)

	test_utils.MakeGetRequest(t, router, taskURL(task.ID), "Bearer "+outsider.Token, http.StatusNotFound)
}

func Test_ListTasks_ByProject_ReturnsTasksOrderedByBoardThenPosition(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Listing", owner)

	first := tasks_testing.CreateTestTask("First", project, owner)
	second := tasks_testing.CreateTestTask("Second", project, owner)

	doneBoardID := projects_testing.GetBoardIDByTitle(project, "Done")
	updateTask(t, router, first.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{BoardID: &doneBoardID})

	var response tasks_dto.ListTasksResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/tasks?projectId="+project.ID.String(), "Bearer "+owner.Token, http.StatusOK, &response,
	)

	assert.Len(t, response.Tasks, 2)
	assert.Equal(t, second.ID, response.Tasks[0].ID)
	assert.Equal(t, first.ID, response.Tasks[1].ID)
}

func Test_ListTasks_ByBoard_ReturnsOnlyBoardTasks(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Board listing", owner)
	tasks_testing.CreateTestTask("Only", project, owner)

	var todo tasks_dto.ListTasksResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/tasks?boardId="+projects_testing.GetBoardIDByTitle(project, "To Do").String(),
		"Bearer "+owner.Token, http.StatusOK, &todo,
	)
	assert.Len(t, todo.Tasks, 1)

	var done tasks_dto.ListTasksResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/tasks?boardId="+projects_testing.GetBoardIDByTitle(project, "Done").String(),
		"Bearer "+owner.Token, http.StatusOK, &done,
	)
	assert.Empty(t, done.Tasks)
}

func Test_ListTasks_WhenUserIsNotMember_ReturnsNotFound(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Closed", owner)

	test_utils.MakeGetRequest(
		t, router, "/api/v1/tasks?projectId="+project.ID.String(), "Bearer "+outsider.Token, http.StatusNotFound,
	)
}

func Test_ListTasks_WithoutFilter_ReturnsBadRequest(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()

	test_utils.MakeGetRequest(t, router, "/api/v1/tasks", "Bearer "+owner.Token, http.StatusBadRequest)
}

func Test_DeleteTask_WhenUserIsMember_RemovesTask(t *testing.T) {
	router := createTaskTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)
	task := tasks_testing.CreateTestTask("Obsolete", project, owner)

	test_utils.MakeDeleteRequest(t, router, taskURL(task.ID), "Bearer "+member.Token, http.StatusOK)
	test_utils.MakeGetRequest(t, router, taskURL(task.ID), "Bearer "+owner.Token, http.StatusNotFound)
}

func Test_GetProject_AfterCreatingTasks_IncludesTasksWithAssignee(t *testing.T) {
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)
	task := tasks_testing.CreateTestTask("Nested", project, owner)

	router := createTaskTestRouter()
	updateTask(t, router, task.ID, owner.Token, tasks_dto.UpdateTaskRequestDTO{AssigneeID: &member.UserID})

	details, err := projects_services.GetProjectService().GetProject(project.ID, users_testing.GetTestUser(owner.UserID))
	assert.NoError(t, err)

	todo := details.Boards[0]
	assert.Equal(t, "To Do", todo.Title)
	assert.Len(t, todo.Tasks, 1)
	assert.Equal(t, member.UserID, todo.Tasks[0].Assignee.ID)
}
