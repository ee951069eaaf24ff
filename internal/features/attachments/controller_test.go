package attachments

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	projects_services "taskflow/internal/features/projects/services"
	projects_testing "taskflow/internal/features/projects/testing"
	tasks_services "taskflow/internal/features/tasks/services"
	tasks_testing "taskflow/internal/features/tasks/testing"
	users_enums "taskflow/internal/features/users/enums"
	users_testing "taskflow/internal/features/users/testing"
	test_utils "taskflow/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

func createAttachmentTestRouter() *gin.Engine {
	SetupDependencies()
	return projects_testing.CreateTestRouter(GetAttachmentController())
}

func attachmentsURL(taskID uuid.UUID) string {
	return "/api/v1/tasks/" + taskID.String() + "/attachments"
}

func uploadFile(
	t *testing.T,
	router *gin.Engine,
	taskID uuid.UUID,
	token string,
	fileName string,
	content []byte,
) *test_utils.TestResponse {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	return test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:    http.MethodPost,
		URL:       attachmentsURL(taskID),
		AuthToken: "Bearer " + token,
		Body:      &body,
		Headers:   map[string]string{"Content-Type": writer.FormDataContentType()},
	})
}

func uploadTestAttachment(
	t *testing.T,
	router *gin.Engine,
	taskID uuid.UUID,
	token string,
	fileName string,
	content []byte,
) *Attachment {
	t.Helper()

	response := uploadFile(t, router, taskID, token, fileName, content)
	assert.Equal(t, http.StatusOK, response.StatusCode, string(response.Body))

	attachment, err := attachmentRepository.GetByID(parseAttachmentID(t, response.Body))
	assert.NoError(t, err)
	assert.NotNil(t, attachment)

	return attachment
}

func parseAttachmentID(t *testing.T, body []byte) uuid.UUID {
	t.Helper()

	var response struct {
		ID uuid.UUID `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(body, &response))

	return response.ID
}

func storedFileExists(attachment *Attachment) bool {
	_, err := os.Stat(filepath.Join(attachmentsDir(), attachment.StoredName()))
	return err == nil
}

func Test_UploadAttachment_WhenUserIsMember_StoresFileAndSniffsType(t *testing.T) {
	router := createAttachmentTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)
	task := tasks_testing.CreateTestTask("Mockups", project, owner)

	attachment := uploadTestAttachment(t, router, task.ID, member.Token, "my mockup (v2).txt", pngHeader)

	assert.Equal(t, "my mockup (v2).txt", attachment.FileName)
	assert.Equal(t, "image/png", attachment.FileType)
	assert.Equal(t, int64(len(pngHeader)), attachment.FileSize)
	assert.Regexp(t, `^/uploads/attachments/\d+-my_mockup__v2_\.txt$`, attachment.FileURL)
	assert.Equal(t, member.UserID, attachment.UploadedByID)
	assert.True(t, storedFileExists(attachment))
}

func Test_UploadAttachment_WithClientContentType_KeepsClientType(t *testing.T) {
	router := createAttachmentTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Typed uploads", owner)
	task := tasks_testing.CreateTestTask("Release notes", project, owner)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="notes.md"`)
	partHeader.Set("Content-Type", "text/markdown")

	part, err := writer.CreatePart(partHeader)
	assert.NoError(t, err)
	_, err = part.Write([]byte("# Notes"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	response := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodPost,
		URL:            attachmentsURL(task.ID),
		AuthToken:      "Bearer " + owner.Token,
		Body:           &body,
		Headers:        map[string]string{"Content-Type": writer.FormDataContentType()},
		ExpectedStatus: http.StatusOK,
	})

	var attachment Attachment
	assert.NoError(t, json.Unmarshal(response.Body, &attachment))
	assert.Equal(t, "text/markdown", attachment.FileType)
}

func Test_UploadAttachment_WhenUserIsViewer_ReturnsForbidden(t *testing.T) {
	router := createAttachmentTestRouter()
	project, owner, viewer := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleViewer)
	task := tasks_testing.CreateTestTask("Specs", project, owner)

	response := uploadFile(t, router, task.ID, viewer.Token, "notes.txt", []byte("hello"))

	assert.Equal(t, http.StatusForbidden, response.StatusCode)
}

func Test_UploadAttachment_WithoutFile_ReturnsBadRequest(t *testing.T) {
	router := createAttachmentTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("No file", owner)
	task := tasks_testing.CreateTestTask("Empty", project, owner)

	test_utils.MakePostRequest(t, router, attachmentsURL(task.ID), "Bearer "+owner.Token, nil, http.StatusBadRequest)
}

func Test_UploadAttachment_WhenFileExceedsLimit_ReturnsBadRequest(t *testing.T) {
	router := createAttachmentTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Big files", owner)
	task := tasks_testing.CreateTestTask("Huge", project, owner)

	tooBig := make([]byte, 11*bytesInMB)
	response := uploadFile(t, router, task.ID, owner.Token, "huge.bin", tooBig)

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}

func Test_GetAttachments_WhenUserIsViewer_ReturnsAttachments(t *testing.T) {
	router := createAttachmentTestRouter()
	project, owner, viewer := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleViewer)
	task := tasks_testing.CreateTestTask("Listing", project, owner)

	uploadTestAttachment(t, router, task.ID, owner.Token, "a.txt", []byte("a"))
	uploadTestAttachment(t, router, task.ID, owner.Token, "b.txt", []byte("b"))

	var response ListAttachmentsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router, attachmentsURL(task.ID), "Bearer "+viewer.Token, http.StatusOK, &response)

	assert.Len(t, response.Attachments, 2)
	assert.Equal(t, "b.txt", response.Attachments[0].FileName)
}

func Test_GetAttachments_WhenUserIsNotMember_ReturnsNotFound(t *testing.T) {
	router := createAttachmentTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Private files", owner)
	task := tasks_testing.CreateTestTask("Secret", project, owner)

	test_utils.MakeGetRequest(t, router, attachmentsURL(task.ID), "Bearer "+outsider.Token, http.StatusNotFound)
}

func Test_DownloadAttachment_WhenUserIsViewer_StreamsContent(t *testing.T) {
	router := createAttachmentTestRouter()
	project, owner, viewer := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleViewer)
	task := tasks_testing.CreateTestTask("Downloads", project, owner)

	attachment := uploadTestAttachment(t, router, task.ID, owner.Token, "notes.txt", []byte("meeting notes"))

	response := test_utils.MakeGetRequest(
		t, router, "/api/v1/attachments/"+attachment.ID.String()+"/download", "Bearer "+viewer.Token, http.StatusOK,
	)

	assert.Equal(t, "meeting notes", string(response.Body))
	assert.Contains(t, response.Headers.Get("Content-Disposition"), "notes.txt")
}

func Test_DeleteAttachment_WhenUserIsMember_RemovesFileAndRecord(t *testing.T) {
	router := createAttachmentTestRouter()
	project, owner, member := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleMember)
	task := tasks_testing.CreateTestTask("Cleanup", project, owner)

	attachment := uploadTestAttachment(t, router, task.ID, owner.Token, "old.txt", []byte("old"))

	test_utils.MakeDeleteRequest(t, router, "/api/v1/attachments/"+attachment.ID.String(), "Bearer "+member.Token, http.StatusOK)

	deleted, err := attachmentRepository.GetByID(attachment.ID)
	assert.NoError(t, err)
	assert.Nil(t, deleted)
	assert.False(t, storedFileExists(attachment))
}

func Test_DeleteAttachment_WhenFileIsAlreadyMissing_StillDeletesRecord(t *testing.T) {
	router := createAttachmentTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Missing files", owner)
	task := tasks_testing.CreateTestTask("Gone", project, owner)

	attachment := uploadTestAttachment(t, router, task.ID, owner.Token, "gone.txt", []byte("gone"))
	assert.NoError(t, os.Remove(filepath.Join(attachmentsDir(), attachment.StoredName())))

	test_utils.MakeDeleteRequest(t, router, "/api/v1/attachments/"+attachment.ID.String(), "Bearer "+owner.Token, http.StatusOK)

	deleted, err := attachmentRepository.GetByID(attachment.ID)
	assert.NoError(t, err)
	assert.Nil(t, deleted)
}

func Test_DeleteAttachment_WhenUserIsViewer_ReturnsForbidden(t *testing.T) {
	router := createAttachmentTestRouter()
	project, owner, viewer := projects_testing.CreateProjectWithMember(users_enums.ProjectRoleViewer)
	task := tasks_testing.CreateTestTask("Protected", project, owner)

	attachment := uploadTestAttachment(t, router, task.ID, owner.Token, "keep.txt", []byte("keep"))

	test_utils.MakeDeleteRequest(t, router, "/api/v1/attachments/"+attachment.ID.String(), "Bearer "+viewer.Token, http.StatusForbidden)
	assert.True(t, storedFileExists(attachment))
}

func Test_DeleteProject_WithAttachments_RemovesStoredFiles(t *testing.T) {
	router := createAttachmentTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Doomed", owner)
	task := tasks_testing.CreateTestTask("Doomed task", project, owner)

	attachment := uploadTestAttachment(t, router, task.ID, owner.Token, "doomed.txt", []byte("bye"))

	err := projects_services.GetProjectService().DeleteProject(project.ID, users_testing.GetTestUser(owner.UserID))
	assert.NoError(t, err)

	assert.False(t, storedFileExists(attachment))

	deleted, err := attachmentRepository.GetByID(attachment.ID)
	assert.NoError(t, err)
	assert.Nil(t, deleted)
}

func Test_OnBeforeTaskDeletion_KeepsFilesUntilCleanupRuns(t *testing.T) {
	router := createAttachmentTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Two phase", owner)
	task := tasks_testing.CreateTestTask("Pending delete", project, owner)

	attachment := uploadTestAttachment(t, router, task.ID, owner.Token, "keep.txt", []byte("still here"))

	cleanup, err := attachmentService.OnBeforeTaskDeletion(task.ID)
	assert.NoError(t, err)
	assert.NotNil(t, cleanup)

	// a delete that fails after this point leaves record and file together
	assert.True(t, storedFileExists(attachment))
	stored, err := attachmentRepository.GetByID(attachment.ID)
	assert.NoError(t, err)
	assert.NotNil(t, stored)

	cleanup()
	assert.False(t, storedFileExists(attachment))
}

func Test_OnBeforeTaskDeletion_WithoutAttachments_ReturnsNoCleanup(t *testing.T) {
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Empty task", owner)
	task := tasks_testing.CreateTestTask("Nothing attached", project, owner)

	cleanup, err := attachmentService.OnBeforeTaskDeletion(task.ID)

	assert.NoError(t, err)
	assert.Nil(t, cleanup)
}

func Test_DeleteTask_WithAttachments_RemovesStoredFilesAfterDelete(t *testing.T) {
	router := createAttachmentTestRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject("Task cleanup", owner)
	task := tasks_testing.CreateTestTask("Gone soon", project, owner)

	attachment := uploadTestAttachment(t, router, task.ID, owner.Token, "gone.txt", []byte("bye"))

	err := tasks_services.GetTaskService().DeleteTask(task.ID, users_testing.GetTestUser(owner.UserID))
	assert.NoError(t, err)

	assert.False(t, storedFileExists(attachment))
}
