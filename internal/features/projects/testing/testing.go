package projects_testing

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	projects_dto "taskflow/internal/features/projects/dto"
	projects_services "taskflow/internal/features/projects/services"
	users_dto "taskflow/internal/features/users/dto"
	users_enums "taskflow/internal/features/users/enums"
	users_middleware "taskflow/internal/features/users/middleware"
	users_services "taskflow/internal/features/users/services"
	users_testing "taskflow/internal/features/users/testing"
	"taskflow/internal/util/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// CreateTestRouter mounts controllers under an authenticated /api/v1 group.
func CreateTestRouter(controllers ...RouteRegistrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	if err := validation.RegisterValidators(); err != nil {
		panic(err)
	}

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	return router
}

// CreateTestProject creates a project owned by owner through the service,
// so callers do not need project routes on their router.
func CreateTestProject(title string, owner *users_dto.SignInResponseDTO) *projects_dto.ProjectDetailsResponseDTO {
	project, err := projects_services.GetProjectService().CreateProject(
		&projects_dto.CreateProjectRequestDTO{Title: title},
		users_testing.GetTestUser(owner.UserID),
	)
	if err != nil {
		panic(err)
	}

	return project
}

func AddMemberToProject(
	projectID uuid.UUID,
	member *users_dto.SignInResponseDTO,
	role users_enums.ProjectRole,
	owner *users_dto.SignInResponseDTO,
) {
	_, err := projects_services.GetMembershipService().AddMember(
		projectID,
		&projects_dto.AddMemberRequestDTO{Email: member.Email, Role: role},
		users_testing.GetTestUser(owner.UserID),
	)
	if err != nil {
		panic(err)
	}
}

func ChangeMemberRole(
	projectID uuid.UUID,
	member *users_dto.SignInResponseDTO,
	role users_enums.ProjectRole,
	owner *users_dto.SignInResponseDTO,
) {
	_, err := projects_services.GetMembershipService().ChangeMemberRole(
		projectID,
		member.UserID,
		&projects_dto.ChangeMemberRoleRequestDTO{Role: role},
		users_testing.GetTestUser(owner.UserID),
	)
	if err != nil {
		panic(err)
	}
}

// CreateProjectWithMember returns a fresh project with an owner and one
// extra member holding role.
func CreateProjectWithMember(
	role users_enums.ProjectRole,
) (*projects_dto.ProjectDetailsResponseDTO, *users_dto.SignInResponseDTO, *users_dto.SignInResponseDTO) {
	owner := users_testing.CreateTestUserWithName("Project Owner")
	member := users_testing.CreateTestUserWithName("Project " + string(role))

	project := CreateTestProject("Test Project "+uuid.New().String()[:8], owner)
	AddMemberToProject(project.ID, member, role, owner)

	return project, owner, member
}

func GetBoardIDByTitle(project *projects_dto.ProjectDetailsResponseDTO, title string) uuid.UUID {
	for _, board := range project.Boards {
		if board.Title == title {
			return board.ID
		}
	}

	panic("board not found: " + title)
}

func MakeAPIRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
