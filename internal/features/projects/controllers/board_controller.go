package projects_controllers

import (
	"net/http"

	projects_dto "taskflow/internal/features/projects/dto"
	projects_services "taskflow/internal/features/projects/services"
	users_middleware "taskflow/internal/features/users/middleware"
	errors_utils "taskflow/internal/util/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardController struct {
	boardService *projects_services.BoardService
}

func (c *BoardController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:id/boards", c.GetBoards)
	router.POST("/projects/:id/boards", c.CreateBoard)
	router.PUT("/boards/:id", c.UpdateBoard)
	router.DELETE("/boards/:id", c.DeleteBoard)
}

// GetBoards
// @Summary List project boards
// @Description Get boards of a project ordered by position
// @Tags boards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.ListBoardsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/boards [get]
func (c *BoardController) GetBoards(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.boardService.GetBoards(projectID, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateBoard
// @Summary Create board
// @Description Create a board, optionally mapped to a task status. Requires ADMIN.
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.CreateBoardRequestDTO true "Board data"
// @Success 200 {object} projects_models.Board
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/boards [post]
func (c *BoardController) CreateBoard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request projects_dto.CreateBoardRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	board, err := c.boardService.CreateBoard(projectID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// UpdateBoard
// @Summary Update board
// @Description Rename, reposition or remap a board. Requires ADMIN.
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Param request body projects_dto.UpdateBoardRequestDTO true "Board update data"
// @Success 200 {object} projects_models.Board
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /boards/{id} [put]
func (c *BoardController) UpdateBoard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	boardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	var request projects_dto.UpdateBoardRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	board, err := c.boardService.UpdateBoard(boardID, &request, user)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// DeleteBoard
// @Summary Delete board
// @Description Delete a board and its tasks. Requires ADMIN.
// @Tags boards
// @Security BearerAuth
// @Param id path string true "Board ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /boards/{id} [delete]
func (c *BoardController) DeleteBoard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	boardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	if err := c.boardService.DeleteBoard(boardID, user); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}
