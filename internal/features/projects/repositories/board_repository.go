package projects_repositories

import (
	"errors"
	"time"

	projects_models "taskflow/internal/features/projects/models"
	"taskflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepository struct{}

func (r *BoardRepository) CreateBoards(tx *gorm.DB, boards []projects_models.Board) error {
	return tx.Omit(clause.Associations).Create(&boards).Error
}

func (r *BoardRepository) CreateBoard(board *projects_models.Board) error {
	if board.ID == uuid.Nil {
		board.ID = uuid.New()
	}

	now := time.Now().UTC()
	board.CreatedAt = now
	board.UpdatedAt = now

	return storage.GetDb().Omit(clause.Associations).Create(board).Error
}

func (r *BoardRepository) GetBoardByID(boardID uuid.UUID) (*projects_models.Board, error) {
	var board projects_models.Board

	if err := storage.GetDb().Where("id = ?", boardID).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &board, nil
}

func (r *BoardRepository) GetBoardsByProject(projectID uuid.UUID) ([]projects_models.Board, error) {
	boards := make([]projects_models.Board, 0)

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("position ASC, created_at ASC").
		Find(&boards).Error

	return boards, err
}

// GetNextPosition places a new board after the last one.
func (r *BoardRepository) GetNextPosition(projectID uuid.UUID) (int, error) {
	var position int

	err := storage.GetDb().
		Model(&projects_models.Board{}).
		Select("COALESCE(MAX(position), -1) + 1").
		Where("project_id = ?", projectID).
		Scan(&position).Error

	return position, err
}

func (r *BoardRepository) UpdateBoard(board *projects_models.Board) error {
	board.UpdatedAt = time.Now().UTC()

	return storage.GetDb().
		Model(&projects_models.Board{}).
		Where("id = ?", board.ID).
		Updates(map[string]any{
			"title":      board.Title,
			"position":   board.Position,
			"status":     board.Status,
			"updated_at": board.UpdatedAt,
		}).Error
}

func (r *BoardRepository) DeleteBoard(boardID uuid.UUID) error {
	return storage.GetDb().Delete(&projects_models.Board{}, boardID).Error
}
