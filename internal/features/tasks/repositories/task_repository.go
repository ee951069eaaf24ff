package tasks_repositories

import (
	"errors"
	"time"

	tasks_models "taskflow/internal/features/tasks/models"
	"taskflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepository struct{}

func (r *TaskRepository) CreateTask(tx *gorm.DB, task *tasks_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	return tx.Omit(clause.Associations).Create(task).Error
}

func (r *TaskRepository) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	err := storage.GetDb().
		Preload("Assignee").
		Preload("CreatedBy").
		Where("id = ?", taskID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &task, nil
}

// GetTaskForUpdate reads the task under a row lock held until tx ends.
func (r *TaskRepository) GetTaskForUpdate(tx *gorm.DB, taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", taskID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &task, nil
}

// GetNextPosition places a task after the last one on the board. The first
// task on an empty board gets position 1.
func (r *TaskRepository) GetNextPosition(tx *gorm.DB, boardID uuid.UUID) (int, error) {
	var position int

	err := tx.
		Model(&tasks_models.Task{}).
		Select("COALESCE(MAX(position), 0) + 1").
		Where("board_id = ?", boardID).
		Scan(&position).Error

	return position, err
}

func (r *TaskRepository) UpdateTask(tx *gorm.DB, task *tasks_models.Task) error {
	task.UpdatedAt = time.Now().UTC()

	return tx.
		Model(&tasks_models.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"title":        task.Title,
			"description":  task.Description,
			"board_id":     task.BoardID,
			"assignee_id":  task.AssigneeID,
			"priority":     task.Priority,
			"status":       task.Status,
			"due_date":     task.DueDate,
			"position":     task.Position,
			"completed_at": task.CompletedAt,
			"updated_at":   task.UpdatedAt,
		}).Error
}

func (r *TaskRepository) DeleteTask(taskID uuid.UUID) error {
	return storage.GetDb().Delete(&tasks_models.Task{}, "id = ?", taskID).Error
}

func (r *TaskRepository) GetTasksByBoard(boardID uuid.UUID) ([]tasks_models.Task, error) {
	tasks := make([]tasks_models.Task, 0)

	err := storage.GetDb().
		Preload("Assignee").
		Where("board_id = ?", boardID).
		Order("position ASC, created_at ASC").
		Find(&tasks).Error

	return tasks, err
}

func (r *TaskRepository) GetTasksByProject(projectID uuid.UUID) ([]tasks_models.Task, error) {
	tasks := make([]tasks_models.Task, 0)

	err := storage.GetDb().
		Preload("Assignee").
		Joins("JOIN boards ON boards.id = tasks.board_id").
		Where("boards.project_id = ?", projectID).
		Order("boards.position ASC, tasks.position ASC, tasks.created_at ASC").
		Find(&tasks).Error

	return tasks, err
}
