package projects_repositories

import (
	"errors"
	"time"

	projects_dto "taskflow/internal/features/projects/dto"
	projects_models "taskflow/internal/features/projects/models"
	"taskflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(tx *gorm.DB, project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	project.UpdatedAt = project.CreatedAt

	return tx.Omit(clause.Associations).Create(project).Error
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

// GetProjectWithBoards loads boards and their tasks ordered by position,
// with each task's assignee.
func (r *ProjectRepository) GetProjectWithBoards(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	err := storage.GetDb().
		Preload("Boards", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("Boards.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("Boards.Tasks.Assignee").
		Where("id = ?", projectID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

// GetProjectForUpdate takes a row lock on the project for the rest of tx.
func (r *ProjectRepository) GetProjectForUpdate(tx *gorm.DB, projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", projectID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

// GetProjectsForUser lists projects the user owns or is a member of, most
// recently updated first. Ownership wins over the membership role.
func (r *ProjectRepository) GetProjectsForUser(userID uuid.UUID) ([]projects_dto.ProjectResponseDTO, error) {
	results := make([]projects_dto.ProjectResponseDTO, 0)

	err := storage.GetDb().Raw(`
		SELECT p.id, p.title, p.description, p.color, p.owner_id, p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM project_members m WHERE m.project_id = p.id) AS members_count,
			(SELECT COUNT(*) FROM boards b WHERE b.project_id = p.id) AS boards_count,
			CASE WHEN p.owner_id = @user THEN 'OWNER' ELSE pm.role END AS user_role
		FROM projects p
		LEFT JOIN project_members pm ON pm.project_id = p.id AND pm.user_id = @user
		WHERE p.owner_id = @user OR pm.user_id IS NOT NULL
		ORDER BY p.updated_at DESC`,
		map[string]any{"user": userID},
	).Scan(&results).Error

	return results, err
}

func (r *ProjectRepository) CountMembers(projectID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&projects_models.ProjectMember{}).
		Where("project_id = ?", projectID).
		Count(&count).Error

	return count, err
}

func (r *ProjectRepository) CountBoards(projectID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&projects_models.Board{}).
		Where("project_id = ?", projectID).
		Count(&count).Error

	return count, err
}

func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	project.UpdatedAt = time.Now().UTC()

	return storage.GetDb().
		Model(&projects_models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]any{
			"title":       project.Title,
			"description": project.Description,
			"color":       project.Color,
			"updated_at":  project.UpdatedAt,
		}).Error
}

func (r *ProjectRepository) UpdateOwner(tx *gorm.DB, projectID uuid.UUID, ownerID uuid.UUID) error {
	return tx.
		Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]any{
			"owner_id":   ownerID,
			"updated_at": time.Now().UTC(),
		}).Error
}

// Touch bumps updated_at so the project moves up in GetProjectsForUser.
func (r *ProjectRepository) Touch(projectID uuid.UUID) error {
	return storage.GetDb().
		Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		Update("updated_at", time.Now().UTC()).Error
}

func (r *ProjectRepository) DeleteProject(projectID uuid.UUID) error {
	return storage.GetDb().Delete(&projects_models.Project{}, projectID).Error
}
