package projects_repositories

import (
	"errors"
	"time"

	projects_dto "taskflow/internal/features/projects/dto"
	projects_models "taskflow/internal/features/projects/models"
	users_enums "taskflow/internal/features/users/enums"
	"taskflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMember(tx *gorm.DB, member *projects_models.ProjectMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}

	return tx.Create(member).Error
}

func (r *MembershipRepository) GetMember(projectID uuid.UUID, userID uuid.UUID) (*projects_models.ProjectMember, error) {
	return r.getMember(storage.GetDb(), projectID, userID)
}

func (r *MembershipRepository) GetMemberTx(
	tx *gorm.DB,
	projectID uuid.UUID,
	userID uuid.UUID,
) (*projects_models.ProjectMember, error) {
	return r.getMember(tx, projectID, userID)
}

func (r *MembershipRepository) getMember(
	db *gorm.DB,
	projectID uuid.UUID,
	userID uuid.UUID,
) (*projects_models.ProjectMember, error) {
	var member projects_models.ProjectMember

	err := db.
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &member, nil
}

// GetProjectMembers returns members with their user details, highest role
// first and then by join time.
func (r *MembershipRepository) GetProjectMembers(projectID uuid.UUID) ([]projects_dto.ProjectMemberResponseDTO, error) {
	members := make([]projects_dto.ProjectMemberResponseDTO, 0)

	err := storage.GetDb().
		Table("project_members pm").
		Select("pm.id, pm.project_id, pm.user_id, u.name, u.email, pm.role, pm.joined_at").
		Joins("JOIN users u ON pm.user_id = u.id").
		Where("pm.project_id = ?", projectID).
		Order(`CASE pm.role
			WHEN 'OWNER' THEN 0
			WHEN 'ADMIN' THEN 1
			WHEN 'MEMBER' THEN 2
			ELSE 3 END, pm.joined_at ASC`).
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) CountOwners(tx *gorm.DB, projectID uuid.UUID) (int64, error) {
	var count int64

	err := tx.
		Model(&projects_models.ProjectMember{}).
		Where("project_id = ? AND role = ?", projectID, users_enums.ProjectRoleOwner).
		Count(&count).Error

	return count, err
}

// GetEarliestOwner returns the longest-standing OWNER member other than
// excludedUserID, or nil when there is none.
func (r *MembershipRepository) GetEarliestOwner(
	tx *gorm.DB,
	projectID uuid.UUID,
	excludedUserID uuid.UUID,
) (*projects_models.ProjectMember, error) {
	var member projects_models.ProjectMember

	err := tx.
		Where("project_id = ? AND role = ? AND user_id <> ?", projectID, users_enums.ProjectRoleOwner, excludedUserID).
		Order("joined_at ASC").
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &member, nil
}

func (r *MembershipRepository) UpdateRole(tx *gorm.DB, memberID uuid.UUID, role users_enums.ProjectRole) error {
	return tx.
		Model(&projects_models.ProjectMember{}).
		Where("id = ?", memberID).
		Update("role", role).Error
}

func (r *MembershipRepository) DeleteMember(tx *gorm.DB, memberID uuid.UUID) error {
	return tx.Delete(&projects_models.ProjectMember{}, memberID).Error
}
