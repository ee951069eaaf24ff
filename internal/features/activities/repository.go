package activities

import (
	"time"

	"taskflow/internal/storage"

	"github.com/google/uuid"
)

type ActivityRepository struct{}

func (r *ActivityRepository) Create(activity *Activity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}

	return storage.GetDb().Create(activity).Error
}

func (r *ActivityRepository) GetByProject(
	projectID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*ActivityDTO, error) {
	var activities = make([]*ActivityDTO, 0)

	sql := `
		SELECT
			a.id,
			a.type,
			a.entity,
			a.entity_id,
			a.user_id,
			a.project_id,
			a.details,
			a.metadata,
			a.created_at,
			u.name as user_name,
			u.email as user_email
		FROM activities a
		LEFT JOIN users u ON a.user_id = u.id
		WHERE a.project_id = ?`

	args := []any{projectID}

	if beforeDate != nil {
		sql += " AND a.created_at < ?"
		args = append(args, *beforeDate)
	}

	sql += " ORDER BY a.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	err := storage.GetDb().Raw(sql, args...).Scan(&activities).Error

	return activities, err
}
