package activities

import (
	"encoding/json"
	"log/slog"
	"time"

	"taskflow/internal/util/metrics"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	defaultActivitiesLimit = 50
	maxActivitiesLimit     = 200
)

type ActivityService struct {
	activityRepository *ActivityRepository
	logger             *slog.Logger
}

// Record appends a feed entry. It never fails the caller: the mutation it
// describes has already happened, so errors are only logged.
func (s *ActivityService) Record(
	activityType ActivityType,
	entity EntityType,
	entityID uuid.UUID,
	actorID uuid.UUID,
	projectID uuid.UUID,
	details *string,
	metadata map[string]any,
) {
	activity := &Activity{
		Type:      activityType,
		Entity:    entity,
		EntityID:  entityID,
		UserID:    actorID,
		ProjectID: projectID,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}

	if len(metadata) > 0 {
		encoded, err := json.Marshal(metadata)
		if err != nil {
			s.logger.Error("failed to encode activity metadata", "type", activityType, "error", err)
		} else {
			activity.Metadata = datatypes.JSON(encoded)
		}
	}

	err := s.activityRepository.Create(activity)
	metrics.RecordActivity(string(activityType), err)

	if err != nil {
		s.logger.Error("failed to record activity",
			"type", activityType,
			"entity", entity,
			"entityId", entityID,
			"projectId", projectID,
			"error", err)
	}
}

// GetProjectActivities reads the feed newest first. Callers check access.
func (s *ActivityService) GetProjectActivities(
	projectID uuid.UUID,
	request *GetActivitiesRequest,
) (*GetActivitiesResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultActivitiesLimit
	}
	limit = min(limit, maxActivitiesLimit)

	offset := max(request.Offset, 0)

	activities, err := s.activityRepository.GetByProject(projectID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	for _, activity := range activities {
		activity.Message = ActivityMessage(activity.Type, activity.Entity, activity.UserName, activity.Details)
	}

	return &GetActivitiesResponse{
		Activities: activities,
		Limit:      limit,
		Offset:     offset,
	}, nil
}
