package activities

import (
	"taskflow/internal/util/logger"
)

var activityRepository = &ActivityRepository{}
var activityService = &ActivityService{
	activityRepository: activityRepository,
	logger:             logger.GetLogger(),
}

func GetActivityService() *ActivityService {
	return activityService
}
