package email

import (
	"taskflow/internal/config"
	cache_utils "taskflow/internal/util/cache"
	"taskflow/internal/util/logger"
)

var queueService = cache_utils.NewValkeyQueueService()

var emailService = &EmailService{
	queueService: queueService,
	queueKey:     emailOutboxQueueKey,
	from:         config.GetEnv().EmailFrom,
	logger:       logger.GetLogger(),
}

var emailWorkerService = &EmailWorkerService{
	queueService: queueService,
	queueKey:     emailOutboxQueueKey,
	sender:       NewLoggingSender(logger.GetLogger()),
	logger:       logger.GetLogger(),
}

func GetEmailService() *EmailService {
	return emailService
}

func GetEmailWorkerService() *EmailWorkerService {
	return emailWorkerService
}
