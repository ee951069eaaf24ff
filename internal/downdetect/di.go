package downdetect

import "taskflow/internal/util/logger"

var downdetectService = &DowndetectService{
	logger.GetLogger(),
}

var downdetectController = &DowndetectController{
	downdetectService,
}

func GetDowndetectService() *DowndetectService {
	return downdetectService
}

func GetDowndetectController() *DowndetectController {
	return downdetectController
}
