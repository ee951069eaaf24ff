package disk

import (
	"taskflow/internal/util/logger"
)

var diskService = &DiskService{
	logger.GetLogger(),
}
var diskController = &DiskController{
	diskService,
}

func GetDiskService() *DiskService {
	return diskService
}

func GetDiskController() *DiskController {
	return diskController
}
