package system_healthcheck

import (
	"taskflow/internal/downdetect"
	"taskflow/internal/features/disk"
)

var healthcheckService = &HealthcheckService{
	disk.GetDiskService(),
	downdetect.GetDowndetectService(),
}
var healthcheckController = &HealthcheckController{
	healthcheckService,
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
