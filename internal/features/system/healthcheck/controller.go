package system_healthcheck

import (
	"net/http"

	"taskflow/internal/util/logger"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.CheckHealth)
}

// CheckHealth
// @Summary Check system health
// @Description Database, cache and uploads disk space
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /system/health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	if err := c.healthcheckService.IsHealthy(); err != nil {
		logger.GetLogger().Error("health check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service is unhealthy"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "OK"})
}
