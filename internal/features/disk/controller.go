package disk

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type DiskController struct {
	diskService *DiskService
}

func (c *DiskController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/disk", c.GetDiskUsage)
}

// GetDiskUsage
// @Summary Get attachment storage disk usage
// @Description Total, used and free space of the volume holding uploads
// @Tags system
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DiskUsage
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /system/disk [get]
func (c *DiskController) GetDiskUsage(ctx *gin.Context) {
	usage, err := c.diskService.GetDiskUsage()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get disk usage"})
		return
	}

	ctx.JSON(http.StatusOK, usage)
}
