package downdetect

import (
	"net/http"
	"testing"

	test_utils "taskflow/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func Test_IsAvailable_WhenDatabaseAndCacheAreUp_ReturnsOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	GetDowndetectController().RegisterRoutes(router.Group("/api/v1"))

	test_utils.MakeGetRequest(t, router, "/api/v1/downdetect/is-available", "", http.StatusOK)
}

func Test_IsAvailable_WhenCalledDirectly_ReturnsNoError(t *testing.T) {
	assert.NoError(t, GetDowndetectService().IsAvailable())
}
