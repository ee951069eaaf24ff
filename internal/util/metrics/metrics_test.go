package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func Test_Middleware_WhenRouteMatched_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/things/:id", func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})

	before := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/things/:id", "204"))

	for _, id := range []string{"a", "b", "c"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
	}

	after := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/things/:id", "204"))
	assert.Equal(t, before+3, after)
}

func Test_RecordActivity_WithError_CountsFailure(t *testing.T) {
	before := testutil.ToFloat64(activitiesRecorded.WithLabelValues("moved", OutcomeFailure))

	RecordActivity("moved", errors.New("boom"))
	RecordActivity("moved", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(activitiesRecorded.WithLabelValues("moved", OutcomeFailure)))
}

func Test_Handler_ExposesRegisteredSeries(t *testing.T) {
	RecordEmail("queued", nil)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "taskflow_emails_total"))
}
