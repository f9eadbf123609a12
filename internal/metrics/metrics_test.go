package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOperation(t *testing.T) {
	m := New("test")
	m.RecordOperation("content", "create_post", OutcomeOK, 10*time.Millisecond)
	m.RecordOperation("content", "create_post", OutcomeOK, 10*time.Millisecond)
	m.RecordOperation("content", "create_post", OutcomeRejected, 0)
	m.SetPosts(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("content", "create_post", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("content", "create_post", OutcomeRejected)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.PostsTotal))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordOperation("s", "o", OutcomeOK, 0)
		m.SetPosts(1)
		m.SetAccounts(1)
		m.RecordSearch(true)
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("test")
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/p/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p/42", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/p/:id", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}
