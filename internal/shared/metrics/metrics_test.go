package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramIsCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	assert.Equal(t, []uint64{1, 1}, snap.counts)
	assert.Equal(t, uint64(3), snap.count)
	assert.Equal(t, float64(555), snap.sum)

	var buf bytes.Buffer
	writeHistogram(&buf, "h", "test", snap)
	assert.Contains(t, buf.String(), `h_bucket{le="10"} 1`)
	assert.Contains(t, buf.String(), `h_bucket{le="100"} 2`)
	assert.Contains(t, buf.String(), `h_bucket{le="+Inf"} 3`)
}

func TestRenderOutput(t *testing.T) {
	IncRenderStarted()
	IncRenderCompleted()
	IncPreviewCache(true)
	ObserveRenderDurationMs(7)

	out := Render()
	assert.Contains(t, out, "# TYPE cv_render_started_total counter")
	assert.Contains(t, out, "# TYPE cv_render_duration_ms histogram")
	assert.Contains(t, out, `cv_render_duration_ms_bucket{le="+Inf"}`)
	assert.NotContains(t, out, "analysis")
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, w.Body.String(), "cv_render_failed_total")
}
