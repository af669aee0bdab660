package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})
	return router
}

func TestRequestIDKeepsInbound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newRequestIDRouter().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestIDReplacesInvalid(t *testing.T) {
	for _, inbound := range []string{"", "has space", strings.Repeat("x", maxRequestIDLength+1)} {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		if inbound != "" {
			req.Header.Set(RequestIDHeader, inbound)
		}
		w := httptest.NewRecorder()
		newRequestIDRouter().ServeHTTP(w, req)

		_, err := uuid.Parse(w.Body.String())
		require.NoError(t, err, "inbound %q", inbound)
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	}
}
