package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestProfiling_LabelsRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var route, resource string
	var ok bool
	router := gin.New()
	router.Use(Profiling(DefaultProfilingConfig()))
	router.POST("/api/v1/planning/plans", func(c *gin.Context) {
		route, ok = pprof.Label(c.Request.Context(), ProfilingLabelRoute)
		resource, _ = pprof.Label(c.Request.Context(), ProfilingLabelResource)
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/planning/plans", nil))

	assert.True(t, ok)
	assert.Equal(t, "/api/v1/planning/plans", route)
	assert.Equal(t, "planning", resource)
}

func TestProfiling_SkipsAndDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		cfg  ProfilingConfig
		path string
	}{
		{"skip path", DefaultProfilingConfig(), "/health"},
		{"disabled", ProfilingConfig{Enabled: false}, "/api/v1/menu/costing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ok bool
			router := gin.New()
			router.Use(Profiling(tt.cfg))
			router.GET(tt.path, func(c *gin.Context) {
				_, ok = pprof.Label(c.Request.Context(), ProfilingLabelRoute)
				c.Status(http.StatusOK)
			})
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.False(t, ok)
		})
	}
}

func TestResourceFromRoute(t *testing.T) {
	tests := map[string]string{
		"/api/v1/menu/dishes/:id":       "menu",
		"/api/v2/inventory/items":       "inventory",
		"/api/v1/planning/archive/*key": "planning",
		"/health":                       "health",
		"":                              "unknown",
		"/api/v1/:id":                   "unknown",
	}
	for route, want := range tests {
		assert.Equal(t, want, resourceFromRoute(route), route)
	}
}

func TestIsVersionSegment(t *testing.T) {
	assert.True(t, isVersionSegment("v1"))
	assert.True(t, isVersionSegment("V12"))
	assert.False(t, isVersionSegment("v"))
	assert.False(t, isVersionSegment("vx"))
	assert.False(t, isVersionSegment("menu"))
}
