package handler

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/dto"
)

// HealthCheck reports whether one dependency is usable
type HealthCheck func(ctx context.Context) error

// SystemHandler serves health and reference data endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	startTime time.Time
	checks    map[string]HealthCheck
	table     *valueobject.ConversionTable
	timeout   time.Duration
}

// NewSystemHandler creates a new SystemHandler. checks are run by Health,
// keyed by dependency name ("database", "redis").
func NewSystemHandler(name, version string, table *valueobject.ConversionTable, checks map[string]HealthCheck) *SystemHandler {
	if table == nil {
		table = valueobject.DefaultConversionTable()
	}
	return &SystemHandler{
		name:      name,
		version:   version,
		startTime: time.Now(),
		checks:    checks,
		table:     table,
		timeout:   2 * time.Second,
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string            `json:"status"`
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	GoVersion string            `json:"go_version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`
}

// Health godoc
// @Summary      Liveness and dependency health
// @Description  Returns 503 when any dependency check fails.
// @Tags         system
// @Produce      json
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "ok",
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    make(map[string]string, len(h.checks)),
	}
	status := http.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			resp.Checks[name] = "unavailable: " + err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	c.JSON(status, dto.Response{Success: status == http.StatusOK, Data: resp})
}

// UnitResponse describes one unit of measurement
type UnitResponse struct {
	Code       string   `json:"code"`
	Family     string   `json:"family"`
	ConvertsTo []string `json:"converts_to"`
}

// ListUnits godoc
// @Summary      List units of measurement
// @Description  Each unit lists the units it converts to. Units of different families never convert.
// @Tags         system
// @Produce      json
// @Router       /units [get]
func (h *SystemHandler) ListUnits(c *gin.Context) {
	units := valueobject.AllUnits()
	out := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		targets := []string{}
		for _, other := range h.table.ConvertibleUnits(u) {
			if other != u {
				targets = append(targets, other.String())
			}
		}
		sort.Strings(targets)
		out = append(out, UnitResponse{
			Code:       u.String(),
			Family:     u.Family().String(),
			ConvertsTo: targets,
		})
	}
	h.Success(c, out)
}
