package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	planningapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/planning"
)

// PlanService is the planning application service used by PlanningHandler
type PlanService interface {
	Plan(ctx context.Context, req planningapp.PlanRequest) (*planningapp.PlanResponse, error)
	ArchivePlan(ctx context.Context, req planningapp.PlanRequest) (*planningapp.PlanRecordResponse, error)
	GetPlan(ctx context.Context, planID uuid.UUID) (*planningapp.PlanRecordResponse, error)
	ListPlans(ctx context.Context, filter planningapp.PlanListFilter) ([]planningapp.PlanRecordResponse, error)
	GetPlanDownloadURL(ctx context.Context, planID uuid.UUID) (*planningapp.PlanDownloadResponse, error)
}

// ArchiveReader reads archived plan snapshots back. The in-memory archive
// links its downloads to ServeArchive, which uses it.
type ArchiveReader interface {
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// PlanningHandler handles ingredient planning endpoints
type PlanningHandler struct {
	BaseHandler
	plans   PlanService
	archive ArchiveReader
}

// NewPlanningHandler creates a new PlanningHandler. archive may be nil, in
// which case ServeArchive answers 404.
func NewPlanningHandler(plans PlanService, archive ArchiveReader) *PlanningHandler {
	return &PlanningHandler{plans: plans, archive: archive}
}

// Plan godoc
// @Summary      Compute an ingredient plan
// @Description  Aggregates per-plate demand for the selections, reconciles it against stock
// @Description  and returns the shopping and draw lists. Nothing is written.
// @Tags         planning
// @Accept       json
// @Produce      json
// @Router       /planning/plans [post]
func (h *PlanningHandler) Plan(c *gin.Context) {
	var req planningapp.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	plan, err := h.plans.Plan(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// ArchivePlan godoc
// @Summary      Compute and archive an ingredient plan
// @Tags         planning
// @Accept       json
// @Produce      json
// @Failure      503 {object} dto.Response "Archiving not configured"
// @Router       /planning/plans/archive [post]
func (h *PlanningHandler) ArchivePlan(c *gin.Context) {
	var req planningapp.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	record, err := h.plans.ArchivePlan(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// ListPlans godoc
// @Summary      List archived plans
// @Tags         planning
// @Produce      json
// @Param        event_id query string false "Only plans of this event"
// @Router       /planning/plans [get]
func (h *PlanningHandler) ListPlans(c *gin.Context) {
	var filter planningapp.PlanListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	var ok bool
	if filter.EventID, ok = h.parseUUIDQuery(c, "event_id"); !ok {
		return
	}

	records, err := h.plans.ListPlans(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// GetPlan godoc
// @Summary      Get an archived plan record
// @Tags         planning
// @Produce      json
// @Param        id path string true "Plan ID"
// @Router       /planning/plans/{id} [get]
func (h *PlanningHandler) GetPlan(c *gin.Context) {
	planID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	record, err := h.plans.GetPlan(c.Request.Context(), planID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// GetPlanDownloadURL godoc
// @Summary      Get a time-limited link to an archived plan snapshot
// @Tags         planning
// @Produce      json
// @Param        id path string true "Plan ID"
// @Router       /planning/plans/{id}/download-url [get]
func (h *PlanningHandler) GetPlanDownloadURL(c *gin.Context) {
	planID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	link, err := h.plans.GetPlanDownloadURL(c.Request.Context(), planID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}

// ServeArchive streams an archived plan snapshot by object key
// @Summary      Download an archived plan snapshot
// @Tags         planning
// @Produce      json
// @Param        key path string true "Object key, e.g. plans/2026/10/18/<id>.json"
// @Router       /planning/archive/{key} [get]
func (h *PlanningHandler) ServeArchive(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if h.archive == nil || !strings.HasPrefix(key, "plans/") || strings.Contains(key, "..") {
		h.NotFound(c, "Archived plan not found")
		return
	}

	data, contentType, err := h.archive.Download(c.Request.Context(), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if contentType == "" {
		contentType = "application/json"
	}
	c.Header("Content-Disposition", `attachment; filename="`+key[strings.LastIndex(key, "/")+1:]+`"`)
	c.Data(http.StatusOK, contentType, data)
}
