package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	planningapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/planning"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPlanningRouter(plans *mockPlanService, archive ArchiveReader) *gin.Engine {
	h := NewPlanningHandler(plans, archive)
	r := newTestEngine()
	g := r.Group("/planning")
	g.POST("/plans", h.Plan)
	g.GET("/plans", h.ListPlans)
	g.POST("/plans/archive", h.ArchivePlan)
	g.GET("/plans/:id", h.GetPlan)
	g.GET("/plans/:id/download-url", h.GetPlanDownloadURL)
	g.GET("/archive/*key", h.ServeArchive)
	return r
}

func planBody(dishID uuid.UUID, servings int) map[string]any {
	return map[string]any{
		"name":       "Rao wedding",
		"selections": []map[string]any{{"dish_id": dishID, "servings": servings}},
	}
}

func TestPlanningHandler_Plan(t *testing.T) {
	dishID := uuid.New()

	t.Run("returns the shopping and draw lists", func(t *testing.T) {
		plans := new(mockPlanService)
		plans.On("Plan", mock.Anything, mock.MatchedBy(func(req planningapp.PlanRequest) bool {
			return req.Name == "Rao wedding" && req.Selections[0].DishID == dishID && req.Selections[0].Servings == 250
		})).Return(&planningapp.PlanResponse{
			Name:          "Rao wedding",
			TotalServings: 250,
			ShoppingList: planningapp.CategorizedListResponse{
				Groups:         []planningapp.ListGroupResponse{{Category: "dry_goods", Label: "Dry Goods"}},
				ItemCount:      1,
				EstimatedTotal: decimal.RequireFromString("84.00"),
			},
		}, nil)

		w := doRequest(t, setupPlanningRouter(plans, nil), http.MethodPost, "/planning/plans", planBody(dishID, 250), nil)

		require.Equal(t, http.StatusOK, w.Code)
		data := dataMap(t, decodeResponse(t, w))
		assert.Equal(t, float64(250), data["total_servings"])
		shopping := data["shopping_list"].(map[string]any)
		assert.Equal(t, "84", shopping["estimated_total"])
		plans.AssertExpectations(t)
	})

	t.Run("empty selections", func(t *testing.T) {
		plans := new(mockPlanService)
		w := doRequest(t, setupPlanningRouter(plans, nil), http.MethodPost, "/planning/plans", map[string]any{"selections": []any{}}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	})

	t.Run("dish with unknown ingredient", func(t *testing.T) {
		plans := new(mockPlanService)
		plans.On("Plan", mock.Anything, mock.Anything).Return(nil, shared.ErrUnknownInventoryItem)

		w := doRequest(t, setupPlanningRouter(plans, nil), http.MethodPost, "/planning/plans", planBody(dishID, 10), nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeUnknownItem, decodeResponse(t, w).Error.Code)
	})
}

func TestPlanningHandler_ArchivePlan(t *testing.T) {
	dishID := uuid.New()

	t.Run("created", func(t *testing.T) {
		plans := new(mockPlanService)
		planID := uuid.New()
		plans.On("ArchivePlan", mock.Anything, mock.Anything).Return(&planningapp.PlanRecordResponse{
			ID:        planID,
			ObjectKey: "plans/2026/10/18/" + planID.String() + ".json",
		}, nil)

		w := doRequest(t, setupPlanningRouter(plans, nil), http.MethodPost, "/planning/plans/archive", planBody(dishID, 40), nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, planID.String(), dataMap(t, decodeResponse(t, w))["id"])
	})

	t.Run("archive not configured", func(t *testing.T) {
		plans := new(mockPlanService)
		plans.On("ArchivePlan", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("ARCHIVE_UNAVAILABLE", "Plan archiving is not configured"))

		w := doRequest(t, setupPlanningRouter(plans, nil), http.MethodPost, "/planning/plans/archive", planBody(dishID, 40), nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodeArchiveUnavailable, decodeResponse(t, w).Error.Code)
	})
}

func TestPlanningHandler_ReadEndpoints(t *testing.T) {
	planID := uuid.New()
	eventID := uuid.New()
	expires := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

	plans := new(mockPlanService)
	plans.On("ListPlans", mock.Anything, mock.MatchedBy(func(f planningapp.PlanListFilter) bool {
		return f.EventID != nil && *f.EventID == eventID
	})).Return([]planningapp.PlanRecordResponse{{ID: planID}}, nil)
	plans.On("GetPlan", mock.Anything, planID).Return(&planningapp.PlanRecordResponse{ID: planID}, nil)
	plans.On("GetPlanDownloadURL", mock.Anything, planID).Return(&planningapp.PlanDownloadResponse{
		PlanID:    planID,
		URL:       "https://archive.example.com/plans/x.json?sig=1",
		ExpiresAt: expires,
	}, nil)
	r := setupPlanningRouter(plans, nil)

	w := doRequest(t, r, http.MethodGet, "/planning/plans?event_id="+eventID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w).Data, 1)

	w = doRequest(t, r, http.MethodGet, "/planning/plans/"+planID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/planning/plans/"+planID.String()+"/download-url", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, dataMap(t, decodeResponse(t, w))["url"], "sig=1")

	plans.AssertExpectations(t)
}

func TestPlanningHandler_ListPlansEventFilter(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCalled bool
	}{
		{name: "no filter", query: "", wantStatus: http.StatusOK, wantCalled: true},
		{name: "malformed event id", query: "?event_id=12345", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans := new(mockPlanService)
			plans.On("ListPlans", mock.Anything, mock.MatchedBy(func(f planningapp.PlanListFilter) bool {
				return f.EventID == nil
			})).Return([]planningapp.PlanRecordResponse{}, nil).Maybe()

			w := doRequest(t, setupPlanningRouter(plans, nil), http.MethodGet, "/planning/plans"+tt.query, nil, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCalled {
				plans.AssertCalled(t, "ListPlans", mock.Anything, mock.Anything)
			} else {
				plans.AssertNotCalled(t, "ListPlans", mock.Anything, mock.Anything)
				assert.Equal(t, dto.ErrCodeValidationFormat, decodeResponse(t, w).Error.Code)
			}
		})
	}
}

func TestPlanningHandler_ServeArchive(t *testing.T) {
	key := "plans/2026/10/18/3f0c.json"

	tests := []struct {
		name       string
		path       string
		archive    func() ArchiveReader
		wantStatus int
		wantBody   string
	}{
		{
			name: "streams the snapshot",
			path: "/planning/archive/" + key,
			archive: func() ArchiveReader {
				a := new(mockArchiveReader)
				a.On("Download", mock.Anything, key).Return([]byte(`{"name":"Rao wedding"}`), "application/json", nil)
				return a
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"name":"Rao wedding"}`,
		},
		{
			name: "missing object",
			path: "/planning/archive/" + key,
			archive: func() ArchiveReader {
				a := new(mockArchiveReader)
				a.On("Download", mock.Anything, key).Return(nil, "", shared.ErrNotFound)
				return a
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "storage failure",
			path: "/planning/archive/" + key,
			archive: func() ArchiveReader {
				a := new(mockArchiveReader)
				a.On("Download", mock.Anything, key).Return(nil, "", errors.New("s3: access denied"))
				return a
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "outside the plans prefix",
			path:       "/planning/archive/config/secrets.json",
			archive:    func() ArchiveReader { return new(mockArchiveReader) },
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "traversal",
			path:       "/planning/archive/plans/..%2F..%2Fetc",
			archive:    func() ArchiveReader { return new(mockArchiveReader) },
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no archive configured",
			path:       "/planning/archive/" + key,
			archive:    func() ArchiveReader { return nil },
			wantStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, setupPlanningRouter(new(mockPlanService), tt.archive()), http.MethodGet, tt.path, nil, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
				assert.Equal(t, `attachment; filename="3f0c.json"`, w.Header().Get("Content-Disposition"))
			}
		})
	}
}
