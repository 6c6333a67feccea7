package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type selectionInput struct {
	DishID   string `json:"dish_id" binding:"required,uuid"`
	Servings int    `json:"servings" binding:"required,min=1"`
}

type planInput struct {
	Name       string           `json:"name" binding:"max=10"`
	Selections []selectionInput `json:"selections" binding:"required,min=1,dive"`
}

func bindRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.POST("/plans", func(c *gin.Context) {
		var in planInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleBindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func TestHandleBindError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantCode    string
		wantDetails map[string]string
	}{
		{
			name:       "valid",
			body:       `{"selections":[{"dish_id":"6f1c2c4e-8d7a-4b1e-9f3e-2a7d1c0b5e44","servings":40}]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "nested field errors use json paths",
			body:       `{"name":"a very long plan name","selections":[{"dish_id":"nope","servings":0}]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeValidation,
			wantDetails: map[string]string{
				"name":                   "Must be at most 10 characters",
				"selections[0].dish_id":  "Invalid UUID format",
				"selections[0].servings": "This field is required",
			},
		},
		{
			name:        "empty selections",
			body:        `{"selections":[]}`,
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeValidation,
			wantDetails: map[string]string{"selections": "Must contain at least 1 entries"},
		},
		{
			name:       "malformed json",
			body:       `{"selections":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeBadRequest,
		},
		{
			name:       "wrong json type",
			body:       `{"selections":"soup"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeInvalidJSON,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			bindRouter().ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode == "" {
				return
			}
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			got := map[string]string{}
			for _, d := range resp.Error.Details {
				got[d.Field] = d.Message
			}
			for field, msg := range tt.wantDetails {
				assert.Equal(t, msg, got[field], field)
			}
		})
	}
}
