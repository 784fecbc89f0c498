package http

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-build-keeper/internal/service"
	"github.com/MKhiriev/go-build-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testPlan(id string) models.BuildPlan {
	return models.BuildPlan{
		ID:      id,
		Variant: models.VariantRelease,
		Settings: map[models.SettingKey]any{
			models.KeyApplicationID: "com.example.app",
			models.KeyKeyPassword:   models.RedactedValue,
		},
		Origins:     map[models.SettingKey]string{models.KeyApplicationID: "build.yaml"},
		RequestedBy: "ci-job",
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetPlan(t *testing.T) {
	h, m := newTestHandler(t, "")
	m.expectAuth("ci-job")
	m.plans.EXPECT().GetPlan(gomock.Any(), "plan-1").Return(testPlan("plan-1"), nil)

	rr := doRequest(t, h.Init(), http.MethodGet, "/api/plans/plan-1", nil, bearer())

	require.Equal(t, http.StatusOK, rr.Code)
	plan := decodeBody[models.BuildPlan](t, rr)
	assert.Equal(t, "plan-1", plan.ID)
	assert.Equal(t, models.RedactedValue, plan.Settings[models.KeyKeyPassword])
}

func TestGetPlan_NotFound(t *testing.T) {
	h, m := newTestHandler(t, "")
	m.expectAuth("ci-job")
	m.plans.EXPECT().GetPlan(gomock.Any(), "missing").Return(models.BuildPlan{}, fmt.Errorf("%w: missing", service.ErrPlanNotFound))

	rr := doRequest(t, h.Init(), http.MethodGet, "/api/plans/missing", nil, bearer())

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListPlans(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantFilter *models.PlanFilter
		result     []models.BuildPlan
		wantStatus int
		wantLen    int
	}{
		{
			name:       "no filter",
			query:      "",
			wantFilter: &models.PlanFilter{},
			result:     []models.BuildPlan{testPlan("a"), testPlan("b")},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
		{
			name:       "variant and limit",
			query:      "?variant=release&limit=5",
			wantFilter: &models.PlanFilter{Variant: "release", Limit: 5},
			result:     []models.BuildPlan{testPlan("a")},
			wantStatus: http.StatusOK,
			wantLen:    1,
		},
		{
			name:       "nil result is an empty array",
			query:      "?variant=debug",
			wantFilter: &models.PlanFilter{Variant: "debug"},
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:       "bad limit",
			query:      "?limit=-1",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t, "")
			m.expectAuth("ci-job")
			if tt.wantFilter != nil {
				m.plans.EXPECT().ListPlans(gomock.Any(), *tt.wantFilter).Return(tt.result, nil)
			}

			rr := doRequest(t, h.Init(), http.MethodGet, "/api/plans"+tt.query, nil, bearer())

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Len(t, decodeBody[[]models.BuildPlan](t, rr), tt.wantLen)
				assert.NotEqual(t, "null", rr.Body.String())
			}
		})
	}
}
