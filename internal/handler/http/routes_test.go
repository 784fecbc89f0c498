package http

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestInit_PublicRoutes(t *testing.T) {
	h, m := newTestHandler(t, "")
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rr := doRequest(t, h.Init(), http.MethodGet, "/api/version/", nil, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.2.3", rr.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
}

func TestInit_VersionAsJSON(t *testing.T) {
	h, m := newTestHandler(t, "")
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rr := doRequest(t, h.Init(), http.MethodGet, "/api/version/", nil, map[string]string{"Accept": "application/json"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.2.3"}`, rr.Body.String())
}

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"resolve", http.MethodPost, "/api/resolve"},
		{"list plans", http.MethodGet, "/api/plans"},
		{"get plan", http.MethodGet, "/api/plans/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t, "")

			rr := doRequest(t, h.Init(), tt.method, tt.path, nil, nil)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Contains(t, rr.Body.String(), ErrEmptyAuthorizationHeader.Error())
		})
	}
}

func TestInit_UnknownRoute_Returns404(t *testing.T) {
	h, _ := newTestHandler(t, "")

	rr := doRequest(t, h.Init(), http.MethodGet, "/api/nope", nil, nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInit_WrongMethod_ListsAllowedMethods(t *testing.T) {
	tests := []struct {
		method    string
		path      string
		wantAllow string
	}{
		{http.MethodDelete, "/api/variants", "GET"},
		{http.MethodGet, "/api/resolve", "POST"},
		{http.MethodPut, "/api/plans/abc", "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			h, _ := newTestHandler(t, "")

			rr := doRequest(t, h.Init(), tt.method, tt.path, nil, nil)

			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Allow"))
			assert.JSONEq(t, `{"error":"Method Not Allowed"}`, rr.Body.String())
		})
	}
}

func TestInit_TraceIDHeader(t *testing.T) {
	h, _ := newTestHandler(t, "")
	router := h.Init()

	rr := doRequest(t, router, http.MethodGet, "/api/nope", nil, nil)
	_, err := uuid.Parse(rr.Header().Get(traceIDHeader))
	assert.NoError(t, err)

	rr = doRequest(t, router, http.MethodGet, "/api/nope", nil, map[string]string{traceIDHeader: "ci-run-42"})
	assert.Equal(t, "ci-run-42", rr.Header().Get(traceIDHeader))
}
