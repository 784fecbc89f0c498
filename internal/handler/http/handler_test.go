package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/mock"
	"github.com/MKhiriev/go-build-keeper/internal/service"
	"github.com/MKhiriev/go-build-keeper/internal/utils"
	"github.com/MKhiriev/go-build-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testToken = "test-token"

type testMocks struct {
	resolve *mock.MockResolveService
	plans   *mock.MockPlanService
	auth    *mock.MockAuthService
	appInfo *mock.MockAppInfoService
}

func newTestHandler(t *testing.T, hashKey string) (*Handler, testMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := testMocks{
		resolve: mock.NewMockResolveService(ctrl),
		plans:   mock.NewMockPlanService(ctrl),
		auth:    mock.NewMockAuthService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}

	svcs := &service.Services{
		ResolveService: m.resolve,
		PlanService:    m.plans,
		AuthService:    m.auth,
		AppInfoService: m.appInfo,
	}

	return NewHandler(svcs, hashKey, logger.Nop()), m
}

// expectAuth makes the auth mock accept testToken for subject.
func (m testMocks) expectAuth(subject string) {
	m.auth.EXPECT().
		ParseToken(gomock.Any(), testToken).
		Return(models.Token{RegisteredClaims: jwt.RegisteredClaims{Subject: subject}}, nil).
		AnyTimes()
}

func doRequest(t *testing.T, h http.Handler, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func bearer() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testToken}
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestNewHandler(t *testing.T) {
	svcs := &service.Services{}
	h := NewHandler(svcs, "", logger.Nop())

	require.NotNil(t, h)
	assert.Same(t, svcs, h.services)
	assert.Nil(t, h.signer)

	h = NewHandler(svcs, "key", logger.Nop())
	require.NotNil(t, h.signer)
	assert.Equal(t, utils.HashString("body", "key"), h.signer.Sign([]byte("body")))
}
