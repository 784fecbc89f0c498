package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-build-keeper/internal/resolver"
	"github.com/MKhiriev/go-build-keeper/internal/service"
	"github.com/MKhiriev/go-build-keeper/internal/store"
	"github.com/MKhiriev/go-build-keeper/internal/utils"
	"github.com/MKhiriev/go-build-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestResolve_Success(t *testing.T) {
	h, m := newTestHandler(t, "")
	m.expectAuth("ci-job")

	req := models.ResolveRequest{
		Variant: models.VariantDebug,
		Fragments: []models.FragmentInput{
			{Name: "defaults", Values: map[string]any{"applicationId": "com.example.app", "minSdk": 24}},
		},
		Record: true,
	}

	m.resolve.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, got models.ResolveRequest) (models.ResolveResult, error) {
			caller, ok := utils.GetCallerFromContext(ctx)
			assert.True(t, ok)
			assert.Equal(t, "ci-job", caller)

			assert.Equal(t, models.VariantDebug, got.Variant)
			assert.True(t, got.Record)
			require.Len(t, got.Fragments, 1)
			assert.Equal(t, "com.example.app", got.Fragments[0].Values["applicationId"])

			return models.ResolveResult{
				PlanID:   "plan-1",
				Variant:  models.VariantDebug,
				Settings: map[models.SettingKey]any{models.KeyApplicationID: "com.example.app"},
				Origins:  map[models.SettingKey]string{models.KeyApplicationID: "defaults"},
			}, nil
		})

	rr := doRequest(t, h.Init(), http.MethodPost, "/api/resolve", req, bearer())

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	result := decodeBody[models.ResolveResult](t, rr)
	assert.Equal(t, "plan-1", result.PlanID)
	assert.Equal(t, "defaults", result.Origins[models.KeyApplicationID])
}

func TestResolve_InvalidJSON(t *testing.T) {
	h, m := newTestHandler(t, "")
	m.expectAuth("ci-job")

	rr := doRequest(t, h.Init(), http.MethodPost, "/api/resolve", "{not json", bearer())

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody[models.ErrorResponse](t, rr)
	assert.Contains(t, body.Error, "invalid JSON")
}

func TestResolve_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMissing []string
		wantUnknown []string
		wantMessage string
	}{
		{
			name:        "missing credential",
			err:         &resolver.MissingCredentialError{Variant: "release", Fields: models.SigningKeys},
			wantStatus:  http.StatusUnprocessableEntity,
			wantMissing: []string{"keyAlias", "keyPassword", "storeFile", "storePassword"},
		},
		{
			name: "missing credential and setting",
			err: errors.Join(
				&resolver.MissingSettingError{Variant: "release", Fields: []models.SettingKey{models.KeyVersionCode}},
				&resolver.MissingCredentialError{Variant: "release", Fields: []models.SettingKey{models.KeyStorePassword}},
			),
			wantStatus:  http.StatusUnprocessableEntity,
			wantMissing: []string{"storePassword", "versionCode"},
		},
		{
			name:        "unknown key",
			err:         &resolver.UnknownKeyError{Keys: []resolver.UnknownKey{{Fragment: "local", Key: "signingPassword"}}},
			wantStatus:  http.StatusBadRequest,
			wantUnknown: []string{"signingPassword"},
		},
		{
			name: "unknown key wins over missing credential",
			err: errors.Join(
				&resolver.UnknownKeyError{Keys: []resolver.UnknownKey{{Fragment: "local", Key: "typo"}}},
				&resolver.MissingCredentialError{Variant: "release", Fields: []models.SettingKey{models.KeyKeyAlias}},
			),
			wantStatus:  http.StatusBadRequest,
			wantMissing: []string{"keyAlias"},
			wantUnknown: []string{"typo"},
		},
		{
			name:       "invalid value",
			err:        &resolver.InvalidValueError{Fragment: "request[0]", Key: models.KeyMinSdk, Want: models.KindInt, Raw: "abc"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown variant",
			err:        fmt.Errorf("%w: %q", resolver.ErrUnknownVariant, "beta"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "inconsistent settings",
			err:        &resolver.InconsistentSettingsError{Problems: []string{"minSdk 30 exceeds targetSdk 29"}},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "recording disabled",
			err:        service.ErrRecordingDisabled,
			wantStatus: http.StatusConflict,
		},
		{
			name:        "storage failure hides details",
			err:         fmt.Errorf("%w: connection refused on 10.0.0.5", store.ErrExecutingStatement),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t, "")
			m.expectAuth("ci-job")
			m.resolve.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(models.ResolveResult{}, tt.err)

			rr := doRequest(t, h.Init(), http.MethodPost, "/api/resolve", models.ResolveRequest{Variant: "release"}, bearer())

			require.Equal(t, tt.wantStatus, rr.Code)
			body := decodeBody[models.ErrorResponse](t, rr)
			assert.ElementsMatch(t, tt.wantMissing, body.Missing)
			assert.ElementsMatch(t, tt.wantUnknown, body.Unknown)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body.Error)
			} else {
				assert.Equal(t, tt.err.Error(), body.Error)
			}
		})
	}
}

func TestResolve_InvalidToken(t *testing.T) {
	h, m := newTestHandler(t, "")
	m.auth.EXPECT().ParseToken(gomock.Any(), "bad").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	rr := doRequest(t, h.Init(), http.MethodPost, "/api/resolve", models.ResolveRequest{}, map[string]string{"Authorization": "Bearer bad"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), service.ErrTokenIsExpiredOrInvalid.Error())
}

func TestResolve_MalformedAuthorizationHeader(t *testing.T) {
	h, _ := newTestHandler(t, "")

	rr := doRequest(t, h.Init(), http.MethodPost, "/api/resolve", models.ResolveRequest{}, map[string]string{"Authorization": "Basic dXNlcjpwYXNz"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), ErrInvalidAuthorizationHeader.Error())
}

func TestListVariants(t *testing.T) {
	h, m := newTestHandler(t, "")
	m.resolve.EXPECT().Variants(gomock.Any()).Return(models.BuiltinVariants())

	rr := doRequest(t, h.Init(), http.MethodGet, "/api/variants", nil, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	variants := decodeBody[[]models.Variant](t, rr)
	require.Len(t, variants, 3)
	assert.Equal(t, models.VariantRelease, variants[2].Name)
	assert.True(t, variants[2].RequiresSigning)
}
