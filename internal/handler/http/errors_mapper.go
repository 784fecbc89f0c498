package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-build-keeper/internal/resolver"
	"github.com/MKhiriev/go-build-keeper/internal/service"
	"github.com/MKhiriev/go-build-keeper/internal/store"
	"github.com/MKhiriev/go-build-keeper/models"
)

// errorStatusList is ordered: the first matching target decides the status.
// Client mistakes come before unmet requirements so that a request with both
// an unknown key and a missing credential is reported as 400.
var errorStatusList = []struct {
	target error
	status int
}{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{resolver.ErrUnknownKey, http.StatusBadRequest},
	{resolver.ErrInvalidValue, http.StatusBadRequest},
	{resolver.ErrUnknownVariant, http.StatusBadRequest},

	{resolver.ErrMissingCredential, http.StatusUnprocessableEntity},
	{resolver.ErrMissingSetting, http.StatusUnprocessableEntity},
	{resolver.ErrInconsistentSettings, http.StatusUnprocessableEntity},

	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrPlanNotFound, http.StatusNotFound},
	{store.ErrPlanNotFound, http.StatusNotFound},
	{service.ErrRecordingDisabled, http.StatusConflict},

	{store.ErrPlanAlreadyExists, http.StatusInternalServerError},
	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
	{store.ErrEncodingPlan, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatusList {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse builds the JSON error body. Internal errors are reported by
// status text only so storage details do not leak to callers.
func errorResponse(err error, status int) models.ErrorResponse {
	if status >= http.StatusInternalServerError {
		return models.ErrorResponse{Error: http.StatusText(status)}
	}

	resp := models.ErrorResponse{Error: err.Error()}

	var missingCred *resolver.MissingCredentialError
	if errors.As(err, &missingCred) {
		resp.Missing = appendKeys(resp.Missing, missingCred.Fields)
	}
	var missingSetting *resolver.MissingSettingError
	if errors.As(err, &missingSetting) {
		resp.Missing = appendKeys(resp.Missing, missingSetting.Fields)
	}
	var unknown *resolver.UnknownKeyError
	if errors.As(err, &unknown) {
		resp.Unknown = unknown.Names()
	}

	return resp
}

func appendKeys(dst []string, keys []models.SettingKey) []string {
	for _, k := range keys {
		dst = append(dst, string(k))
	}
	return dst
}

func errInvalidJSON(err error) error {
	return fmt.Errorf("%w: invalid JSON: %w", service.ErrInvalidDataProvided, err)
}
