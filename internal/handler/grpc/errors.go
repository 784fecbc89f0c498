package grpc

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/resolver"
	"github.com/MKhiriev/go-build-keeper/internal/service"
	"github.com/MKhiriev/go-build-keeper/internal/store"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errorCodeList mirrors the HTTP status mapping: the first match wins.
var errorCodeList = []struct {
	target error
	code   codes.Code
}{
	{service.ErrInvalidDataProvided, codes.InvalidArgument},
	{resolver.ErrUnknownKey, codes.InvalidArgument},
	{resolver.ErrInvalidValue, codes.InvalidArgument},
	{resolver.ErrUnknownVariant, codes.InvalidArgument},

	{resolver.ErrMissingCredential, codes.FailedPrecondition},
	{resolver.ErrMissingSetting, codes.FailedPrecondition},
	{resolver.ErrInconsistentSettings, codes.FailedPrecondition},

	{service.ErrTokenIsExpiredOrInvalid, codes.Unauthenticated},
	{service.ErrPlanNotFound, codes.NotFound},
	{store.ErrPlanNotFound, codes.NotFound},
	{service.ErrRecordingDisabled, codes.FailedPrecondition},
}

func codeFromError(err error) codes.Code {
	for _, e := range errorCodeList {
		if errors.Is(err, e.target) {
			return e.code
		}
	}
	return codes.Internal
}

// toStatus converts err into a gRPC status error. Internal errors are logged
// and reported without details.
func toStatus(ctx context.Context, err error) error {
	code := codeFromError(err)
	if code == codes.Internal {
		logger.FromContext(ctx).Err(err).Msg("unexpected error occurred")
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}
