package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/service"
	"github.com/MKhiriev/go-build-keeper/internal/utils"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	authorizationKey = "authorization"
	traceIDKey       = "x-trace-id"
)

var (
	errMissingAuthorization = errors.New("missing `authorization` metadata")
	errInvalidAuthorization = errors.New("invalid `authorization` metadata")
)

// withTraceID stores a request-scoped logger carrying trace_id in the
// context. The id comes from the x-trace-id metadata key or is generated.
func (h *Handler) withTraceID(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := firstMetadata(ctx, traceIDKey)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	l := h.logger.WithTraceID(traceID)

	_ = grpc.SetHeader(ctx, metadata.Pairs(traceIDKey, traceID))
	return handler(l.WithContext(ctx), req)
}

func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	logger.FromContext(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

// auth validates the bearer token from the authorization metadata and stores
// its subject as the caller. Health checks are not authenticated.
func (h *Handler) auth(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if strings.HasPrefix(info.FullMethod, "/"+grpc_health_v1.Health_ServiceDesc.ServiceName+"/") {
		return handler(ctx, req)
	}

	log := logger.FromContext(ctx)

	header := firstMetadata(ctx, authorizationKey)
	if header == "" {
		log.Err(errMissingAuthorization).Send()
		return nil, status.Error(codes.Unauthenticated, errMissingAuthorization.Error())
	}

	tokenString, err := utils.ParseBearerToken(header)
	if err != nil {
		log.Err(err).Send()
		return nil, status.Error(codes.Unauthenticated, errInvalidAuthorization.Error())
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		log.Err(err).Msg("token rejected")
		return nil, status.Error(codes.Unauthenticated, service.ErrTokenIsExpiredOrInvalid.Error())
	}

	return handler(utils.WithCaller(ctx, token.Caller()), req)
}

func firstMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
