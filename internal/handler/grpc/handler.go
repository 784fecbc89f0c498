package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/service"
	"github.com/MKhiriev/go-build-keeper/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/structpb"
)

// Handler is the root gRPC transport handler.
//
// It implements [ResolverServer] on top of the service layer. A handler
// instance is created once at startup and shared by the gRPC server.
type Handler struct {
	services *service.Services

	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
}

// Register adds the resolver and the standard health service to s and marks
// both as serving.
func (h *Handler) Register(s *grpc.Server) {
	RegisterResolverServer(s, h)
	grpc_health_v1.RegisterHealthServer(s, h.health)

	h.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
}

// Shutdown flips every health status to NOT_SERVING so that load balancers
// drain the instance before the server stops.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// ServerOptions returns the interceptors every request passes through.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.withTraceID, h.withLogging, h.auth),
	}
}

func (h *Handler) Resolve(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req models.ResolveRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, toStatus(ctx, err)
	}

	result, err := h.services.ResolveService.Resolve(ctx, req)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	out, err := toStruct(result)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return out, nil
}

func (h *Handler) GetPlan(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id := in.GetFields()["id"].GetStringValue()

	plan, err := h.services.PlanService.GetPlan(ctx, id)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	out, err := toStruct(plan)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return out, nil
}

// fromStruct decodes s into v through its JSON form.
func fromStruct(s *structpb.Struct, v any) error {
	raw, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
	}
	return nil
}

// toStruct encodes v into a Struct through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error encoding response: %w", err)
	}

	out := new(structpb.Struct)
	if err := out.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("error encoding response: %w", err)
	}
	return out, nil
}
