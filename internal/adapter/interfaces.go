// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer clients for a remote build-keeper
// server.
//
// The primary abstraction is [ServerAdapter], which decouples the command
// line client from the underlying protocol. Two implementations ship:
// HTTP/REST ([NewHTTPServerAdapter]) and gRPC ([NewGRPCServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes and
// gRPC status codes alike, so callers can use [errors.Is] without caring
// about the transport (e.g. [ErrUnprocessable] for unmet variant
// requirements, [ErrUnauthorized] for a rejected token).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-build-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// build-keeper server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every request.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter.
	Token() string

	// Resolve asks the server to resolve req. Failed resolutions are returned
	// as *RemoteError values listing the missing and unknown keys.
	Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResult, error)

	// GetPlan fetches one recorded plan.
	GetPlan(ctx context.Context, id string) (models.BuildPlan, error)

	// ListPlans lists recorded plans, newest first.
	ListPlans(ctx context.Context, filter models.PlanFilter) ([]models.BuildPlan, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)

	// Close releases transport resources.
	Close() error
}
