// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-build-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-build-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

type grpcServerAdapter struct {
	conn *grpc.ClientConn

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewGRPCServerAdapter dials adapterCfg.GRPCAddress and returns a gRPC
// implementation of [ServerAdapter]. Plan listing and version lookup are only
// served over HTTP and return [ErrNotSupported].
func NewGRPCServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger, opts ...grpc.DialOption) (ServerAdapter, error) {
	target := strings.TrimSpace(adapterCfg.GRPCAddress)
	if target == "" {
		return nil, fmt.Errorf("invalid adapter grpc address: empty address")
	}

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating grpc client: %w", err)
	}

	a := &grpcServerAdapter{conn: conn, logger: logger}
	a.SetToken(adapterCfg.Token)

	return a, nil
}

func (g *grpcServerAdapter) SetToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = strings.TrimSpace(token)
}

func (g *grpcServerAdapter) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

func (g *grpcServerAdapter) Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResult, error) {
	var result models.ResolveResult
	if err := g.invoke(ctx, myGRPC.ResolveMethod, req, &result); err != nil {
		return models.ResolveResult{}, err
	}
	return result, nil
}

func (g *grpcServerAdapter) GetPlan(ctx context.Context, id string) (models.BuildPlan, error) {
	var plan models.BuildPlan
	if err := g.invoke(ctx, myGRPC.GetPlanMethod, map[string]string{"id": id}, &plan); err != nil {
		return models.BuildPlan{}, err
	}
	return plan, nil
}

func (g *grpcServerAdapter) ListPlans(context.Context, models.PlanFilter) ([]models.BuildPlan, error) {
	return nil, ErrNotSupported
}

func (g *grpcServerAdapter) Version(context.Context) (string, error) {
	return "", ErrNotSupported
}

func (g *grpcServerAdapter) Close() error {
	return g.conn.Close()
}

// invoke sends in as a Struct to method and decodes the Struct reply into out.
func (g *grpcServerAdapter) invoke(ctx context.Context, method string, in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("grpc marshal request: %w", err)
	}
	req := new(structpb.Struct)
	if err = req.UnmarshalJSON(raw); err != nil {
		return fmt.Errorf("grpc marshal request: %w", err)
	}

	if token := g.Token(); token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	}

	resp := new(structpb.Struct)
	if err = g.conn.Invoke(ctx, method, req, resp); err != nil {
		return mapGRPCError(err)
	}

	raw, err = resp.MarshalJSON()
	if err != nil {
		return fmt.Errorf("grpc unmarshal response: %w", err)
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("grpc unmarshal response: %w", err)
	}

	g.logger.Debug().Str("method", method).Msg("grpc call done")
	return nil
}
