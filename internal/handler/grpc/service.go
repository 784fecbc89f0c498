// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the resolver service.
const ServiceName = "buildkeeper.v1.Resolver"

// Full method names, as used by clients with grpc.ClientConn.Invoke.
const (
	ResolveMethod = "/" + ServiceName + "/Resolve"
	GetPlanMethod = "/" + ServiceName + "/GetPlan"
)

// ResolverServer is the server API of the resolver service. Messages are
// google.protobuf.Struct values carrying the JSON form of the HTTP API
// payloads, so no generated code is needed.
type ResolverServer interface {
	Resolve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetPlan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ResolverServiceDesc describes the resolver service for grpc.Server.
var ResolverServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ResolverServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Resolve", Handler: resolveHandler},
		{MethodName: "GetPlan", Handler: getPlanHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "buildkeeper/v1/resolver.proto",
}

// RegisterResolverServer registers srv on s.
func RegisterResolverServer(s grpc.ServiceRegistrar, srv ResolverServer) {
	s.RegisterService(&ResolverServiceDesc, srv)
}

func resolveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return unary(srv, ctx, dec, interceptor, ResolveMethod, ResolverServer.Resolve)
}

func getPlanHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return unary(srv, ctx, dec, interceptor, GetPlanMethod, ResolverServer.GetPlan)
}

type structMethod func(ResolverServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor, fullMethod string, call structMethod) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return call(srv.(ResolverServer), ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return call(srv.(ResolverServer), ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
