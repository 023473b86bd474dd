package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "shortener.v1.Registry"

	ResolveMethod     = "/" + ServiceName + "/Resolve"
	GlobalStatsMethod = "/" + ServiceName + "/GlobalStats"
)

// RegistryServer is the server API of shortener.v1.Registry. Messages are
// google.protobuf.Struct so no generated code is needed.
type RegistryServer interface {
	// Resolve takes {namespace, code, user_agent} and answers {original_url}.
	Resolve(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// GlobalStats answers {total_users, total_links}. Admins only.
	GlobalStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegistryServiceDesc describes shortener.v1.Registry for grpc.Server.
var RegistryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Resolve", Handler: resolveHandler},
		{MethodName: "GlobalStats", Handler: globalStatsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shortener/v1/registry.proto",
}

func RegisterRegistryServer(s grpc.ServiceRegistrar, srv RegistryServer) {
	s.RegisterService(&RegistryServiceDesc, srv)
}

func resolveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServer).Resolve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ResolveMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RegistryServer).Resolve(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func globalStatsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServer).GlobalStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GlobalStatsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RegistryServer).GlobalStats(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// RegistryClient is the client API of shortener.v1.Registry.
type RegistryClient struct {
	cc grpc.ClientConnInterface
}

func NewRegistryClient(cc grpc.ClientConnInterface) *RegistryClient {
	return &RegistryClient{cc: cc}
}

func (c *RegistryClient) Resolve(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ResolveMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RegistryClient) GlobalStats(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GlobalStatsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
