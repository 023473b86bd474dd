// Package grpc exposes the redirect resolver and the global statistics over
// gRPC, next to the standard health service.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/intercepters"
)

// callTimeout bounds each unary call, auth lookup included.
const callTimeout = 3 * time.Second

// Server wraps the gRPC server and dependencies.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	port       int
	logger     *zap.Logger
}

// New creates a gRPC server with the registry and health services
// registered.
func New(logger *zap.Logger, port int, resolver service.ResolverIface, analytics service.AnalyticsIface, auth service.AuthIface) *Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			intercepters.WithTimeout(callTimeout),
			intercepters.WithRealIP,
			intercepters.WithLogging(logger),
			intercepters.WithJWT(auth),
		),
	)

	RegisterRegistryServer(s, &RegistryService{
		Resolver:  resolver,
		Analytics: analytics,
		Logger:    logger,
	})

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return &Server{
		grpcServer: s,
		health:     hs,
		port:       port,
		logger:     logger,
	}
}

// Start listens on the configured port and serves until stopped.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		s.logger.Error("gRPC server failed to listen", zap.Error(err))
		return err
	}

	s.logger.Info("gRPC server listening", zap.Int("port", s.port))
	return s.Serve(lis)
}

// Serve serves on an existing listener.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// GracefulStop reports NOT_SERVING to health checks and drains in-flight
// calls.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

// RegistryService implements RegistryServer on top of the service layer.
type RegistryService struct {
	Resolver  service.ResolverIface
	Analytics service.AnalyticsIface
	Logger    *zap.Logger
}

func (r *RegistryService) Resolve(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	namespace := fields["namespace"].GetStringValue()
	code := fields["code"].GetStringValue()
	if code == "" {
		return nil, status.Error(codes.InvalidArgument, "code is required")
	}

	target, err := r.Resolver.Resolve(ctx, service.NormalizeLabel(namespace), code, service.Visit{
		IP:        intercepters.RealIP(ctx),
		UserAgent: fields["user_agent"].GetStringValue(),
	})
	if err != nil {
		return nil, r.statusOf(err)
	}

	return structpb.NewStruct(map[string]any{"original_url": target})
}

func (r *RegistryService) GlobalStats(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	claims, ok := service.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "bearer token required")
	}
	if !claims.Admin {
		return nil, status.Error(codes.PermissionDenied, "admin privilege required")
	}

	stats, err := r.Analytics.GlobalStats(ctx)
	if err != nil {
		return nil, r.statusOf(err)
	}

	return structpb.NewStruct(map[string]any{
		"total_users": stats.Users,
		"total_links": stats.Links,
	})
}

// statusOf maps service errors onto gRPC codes.
func (r *RegistryService) statusOf(err error) error {
	if ve, ok := service.IsValidation(err); ok {
		return status.Error(codes.InvalidArgument, ve.Error())
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, service.ErrAliasTaken), errors.Is(err, service.ErrLabelTaken):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, service.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthenticated")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		r.Logger.Error("gRPC call failed", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}
