package intercepters

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/middleware"
)

// WithJWT authenticates the bearer token in the "authorization" metadata
// and stores the claims in the context. Calls without a token pass through
// anonymously; methods that need a caller check the claims themselves.
func WithJWT(auth service.AuthIface) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 {
			return handler(ctx, req)
		}

		token, ok := middleware.BearerToken(values[0])
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "malformed authorization metadata")
		}

		claims, err := auth.Authenticate(ctx, token)
		if errors.Is(err, service.ErrUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		if err != nil {
			return nil, status.Error(codes.Internal, "cannot authenticate")
		}

		return handler(service.WithClaims(ctx, claims), req)
	}
}
