package intercepters

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// WithTimeout bounds every call to d. A shorter client deadline is kept.
func WithTimeout(d time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return handler(ctx, req)
	}
}
