package intercepters

import (
	"context"
	"net"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

type contextKey string

const realIPKey contextKey = "real-ip"

// WithRealIP stores the client address in the context: the x-real-ip
// metadata when a proxy set it, otherwise the peer address.
func WithRealIP(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	var ip string

	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ips := md.Get("x-real-ip"); len(ips) > 0 {
			ip = strings.TrimSpace(ips[0])
		}
	}
	if ip == "" {
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			ip = p.Addr.String()
			if host, _, err := net.SplitHostPort(ip); err == nil {
				ip = host
			}
		}
	}

	if ip != "" {
		ctx = context.WithValue(ctx, realIPKey, ip)
	}
	return handler(ctx, req)
}

// RealIP returns the address stored by WithRealIP.
func RealIP(ctx context.Context) string {
	ip, _ := ctx.Value(realIPKey).(string)
	return ip
}
