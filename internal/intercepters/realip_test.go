package intercepters_test

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"

	"github.com/atinyakov/shortlink-registry/internal/intercepters"
)

func TestWithRealIP(t *testing.T) {
	handler := func(ctx context.Context, req any) (any, error) {
		return intercepters.RealIP(ctx), nil
	}

	withPeer := peer.NewContext(context.Background(), &peer.Peer{
		Addr: &net.TCPAddr{IP: net.ParseIP("203.0.113.7"), Port: 55123},
	})

	tests := []struct {
		name   string
		ctx    context.Context
		wantIP string
	}{
		{
			name:   "with x-real-ip metadata",
			ctx:    metadata.NewIncomingContext(withPeer, metadata.Pairs("x-real-ip", "192.168.1.100")),
			wantIP: "192.168.1.100",
		},
		{
			name:   "empty x-real-ip falls back to peer",
			ctx:    metadata.NewIncomingContext(withPeer, metadata.Pairs("x-real-ip", "")),
			wantIP: "203.0.113.7",
		},
		{
			name:   "peer only",
			ctx:    withPeer,
			wantIP: "203.0.113.7",
		},
		{
			name:   "nothing known",
			ctx:    context.Background(),
			wantIP: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := intercepters.WithRealIP(tt.ctx, nil, &grpc.UnaryServerInfo{
				FullMethod: "/shortener.v1.Registry/Resolve",
			}, handler)
			if err != nil {
				t.Fatalf("Interceptor returned error: %v", err)
			}
			gotIP, _ := resp.(string)
			if gotIP != tt.wantIP {
				t.Errorf("got IP = %q, want %q", gotIP, tt.wantIP)
			}
		})
	}
}
