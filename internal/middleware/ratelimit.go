package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type peerKey struct{}

// WithPeerAddr records the TCP peer address. It must run before any
// middleware that rewrites RemoteAddr from client-supplied headers.
func WithPeerAddr(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), peerKey{}, peerHost(r.RemoteAddr))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PeerAddr returns the address stored by WithPeerAddr, falling back to
// RemoteAddr.
func PeerAddr(r *http.Request) string {
	if ip, ok := r.Context().Value(peerKey{}).(string); ok {
		return ip
	}
	return peerHost(r.RemoteAddr)
}

func peerHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// WithRateLimit throttles requests per connecting peer. rate uses the
// limiter format, e.g. "30-M" for thirty requests a minute. Clients over the
// limit get 429. Forwarding headers are ignored.
func WithRateLimit(rate string) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", rate, err)
	}

	instance := limiter.New(memory.NewStore(), parsed)
	mw := stdlib.NewMiddleware(instance,
		stdlib.WithKeyGetter(PeerAddr),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
		}),
	)

	return mw.Handler, nil
}
