package middleware

import (
	"net"
	"net/http"
	"strings"
)

// WithTrustedSubnet only lets through requests whose X-Real-IP lies in cidr.
// An empty or malformed cidr denies everyone.
func WithTrustedSubnet(cidr string) func(next http.Handler) http.Handler {
	_, subnet, err := net.ParseCIDR(strings.TrimSpace(cidr))
	if err != nil {
		subnet = nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP")))
			if subnet == nil || ip == nil || !subnet.Contains(ip) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
