package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/server"
	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/mocks"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

type router struct {
	links     *mocks.MockLinkServiceIface
	resolver  *mocks.MockResolverIface
	analytics *mocks.MockAnalyticsIface
	auth      *mocks.MockAuthIface
	handler   http.Handler
}

func newRouter(t *testing.T, opts server.Options) *router {
	t.Helper()
	ctrl := gomock.NewController(t)
	r := &router{
		links:     mocks.NewMockLinkServiceIface(ctrl),
		resolver:  mocks.NewMockResolverIface(ctrl),
		analytics: mocks.NewMockAnalyticsIface(ctrl),
		auth:      mocks.NewMockAuthIface(ctrl),
	}

	h, err := server.Init(server.Services{
		Links:      r.links,
		Namespaces: mocks.NewMockNamespaceIface(ctrl),
		Resolver:   r.resolver,
		Analytics:  r.analytics,
		Admin:      mocks.NewMockAdminIface(ctrl),
		Users:      mocks.NewMockUserIface(ctrl),
		Auth:       r.auth,
	}, opts, zap.NewNop())
	require.NoError(t, err)
	r.handler = h
	return r
}

func (r *router) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.handler.ServeHTTP(rec, req)
	return rec
}

func TestInit_BadRate(t *testing.T) {
	_, err := server.Init(server.Services{}, server.Options{AnonymousRate: "often"}, zap.NewNop())
	assert.Error(t, err)
}

func TestRouter_AuthenticatedRoutesNeedToken(t *testing.T) {
	r := newRouter(t, server.Options{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/links"},
		{http.MethodPost, "/links"},
		{http.MethodPut, "/links/l1"},
		{http.MethodDelete, "/links/l1"},
		{http.MethodGet, "/links/l1/metrics"},
		{http.MethodGet, "/domain"},
		{http.MethodGet, "/user"},
		{http.MethodGet, "/admin/stats"},
	} {
		rec := r.do(httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.path)
	}
}

func TestRouter_AdminNeedsPrivilege(t *testing.T) {
	r := newRouter(t, server.Options{})
	r.auth.EXPECT().Authenticate(gomock.Any(), "user-token").Return(&service.Claims{UserID: "u1"}, nil).Times(2)

	for _, path := range []string{"/admin/stats", "/admin/users/search?search=ana"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer user-token")
		assert.Equal(t, http.StatusForbidden, r.do(req).Code, path)
	}
}

func TestRouter_InternalStatsTrustedSubnet(t *testing.T) {
	r := newRouter(t, server.Options{TrustedSubnet: "10.0.0.0/8"})
	r.analytics.EXPECT().GlobalStats(gomock.Any()).Return(&storage.Stats{Users: 1, Links: 2}, nil)

	outside := httptest.NewRequest(http.MethodGet, "/internal/stats", nil)
	outside.Header.Set("X-Real-IP", "192.0.2.1")
	assert.Equal(t, http.StatusForbidden, r.do(outside).Code)

	inside := httptest.NewRequest(http.MethodGet, "/internal/stats", nil)
	inside.Header.Set("X-Real-IP", "10.1.2.3")
	rec := r.do(inside)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_users":1,"total_links":2}`, rec.Body.String())
}

func TestRouter_AnonymousThrottle(t *testing.T) {
	r := newRouter(t, server.Options{AnonymousRate: "1-M"})
	r.links.EXPECT().CreateAnonymous(gomock.Any(), "https://example.com").Return(&storage.Link{ShortCode: "abcdefg"}, nil)
	r.links.EXPECT().ShortURL(gomock.Any()).Return("http://localhost:8080/abcdefg")

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/long-url", strings.NewReader(`{"long_url":"https://example.com"}`))
		req.RemoteAddr = "198.51.100.20:1234"
		return r.do(req).Code
	}

	assert.Equal(t, http.StatusCreated, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestRouter_AnonymousThrottleIgnoresSpoofedAddress(t *testing.T) {
	r := newRouter(t, server.Options{AnonymousRate: "1-M"})
	r.links.EXPECT().CreateAnonymous(gomock.Any(), "https://example.com").Return(&storage.Link{ShortCode: "abcdefg"}, nil)
	r.links.EXPECT().ShortURL(gomock.Any()).Return("http://localhost:8080/abcdefg")

	send := func(spoofed string) int {
		req := httptest.NewRequest(http.MethodPost, "/long-url", strings.NewReader(`{"long_url":"https://example.com"}`))
		req.RemoteAddr = "198.51.100.21:1234"
		req.Header.Set("X-Forwarded-For", spoofed)
		req.Header.Set("X-Real-IP", spoofed)
		return r.do(req).Code
	}

	assert.Equal(t, http.StatusCreated, send("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.3"))
}

func TestRouter_Redirects(t *testing.T) {
	r := newRouter(t, server.Options{RootDomain: "sho.rt"})
	r.resolver.EXPECT().Resolve(gomock.Any(), "shop", "promo", gomock.Any()).Return("https://example.com/x", nil).Times(2)

	byHost := httptest.NewRequest(http.MethodGet, "/promo", nil)
	byHost.Host = "shop.sho.rt"
	rec := r.do(byHost)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "https://example.com/x", rec.Header().Get("Location"))

	rec = r.do(httptest.NewRequest(http.MethodGet, "/s/shop/promo", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
}

func TestRouter_Ping(t *testing.T) {
	r := newRouter(t, server.Options{})
	r.links.EXPECT().PingContext(gomock.Any()).Return(nil)

	assert.Equal(t, http.StatusOK, r.do(httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
}
