package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/middleware"
	"github.com/atinyakov/shortlink-registry/internal/mocks"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer   abc", "abc", true},
		{"Basic dXNlcjpwYXNz", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		token, ok := middleware.BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestWithBearerAuth(t *testing.T) {
	echoUser := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := service.ClaimsFromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(claims.UserID))
	})

	t.Run("missing header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := mocks.NewMockAuthIface(ctrl)

		rec := httptest.NewRecorder()
		middleware.WithBearerAuth(auth)(echoUser).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/links", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"unauthenticated"}`, rec.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := mocks.NewMockAuthIface(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "expired").Return(nil, service.ErrUnauthorized)

		req := httptest.NewRequest(http.MethodGet, "/links", nil)
		req.Header.Set("Authorization", "Bearer expired")
		rec := httptest.NewRecorder()
		middleware.WithBearerAuth(auth)(echoUser).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := mocks.NewMockAuthIface(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(nil, errors.New("db down"))

		req := httptest.NewRequest(http.MethodGet, "/links", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rec := httptest.NewRecorder()
		middleware.WithBearerAuth(auth)(echoUser).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := mocks.NewMockAuthIface(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(&service.Claims{UserID: "u1"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/links", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rec := httptest.NewRecorder()
		middleware.WithBearerAuth(auth)(echoUser).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", rec.Body.String())
	})
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		claims *service.Claims
		status int
	}{
		{"no claims", nil, http.StatusUnauthorized},
		{"regular user", &service.Claims{UserID: "u1"}, http.StatusForbidden},
		{"admin", &service.Claims{UserID: "root", Admin: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			if tt.claims != nil {
				req = req.WithContext(service.WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()
			middleware.RequireAdmin(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
