package intercepters_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/intercepters"
	"github.com/atinyakov/shortlink-registry/internal/mocks"
)

func TestWithJWT(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/shortener.v1.Registry/GlobalStats"}

	// handler echoes the authenticated user, "" for anonymous calls
	handler := func(ctx context.Context, req any) (any, error) {
		claims, ok := service.ClaimsFromContext(ctx)
		if !ok {
			return "", nil
		}
		return claims.UserID, nil
	}

	tests := []struct {
		name        string
		md          metadata.MD
		token       string
		claims      *service.Claims
		authErr     error
		wantCode    codes.Code
		wantUserID  string
		expectCheck bool
	}{
		{
			name:     "no metadata",
			wantCode: codes.OK,
		},
		{
			name:     "no authorization",
			md:       metadata.Pairs("x-real-ip", "10.0.0.1"),
			wantCode: codes.OK,
		},
		{
			name:     "not a bearer token",
			md:       metadata.Pairs("authorization", "Basic dXNlcg=="),
			wantCode: codes.Unauthenticated,
		},
		{
			name:        "valid token",
			md:          metadata.Pairs("authorization", "Bearer good"),
			token:       "good",
			claims:      &service.Claims{UserID: "user-123"},
			wantCode:    codes.OK,
			wantUserID:  "user-123",
			expectCheck: true,
		},
		{
			name:        "invalid token",
			md:          metadata.Pairs("authorization", "Bearer forged"),
			token:       "forged",
			authErr:     service.ErrUnauthorized,
			wantCode:    codes.Unauthenticated,
			expectCheck: true,
		},
		{
			name:        "user store failure",
			md:          metadata.Pairs("authorization", "Bearer good"),
			token:       "good",
			authErr:     errors.New("db down"),
			wantCode:    codes.Internal,
			expectCheck: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthIface(ctrl)
			if tt.expectCheck {
				auth.EXPECT().Authenticate(gomock.Any(), tt.token).Return(tt.claims, tt.authErr)
			}

			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}

			resp, err := intercepters.WithJWT(auth)(ctx, nil, info, handler)
			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode == codes.OK {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUserID, resp)
			}
		})
	}
}
