package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
)

// newRequest builds a request as the router would hand it over: claims of
// userID (if any) and chi URL params already in the context.
func newRequest(method, target, body, userID string, params map[string]string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := req.Context()
	if userID != "" {
		ctx = service.WithClaims(ctx, &service.Claims{UserID: userID})
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}
