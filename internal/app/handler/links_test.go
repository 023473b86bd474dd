package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/handler"
	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/mocks"
	"github.com/atinyakov/shortlink-registry/internal/models"
	"github.com/atinyakov/shortlink-registry/internal/pagination"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

func newLinkHandler(t *testing.T) (*handler.LinkHandler, *mocks.MockLinkServiceIface, *mocks.MockAnalyticsIface) {
	ctrl := gomock.NewController(t)
	links := mocks.NewMockLinkServiceIface(ctrl)
	analytics := mocks.NewMockAnalyticsIface(ctrl)
	links.EXPECT().ShortURL(gomock.Any()).DoAndReturn(func(l *storage.Link) string {
		return "http://localhost:8080/" + l.ShortCode
	}).AnyTimes()
	return handler.NewLinks(links, analytics, zap.NewNop()), links, analytics
}

func TestShorten(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		url          string
		link         *storage.Link
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Valid URL",
			body:         `{"long_url":"https://example.com/a"}`,
			url:          "https://example.com/a",
			link:         &storage.Link{ShortCode: "Ab3dE9z"},
			expectedCode: http.StatusCreated,
			expectedBody: `{"short_url":"http://localhost:8080/Ab3dE9z"}`,
		},
		{
			name:         "Invalid URL",
			body:         `{"long_url":"ftp://example.com"}`,
			url:          "ftp://example.com",
			err:          &service.ValidationError{Field: "long_url", Reason: "must be an absolute http or https URL"},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: `{"message":"long_url: must be an absolute http or https URL","field":"long_url"}`,
		},
		{
			name:         "Capacity",
			body:         `{"long_url":"https://example.com/a"}`,
			url:          "https://example.com/a",
			err:          service.ErrAllocationExhausted,
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, links, _ := newLinkHandler(t)
			links.EXPECT().CreateAnonymous(gomock.Any(), tt.url).Return(tt.link, tt.err)

			rec := httptest.NewRecorder()
			h.Shorten(rec, newRequest(http.MethodPost, "/long-url", tt.body, "", nil))

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestShorten_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Empty body", ""},
		{"Broken JSON", `{"long_url":`},
		{"Unknown field", `{"url":"https://example.com"}`},
		{"Two objects", `{"long_url":"https://a.io"}{"long_url":"https://b.io"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newLinkHandler(t)

			rec := httptest.NewRecorder()
			h.Shorten(rec, newRequest(http.MethodPost, "/long-url", tt.body, "", nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateLink(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		h, _, _ := newLinkHandler(t)

		rec := httptest.NewRecorder()
		h.Create(rec, newRequest(http.MethodPost, "/links", `{"original_url":"https://example.com"}`, "", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("custom alias", func(t *testing.T) {
		h, links, _ := newLinkHandler(t)
		links.EXPECT().Create(gomock.Any(), "u1", "https://example.com/x", "promo").
			Return(&storage.Link{ID: "l1", OwnerID: "u1", Namespace: "shop", ShortCode: "promo", OriginalURL: "https://example.com/x"}, nil)

		rec := httptest.NewRecorder()
		h.Create(rec, newRequest(http.MethodPost, "/links", `{"original_url":"https://example.com/x","custom_alias":"promo"}`, "u1", nil))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp models.CreateLinkResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "http://localhost:8080/promo", resp.ShortURL)
		assert.Equal(t, "l1", resp.Data.ID)
		assert.Equal(t, "shop", resp.Data.Subdomain)
		assert.Equal(t, "promo", resp.Data.ShortCode)
	})

	t.Run("alias taken", func(t *testing.T) {
		h, links, _ := newLinkHandler(t)
		links.EXPECT().Create(gomock.Any(), "u1", "https://example.com/x", "promo").Return(nil, service.ErrAliasTaken)

		rec := httptest.NewRecorder()
		h.Create(rec, newRequest(http.MethodPost, "/links", `{"original_url":"https://example.com/x","custom_alias":"promo"}`, "u1", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"alias is already taken in this namespace"}`, rec.Body.String())
	})
}

func TestListLinks(t *testing.T) {
	h, links, _ := newLinkHandler(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	links.EXPECT().List(gomock.Any(), "u1", pagination.Request{Page: 2, PerPage: 1, Search: "exa"}).
		Return(&pagination.Page[storage.Link]{
			Items:       []storage.Link{{ID: "l2", OwnerID: "u1", ShortCode: "abc", OriginalURL: "https://example.com", CreatedAt: created}},
			Total:       3,
			PerPage:     1,
			CurrentPage: 2,
			LastPage:    3,
			From:        2,
			To:          2,
		}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/links?page=2&per_page=1&search=exa", "", "u1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LinkListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Data, 1)
	assert.Equal(t, "http://localhost:8080/abc", resp.Data[0].ShortURL)
	assert.Equal(t, 3, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.From)
	assert.Equal(t, []int{1, 2, 3}, resp.Pagination.Pages)
	require.NotNil(t, resp.Pagination.PrevPageURL)
	assert.Equal(t, "/links?page=1&per_page=1&search=exa", *resp.Pagination.PrevPageURL)
	require.NotNil(t, resp.Pagination.NextPageURL)
	assert.Equal(t, "/links?page=3&per_page=1&search=exa", *resp.Pagination.NextPageURL)
}

func TestUpdateLink(t *testing.T) {
	code := "new-code"

	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"renamed", nil, http.StatusOK},
		{"alias taken", service.ErrAliasTaken, http.StatusBadRequest},
		{"not owner", service.ErrForbidden, http.StatusForbidden},
		{"deleted meanwhile", service.ErrNotFound, http.StatusNotFound},
		{"bad alias", &service.ValidationError{Field: "short_code", Reason: "too short"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, links, _ := newLinkHandler(t)

			var link *storage.Link
			if tt.err == nil {
				link = &storage.Link{ID: "l1", ShortCode: code, OriginalURL: "https://example.com"}
			}
			links.EXPECT().Update(gomock.Any(), "u1", "l1", service.LinkPatch{ShortCode: &code}).Return(link, tt.err)

			rec := httptest.NewRecorder()
			h.Update(rec, newRequest(http.MethodPut, "/links/l1", `{"short_code":"new-code"}`, "u1", map[string]string{"id": "l1"}))

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.err == nil {
				var resp models.LinkResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, code, resp.Data.ShortCode)
			}
		})
	}
}

func TestDeleteLink(t *testing.T) {
	h, links, _ := newLinkHandler(t)
	gomock.InOrder(
		links.EXPECT().Delete(gomock.Any(), "u1", "l1").Return(nil),
		links.EXPECT().Delete(gomock.Any(), "u1", "l1").Return(service.ErrNotFound),
	)

	first := httptest.NewRecorder()
	h.Delete(first, newRequest(http.MethodDelete, "/links/l1", "", "u1", map[string]string{"id": "l1"}))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.Delete(second, newRequest(http.MethodDelete, "/links/l1", "", "u1", map[string]string{"id": "l1"}))
	assert.Equal(t, http.StatusNotFound, second.Code)
}

func TestLinkMetrics(t *testing.T) {
	h, _, analytics := newLinkHandler(t)
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	analytics.EXPECT().Summary(gomock.Any(), "u1", "l1").Return(&storage.ClickSummary{
		TotalClicks: 3,
		Browsers:    []storage.BrowserCount{{Browser: "Chrome", Total: 2}, {Browser: "Firefox", Total: 1}},
		Recent:      []storage.ClickEvent{{ID: "c1", LinkID: "l1", Browser: "Chrome", Platform: "Mobile", ClickedAt: at}},
	}, nil)

	rec := httptest.NewRecorder()
	h.Metrics(rec, newRequest(http.MethodGet, "/links/l1/metrics", "", "u1", map[string]string{"id": "l1"}))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp storage.ClickSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 3, resp.TotalClicks)
	assert.Equal(t, "Chrome", resp.Browsers[0].Browser)
	assert.Equal(t, "Mobile", resp.Recent[0].Platform)
}

func TestPing(t *testing.T) {
	h, links, _ := newLinkHandler(t)
	gomock.InOrder(
		links.EXPECT().PingContext(gomock.Any()).Return(nil),
		links.EXPECT().PingContext(gomock.Any()).Return(errors.New("connection refused")),
	)

	ok := httptest.NewRecorder()
	h.Ping(ok, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, ok.Code)

	down := httptest.NewRecorder()
	h.Ping(down, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusInternalServerError, down.Code)
}
