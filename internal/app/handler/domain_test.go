package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/handler"
	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/mocks"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

func TestDomainGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	ns := mocks.NewMockNamespaceIface(ctrl)
	h := handler.NewDomain(ns, zap.NewNop())

	gomock.InOrder(
		ns.EXPECT().Current(gomock.Any(), "u1").Return(&storage.Subdomain{OwnerID: "u1", Label: "shop"}, nil),
		ns.EXPECT().Current(gomock.Any(), "u1").Return(nil, service.ErrNotFound),
	)

	bound := httptest.NewRecorder()
	h.Get(bound, newRequest(http.MethodGet, "/domain", "", "u1", nil))
	assert.Equal(t, http.StatusOK, bound.Code)
	assert.JSONEq(t, `{"subdomain":"shop"}`, bound.Body.String())

	none := httptest.NewRecorder()
	h.Get(none, newRequest(http.MethodGet, "/domain", "", "u1", nil))
	assert.Equal(t, http.StatusOK, none.Code)
	assert.JSONEq(t, `{"subdomain":null}`, none.Body.String())
}

func TestDomainBind(t *testing.T) {
	tests := []struct {
		name         string
		sd           *storage.Subdomain
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "claimed",
			sd:           &storage.Subdomain{OwnerID: "u1", Label: "shop"},
			expectedCode: http.StatusOK,
			expectedBody: `{"subdomain":"shop"}`,
		},
		{
			name:         "taken",
			err:          service.ErrLabelTaken,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"subdomain is already taken"}`,
		},
		{
			name:         "reserved",
			err:          &service.ValidationError{Field: "subdomain", Reason: "is reserved"},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: `{"message":"subdomain: is reserved","field":"subdomain"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ns := mocks.NewMockNamespaceIface(ctrl)
			ns.EXPECT().Bind(gomock.Any(), "u1", "Shop").Return(tt.sd, tt.err)

			rec := httptest.NewRecorder()
			handler.NewDomain(ns, zap.NewNop()).Bind(rec, newRequest(http.MethodPost, "/domain", `{"subdomain":"Shop"}`, "u1", nil))

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestDomainUnbind(t *testing.T) {
	ctrl := gomock.NewController(t)
	ns := mocks.NewMockNamespaceIface(ctrl)
	h := handler.NewDomain(ns, zap.NewNop())

	gomock.InOrder(
		ns.EXPECT().Unbind(gomock.Any(), "u1").Return(nil),
		ns.EXPECT().Unbind(gomock.Any(), "u1").Return(service.ErrNotFound),
	)

	rec := httptest.NewRecorder()
	h.Unbind(rec, newRequest(http.MethodDelete, "/domain", "", "u1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	again := httptest.NewRecorder()
	h.Unbind(again, newRequest(http.MethodDelete, "/domain", "", "u1", nil))
	assert.Equal(t, http.StatusNotFound, again.Code)
}
