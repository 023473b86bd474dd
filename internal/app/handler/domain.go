package handler

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/models"
)

type DomainHandler struct {
	namespaces service.NamespaceIface
	logger     *zap.Logger
}

func NewDomain(ns service.NamespaceIface, l *zap.Logger) *DomainHandler {
	return &DomainHandler{namespaces: ns, logger: l}
}

// Get handles GET /domain. Callers without a subdomain get null.
func (h *DomainHandler) Get(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := callerID(res, req)
	if !ok {
		return
	}

	sd, err := h.namespaces.Current(ctx, userID)
	if errors.Is(err, service.ErrNotFound) {
		writeJSON(res, http.StatusOK, models.DomainResponse{})
		return
	}
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, models.DomainResponse{Subdomain: &sd.Label})
}

// Bind handles POST /domain, claiming or replacing the caller's subdomain.
func (h *DomainHandler) Bind(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := callerID(res, req)
	if !ok {
		return
	}

	var body models.DomainRequest
	if !decode(res, req, h.logger, &body) {
		return
	}

	sd, err := h.namespaces.Bind(ctx, userID, body.Subdomain)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, models.DomainResponse{Subdomain: &sd.Label})
}

// Unbind handles DELETE /domain.
func (h *DomainHandler) Unbind(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := callerID(res, req)
	if !ok {
		return
	}

	if err := h.namespaces.Unbind(ctx, userID); err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, models.MessageResponse{Message: "subdomain released"})
}
