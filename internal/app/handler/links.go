package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/models"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

type LinkHandler struct {
	links     service.LinkServiceIface
	analytics service.AnalyticsIface
	logger    *zap.Logger
}

func NewLinks(links service.LinkServiceIface, analytics service.AnalyticsIface, l *zap.Logger) *LinkHandler {
	return &LinkHandler{
		links:     links,
		analytics: analytics,
		logger:    l,
	}
}

func (h *LinkHandler) view(l *storage.Link) models.Link {
	return models.NewLink(l, h.links.ShortURL(l))
}

// Shorten handles POST /long-url: anonymous creation in the root namespace
// with a limited lifetime.
func (h *LinkHandler) Shorten(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var body models.ShortenRequest
	if !decode(res, req, h.logger, &body) {
		return
	}

	l, err := h.links.CreateAnonymous(ctx, body.LongURL)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusCreated, models.ShortenResponse{ShortURL: h.links.ShortURL(l)})
}

// Create handles POST /links.
func (h *LinkHandler) Create(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := callerID(res, req)
	if !ok {
		return
	}

	var body models.CreateLinkRequest
	if !decode(res, req, h.logger, &body) {
		return
	}

	l, err := h.links.Create(ctx, userID, body.OriginalURL, body.CustomAlias)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	v := h.view(l)
	writeJSON(res, http.StatusCreated, models.CreateLinkResponse{Data: v, ShortURL: v.ShortURL})
}

// List handles GET /links, the caller's links newest first.
func (h *LinkHandler) List(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := callerID(res, req)
	if !ok {
		return
	}

	page, err := h.links.List(ctx, userID, pageRequest(req))
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	data := make([]models.Link, 0, len(page.Items))
	for i := range page.Items {
		data = append(data, h.view(&page.Items[i]))
	}

	writeJSON(res, http.StatusOK, models.LinkListResponse{
		Data:       data,
		Pagination: page.Meta(pageLinks(req, page.PerPage)),
	})
}

// Update handles PUT /links/{id}. A new short code is claimed atomically;
// on conflict the old code stays bound.
func (h *LinkHandler) Update(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := callerID(res, req)
	if !ok {
		return
	}

	var body models.UpdateLinkRequest
	if !decode(res, req, h.logger, &body) {
		return
	}

	l, err := h.links.Update(ctx, userID, chi.URLParam(req, "id"), service.LinkPatch{
		ShortCode:   body.ShortCode,
		OriginalURL: body.OriginalURL,
	})
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, models.LinkResponse{Data: h.view(l)})
}

// Delete handles DELETE /links/{id}. Repeating it yields 404.
func (h *LinkHandler) Delete(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := callerID(res, req)
	if !ok {
		return
	}

	if err := h.links.Delete(ctx, userID, chi.URLParam(req, "id")); err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, models.MessageResponse{Message: "link deleted"})
}

// Metrics handles GET /links/{id}/metrics.
func (h *LinkHandler) Metrics(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := callerID(res, req)
	if !ok {
		return
	}

	summary, err := h.analytics.Summary(ctx, userID, chi.URLParam(req, "id"))
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, summary)
}

func (h *LinkHandler) Ping(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	if err := h.links.PingContext(ctx); err != nil {
		h.logger.Error("storage ping failed", zap.Error(err))
		http.Error(res, "storage unavailable", http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusOK)
}
