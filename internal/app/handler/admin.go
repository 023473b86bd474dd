package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/models"
)

// AdminHandler serves the privileged listings. Access control is left to
// the router.
type AdminHandler struct {
	users     service.AdminIface
	analytics service.AnalyticsIface
	logger    *zap.Logger
}

func NewAdmin(users service.AdminIface, analytics service.AnalyticsIface, l *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, analytics: analytics, logger: l}
}

// Stats handles GET /admin/stats: global totals plus one page of users.
func (h *AdminHandler) Stats(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	stats, err := h.analytics.GlobalStats(ctx)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	pr := pageRequest(req)
	pr.Search = ""
	page, err := h.users.Users(ctx, pr)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, models.AdminStatsResponse{
		TotalUsers: stats.Users,
		TotalLinks: stats.Links,
		Users:      page.Items,
		Pagination: page.Meta(pageLinks(req, page.PerPage)),
	})
}

// SearchUsers handles GET /admin/users/search?search=.
func (h *AdminHandler) SearchUsers(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	page, err := h.users.Users(ctx, pageRequest(req))
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, models.UsersResponse{
		Users:      page.Items,
		Pagination: page.Meta(pageLinks(req, page.PerPage)),
	})
}

// InternalStats handles GET /internal/stats for the trusted subnet.
func (h *AdminHandler) InternalStats(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	stats, err := h.analytics.GlobalStats(ctx)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, stats)
}
