package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/models"
)

type UserHandler struct {
	users  service.UserIface
	logger *zap.Logger
}

func NewUser(users service.UserIface, l *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: l}
}

func (h *UserHandler) Get(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := callerID(res, req)
	if !ok {
		return
	}

	u, err := h.users.Get(ctx, userID)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, models.UserResponse{Data: *u})
}

func (h *UserHandler) Rename(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := callerID(res, req)
	if !ok {
		return
	}

	var body models.UserRequest
	if !decode(res, req, h.logger, &body) {
		return
	}

	u, err := h.users.Rename(ctx, userID, body.Name)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, models.UserResponse{Data: *u})
}

// Delete removes the caller's account together with its subdomain, links
// and their clicks.
func (h *UserHandler) Delete(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := callerID(res, req)
	if !ok {
		return
	}

	if err := h.users.Delete(ctx, userID); err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, http.StatusOK, models.MessageResponse{Message: "account deleted"})
}
