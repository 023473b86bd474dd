// Package handler implements the HTTP API of the registry: link management,
// subdomain binding, analytics, admin listings and the redirect endpoints.
// Handlers decode requests, bound every call with a timeout and translate
// service errors into status codes.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/models"
	"github.com/atinyakov/shortlink-registry/internal/pagination"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

const requestTimeout = 3 * time.Second

// malformedRequest represents an error with a malformed HTTP request.
type malformedRequest struct {
	status int
	msg    string
}

func (mr *malformedRequest) Error() string {
	return mr.msg
}

// decodeJSONBody decodes a single JSON object from the request body into dst,
// rejecting unknown fields, trailing data and bodies over 1MB.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	ct := r.Header.Get("Content-Type")
	if ct != "" {
		mediaType := strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
		if mediaType != "application/json" {
			msg := "Content-Type header is not application/json"
			return &malformedRequest{status: http.StatusUnsupportedMediaType, msg: msg}
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.ErrUnexpectedEOF):
			msg := "Request body contains badly-formed JSON"
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.As(err, &unmarshalTypeError):
			msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			msg := fmt.Sprintf("Request body contains unknown field %s", fieldName)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.EOF):
			msg := "Request body must not be empty"
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.As(err, &maxBytesError):
			msg := "Request body must not be larger than 1MB"
			return &malformedRequest{status: http.StatusRequestEntityTooLarge, msg: msg}

		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		msg := "Request body must only contain a single JSON object"
		return &malformedRequest{status: http.StatusBadRequest, msg: msg}
	}

	return nil
}

// decode reads the body into dst and answers the request itself on failure.
func decode(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst any) bool {
	err := decodeJSONBody(w, r, dst)
	if err == nil {
		return true
	}

	var mr *malformedRequest
	if errors.As(err, &mr) {
		writeJSON(w, mr.status, models.MessageResponse{Message: mr.msg})
		return false
	}

	logger.Error("cannot read request body", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, models.MessageResponse{Message: "internal server error"})
	return false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeServiceError maps a service error onto the API error contract.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := service.IsValidation(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, models.MessageResponse{Message: ve.Error(), Field: ve.Field})
		return
	}

	switch {
	case errors.Is(err, service.ErrAliasTaken),
		errors.Is(err, service.ErrLabelTaken),
		errors.Is(err, storage.ErrConflict):
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.MessageResponse{Message: "not found"})
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, models.MessageResponse{Message: "forbidden"})
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "unauthenticated"})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("request timed out", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, models.MessageResponse{Message: "request timed out"})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.MessageResponse{Message: "internal server error"})
	}
}

// callerID returns the authenticated user of the request.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := service.ClaimsFromContext(r.Context())
	if !ok || claims.UserID == "" {
		writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "unauthenticated"})
		return "", false
	}
	return claims.UserID, true
}

// pageRequest reads page, per_page and search from the query string.
// Unparsable numbers fall back to the defaults.
func pageRequest(r *http.Request) pagination.Request {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	return pagination.Request{
		Page:    page,
		PerPage: perPage,
		Search:  q.Get("search"),
	}
}

// pageLinks builds prev/next URLs that keep the request's other query
// parameters.
func pageLinks(r *http.Request, perPage int) func(int) string {
	return func(page int) string {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(perPage))
		u := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
		return u.String()
	}
}
