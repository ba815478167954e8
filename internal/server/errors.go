package server

import (
	"errors"
	"net/http"

	"github.com/aretw0/notecache/pkg/core"
)

// errorBodies overrides the default response bodies of a route.
type errorBodies struct {
	badRequest string // ErrBadRequest
	internal   string // unclassified errors
}

// statusFor maps an error kind to its status code and default body.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, "Note not found"
	case errors.Is(err, core.ErrAlreadyExists):
		return http.StatusBadRequest, "Note already exists"
	case errors.Is(err, core.ErrBadRequest):
		return http.StatusBadRequest, "Bad request"
	case errors.Is(err, core.ErrReadOnly):
		return http.StatusForbidden, "Store is read-only"
	case errors.Is(err, core.ErrReadError):
		return http.StatusInternalServerError, "Error reading notes"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, bodies errorBodies) {
	status, msg := statusFor(err)
	switch {
	case status == http.StatusBadRequest && errors.Is(err, core.ErrBadRequest) && bodies.badRequest != "":
		msg = bodies.badRequest
	case status == http.StatusInternalServerError && bodies.internal != "":
		msg = bodies.internal
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	} else {
		s.logger.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeText(w, status, msg)
}

// writeBodyError reports a request body that could not be read.
func (s *Server) writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		s.logger.Debug("Request body too large", "path", r.URL.Path, "limit", maxErr.Limit)
		writeText(w, http.StatusRequestEntityTooLarge, "Note too large")
		return
	}
	s.logger.Debug("Invalid request body", "path", r.URL.Path, "error", err)
	writeText(w, http.StatusBadRequest, "Invalid request body")
}
