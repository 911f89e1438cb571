package server

import (
	"net/http"

	"github.com/vango-dev/routerstore/internal/errors"
	"github.com/vango-dev/routerstore/pkg/routerstore"
)

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case "R001", "R002", "R003", "R004", "R010", "R020", "R033":
		return http.StatusBadRequest
	case "R031":
		return http.StatusNotFound
	case "R032":
		return http.StatusServiceUnavailable
	case "R034":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.Code(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "code", code, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", code, "error", err)
	}

	data, encErr := routerstore.Encode(errorResponse{Code: code, Error: err.Error()}, false)
	if encErr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
