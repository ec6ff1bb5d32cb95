package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/mikecinchan/tcg-deck-editor/pkg/errors"
)

const maxBodyBytes = 1 << 20

var errNoRoute = errs.New(errs.ErrCodeNotFound, "no such endpoint")

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errs.Code) int {
	c := string(code)
	switch {
	case strings.HasSuffix(c, "NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(c, "INVALID_"):
		return http.StatusBadRequest
	case code == errs.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case code == errs.ErrCodeForbidden:
		return http.StatusForbidden
	case code == errs.ErrCodeCatalogUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	status := statusFor(code)

	msg := errs.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", middleware.GetReqID(r.Context()))
		msg = "internal error"
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="deckeditor"`)
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", maxBodyBytes)
		}
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "malformed JSON body")
	}
	return nil
}
