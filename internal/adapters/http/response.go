package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/theRoadz/farcaster-neynar/internal/contracts"
	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, contracts.ErrorResponse{Error: message, Code: code, RequestID: requestID})
}

// mapDomainError returns status, code and the client-facing message. Upstream
// and unexpected failures get fallback instead of the internal error text.
func mapDomainError(err error, fallback string) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input", detail(err, domain.ErrInvalidInput)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found", "user not found"
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusInternalServerError, "not_configured", detail(err, domain.ErrNotConfigured)
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusInternalServerError, "upstream_error", fallback
	default:
		return http.StatusInternalServerError, "internal_error", fallback
	}
}

// detail strips the sentinel prefix from a wrapped error message.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}
