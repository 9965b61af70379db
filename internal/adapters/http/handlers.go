package http

import (
	"net/http"

	"github.com/theRoadz/farcaster-neynar/internal/application"
	"github.com/theRoadz/farcaster-neynar/internal/contracts"
)

func (h *Handler) lookupUser(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.service.LookupUser(r.Context(), application.UserQuery{
		Username: q.Get("username"),
		FID:      q.Get("fid"),
	})
	if err != nil {
		status, code, msg := mapDomainError(err, "failed to fetch user data")
		writeError(w, status, code, msg, requestIDFromContext(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewUserResponse(out))
}

func (h *Handler) lookupOnchain(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.LookupOnchain(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		status, code, msg := mapDomainError(err, "failed to fetch onchain data")
		writeError(w, status, code, msg, requestIDFromContext(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewOnchainResponse(out))
}
