package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/countryvote/api/internal/core/domain"
	"github.com/countryvote/api/internal/core/ports"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

type VoteHandler struct {
	votes   ports.VoteService
	ranking ports.RankingService
}

func NewVoteHandler(votes ports.VoteService, ranking ports.RankingService) *VoteHandler {
	return &VoteHandler{
		votes:   votes,
		ranking: ranking,
	}
}

// CreateVote godoc
// @Summary      Records a vote for a country
// @Description  One vote per email; the email is lowercased before storage.
// @Tags         votes
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      409
// @Router       /votes [post]
func (h *VoteHandler) CreateVote(w http.ResponseWriter, r *http.Request) {
	var input ports.CreateVoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}

	vote, err := h.votes.CreateVote(r.Context(), input)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
			return
		}
		if errors.Is(err, domain.ErrAlreadyVoted) {
			writeJSON(w, http.StatusConflict, map[string]any{"error": domain.ErrAlreadyVoted.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": domain.ErrInternal.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "vote recorded",
		"data":    vote,
	})
}

func (h *VoteHandler) TopCountries(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 && parsed <= maxTopLimit {
			limit = parsed
		}
	}

	top, err := h.ranking.TopCountries(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": domain.ErrInternal.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  top,
		"count": len(top),
	})
}

func (h *VoteHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "email query parameter is required"})
		return
	}

	voted, err := h.votes.HasVoted(r.Context(), email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": domain.ErrInternal.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"email":    email,
		"hasVoted": voted,
	})
}

func (h *VoteHandler) VoteStats(w http.ResponseWriter, r *http.Request) {
	total, err := h.votes.TotalVotes(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": domain.ErrInternal.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"totalVotes": total})
}

func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.votes.ListVotes(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": domain.ErrInternal.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  votes,
		"count": len(votes),
	})
}
