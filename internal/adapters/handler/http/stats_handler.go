package http

import (
	"net/http"

	"github.com/countryvote/api/internal/core/domain"
	"github.com/countryvote/api/internal/core/ports"
)

type StatsHandler struct {
	stats ports.StatsService
}

func NewStatsHandler(stats ports.StatsService) *StatsHandler {
	return &StatsHandler{
		stats: stats,
	}
}

func (h *StatsHandler) DetailedStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.DetailedStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": domain.ErrInternal.Error()})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) Regions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.stats.ByRegion(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": domain.ErrInternal.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  regions,
		"count": len(regions),
	})
}

func (h *StatsHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.stats.Timeline(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": domain.ErrInternal.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  timeline,
		"count": len(timeline),
	})
}
