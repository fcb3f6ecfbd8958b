package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/countryvote/api/internal/core/ports"
)

type HealthHandler struct {
	db        *sql.DB
	countries ports.CountryService
}

func NewHealthHandler(db *sql.DB, countries ports.CountryService) *HealthHandler {
	return &HealthHandler{
		db:        db,
		countries: countries,
	}
}

// Check reports liveness of the vote store and the country directory.
// The directory probe goes through the read-through cache, so a warm cache
// keeps this endpoint cheap.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	details := map[string]string{
		"storage":   "up",
		"directory": "up",
	}
	status := "ok"
	code := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		details["storage"] = "down: " + err.Error()
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	if _, err := h.countries.GetAll(ctx); err != nil {
		details["directory"] = "down: " + err.Error()
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":  status,
		"details": details,
	})
}
