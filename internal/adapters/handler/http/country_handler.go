package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/countryvote/api/internal/core/domain"
	"github.com/countryvote/api/internal/core/ports"
)

const minSearchLength = 2

type CountryHandler struct {
	countries ports.CountryService
}

func NewCountryHandler(countries ports.CountryService) *CountryHandler {
	return &CountryHandler{
		countries: countries,
	}
}

func (h *CountryHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countries.GetAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": domain.ErrDirectoryUnavailable.Error()})
		return
	}

	writeJSON(w, http.StatusOK, countries)
}

// Search returns a structured empty result for short queries instead of an
// error status; autocomplete clients probe on every keystroke.
func (h *CountryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) < minSearchLength {
		writeJSON(w, http.StatusOK, map[string]any{
			"error":   "query must be at least 2 characters",
			"results": []domain.CountryDetail{},
		})
		return
	}

	results, err := h.countries.Search(r.Context(), query)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": domain.ErrDirectoryUnavailable.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *CountryHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))

	country, ok := h.countries.GetByCode(r.Context(), code)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"error": domain.ErrCountryNotFound.Error()})
		return
	}

	writeJSON(w, http.StatusOK, country)
}
