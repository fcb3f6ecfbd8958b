package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	voteHandler *VoteHandler,
	countryHandler *CountryHandler,
	statsHandler *StatsHandler,
	healthHandler *HealthHandler,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(allowedOrigins))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/votes", func(r chi.Router) {
			r.Post("/", voteHandler.CreateVote)
			r.Get("/", voteHandler.ListVotes)
			r.Get("/top", voteHandler.TopCountries)
			r.Get("/check", voteHandler.CheckEmail)
			r.Get("/stats", voteHandler.VoteStats)
		})

		r.Route("/countries", func(r chi.Router) {
			r.Get("/", countryHandler.ListCountries)
			r.Get("/search", countryHandler.Search)
			r.Get("/{code}", countryHandler.GetByCode)
		})

		r.Route("/statistics", func(r chi.Router) {
			r.Get("/", statsHandler.DetailedStats)
			r.Get("/regions", statsHandler.Regions)
			r.Get("/timeline", statsHandler.Timeline)
		})

		r.Get("/health", healthHandler.Check)
	})

	return r
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if allowAll {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else if _, ok := allowed[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
