package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter - routes of the REST boundary API.
func NewRouter(logger *slog.Logger, engine searchEngine) http.Handler {
	pingHandler := NewPingHandler()
	engineHandler := NewEngineHandler(logger, engine)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.AllowContentType("application/json"))

	r.Get("/ping", pingHandler.PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/evaluate", engineHandler.Evaluate)
		r.Post("/best-move", engineHandler.BestMove)
		r.Post("/hint", engineHandler.Hint)
	})

	return r
}
