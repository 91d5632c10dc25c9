package handlers

import (
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)

		r.Post("/auth/register", h.RegisterHandler)
		r.Post("/auth/login", h.LoginHandler)

		r.Post("/games", h.CreateGameHandler)
		r.Get("/games/{code}", h.GetGameHandler)
		r.Get("/games/{code}/stream", h.HandleStream)
		r.Get("/games/{code}/ws", h.HandleGameSocket)

		r.Post("/games/{gameID}/players", h.AddPlayerHandler)
		r.Put("/games/{gameID}/players/{playerID}", h.UpdatePlayerHandler)
		r.Post("/games/{gameID}/scores", h.SubmitScoreHandler)
		r.Post("/games/{gameID}/holes", h.AddHoleHandler)
		r.Put("/games/{gameID}/current-hole", h.UpdateCurrentHoleHandler)
		r.Get("/games/{gameID}/holes/{hole}/average", h.AverageScoreHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/me", h.MeHandler)
		})
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}
