package routes

import (
	"github.com/beachpoint/tournament-system/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Tournament *handlers.TournamentHandler
	Group      *handlers.GroupHandler
	Playoff    *handlers.PlayoffHandler
	Ranking    *handlers.RankingHandler
	Player     *handlers.PlayerHandler
	WebSocket  *handlers.WebSocketHandler
}

func InitRoutes(h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.List)
		r.Post("/", h.Tournament.Draw)
		r.Get("/current", h.Tournament.Current)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Tournament.Get)
			r.Delete("/", h.Tournament.Delete)
			r.Put("/logo", h.Tournament.UploadLogo)

			r.Post("/groups/{groupIdx}/results", h.Group.RecordResults)
			r.Post("/groups/swap", h.Group.SwapPlayers)

			r.Get("/bracket", h.Playoff.Bracket)
			r.Post("/bracket/{phase}/{game}", h.Playoff.RecordResult)
			r.Post("/finalize", h.Playoff.Finalize)
			r.Post("/points/reapply", h.Ranking.Reapply)
		})
	})

	router.Get("/ranking", h.Ranking.Global)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.List)
		r.Get("/search", h.Player.Search)
		r.Get("/{name}/profile", h.Player.Profile)
	})

	router.Get("/ws/tournaments/{id}", h.WebSocket.ServeWs)

	return router
}
