package routes

import (
	"log/slog"
	"net/http"

	_ "github.com/Dosada05/magic-tournament/docs"
	"github.com/Dosada05/magic-tournament/handlers"
	"github.com/Dosada05/magic-tournament/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Config struct {
	JWTSecret      []byte
	AllowedOrigins []string
	Logger         *slog.Logger
}

func SetupRoutes(
	router chi.Router,
	cfg Config,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	deckHandler *handlers.DeckHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(cfg.JWTSecret, cfg.Logger)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"description":"Magic Tournament API"}` + "\n"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/token", authHandler.Login)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayers)
		r.Post("/", authHandler.Register)

		r.Route("/{playerID}", func(r chi.Router) {
			r.Get("/", playerHandler.GetPlayer)
			r.Get("/matches", playerHandler.ListPlayerMatches)
			r.Get("/scores", playerHandler.ListPlayerScores)
			r.Get("/decks", deckHandler.ListPlayerDecks)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Patch("/score", playerHandler.SetScore)
				r.Post("/avatar", playerHandler.UploadAvatar)
				r.Delete("/", playerHandler.DeletePlayer)
			})
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.With(authenticate).Post("/", tournamentHandler.CreateHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByIDHandler)
			r.Get("/matches", matchHandler.ListTournamentMatches)
			r.Get("/standings", tournamentHandler.StandingsHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Patch("/", tournamentHandler.RenameHandler)
				r.Delete("/", tournamentHandler.DeleteHandler)
				r.Post("/players/{playerID}", tournamentHandler.EnrollPlayerHandler)
				r.Delete("/players/{playerID}", tournamentHandler.RemovePlayerHandler)
				r.Post("/start", tournamentHandler.StartHandler)
				r.Post("/next-phase", tournamentHandler.NextPhaseHandler)
				r.Post("/finish", tournamentHandler.FinishHandler)
			})
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.ListMatches)
		r.Get("/{matchID}", matchHandler.GetMatch)
		r.With(authenticate).Post("/{matchID}/result", matchHandler.RecordResult)
	})

	router.Route("/decks", func(r chi.Router) {
		r.Get("/", deckHandler.ListDecks)
		r.With(authenticate).Post("/", deckHandler.CreateDeck)

		r.Route("/{deckID}", func(r chi.Router) {
			r.Get("/", deckHandler.GetDeck)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Patch("/", deckHandler.UpdateDeck)
				r.Delete("/", deckHandler.DeleteDeck)
			})
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
