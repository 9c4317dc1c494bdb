package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every operation onto the HTTP surface.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-ID"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/users", func(rr chi.Router) {
		rr.Post("/", h.Register)
		rr.Get("/me", h.Profile)
		rr.Get("/me/history", h.History)
	})

	r.Route("/games", func(rr chi.Router) {
		rr.Post("/slots/spin", h.SlotsSpin)
		rr.Post("/dice/roll", h.DiceRoll)
		rr.Post("/roulette/spin", h.RouletteSpin)
		rr.Post("/plinko/drop", h.PlinkoDrop)
		rr.Post("/crash/start", h.CrashStart)
		rr.Post("/crash/cashout", h.CrashCashout)
		rr.Post("/blackjack/deal", h.BlackjackDeal)
		rr.Post("/blackjack/action", h.BlackjackAction)
	})

	r.Post("/streak/claim", h.StreakClaim)

	return r
}
