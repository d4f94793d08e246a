package routes

import (
	"log/slog"
	"net/http"

	"game_inventory/internal/controllers"
	"game_inventory/internal/middleware"
	"game_inventory/internal/services"
	"game_inventory/internal/storage/mariadb"
	"game_inventory/internal/views"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func SetupRouter(log *slog.Logger, storage *mariadb.Storage, renderer *views.Renderer) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	gameService := services.NewGameService(storage, log)
	gameController := controllers.NewGameController(gameService, renderer, log)
	healthController := controllers.NewHealthController(storage, log)

	r.Get("/", gameController.Index)
	r.Get("/healthz", healthController.Health)
	r.Handle("/static/*", http.StripPrefix("/static/", views.Static()))

	r.Route("/items", func(r chi.Router) {
		r.Get("/inactive", gameController.ListInactive)
		r.Get("/all", gameController.ListAll)
		r.Get("/new", gameController.NewForm)
		r.Post("/new", gameController.Create)
		r.Get("/edit/{id}", gameController.EditForm)
		r.Post("/edit/{id}", gameController.Update)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", gameController.Delete)
			r.Patch("/toggle", gameController.Toggle)
		})
	})

	return r
}
