package api

import (
	_ "currencyconv/docs"
	"currencyconv/internal/currency/handler"
	httpserver "currencyconv/internal/platform/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(currencyHandler *handler.Handler, log logrus.FieldLogger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(httpserver.RequestID)
	router.Use(httpserver.RequestLogger(log))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/hello", currencyHandler.Hello)
		r.Post("/convert", currencyHandler.Convert)

		r.Route("/currencies", func(r chi.Router) {
			r.Post("/", currencyHandler.Register)
			r.Get("/", currencyHandler.List)
			r.Get("/by-name/{name}", currencyHandler.GetByName)
			r.Put("/by-id/{id}", currencyHandler.ReplaceByID)
			r.Patch("/by-id/{id}", currencyHandler.PatchByID)
			r.Get("/{id}", currencyHandler.GetByID)
			r.Delete("/{id}", currencyHandler.Delete)
			r.Put("/{name}", currencyHandler.Replace)
			r.Patch("/{name}", currencyHandler.Patch)
		})
	})
	return router
}
