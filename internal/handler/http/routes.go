package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getVersion)
		r.Get("/stats", h.getStats)
		r.Post("/sync", h.runSync)

		r.Route("/cache", func(r chi.Router) {
			r.Get("/status", h.getCacheStatus)
			r.Get("/ready", h.getCacheReady)
			r.Post("/download", h.startDownload)
			r.Post("/refresh", h.refreshCache)
			r.Delete("/", h.clearCache)
		})

		r.Route("/records", func(r chi.Router) {
			r.Get("/", h.getRecordsPage)
			r.Get("/search", h.searchRecords)
			r.Get("/{id}", h.getRecord)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.listFavorites)
			r.Put("/{id}", h.addFavorite)
			r.Delete("/{id}", h.removeFavorite)
		})

		r.Get("/addresses/{id}", h.getAddress)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
