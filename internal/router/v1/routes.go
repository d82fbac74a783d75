package v1

import (
	"github.com/go-chi/chi/v5"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/handler"
)

// SetupRoutes configures the /v1 API
func SetupRoutes(stores *handler.StoreHandler) chi.Router {
	r := chi.NewRouter()

	r.Route("/stores", func(r chi.Router) {
		r.Get("/", stores.SearchStores)
		r.Get("/{id}", stores.GetStore)
		r.Get("/{id}/promotions", stores.StorePromotions)
	})
	r.Get("/promotions/active", stores.ActivePromotions)
	r.Get("/categories", stores.Categories)
	r.Get("/provinces", stores.Provinces)

	return r
}
