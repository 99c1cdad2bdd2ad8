package tours

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/WildTrails/WT-Backend/internal/accounts"
	"github.com/WildTrails/WT-Backend/internal/factory"
	"github.com/WildTrails/WT-Backend/internal/middleware"
	"github.com/WildTrails/WT-Backend/internal/reviews"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Public catalog routes
	r.Get("/", factory.GetAll[Tour]())
	r.Get("/top-5-cheap", TopToursHandler)
	r.Get("/stats", TourStatsHandler)
	r.Get("/{id}", factory.GetOne[Tour]())

	// Reviews nested under their tour
	r.Mount("/{tour_id}/reviews", reviews.NestedRoutes())

	// Catalog management requires staff roles
	r.Group(func(r chi.Router) {
		r.Use(accounts.Protect())
		r.Use(middleware.RequireRole(accounts.RoleAdmin, accounts.RoleLeadGuide))

		r.Post("/", factory.CreateOne[Tour]())
		r.Patch("/{id}", factory.UpdateOne[Tour]())
		r.Delete("/{id}", factory.DeleteOne[Tour]())
	})

	return r
}
