package reviews

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/WildTrails/WT-Backend/internal/accounts"
	"github.com/WildTrails/WT-Backend/internal/factory"
	"github.com/WildTrails/WT-Backend/internal/middleware"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", factory.GetAll[Review]())
	r.Get("/{id}", factory.GetOne[Review]())

	r.Group(func(r chi.Router) {
		r.Use(accounts.Protect())
		r.With(middleware.RequireRole(accounts.RoleUser, accounts.RoleAdmin)).
			Post("/", CreateReviewHandler)
		r.Patch("/{id}", UpdateReviewHandler)
		r.Delete("/{id}", DeleteReviewHandler)
	})

	return r
}

// NestedRoutes serves /tours/{tour_id}/reviews; the tour id in the URL
// scopes the list and fills the tour on create.
func NestedRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", NestedListHandler)
	r.With(accounts.Protect(), middleware.RequireRole(accounts.RoleUser, accounts.RoleAdmin)).
		Post("/", CreateReviewHandler)

	return r
}
