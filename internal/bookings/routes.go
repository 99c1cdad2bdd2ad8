package bookings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/WildTrails/WT-Backend/internal/accounts"
	"github.com/WildTrails/WT-Backend/internal/factory"
	"github.com/WildTrails/WT-Backend/internal/middleware"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Every booking route requires a session
	r.Use(accounts.Protect())

	r.Get("/my", MyBookingsHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(accounts.RoleAdmin, accounts.RoleLeadGuide))

		r.Get("/", factory.GetAll[Booking]())
		r.Post("/", factory.CreateOne[Booking]())
		r.Get("/{id}", factory.GetOne[Booking]())
		r.Patch("/{id}", factory.UpdateOne[Booking]())
		r.Delete("/{id}", factory.DeleteOne[Booking]())
	})

	return r
}
