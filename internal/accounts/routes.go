package accounts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/WildTrails/WT-Backend/internal/apperror"
	"github.com/WildTrails/WT-Backend/internal/factory"
	"github.com/WildTrails/WT-Backend/internal/middleware"
	"github.com/WildTrails/WT-Backend/internal/utils"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Credential endpoints are the brute-force surface, so they share the
	// per-IP limiter.
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoginRateLimit)
		r.Post("/signup", SignupHandler)
		r.Post("/login", LoginHandler)
		r.Post("/forgot-password", ForgotPasswordHandler)
		r.Patch("/reset-password/{token}", ResetPasswordHandler)
	})

	r.Get("/logout", LogoutHandler)

	r.Group(func(r chi.Router) {
		r.Use(Protect())
		r.Patch("/update-password", UpdatePasswordHandler)
		r.Get("/me", MeHandler)
		r.Patch("/me", UpdateMeHandler)
		r.Delete("/me", DeleteMeHandler)
	})

	// Admin management of the whole collection
	r.Group(func(r chi.Router) {
		r.Use(Protect())
		r.Use(middleware.RequireRole(RoleAdmin))
		r.Get("/", factory.GetAll[User](ActiveOnly))
		r.Post("/", CreateUserHandler)
		r.Get("/{id}", factory.GetOne[User](ActiveOnly))
		r.Patch("/{id}", AdminUpdateUserHandler)
		r.Delete("/{id}", factory.DeleteOne[User]())
	})

	return r
}

// CreateUserHandler exists so the admin collection route answers POST;
// accounts are only created through signup, where the hash pipeline runs.
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondError(w, apperror.Internal("This route is not defined! Please use /signup instead"))
}
