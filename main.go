package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/WildTrails/WT-Backend/internal/accounts"
	"github.com/WildTrails/WT-Backend/internal/bookings"
	"github.com/WildTrails/WT-Backend/internal/config"
	"github.com/WildTrails/WT-Backend/internal/db"
	"github.com/WildTrails/WT-Backend/internal/middleware"
	"github.com/WildTrails/WT-Backend/internal/reviews"
	"github.com/WildTrails/WT-Backend/internal/tours"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	cfg := config.MustLoad()
	db.Connect(cfg.DatabaseURL)

	accounts.Init(cfg)
	tours.Init()
	reviews.Init()
	bookings.Init()

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/api/v1/users", accounts.SetupRoutes())
	r.Mount("/api/v1/tours", tours.SetupRoutes())
	r.Mount("/api/v1/reviews", reviews.SetupRoutes())
	r.Mount("/api/v1/bookings", bookings.SetupRoutes())

	fmt.Println("Server listening on port :" + cfg.Port + "...")

	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Port, r))
}
