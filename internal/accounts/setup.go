package accounts

import (
	"log"
	"net/http"

	"github.com/WildTrails/WT-Backend/internal/config"
	"github.com/WildTrails/WT-Backend/internal/db"
	"github.com/WildTrails/WT-Backend/internal/middleware"
	"github.com/WildTrails/WT-Backend/internal/token"
)

var (
	store  *Store
	tokens *token.Service
	mailer Mailer
)

func Init(cfg *config.Config) {
	if err := db.EnsureSchema(db.DB, "accounts"); err != nil {
		log.Fatal("Failed to ensure schema accounts: ", err)
	}
	if err := db.DB.AutoMigrate(&User{}); err != nil {
		log.Fatal("Failed to auto-migrate tables: ", err)
	}

	store = NewStore(db.DB, cfg.BcryptCost)
	tokens = token.NewService(cfg.JWTSecret, cfg.JWTExpiresIn)

	if cfg.SMTPHost != "" {
		mailer = NewSMTPMailer(cfg)
	} else {
		log.Println("SMTP_HOST not set, mail goes to the log")
		mailer = logMailer{}
	}
}

// Protect is the auth gate other modules put in front of their routes.
func Protect() func(http.Handler) http.Handler {
	return middleware.RequireAuth(AccountInfo{}, tokens)
}

// UseMailer swaps the mail collaborator; tests use this to observe and fail
// deliveries.
func UseMailer(m Mailer) { mailer = m }
