package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string        `env:"PORT" env-default:"5050"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	JWTSecret    string        `env:"JWT_SECRET" env-required:"true"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" env-default:"24h"`
	BcryptCost   int           `env:"BCRYPT_COST" env-default:"12"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort string `env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	MailFrom string `env:"MAIL_FROM" env-default:"WildTrails <hello@wildtrails.dev>"`
}

// MustLoad reads .env.local (if present) and the process environment.
// Panics on missing required values so misconfiguration fails at startup.
func MustLoad() *Config {
	_ = godotenv.Load(".env.local")

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	return &cfg
}
