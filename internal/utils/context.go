package utils

import (
	"context"
	"time"
)

// AccountData is the authenticated account as seen by request handlers.
// It never carries the password hash.
type AccountData struct {
	ID                string
	Name              string
	Email             string
	Role              string
	PasswordChangedAt *time.Time
}

type contextKey string

const ContextAccountKey contextKey = "account"

func GetAccountFromContext(ctx context.Context) (AccountData, bool) {
	account, ok := ctx.Value(ContextAccountKey).(AccountData)
	return account, ok
}
