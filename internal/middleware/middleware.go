package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/WildTrails/WT-Backend/internal/apperror"
	"github.com/WildTrails/WT-Backend/internal/token"
	"github.com/WildTrails/WT-Backend/internal/utils"
)

// AccountFetcher resolves an account id from a verified token into the
// account data handlers work with. Implemented by the accounts package;
// lookups must already exclude deactivated accounts.
type AccountFetcher interface {
	FindAccountByID(id string) (utils.AccountData, error)
}

// TokenVerifier checks a bearer token's signature and expiry.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// RequireAuth gates a route behind a valid session token. The token comes
// from the Authorization header ("Bearer <token>") or the jwt cookie. A
// token issued before the account's last password change is rejected even
// though its signature still checks out.
func RequireAuth(fetcher AccountFetcher, verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r)
			if raw == "" {
				utils.RespondError(w, apperror.Authentication("You are not logged in! Please log in to get access."))
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				utils.RespondError(w, err)
				return
			}

			account, err := fetcher.FindAccountByID(claims.Subject)
			if err != nil {
				utils.RespondError(w, apperror.Authentication("The user belonging to this token does no longer exist."))
				return
			}

			if stale(account, claims) {
				utils.RespondError(w, apperror.Authentication("User recently changed password! Please log in again."))
				return
			}

			ctx := context.WithValue(r.Context(), utils.ContextAccountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("jwt"); err == nil {
		return cookie.Value
	}
	return ""
}

func stale(account utils.AccountData, claims *token.Claims) bool {
	if account.PasswordChangedAt == nil || claims.IssuedAt == nil {
		return false
	}
	return account.PasswordChangedAt.After(claims.IssuedAt.Time)
}

// RequireRole allows the request through only when the authenticated
// account's role is in the allowed set. Must run after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := utils.GetAccountFromContext(r.Context())
			if !ok {
				utils.RespondError(w, apperror.Authentication("You are not logged in! Please log in to get access."))
				return
			}

			if _, ok := allowed[account.Role]; !ok {
				utils.RespondError(w, apperror.Authorization("You do not have permission to perform this action"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

var allowedOrigins = map[string]struct{}{
	"http://localhost:5173":          {},
	"http://localhost:5174":          {},
	"https://app.wildtrails.dev":     {},
	"https://staging.wildtrails.dev": {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowedOrigins[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func newRateLimiter(limit rate.Limit, burst int) *rateLimiter {
	return &rateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[ip]
	if !ok {
		// Drop stale entries before growing the map
		for addr, seen := range rl.visitors {
			if now.Sub(seen.lastSeen) > 10*time.Minute {
				delete(rl.visitors, addr)
			}
		}
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.Allow()
}

// LoginRateLimit throttles credential endpoints per client IP to slow down
// brute-force attempts: 10 requests burst, refilling one every 6 seconds.
func LoginRateLimit(next http.Handler) http.Handler {
	rl := newRateLimiter(rate.Every(6*time.Second), 10)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.allow(ip) {
			utils.RespondError(w, apperror.New(http.StatusTooManyRequests,
				"Too many requests from this IP, please try again later."))
			return
		}
		next.ServeHTTP(w, r)
	})
}
