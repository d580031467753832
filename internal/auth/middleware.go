package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
	"github.com/FahriNazarudin/E-commerce/internal/users"
)

// Identity is the acting user resolved by Authenticate. It travels as an
// explicit request-context value; downstream code reads it once per handler.
type Identity struct {
	ID    int64
	Email string
	Role  string
}

type ctxKey struct{}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// WithIdentity is exported for handler tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

type Gate struct {
	Tokens *Tokens
	Users  users.Store
}

// Authenticate verifies the bearer token and requires the subject to still
// resolve to a stored user. The stored role wins over the token's role claim.
func (g *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w)
			return
		}
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			unauthorized(w)
			return
		}
		claims, err := g.Tokens.Parse(tokenStr)
		if err != nil {
			unauthorized(w)
			return
		}
		u, err := g.Users.GetByID(r.Context(), claims.ID)
		if err != nil {
			// a missing user means a revoked credential; anything else is an
			// infrastructure failure and must not read as one
			if apperr.KindOf(err) == apperr.NotFound {
				unauthorized(w)
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		ctx := WithIdentity(r.Context(), Identity{ID: u.ID, Email: u.Email, Role: u.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok || id.Role != users.RoleAdmin {
			writeMessage(w, http.StatusForbidden, "Forbidden access")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	writeMessage(w, http.StatusUnauthorized, "Unauthorized access")
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
