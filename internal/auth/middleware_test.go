package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
	"github.com/FahriNazarudin/E-commerce/internal/users"
)

type gateStore struct {
	user *users.User
	err  error
}

func (s *gateStore) Create(_ context.Context, _ *users.User) error { return nil }

func (s *gateStore) GetByID(_ context.Context, id int64) (*users.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.ID != id {
		return nil, apperr.Newf(apperr.NotFound, "User id:%d not found", id)
	}
	return s.user, nil
}

func (s *gateStore) GetByEmail(_ context.Context, email string) (*users.User, error) {
	return nil, apperr.Newf(apperr.NotFound, "User with email %s not found", email)
}

func (s *gateStore) Update(_ context.Context, _ *users.User) error { return nil }

func serveGate(t *testing.T, gate *Gate, token string) (*httptest.ResponseRecorder, *Identity) {
	t.Helper()
	var got *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := IdentityFrom(r.Context()); ok {
			got = &id
		}
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/carts", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	gate.Authenticate(next).ServeHTTP(rec, req)
	return rec, got
}

func TestAuthenticateResolvesStoredUser(t *testing.T) {
	tokens := NewTokens("test-secret")
	store := &gateStore{user: &users.User{ID: 7, Email: "fahri@mail.com", Role: users.RoleUser}}
	gate := &Gate{Tokens: tokens, Users: store}

	// token carries a stale admin claim; the stored role wins
	token, err := tokens.Sign(7, "fahri@mail.com", users.RoleAdmin)
	require.NoError(t, err)

	rec, id := serveGate(t, gate, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, id)
	assert.Equal(t, int64(7), id.ID)
	assert.Equal(t, users.RoleUser, id.Role)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	tokens := NewTokens("test-secret")
	gate := &Gate{Tokens: tokens, Users: &gateStore{}}

	token, err := tokens.Sign(99, "ghost@mail.com", users.RoleUser)
	require.NoError(t, err)

	rec, id := serveGate(t, gate, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized access"}`, rec.Body.String())
	assert.Nil(t, id)
}

func TestAuthenticateStoreFailureIsNotUnauthorized(t *testing.T) {
	tokens := NewTokens("test-secret")
	gate := &Gate{Tokens: tokens, Users: &gateStore{err: errors.New("connection refused")}}

	token, err := tokens.Sign(7, "fahri@mail.com", users.RoleUser)
	require.NoError(t, err)

	rec, id := serveGate(t, gate, token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())
	assert.Nil(t, id)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	gate := &Gate{Tokens: NewTokens("test-secret"), Users: &gateStore{}}
	rec, id := serveGate(t, gate, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, id)
}
