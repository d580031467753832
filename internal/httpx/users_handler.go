package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
	"github.com/FahriNazarudin/E-commerce/internal/auth"
	"github.com/FahriNazarudin/E-commerce/internal/users"
)

type UsersHandler struct {
	Users  *users.Service
	Tokens *auth.Tokens
}

func (h *UsersHandler) register(w http.ResponseWriter, r *http.Request) {
	var in users.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}
	u, err := h.Users.Register(r.Context(), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"username": u.Username,
		"email":    u.Email,
	})
}

func (h *UsersHandler) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}
	u, err := h.Users.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.respondToken(w, u)
}

func (h *UsersHandler) googleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		GoogleToken string `json:"googleToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}
	u, err := h.Users.GoogleLogin(r.Context(), in.GoogleToken)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.respondToken(w, u)
}

func (h *UsersHandler) respondToken(w http.ResponseWriter, u *users.User) {
	token, err := h.Tokens.Sign(u.ID, u.Email, u.Role)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

func (h *UsersHandler) get(w http.ResponseWriter, r *http.Request) {
	id, identity, err := h.targetUser(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if identity.ID != id && identity.Role != users.RoleAdmin {
		writeErr(w, apperr.New(apperr.Forbidden, "Forbidden access"))
		return
	}
	u, err := h.Users.Get(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request) {
	id, identity, err := h.targetUser(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if identity.ID != id && identity.Role != users.RoleAdmin {
		writeErr(w, apperr.New(apperr.Forbidden, "Forbidden access"))
		return
	}
	var in users.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}
	u, err := h.Users.Update(r.Context(), id, in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) targetUser(r *http.Request) (int64, auth.Identity, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, auth.Identity{}, apperr.New(apperr.Validation, "Invalid user ID")
	}
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		return 0, auth.Identity{}, apperr.New(apperr.Unauthorized, "Unauthorized access")
	}
	return id, identity, nil
}
