package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
	"github.com/FahriNazarudin/E-commerce/internal/auth"
	"github.com/FahriNazarudin/E-commerce/internal/cart"
)

type CartStore interface {
	AddItem(ctx context.Context, userID, productID int64, quantity int) error
	ListItems(ctx context.Context, userID int64) ([]cart.Line, error)
	UpdateItem(ctx context.Context, userID, lineID, productID int64, quantity int) error
	DeleteItem(ctx context.Context, userID, lineID int64) error
}

type CartsHandler struct {
	Carts CartStore
}

func (h *CartsHandler) add(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeErr(w, apperr.New(apperr.Unauthorized, "Unauthorized access"))
		return
	}
	var in struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}
	if err := h.Carts.AddItem(r.Context(), identity.ID, in.ProductID, in.Quantity); err != nil {
		writeErr(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Item added to cart")
}

func (h *CartsHandler) list(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeErr(w, apperr.New(apperr.Unauthorized, "Unauthorized access"))
		return
	}
	lines, err := h.Carts.ListItems(r.Context(), identity.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (h *CartsHandler) update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeErr(w, apperr.New(apperr.Unauthorized, "Unauthorized access"))
		return
	}
	id, err := pathID(r, "Invalid cart item ID")
	if err != nil {
		writeErr(w, err)
		return
	}
	var in struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, apperr.New(apperr.Validation, "Invalid request body"))
		return
	}
	if err := h.Carts.UpdateItem(r.Context(), identity.ID, id, in.ProductID, in.Quantity); err != nil {
		writeErr(w, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Cart with ID %d successfully updated", id))
}

func (h *CartsHandler) delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeErr(w, apperr.New(apperr.Unauthorized, "Unauthorized access"))
		return
	}
	id, err := pathID(r, "Invalid cart item ID")
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := h.Carts.DeleteItem(r.Context(), identity.ID, id); err != nil {
		writeErr(w, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Cart with ID %d successfully deleted", id))
}
