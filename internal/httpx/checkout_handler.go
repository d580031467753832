package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
	"github.com/FahriNazarudin/E-commerce/internal/auth"
	"github.com/FahriNazarudin/E-commerce/internal/checkout"
)

type CheckoutHandler struct {
	Checkout *checkout.Service
}

func (h *CheckoutHandler) snap(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeErr(w, apperr.New(apperr.Unauthorized, "Unauthorized access"))
		return
	}
	res, err := h.Checkout.CreateSnap(r.Context(), identity.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CheckoutHandler) qris(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeErr(w, apperr.New(apperr.Unauthorized, "Unauthorized access"))
		return
	}
	res, err := h.Checkout.CreateQRIS(r.Context(), identity.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *CheckoutHandler) status(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		writeErr(w, apperr.New(apperr.Validation, "Order ID is required"))
		return
	}
	raw, err := h.Checkout.Status(r.Context(), orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// notification acknowledges receipt, not business outcome: any processing
// failure maps to the fixed 500 body so the provider sees a well-formed
// response either way.
func (h *CheckoutHandler) notification(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error processing notification")
		return
	}
	if err := h.Checkout.HandleNotification(r.Context(), payload); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error processing notification")
		return
	}
	writeMessage(w, http.StatusOK, "Notification processed")
}
