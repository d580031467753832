package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
	"github.com/FahriNazarudin/E-commerce/internal/chatbot"
)

type ChatHandler struct {
	Bot *chatbot.Bot
}

func (h *ChatHandler) message(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, apperr.New(apperr.Validation, "Message is required"))
		return
	}
	if in.Message == "" {
		writeErr(w, apperr.New(apperr.Validation, "Message is required"))
		return
	}
	if in.SessionID == "" {
		in.SessionID = uuid.NewString()
	}
	reply := h.Bot.Reply(r.Context(), in.SessionID, in.Message)
	writeMessage(w, http.StatusOK, reply)
}
