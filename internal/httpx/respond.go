package httpx

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

// writeErr maps the error taxonomy to HTTP exactly once. Unclassified errors
// are logged and reported as a generic 500.
func writeErr(w http.ResponseWriter, err error) {
	if apperr.KindOf(err) == apperr.Internal {
		log.Printf("internal error: %v", err)
	}
	writeMessage(w, apperr.HTTPStatus(err), apperr.PublicMessage(err))
}
