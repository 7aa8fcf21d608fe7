package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// M is shorthand for ad-hoc JSON response bodies.
type M map[string]interface{}

// RespondWithError answers with {"error": msg} at the given status.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"error": msg})
}

// RespondWithJSON writes data as a JSON body. Encode failures after the
// header went out can only be logged.
func RespondWithJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Println("response encode error:", err)
	}
}
