package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteData wraps v in the { "data": ... } envelope the client expects
func WriteData(w http.ResponseWriter, status int, v interface{}) {
	WriteJSON(w, status, map[string]interface{}{"data": v})
}

// WriteError writes a JSON error body with a human-readable message
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}
