package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the canonical success wrapper: {"data": ...}. Historically the
// backend answered with a mix of {user}, {data:{user}} and {data:{data:{user}}};
// everything now goes through this one shape.
type Envelope struct {
	Data any `json:"data"`
}

// ErrorBody is the canonical error wrapper: {"message": ...}. Details carries
// per-field validation messages when present.
type ErrorBody struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes {"data": v} with the given status code.
func WriteData(w http.ResponseWriter, code int, v any) {
	WriteJSON(w, code, Envelope{Data: v})
}

// WriteError writes {"message": msg} with the given status code.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, ErrorBody{Message: msg})
}

// WriteValidationError writes a 400 with per-field messages.
func WriteValidationError(w http.ResponseWriter, details map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{
		Message: "validation failed",
		Details: details,
	})
}

// NoCache marks the response as uncacheable. Required for anything carrying
// tokens or session state.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
