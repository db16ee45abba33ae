package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope is the uniform response body. Success responses carry Message and
// Data; error responses carry Message and, when available, Error details.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Success(w http.ResponseWriter, status int, msg string, data any) {
	WriteJSON(w, status, Envelope{Status: true, Message: msg, Data: data})
}

func Error(w http.ResponseWriter, status int, msg string, details any) {
	WriteJSON(w, status, Envelope{Status: false, Message: msg, Error: details})
}

func Unauthorized(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "Unauthorized"
	}
	WriteJSON(w, http.StatusUnauthorized, Envelope{Status: false, Message: msg})
}

func Forbidden(w http.ResponseWriter) {
	WriteJSON(w, http.StatusForbidden, Envelope{Status: false, Message: "Forbidden"})
}

// NotFound is the fallback for requests that matched no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, Envelope{
		Status:  false,
		Message: fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
		Error:   "Endpoint not found",
	})
}
