package models

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type IDResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message,omitempty"`
}

type PreviewResponse struct {
	Headers []string `json:"headers"`
}

type SchemaResponse struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
}

type PrepareFollowUpResponse struct {
	ID          int64  `json:"id"`
	RedirectURL string `json:"redirect_url"`
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}
