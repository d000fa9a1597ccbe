// Package response holds the JSON reply helpers of the status API.
package response

import (
	"encoding/json"
	"net/http"
)

// APIError is the body of every non-2xx status API reply.
type APIError struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
}

// WriteJSON writes v as the JSON body under the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard error body.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, APIError{Error: message, StatusCode: status})
}

// WriteSuccess writes v with status 200.
func WriteSuccess(w http.ResponseWriter, v interface{}) {
	WriteJSON(w, http.StatusOK, v)
}
