// Package httpx carries the request and response helpers shared by every
// StockPilot handler. Errors go out as RFC 7807 problem documents; see
// errors.go for the sentinel-to-status mapping.
package httpx

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes caps request bodies decoded through DecodeJSON. Admin
// payloads are small; anything past this is not a legitimate request.
const maxBodyBytes = 1 << 20

// ProblemDetail is the RFC 7807 error body returned by every endpoint.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JSON writes data as a JSON body with the given status. Encoding errors
// are dropped; the status line is already on the wire by then.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem writes an RFC 7807 problem document.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ProblemDetail{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// DecodeJSON reads the request body into target, capped at maxBodyBytes.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(target)
}
