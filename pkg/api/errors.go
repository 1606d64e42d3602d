// Package api maps domain errors onto the HTTP surface: a status code, a
// stable machine-readable code, and a translation key for the human
// message.
package api

import (
	"net/http"

	"admitd/internal/domain"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusFor returns the HTTP status for a domain error code. Unknown codes
// map to 500.
func StatusFor(code string) int {
	switch code {
	case "event_not_found", "user_not_found":
		return http.StatusNotFound
	case "already_member", "not_on_waitlist", "invalid_transition", "cannot_reduce_spots":
		return http.StatusUnprocessableEntity
	case "capacity_exceeded":
		return http.StatusConflict
	case "not_organizer":
		return http.StatusForbidden
	case "store_unavailable":
		return http.StatusServiceUnavailable
	case "timeout":
		return http.StatusGatewayTimeout
	case "bad_request":
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// MessageKey returns the translation key for a domain error code.
func MessageKey(code string) string {
	if code == "" {
		return "error.internal"
	}
	return "error." + code
}

// CodeFor extracts the stable code for err, defaulting to "internal".
func CodeFor(err error) string {
	if code := domain.Code(err); code != "" {
		return code
	}
	return "internal"
}
