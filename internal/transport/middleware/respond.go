package middleware

import (
	"encoding/json"
	"net/http"
)

// writeEnvelope renders a rejection as the API error envelope
// {"errors":{"body":[message]}}, matching the handlers' error shape.
func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]map[string][]string{
		"errors": {"body": {message}},
	})
}
