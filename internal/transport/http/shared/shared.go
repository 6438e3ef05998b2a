// Package shared centralizes the JSON response envelope and domain error
// translation so every handler speaks the same dialect.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "sgc/pkg/domain-errors"
)

// WriteData writes a successful response wrapped in the data envelope the
// front-end expects.
func WriteData(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": v})
}

// WriteError translates a coded domain error into the JSON error envelope.
// Uncoded errors surface as internal.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	body := map[string]string{"error": string(code)}
	var coded *dErrors.Error
	if errors.As(err, &coded) && coded.Message != "" {
		body["message"] = coded.Message
	}
	_ = json.NewEncoder(w).Encode(body)
}
