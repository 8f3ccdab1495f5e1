package api

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	custom_errors "github-profile-analyzer/internal/errors"
)

type envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *errorBody     `json:"error,omitempty"`
	Meta    map[string]any `json:"meta"`
}

type errorBody struct {
	Message string `json:"message"`
}

// respondWithJSON writes a success envelope. meta may be nil.
func respondWithJSON(w http.ResponseWriter, code int, data any, meta map[string]any) {
	writeEnvelope(w, code, envelope{Success: true, Data: data, Meta: withTimestamp(meta)})
}

func respondWithError(w http.ResponseWriter, r *http.Request, code int, message string) {
	writeEnvelope(w, code, envelope{
		Success: false,
		Error:   &errorBody{Message: message},
		Meta: withTimestamp(map[string]any{
			"path":   r.URL.RequestURI(),
			"method": r.Method,
		}),
	})
}

func writeEnvelope(w http.ResponseWriter, code int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func withTimestamp(meta map[string]any) map[string]any {
	if meta == nil {
		meta = make(map[string]any, 1)
	}
	meta["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	return meta
}

// statusFor maps a domain error kind to its HTTP status code.
func statusFor(err error) int {
	switch custom_errors.KindOf(err) {
	case custom_errors.KindValidation:
		return http.StatusBadRequest
	case custom_errors.KindUnauthorized:
		return http.StatusUnauthorized
	case custom_errors.KindNotFound:
		return http.StatusNotFound
	case custom_errors.KindRateLimited:
		return http.StatusTooManyRequests
	case custom_errors.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
