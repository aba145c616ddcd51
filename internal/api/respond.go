package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/spigell/interview-coach/internal/session"
	"github.com/spigell/interview-coach/internal/vapi"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// errorStatus maps the domain error taxonomy onto HTTP statuses.
func errorStatus(err error) int {
	var cfgErr *vapi.ConfigurationError
	var provErr *vapi.ProviderError

	switch {
	case errors.Is(err, session.ErrValidation), errors.Is(err, vapi.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError
	case errors.As(err, &provErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON body into dest. An empty body leaves dest untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	defer r.Body.Close()
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dest)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
