package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leaguedesk/internal/apiclient"
	"github.com/codr1/leaguedesk/internal/validation"
)

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error  string                 `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError maps err onto a JSON error response. Validation failures become
// 422 with per-field reasons, HandlerErrors keep their status, and backend
// errors pass their status and message through (5xx upstream becomes 502).
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.Ctx(r.Context())

	if fieldErrs, ok := validation.As(err); ok {
		writeErrorBody(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "Validation failed", Fields: fieldErrs})
		return
	}

	var handlerErr HandlerError
	if errors.As(err, &handlerErr) {
		if handlerErr.Status >= http.StatusInternalServerError {
			logger.Error().Err(handlerErr.Err).Msg(handlerErr.Message)
		}
		writeErrorBody(w, handlerErr.Status, ErrorResponse{Error: handlerErr.Message})
		return
	}

	if errors.Is(err, apiclient.ErrSessionExpired) {
		logger.Warn().Err(err).Msg("Backend session expired")
		writeErrorBody(w, http.StatusUnauthorized, ErrorResponse{Error: "Session expired"})
		return
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Int("upstream_status", apiErr.Status).Str("upstream_path", apiErr.Path).Msg("Backend request failed")
			status = http.StatusBadGateway
		}
		writeErrorBody(w, status, ErrorResponse{Error: apiErr.Message})
		return
	}

	logger.Error().Err(err).Msg("Request failed")
	writeErrorBody(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

func writeErrorBody(w http.ResponseWriter, status int, body ErrorResponse) {
	if err := WriteJSON(w, status, body); err != nil {
		http.Error(w, body.Error, status)
	}
}
