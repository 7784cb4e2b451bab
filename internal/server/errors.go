// Package server provides the HTTP API for the job parsing pipeline.
package server

import (
	"errors"
	"net/http"

	"github.com/rmarques/curriculo-agent/internal/extract"
	"github.com/rmarques/curriculo-agent/internal/jobdata"
	"github.com/rmarques/curriculo-agent/internal/llm"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Field + " - " + e.Message
}

// HTTPStatus returns the appropriate HTTP status code for a pipeline error.
// Model-output failures map to 502: the request was fine, the upstream reply
// was not.
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		extractErr    *extract.ExtractionError
		schemaErr     *jobdata.SchemaValidationError
		quotaErr      *llm.QuotaExhaustedError
		timeoutErr    *llm.TimeoutError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &quotaErr):
		return http.StatusTooManyRequests
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &extractErr), errors.As(err, &schemaErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the error detail safe to expose to clients.
// Internal errors stay in the server logs.
func publicMessage(err error, status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusTooManyRequests:
		return err.Error()
	case http.StatusGatewayTimeout:
		return "model request timed out"
	case http.StatusBadGateway:
		return "model returned unusable output"
	default:
		return "internal server error"
	}
}
