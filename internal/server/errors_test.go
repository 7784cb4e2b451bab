package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmarques/curriculo-agent/internal/extract"
	"github.com/rmarques/curriculo-agent/internal/jobdata"
	"github.com/rmarques/curriculo-agent/internal/llm"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation error",
			err:  &ErrValidation{Field: "jobDescription", Message: "too short"},
			want: http.StatusBadRequest,
		},
		{
			name: "quota exhausted",
			err:  &llm.QuotaExhaustedError{Models: []string{"a", "b"}},
			want: http.StatusTooManyRequests,
		},
		{
			name: "timeout",
			err:  &llm.TimeoutError{TimeoutMs: 90000},
			want: http.StatusGatewayTimeout,
		},
		{
			name: "extraction failure",
			err:  &extract.ExtractionError{Kind: extract.NoJSONFound},
			want: http.StatusBadGateway,
		},
		{
			name: "schema violation",
			err:  &jobdata.SchemaValidationError{},
			want: http.StatusBadGateway,
		},
		{
			name: "wrapped typed error",
			err:  fmt.Errorf("pipeline: %w", &llm.TimeoutError{TimeoutMs: 100}),
			want: http.StatusGatewayTimeout,
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessageHidesInternals(t *testing.T) {
	err := errors.New("pgx: connection refused at 10.0.0.5")
	assert.Equal(t, "internal server error", publicMessage(err, http.StatusInternalServerError))

	timeout := &llm.TimeoutError{TimeoutMs: 100}
	assert.Equal(t, "model request timed out", publicMessage(timeout, http.StatusGatewayTimeout))
}
