package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// QuotaExhaustedError reports that every model in the ranked fallback chain
// failed on quota. LastErr is the underlying error from the final model.
type QuotaExhaustedError struct {
	Models  []string
	LastErr error
}

func (e *QuotaExhaustedError) Error() string {
	return fmt.Sprintf("all models exhausted their quota (%s): %v", strings.Join(e.Models, ", "), e.LastErr)
}

func (e *QuotaExhaustedError) Unwrap() error {
	return e.LastErr
}

// TimeoutError reports that a model call exceeded its time budget.
type TimeoutError struct {
	TimeoutMs int64
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("model call exceeded %dms budget", e.TimeoutMs)
}

// IsQuotaError reports whether err is a rate-limit or quota failure that
// should advance the fallback chain instead of aborting it. The SDK
// surfaces these as googleapi 429s, but wrapped transport errors sometimes
// only carry the status in their message.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota")
}
