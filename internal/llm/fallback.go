package llm

import (
	"context"
	"fmt"
	"log"
)

// InvokeWithFallback walks the ranked model list in order, returning the
// first successful result.
//
// The walk is strictly sequential: a later model is only worth trying once
// the current one is confirmed unavailable, and the bottleneck is learning
// which models are out of quota, not call latency. Quota errors advance the
// chain; any other error is fatal and propagates immediately with the
// remaining models untried. When every model fails on quota, the aggregate
// QuotaExhaustedError names the last underlying error.
func InvokeWithFallback(ctx context.Context, client Client, models []string, prompt string) (*Result, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("no models configured")
	}

	var lastQuotaErr error
	for _, model := range models {
		result, err := client.GenerateContent(ctx, model, prompt)
		if err == nil {
			return result, nil
		}
		if !IsQuotaError(err) {
			return nil, err
		}
		log.Printf("model %s out of quota, trying next ranked model: %v", model, err)
		lastQuotaErr = err
	}

	return nil, &QuotaExhaustedError{Models: models, LastErr: lastQuotaErr}
}
