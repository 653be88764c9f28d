package client

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// TestCategorizeError verifies that CategorizeError maps errors to the correct ErrorCategory
// for metrics labeling, including sentinel errors, wrapped errors, and message-based heuristics.
func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"nil", nil, ""},
		{"timeout context", context.DeadlineExceeded, ErrorCategoryTimeout},
		{"canceled context", context.Canceled, ErrorCategoryTimeout},
		{"invalid API key", ErrInvalidAPIKey, ErrorCategoryInvalidAPIKey},
		{"fetch error 401", &FetchError{StatusCode: 401, Status: "Unauthorized", kind: ErrInvalidAPIKey}, ErrorCategoryInvalidAPIKey},
		{"invalid params", fmt.Errorf("%w: Location(required)", ErrInvalidParams), ErrorCategoryInvalidParams},
		{"location not found", &FetchError{StatusCode: 400, kind: ErrLocationNotFound}, ErrorCategoryLocationNotFound},
		{"rate limited", ErrRateLimited, ErrorCategoryRateLimited},
		{"upstream failure", &FetchError{StatusCode: 503, kind: ErrUpstreamFailure}, ErrorCategoryUpstream},
		{"malformed payload", fmt.Errorf("%w: parse response", ErrMalformedPayload), ErrorCategoryParsing},
		{"transport timeout", fmt.Errorf("%w: request timeout: %w", ErrTransport, context.DeadlineExceeded), ErrorCategoryTimeout},
		{"transport failure", fmt.Errorf("%w: http request failed: dial tcp", ErrTransport), ErrorCategoryNetwork},
		{"connection in message", errors.New("connection refused"), ErrorCategoryNetwork},
		{"unknown", errors.New("something else"), ErrorCategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategorizeError(tt.err)
			if got != tt.want {
				t.Errorf("CategorizeError() = %v, want %v", got, tt.want)
			}
		})
	}
}
