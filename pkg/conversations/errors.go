package conversations

import (
	"fmt"
	"strings"
)

// APIErrorItem is a single error entry in a platform error response
type APIErrorItem struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Parameter   string `json:"parameter,omitempty"`
}

// APIError is the decoded error body of a failed platform request
type APIError struct {
	StatusCode int            `json:"-"`
	Errors     []APIErrorItem `json:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("conversations API error: status %d", e.StatusCode)
	}

	parts := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		if item.Parameter != "" {
			parts = append(parts, fmt.Sprintf("%s (code %d, parameter %s)", item.Description, item.Code, item.Parameter))
		} else {
			parts = append(parts, fmt.Sprintf("%s (code %d)", item.Description, item.Code))
		}
	}
	return fmt.Sprintf("conversations API error: status %d: %s", e.StatusCode, strings.Join(parts, "; "))
}

// IsRetryable reports whether the failed request may succeed on retry
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429 || e.StatusCode == 408
}
