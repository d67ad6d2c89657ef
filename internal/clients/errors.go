package clients

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ProviderError is a non-2xx answer from a third-party API. StatusCode is 0 when
// the provider could not be reached at all; Err then holds the transport error.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func unreachable(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  fmt.Sprintf("could not reach %s: %v", provider, err),
		Err:      err,
	}
}

// providerMessage pulls a human message out of the error shapes both providers use.
func providerMessage(body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
		Cause   []struct {
			Description string `json:"description"`
		} `json:"cause"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if len(payload.Error) > 0 {
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
			var plain string
			if json.Unmarshal(payload.Error, &plain) == nil && plain != "" {
				return plain
			}
		}
		for _, c := range payload.Cause {
			if c.Description != "" {
				return c.Description
			}
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	if text == "" {
		return "empty response body"
	}
	return text
}
