package base

import (
	"encoding/json"
	"strings"
)

// ProviderError is one entry of the {"errors": [...]} envelope most supplier
// APIs return on failure.
type ProviderError struct {
	Code    string
	Title   string
	Detail  string
	Message string
}

// Text returns the most descriptive human-readable field.
func (e ProviderError) Text() string {
	for _, s := range []string{e.Detail, e.Message, e.Title} {
		if s != "" {
			return s
		}
	}
	return e.Code
}

type providerErrorWire struct {
	Code    json.RawMessage `json:"code"`
	Title   string          `json:"title"`
	Detail  string          `json:"detail"`
	Message string          `json:"message"`
}

// ParseProviderErrors decodes the errors envelope. Codes may be JSON strings
// or numbers; both are returned as strings. Bodies in any other shape yield nil.
func ParseProviderErrors(body []byte) []ProviderError {
	var env struct {
		Errors []providerErrorWire `json:"errors"`
	}
	if len(body) == 0 || json.Unmarshal(body, &env) != nil {
		return nil
	}

	out := make([]ProviderError, 0, len(env.Errors))
	for _, e := range env.Errors {
		out = append(out, ProviderError{
			Code:    rawCode(e.Code),
			Title:   e.Title,
			Detail:  e.Detail,
			Message: e.Message,
		})
	}
	return out
}

func rawCode(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// firstErrorCode returns the first provider error code in body, if any.
func firstErrorCode(body []byte) string {
	for _, e := range ParseProviderErrors(body) {
		if e.Code != "" {
			return e.Code
		}
	}
	return ""
}
