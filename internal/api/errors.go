package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// TransportError indicates the request never produced an HTTP response
// (connection refused, DNS failure, timeout). Callers show a generic retry
// message; no automatic retry happens anywhere in this client.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthError indicates invalid credentials or a rejected token (HTTP 401).
// The client does not auto-handle it; session invalidation is the caller's
// responsibility.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// ValidationError indicates the server rejected a payload's fields
// (HTTP 400). Fields maps field names to their problems when the server
// provided that detail level; Message holds the generic message otherwise.
type ValidationError struct {
	Fields  map[string][]string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return "validation failed"
		}
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return strings.Join(parts, ", ")
}

// APIError is any other non-2xx response, surfaced with the status and the
// server-provided body unchanged.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("request failed (HTTP %d)", e.StatusCode)
}

// errorFromResponse converts a non-2xx response body into the typed
// taxonomy. The server speaks DRF: errors arrive as {"error": "..."},
// {"detail": "..."}, or a per-field map of string lists.
func errorFromResponse(status int, body []byte) error {
	message, fields := parseErrorBody(body)

	switch {
	case status == http.StatusUnauthorized:
		return &AuthError{Message: message}
	case status == http.StatusBadRequest:
		return &ValidationError{Fields: fields, Message: message}
	default:
		return &APIError{StatusCode: status, Message: message, Body: string(body)}
	}
}

func parseErrorBody(body []byte) (message string, fields map[string][]string) {
	if len(body) == 0 {
		return "", nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return strings.TrimSpace(string(body)), nil
	}

	for _, key := range []string{"error", "detail", "message"} {
		var s string
		if v, ok := raw[key]; ok && json.Unmarshal(v, &s) == nil {
			message = s
			delete(raw, key)
			break
		}
	}

	for name, v := range raw {
		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			if fields == nil {
				fields = make(map[string][]string)
			}
			fields[name] = list
			continue
		}
		var single string
		if err := json.Unmarshal(v, &single); err == nil {
			if fields == nil {
				fields = make(map[string][]string)
			}
			fields[name] = []string{single}
		}
	}

	return message, fields
}

// ServerMessage extracts the server-provided message from an API error, or
// returns "" when the error carries none (or is not an API error at all).
func ServerMessage(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		if valErr.Message != "" {
			return valErr.Message
		}
		if len(valErr.Fields) > 0 {
			return valErr.Error()
		}
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
