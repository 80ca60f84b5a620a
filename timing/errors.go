package timing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrMissingToken indicates the client was built without an API token
	ErrMissingToken = errors.New("timing API token is required")
	// ErrInvalidBaseURL indicates the configured base URL could not be parsed
	ErrInvalidBaseURL = errors.New("invalid timing base URL")
	// ErrMissingID indicates a resource operation was called without an identifier
	ErrMissingID = errors.New("resource id is required")
	// ErrInvalidOptions indicates caller options failed validation
	ErrInvalidOptions = errors.New("invalid options")
)

const unknownErrorMessage = "An unknown error occurred"

// TransportError is returned by a Transport when the call reached the
// network layer and failed there: either the service answered with a
// non-2xx status, or no response arrived at all.
type TransportError struct {
	// StatusCode is zero when no response was received.
	StatusCode int
	Header     http.Header
	Body       []byte
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return firstNonEmpty(e.message(), "request failed")
}

func (e *TransportError) message() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request failed with status code %d", e.StatusCode)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HasResponse reports whether the service answered at all.
func (e *TransportError) HasResponse() bool {
	return e.StatusCode != 0
}

// APIError is the normalized form of every failure that reached the
// transport. Code is empty when the service did not supply one.
type APIError struct {
	Status  int
	Message string
	Code    string
	// Err is the original transport error, kept for diagnostics.
	Err error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("timing API error: status %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("timing API error: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsConflict checks if the service rejected the call because of current state,
// e.g. starting a timer while another one is running.
func (e *APIError) IsConflict() bool {
	return e.Status == http.StatusConflict || e.Status == http.StatusUnprocessableEntity
}

// HasCode checks the service-specific error code.
func (e *APIError) HasCode(code string) bool {
	return e.Code != "" && e.Code == code
}

// AsAPIError returns the normalized error carried by err, if any.
// Errors raised before a request was sent never match.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// normalizeError converts a transport failure into an *APIError. Anything
// that did not come from the transport, and anything already normalized,
// is returned unchanged.
func normalizeError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}

	var tErr *TransportError
	if !errors.As(err, &tErr) {
		return err
	}

	status := http.StatusInternalServerError
	if tErr.HasResponse() {
		status = tErr.StatusCode
	}

	body := errorBody(tErr.Body)

	message := firstNonEmpty(
		stringField(body, "error"),
		stringField(body, "message"),
		tErr.message(),
		unknownErrorMessage,
	)

	return &APIError{
		Status:  status,
		Message: message,
		Code:    codeField(body),
		Err:     err,
	}
}

// errorBody decodes an error response. Bodies that are empty, not JSON or
// not a JSON object yield an empty map.
func errorBody(raw []byte) map[string]any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return map[string]any{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil || body == nil {
		return map[string]any{}
	}
	return body
}

func stringField(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

func codeField(body map[string]any) string {
	switch v := body["code"].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
