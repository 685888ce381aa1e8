package entity

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorEnvelope is the error body returned by Blockfrost, sometimes with a 2xx status.
type ErrorEnvelope struct {
	StatusCode int    `json:"status_code"`
	ErrorName  string `json:"error"`
	Message    string `json:"message"`
	URL        string `json:"url,omitempty"`
	Body       any    `json:"body,omitempty"`
}

func (e *ErrorEnvelope) Error() string {
	return fmt.Sprintf("blockfrost error %d (%s): %s", e.StatusCode, e.ErrorName, e.Message)
}

// NewErrorEnvelope builds an envelope with the standard status text as error name.
func NewErrorEnvelope(status int, message string) *ErrorEnvelope {
	return &ErrorEnvelope{
		StatusCode: status,
		ErrorName:  http.StatusText(status),
		Message:    message,
	}
}

// AsErrorEnvelope checks the shape of a decoded JSON value: an object holding
// status_code, message and error. The HTTP status is never consulted.
func AsErrorEnvelope(data any) (*ErrorEnvelope, bool) {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	rawStatus, hasStatus := obj["status_code"]
	rawMessage, hasMessage := obj["message"]
	rawError, hasError := obj["error"]
	if !hasStatus || !hasMessage || !hasError {
		return nil, false
	}

	env := &ErrorEnvelope{
		StatusCode: toStatusCode(rawStatus),
		ErrorName:  fmt.Sprint(rawError),
		Message:    fmt.Sprint(rawMessage),
		Body:       obj["body"],
	}
	if u, ok := obj["url"].(string); ok {
		env.URL = u
	}
	return env, true
}

// toStatusCode приводит status_code к int. Конверт всегда означает ошибку,
// поэтому всё вне 400..599 (в том числе 2xx) считается 500.
func toStatusCode(v any) int {
	var code int
	switch n := v.(type) {
	case float64:
		code = int(n)
	case int:
		code = n
	case int64:
		code = int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return http.StatusInternalServerError
		}
		code = int(i)
	default:
		return http.StatusInternalServerError
	}
	if code < http.StatusBadRequest || code > 599 {
		return http.StatusInternalServerError
	}
	return code
}
