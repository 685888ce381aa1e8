package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestAsErrorEnvelope(t *testing.T) {
	env, ok := AsErrorEnvelope(decode(t, `{"status_code":400,"error":"Bad Request","message":"x"}`))
	require.True(t, ok)
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Bad Request", env.ErrorName)
	assert.Equal(t, "x", env.Message)

	env, ok = AsErrorEnvelope(decode(t, `{"status_code":404,"error":"Not Found","message":"gone","url":"/txs/ab"}`))
	require.True(t, ok)
	assert.Equal(t, "/txs/ab", env.URL)
}

func TestAsErrorEnvelope_NotAnEnvelope(t *testing.T) {
	for _, body := range []string{
		`{"status_code":400,"message":"x"}`,
		`{"hash":"abc","height":1}`,
		`[{"status_code":400,"error":"e","message":"m"}]`,
		`"plain string"`,
		`null`,
		`42`,
	} {
		_, ok := AsErrorEnvelope(decode(t, body))
		assert.False(t, ok, body)
	}
}

func TestAsErrorEnvelope_BadStatusCode(t *testing.T) {
	env, ok := AsErrorEnvelope(decode(t, `{"status_code":"oops","error":"e","message":"m"}`))
	require.True(t, ok)
	assert.Equal(t, 500, env.StatusCode)

	for _, code := range []string{"99", "200", "201", "302", "399", "600"} {
		env, ok = AsErrorEnvelope(decode(t, `{"status_code":`+code+`,"error":"e","message":"m"}`))
		require.True(t, ok, code)
		assert.Equal(t, 500, env.StatusCode, code)
	}

	env, ok = AsErrorEnvelope(decode(t, `{"status_code":599,"error":"e","message":"m"}`))
	require.True(t, ok)
	assert.Equal(t, 599, env.StatusCode)
}

func TestTransportError(t *testing.T) {
	var err error = fmt.Errorf("wrapped: %w", &TransportError{Status: 404, StatusText: "Not Found", URL: "http://x/y"})
	assert.True(t, IsNotFound(err))

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, te.Error(), "404 Not Found")

	assert.False(t, IsNotFound(&TransportError{Status: 500}))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestParseErrorUnwraps(t *testing.T) {
	inner := errors.New("unexpected end of JSON input")
	err := &ParseError{URL: "http://x", Err: inner}
	assert.ErrorIs(t, err, inner)
}

func TestAsErrorEnvelope_JSONNumber(t *testing.T) {
	env, ok := AsErrorEnvelope(map[string]any{
		"status_code": json.Number("429"),
		"error":       "Too Many Requests",
		"message":     "slow down",
	})
	require.True(t, ok)
	assert.Equal(t, 429, env.StatusCode)
}
