package entity

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnknownNetwork is returned when a numeric network id has no mapping.
	ErrUnknownNetwork = errors.New("unknown network")
	// ErrUnsupportedNetwork is returned when a network token is not permitted.
	// Callers surface it as 404.
	ErrUnsupportedNetwork = errors.New("unsupported network")
	// ErrInvalidTransaction is returned when a transaction payload is neither hex nor well-formed CBOR.
	ErrInvalidTransaction = errors.New("invalid transaction cbor")
)

// UnknownNetworkError carries the numeric id that failed to resolve.
type UnknownNetworkError struct {
	ID int
}

func (e *UnknownNetworkError) Error() string {
	return fmt.Sprintf("unknown network %d", e.ID)
}

func (e *UnknownNetworkError) Is(target error) bool {
	return target == ErrUnknownNetwork
}

// TransportError is an HTTP-level failure (non-2xx/3xx status) on either proxy hop.
type TransportError struct {
	Status     int
	StatusText string
	URL        string
	Body       []byte
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %d %s", e.URL, e.Status, e.StatusText)
}

// IsNotFound reports whether the upstream answered 404.
func (e *TransportError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsNotFound reports whether err is a TransportError with status 404.
func IsNotFound(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.IsNotFound()
}

// ParseError is returned when a response body is not valid JSON.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BalanceError describes a failure to build the balance of a single address.
type BalanceError struct {
	Address string  `json:"address"`
	Network Network `json:"network"`
	Message string  `json:"message"`
}
