package port

import (
	"context"
	"net/http"
)

// RedirectTarget is the upstream a request is forwarded to.
type RedirectTarget struct {
	BaseURL string
	Header  http.Header
}

// RedirectResponse is the buffered upstream answer.
type RedirectResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	decode     func(data []byte, v any) error
}

// NewRedirectResponse wraps a buffered upstream answer with a JSON decoder.
func NewRedirectResponse(status int, header http.Header, body []byte, decode func(data []byte, v any) error) *RedirectResponse {
	return &RedirectResponse{StatusCode: status, Header: header, Body: body, decode: decode}
}

// JSON decodes the body into v.
func (r *RedirectResponse) JSON(v any) error {
	return r.decode(r.Body, v)
}

// Redirector forwards an inbound request to an upstream base URL.
// path is the part of the inbound path after the network segment.
type Redirector interface {
	Redirect(ctx context.Context, target RedirectTarget, in *http.Request, path string) (*RedirectResponse, error)
}
