package redirect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"blockfrost_proxy/internal/app/port"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// Числа остаются json.Number, чтобы большие значения проходили без потерь.
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// DecodeJSON decodes an upstream body the way RedirectResponse.JSON does.
func DecodeJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 10 << 20
)

// ErrBodyTooLarge is returned when the upstream answer exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("upstream response body too large")

// Config задает параметры исходящих запросов к Blockfrost.
type Config struct {
	Timeout      time.Duration
	MaxBodyBytes int64
}

var _ port.Redirector = (*HTTPRedirector)(nil)

// HTTPRedirector forwards inbound requests to an upstream base URL using net/http.
type HTTPRedirector struct {
	client       *http.Client
	maxBodyBytes int64
	logger       *zap.Logger
}

// NewHTTPRedirector creates a redirector with a pooled transport.
func NewHTTPRedirector(cfg Config, logger *zap.Logger) *HTTPRedirector {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        256,
		MaxIdleConnsPerHost: 64,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	return &HTTPRedirector{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			// Редиректы не выполняем: иначе project_id уйдет на хост из Location.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxBodyBytes: cfg.MaxBodyBytes,
		logger:       logger.Named("HTTPRedirector"),
	}
}

// Redirect implements port.Redirector.
// The outbound URL is {base}/{path}?{rawQuery}; method, body, Content-Type and
// Accept are copied from the inbound request, target headers are set on top.
func (r *HTTPRedirector) Redirect(ctx context.Context, target port.RedirectTarget, in *http.Request, path string) (*port.RedirectResponse, error) {
	outURL := strings.TrimRight(target.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if in.URL != nil && in.URL.RawQuery != "" {
		outURL += "?" + in.URL.RawQuery
	}

	var body io.Reader
	if in.Body != nil && in.Body != http.NoBody {
		body = in.Body
	}
	req, err := http.NewRequestWithContext(ctx, in.Method, outURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	if body != nil && in.ContentLength > 0 {
		req.ContentLength = in.ContentLength
	}
	for _, h := range []string{"Content-Type", "Accept"} {
		if v := in.Header.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}
	for k, vs := range target.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	// URL логируем без query: в нем могут быть пользовательские данные.
	r.logger.Debug("Forwarding request", zap.String("method", in.Method), zap.String("path", path))

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("Upstream request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	if int64(len(data)) > r.maxBodyBytes {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, r.maxBodyBytes)
	}

	return port.NewRedirectResponse(resp.StatusCode, resp.Header.Clone(), data, DecodeJSON), nil
}
