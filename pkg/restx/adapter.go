package restx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/dealerseed/pkg/slogx"
)

// Adapter performs HTTP verb calls against a fixed base URL.
type Adapter interface {
	BaseURL() string

	Get(ctx context.Context, path string) (*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
	Put(ctx context.Context, path string, body any) (*Response, error)
	Patch(ctx context.Context, path string, body any) (*Response, error)
	Delete(ctx context.Context, path string) (*Response, error)

	Do(ctx context.Context, method, path string, body any) (*Response, error)
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return errors.New("restx: empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("restx: failed to decode response: %w", err)
	}
	return nil
}

// RestAdapter is the net/http backed Adapter. Its configuration is fixed at
// construction; it holds no per-call state and is safe for concurrent use.
type RestAdapter struct {
	baseURL       string
	timeout       time.Duration
	authenticator Authenticator
	limiter       *rate.Limiter
	headers       http.Header
	logger        *slog.Logger
	httpClient    *http.Client
}

// NewAdapter builds an adapter for baseURL. It performs no I/O.
func NewAdapter(baseURL string, opts ...Option) *RestAdapter {
	a := &RestAdapter{
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.httpClient == nil {
		a.httpClient = &http.Client{Transport: slogx.NewTransport(nil, a.logger)}
	}
	return a
}

func (a *RestAdapter) BaseURL() string { return a.baseURL }

// Timeout returns the per-call timeout, zero when unset.
func (a *RestAdapter) Timeout() time.Duration { return a.timeout }

// Authenticator returns the authenticator, nil for anonymous adapters.
func (a *RestAdapter) Authenticator() Authenticator { return a.authenticator }

func (a *RestAdapter) Get(ctx context.Context, path string) (*Response, error) {
	return a.Do(ctx, http.MethodGet, path, nil)
}

func (a *RestAdapter) Post(ctx context.Context, path string, body any) (*Response, error) {
	return a.Do(ctx, http.MethodPost, path, body)
}

func (a *RestAdapter) Put(ctx context.Context, path string, body any) (*Response, error) {
	return a.Do(ctx, http.MethodPut, path, body)
}

func (a *RestAdapter) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return a.Do(ctx, http.MethodPatch, path, body)
}

func (a *RestAdapter) Delete(ctx context.Context, path string) (*Response, error) {
	return a.Do(ctx, http.MethodDelete, path, nil)
}

// Do executes one request. Non-2xx answers come back as *StatusError.
func (a *RestAdapter) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %w", ErrTransport, err)
		}
	}

	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	target := a.url(path)
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("restx: failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, values := range a.headers {
		req.Header[key] = values
	}
	if a.authenticator != nil {
		a.authenticator.Authenticate(req)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: failed to read response body: %w", ErrTransport, method, target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       data,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// url joins the base URL and path; an empty path addresses the base itself.
func (a *RestAdapter) url(path string) string {
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return a.baseURL
	}
	return a.baseURL + "/" + path
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case io.Reader:
		return b, "", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("restx: failed to encode request body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
