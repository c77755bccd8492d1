package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/dealerseed/pkg/idx"
)

// Transport is an http.RoundTripper that tags every outbound request with a
// request id and logs its outcome. The logger is taken from the request
// context first, then Logger, then slog.Default.
type Transport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, logger *slog.Logger) *Transport {
	return &Transport{Base: base, Logger: logger}
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	reqID := r.Header.Get(idx.HeaderRequestID)
	if reqID == "" {
		// RoundTrippers must not mutate the caller's request.
		r = r.Clone(r.Context())
		reqID = idx.New().String()
		r.Header.Set(idx.HeaderRequestID, reqID)
	}

	logger := t.logger(r).With(
		"req_id", reqID,
		"method", r.Method,
		"url", r.URL.Redacted(),
	)

	resp, err := t.base().RoundTrip(r)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		logger.Debug("http_client_request", "error", err, "duration_ms", duration)
		return nil, err
	}

	logger.Debug("http_client_request",
		"status", resp.StatusCode,
		"duration_ms", duration,
	)
	return resp, nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) logger(r *http.Request) *slog.Logger {
	if l, ok := r.Context().Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}
