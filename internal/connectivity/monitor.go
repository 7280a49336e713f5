// Package connectivity decides whether the remote store is reachable.
package connectivity

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultURL is probed when no URL is configured.
	DefaultURL = "https://api.github.com"

	// DefaultTimeout bounds a single probe.
	DefaultTimeout = 2 * time.Second
)

// Monitor probes a fixed endpoint.
type Monitor struct {
	url     string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
}

// New creates a Monitor for url. Zero values fall back to the defaults.
func New(url string, timeout time.Duration, logger *slog.Logger) *Monitor {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Monitor{
		url:     url,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Probe reports whether the endpoint answered within the timeout.
// Any HTTP response counts as online, whatever its status; connection
// failures and timeouts count as offline and are not errors.
func (m *Monitor) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.url, nil)
	if err != nil {
		m.logger.Debug("probe request invalid", "url", m.url, "err", err)
		return false
	}
	req.Close = true

	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Debug("probe failed", "url", m.url, "err", err)
		return false
	}
	resp.Body.Close()
	return true
}
