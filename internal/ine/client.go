// Package ine is the remote source adapter for the INE Tempus3 statistics
// API. It is the engine's sole point of contact with the network: every fetch
// is a single bounded attempt whose failure is swallowed into an Unavailable
// result, never an error.
package ine

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mcarrero/laborstat/internal/contract"
)

const (
	defaultUserAgent = "laborstat/1.0"

	// maxPeriods bounds the number of trailing periods requested per series.
	// 160 quarters comfortably covers the widest supported year range.
	maxPeriods = 160
)

// Client fetches series from the upstream statistics service under a hard
// per-request timeout.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ contract.SeriesFetcher = (*Client)(nil)

// NewClient builds a client against the given base URL. The timeout applies
// to the whole request, connection included; on expiry the attempt is
// cancelled and reported as unavailable.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = contract.DefaultFetchTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchSeries attempts to retrieve one series by its numeric identifier.
// Timeouts, network failures, non-2xx statuses and malformed payloads all
// collapse into Unavailable; the caller decides the fallback, not the
// adapter, and nothing is ever retried.
func (c *Client) FetchSeries(ctx context.Context, seriesID int) contract.FetchResult {
	endpoint := c.baseURL + strconv.Itoa(seriesID) + "?nult=" + strconv.Itoa(maxPeriods)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return contract.Unavailable()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return contract.Unavailable()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return contract.Unavailable()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return contract.Unavailable()
	}

	points, err := parseSeriesPayload(body)
	if err != nil || len(points) == 0 {
		return contract.Unavailable()
	}
	return contract.FetchResult{Points: points, Available: true}
}
