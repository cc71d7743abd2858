package ine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{"Data":[
	{"Anyo":2013,"Valor":26.94,"NombrePeriodo":"Trimestre 2"},
	{"Anyo":2013,"Valor":25.98,"NombrePeriodo":"Trimestre 3"}
]}`

// TestFetchSeriesOK tests a successful fetch end to end.
func TestFetchSeriesOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/4247", r.URL.Path)
		assert.Equal(t, "160", r.URL.Query().Get("nult"))
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	result := client.FetchSeries(context.Background(), 4247)

	require.True(t, result.Available)
	require.Len(t, result.Points, 2)
	assert.Equal(t, "2013Q2", result.Points[0].Period)
	assert.Equal(t, 2013, result.Points[0].Year)
	assert.Equal(t, 26.94, result.Points[0].Value)
	assert.Equal(t, "2013Q3", result.Points[1].Period)
}

// TestFetchSeriesTimeout tests that a slow upstream collapses into an
// unavailable result rather than an error.
func TestFetchSeriesTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	start := time.Now()
	result := client.FetchSeries(context.Background(), 4247)

	assert.False(t, result.Available)
	assert.Nil(t, result.Points)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

// TestFetchSeriesHTTPError tests non-2xx statuses.
func TestFetchSeriesHTTPError(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		result := NewClient(server.URL, time.Second).FetchSeries(context.Background(), 4247)
		assert.False(t, result.Available, "status %d must be unavailable", status)
		server.Close()
	}
}

// TestFetchSeriesMalformedBody tests undecodable and empty payloads.
func TestFetchSeriesMalformedBody(t *testing.T) {
	for _, body := range []string{"not json", `{"Data":[]}`, `{}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		result := NewClient(server.URL, time.Second).FetchSeries(context.Background(), 4247)
		assert.False(t, result.Available, "body %q must be unavailable", body)
		server.Close()
	}
}

// TestFetchSeriesCancelledContext tests that a cancelled context aborts the
// attempt quietly.
func TestFetchSeriesCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := NewClient(server.URL, time.Second).FetchSeries(ctx, 4247)
	assert.False(t, result.Available)
}

// TestFetchSeriesUnreachableHost tests a connection-level failure.
func TestFetchSeriesUnreachableHost(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond)
	result := client.FetchSeries(context.Background(), 4247)
	assert.False(t, result.Available)
}
