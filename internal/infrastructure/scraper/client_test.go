package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lensvault/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient(time.Second, 3, "LensVault/1.0")

	assert.NotNil(t, client)
	assert.Equal(t, "LensVault/1.0", client.userAgent)
	assert.Equal(t, 3, client.maxRetries)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.limiter)
	assert.False(t, client.debug)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(0, 0, "")

	assert.Equal(t, 3, client.maxRetries)
	assert.Equal(t, "LensVault/1.0", client.userAgent)
}

func TestSetDebug(t *testing.T) {
	client := NewClient(time.Second, 3, "")

	assert.False(t, client.debug)
	client.SetDebug(true)
	assert.True(t, client.debug)
}

func TestRetryBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 1500 * time.Millisecond},
	}

	for _, tt := range tests {
		result := retryBackoff(tt.attempt)
		assert.Equal(t, tt.expected, result)
	}
}

func TestFetchPage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "LensVault-Test/1.0", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept"))
		w.Write([]byte("<html>catalog</html>"))
	}))
	defer server.Close()

	client := NewClient(time.Millisecond, 3, "LensVault-Test/1.0")

	body, err := client.FetchPage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>catalog</html>", string(body))
}

func TestFetchPage_RetriesTransientFailures(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(time.Millisecond, 3, "")

	body, err := client.FetchPage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestFetchPage_ExhaustsRetries(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(time.Millisecond, 2, "")

	_, err := client.FetchPage(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrScrapeFailure)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestFetchPage_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(time.Millisecond, 3, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchPage(ctx, server.URL)
	require.Error(t, err)
}
