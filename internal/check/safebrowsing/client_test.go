package safebrowsing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(endpoint string) *Client {
	return NewClient(Config{
		Endpoint:        endpoint,
		APIKey:          "test-key",
		Timeout:         2 * time.Second,
		BreakerFailures: 3,
		BreakerTimeout:  time.Second,
	}, zap.NewNop())
}

func TestLookupReportsThreat(t *testing.T) {
	var gotBody lookupRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(lookupResponse{Threat: true, ThreatType: "phishing"})
	}))
	defer srv.Close()

	rep, err := testClient(srv.URL).Lookup(context.Background(), "https://bad.example.com")
	require.NoError(t, err)

	assert.Equal(t, "https://bad.example.com", gotBody.URL)
	assert.True(t, rep.Threat)
	assert.Equal(t, "phishing", rep.ThreatType)
}

func TestLookupCleanURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(lookupResponse{})
	}))
	defer srv.Close()

	rep, err := testClient(srv.URL).Lookup(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.False(t, rep.Threat)
	assert.Empty(t, rep.ThreatType)
}

func TestLookupUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Lookup(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	for i := 0; i < 3; i++ {
		_, err := c.Lookup(context.Background(), "https://example.com")
		require.Error(t, err)
	}

	// Breaker is open now; the upstream must not see further requests.
	_, err := c.Lookup(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Equal(t, 3, hits)
}
