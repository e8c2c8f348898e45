package api_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/dom/qna-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_MetricsIsPublic(t *testing.T) {
	ts := testutil.NewTestServer(t)

	// one gated rejection so the counter has a series
	resp, err := http.Get(ts.APIURL("/questions"))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(ts.BaseURL() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `qna_auth_gate_decisions_total{outcome="rejected"} 1`)
	assert.Contains(t, string(body), "qna_http_requests_total")
}

func TestRouter_PreflightBypassesGate(t *testing.T) {
	ts := testutil.NewTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.APIURL("/questions"), nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_PublicPaths(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "healthcheck needs a token", method: http.MethodGet, path: "/api/healthcheck", expectedStatus: http.StatusUnauthorized},
		{name: "metrics is public", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
		{name: "login reaches the handler", method: http.MethodPost, path: "/api/login", expectedStatus: http.StatusBadRequest},
		{name: "registration reaches the handler", method: http.MethodPost, path: "/api/registration", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.BaseURL()+tt.path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
