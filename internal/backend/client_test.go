package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"promptpad/internal/common/config"
	"promptpad/internal/common/errors"
	httpclient "promptpad/internal/common/http"
	"promptpad/internal/common/logger"
	"promptpad/internal/settings"
)

func newTestClient(t *testing.T) *Client {
	return NewClient(httpclient.NewClient(5*time.Second), logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func validSettings() settings.Settings {
	return settings.Settings{
		BrandName:   "Acme",
		Topic:       "Topic here",
		Orientation: "Landing Page",
		Platform:    "X (Twitter)",
		Keywords:    "one, two",
		BrandDont:   "Avoid emojis.",
	}
}

// ==========================
// Base URL Resolution Tests
// ==========================

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name string
		s    settings.Settings
		cfg  config.BackendConfig
		want string
	}{
		{
			name: "settings value wins",
			s:    settings.Settings{BackendBaseURL: "http://api.example.com:9000"},
			cfg:  config.BackendConfig{DefaultBaseURL: "http://unused"},
			want: "http://api.example.com:9000",
		},
		{
			name: "trailing slashes stripped",
			s:    settings.Settings{BackendBaseURL: "http://x:3001///"},
			want: "http://x:3001",
		},
		{
			name: "surrounding whitespace trimmed",
			s:    settings.Settings{BackendBaseURL: "  http://x:3001/ "},
			want: "http://x:3001",
		},
		{
			name: "configured default used when settings empty",
			cfg:  config.BackendConfig{DefaultBaseURL: "http://cfg:4000/"},
			want: "http://cfg:4000",
		},
		{
			name: "fallback host and port",
			cfg:  config.BackendConfig{FallbackHost: "myhost", FallbackPort: 3001},
			want: "http://myhost:3001",
		},
		{
			name: "hardcoded default as last resort",
			want: "http://localhost:3001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveBaseURL(tt.s, tt.cfg))
		})
	}
}

// ==========================
// Health Check Tests
// ==========================

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantOK     bool
	}{
		{"healthy backend", http.StatusOK, `{"status":"ok"}`, true},
		{"created is still 2xx", http.StatusCreated, "", true},
		{"server error is not an error", http.StatusInternalServerError, "down", false},
		{"not found", http.StatusNotFound, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "GET", r.Method)
				assert.Equal(t, "/", r.URL.Path)
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			status, err := newTestClient(t).HealthCheck(context.Background(), server.URL)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, status.OK)
			assert.Equal(t, tt.statusCode, status.Status)
			assert.Equal(t, tt.body, status.BodyText)
		})
	}
}

func TestHealthCheck_NetworkFailurePropagates(t *testing.T) {
	status, err := newTestClient(t).HealthCheck(context.Background(), "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Nil(t, status)
	assert.Equal(t, errors.ErrCodeNetworkFailure, errors.CodeOf(err))
}

// ==========================
// Config / Defaults Tests
// ==========================

func TestGetPublicConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"version":"1.4.2","features":{"hashtags":true}}`))
	}))
	defer server.Close()

	info, err := newTestClient(t).GetPublicConfig(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", info.Version)
	assert.Contains(t, info.Raw, "features")
}

func TestGetPublicConfig_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	_, err := newTestClient(t).GetPublicConfig(context.Background(), server.URL)
	require.Error(t, err)

	httpErr, ok := errors.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeMalformedResponse, httpErr.Code)
	assert.Equal(t, "<html>not json</html>", httpErr.BodyText)
}

func TestGetPublicConfig_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("maintenance"))
	}))
	defer server.Close()

	_, err := newTestClient(t).GetPublicConfig(context.Background(), server.URL)
	require.Error(t, err)

	httpErr, ok := errors.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
	assert.Equal(t, "maintenance", httpErr.BodyText)
}

func TestGetDefaultSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/settings/defaults", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"brand":{"brand_name":"Acme Defaults"},"style":{"length":"medium"}}`))
	}))
	defer server.Close()

	defaults, err := newTestClient(t).GetDefaultSettings(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Acme Defaults", defaults.Brand.BrandName)
	assert.Equal(t, "medium", defaults.Style["length"])
}

// ==========================
// Generation Tests
// ==========================

func TestGeneratePrompt_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/prompts/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "landing_page", reqBody["orientation"])
		assert.Equal(t, "x", reqBody["platform"])
		assert.Equal(t, "Topic here", reqBody["brief"])

		brand := reqBody["brand"].(map[string]interface{})
		assert.Equal(t, "Acme", brand["brand_name"])
		voice := brand["voice"].(map[string]interface{})
		assert.Equal(t, []interface{}{"one", "two"}, voice["keywords"])
		assert.Equal(t, []interface{}{"Avoid emojis."}, voice["avoid"])

		style := reqBody["style"].(map[string]interface{})
		assert.Equal(t, "medium", style["length"])
		assert.Equal(t, true, style["include_hashtags"])
		assert.Equal(t, float64(0), style["emoji_level"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prompt":"Write a landing page for Acme.","metadata":{"model":"v2"}}`))
	}))
	defer server.Close()

	result, err := newTestClient(t).GeneratePrompt(context.Background(), server.URL, validSettings())
	require.NoError(t, err)
	assert.Equal(t, "Write a landing page for Acme.", result.Prompt)
	assert.Equal(t, "v2", result.Metadata["model"])
	assert.Contains(t, result.Raw, "prompt")
}

func TestGeneratePrompt_ValidationBeforeNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	// No log output is asserted here.
	client := NewClient(httpclient.NewClient(5*time.Second), logger.NewNoOpLogger())

	tests := []struct {
		name  string
		input settings.Settings
	}{
		{"no brand name", settings.Settings{Topic: "t"}},
		{"no topic or context", settings.Settings{BrandName: "Acme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.GeneratePrompt(context.Background(), server.URL, tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}

	// No request ever reached the server.
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestGeneratePrompt_HTTPFailureCarriesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("server down"))
	}))
	defer server.Close()

	_, err := newTestClient(t).GeneratePrompt(context.Background(), server.URL, validSettings())
	require.Error(t, err)

	httpErr, ok := errors.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 500, httpErr.Status)
	assert.Equal(t, "server down", httpErr.BodyText)
}

func TestGeneratePrompt_MissingPrompt(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "oops"},
		{"no prompt field", `{"metadata":{}}`},
		{"prompt not a string", `{"prompt":42}`},
		{"empty prompt", `{"prompt":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(t).GeneratePrompt(context.Background(), server.URL, validSettings())
			require.Error(t, err)

			httpErr, ok := errors.AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeMalformedResponse, httpErr.Code)
			assert.Equal(t, http.StatusOK, httpErr.Status)
			assert.Equal(t, tt.body, httpErr.BodyText)
		})
	}
}

func TestGeneratePrompt_NetworkFailure(t *testing.T) {
	_, err := newTestClient(t).GeneratePrompt(context.Background(), "http://127.0.0.1:1", validSettings())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNetworkFailure, errors.CodeOf(err))
}
