package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"promptpad/internal/common/config"
	"promptpad/internal/common/errors"
	httpclient "promptpad/internal/common/http"
	"promptpad/internal/common/logger"
	"promptpad/internal/settings"
)

const (
	pathHealth   = "/"
	pathConfig   = "/config"
	pathDefaults = "/settings/defaults"
	pathGenerate = "/prompts/generate"
)

// Client talks to the prompt-generation backend.
type Client struct {
	http   *httpclient.Client
	logger logger.Logger
}

func NewClient(httpClient *httpclient.Client, log logger.Logger) *Client {
	return &Client{
		http:   httpClient,
		logger: log,
	}
}

// ResolveBaseURL picks the backend address: the user's configured URL wins
// (trimmed, trailing slashes stripped), then the configured fallback
// address, then the hardcoded default. Never fails.
func ResolveBaseURL(s settings.Settings, cfg config.BackendConfig) string {
	if base := strings.TrimSpace(s.BackendBaseURL); base != "" {
		return strings.TrimRight(base, "/")
	}
	if base := strings.TrimSpace(cfg.DefaultBaseURL); base != "" {
		return strings.TrimRight(base, "/")
	}
	if cfg.FallbackHost != "" && cfg.FallbackPort > 0 {
		return cfg.FallbackAddr()
	}
	return config.DefaultBackendURL
}

// HealthCheck issues a GET to the backend root. A non-2xx response is
// reported through the status fields, not as an error; only transport
// failures error out.
func (c *Client) HealthCheck(ctx context.Context, baseURL string) (*HealthStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, baseURL+pathHealth, nil)
	if err != nil {
		return nil, errors.NewNetworkError("health check", err)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, errors.NewNetworkError("health check", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return &HealthStatus{
		OK:       resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:   resp.StatusCode,
		BodyText: string(body),
	}, nil
}

// GetPublicConfig fetches the backend's public configuration.
func (c *Client) GetPublicConfig(ctx context.Context, baseURL string) (*ConfigInfo, error) {
	raw, err := c.getJSON(ctx, baseURL+pathConfig, "config request")
	if err != nil {
		return nil, err
	}

	info := &ConfigInfo{Raw: raw}
	if v, ok := raw["version"].(string); ok {
		info.Version = v
	}
	return info, nil
}

// GetDefaultSettings fetches the backend's suggested defaults.
func (c *Client) GetDefaultSettings(ctx context.Context, baseURL string) (*DefaultSettings, error) {
	raw, err := c.getJSON(ctx, baseURL+pathDefaults, "defaults request")
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.NewMalformedResponseError(http.StatusOK, "", "Backend defaults could not be re-encoded")
	}
	var defaults DefaultSettings
	if err := json.Unmarshal(payload, &defaults); err != nil {
		return nil, errors.NewMalformedResponseError(http.StatusOK, string(payload), "Backend defaults have an unexpected shape")
	}
	return &defaults, nil
}

// GeneratePrompt validates the current settings, translates them into the
// backend schema and posts the generation request. Validation failures are
// returned before any network I/O happens.
func (c *Client) GeneratePrompt(ctx context.Context, baseURL string, s settings.Settings) (*GenerationResult, error) {
	genReq, err := BuildRequest(s)
	if err != nil {
		return nil, err
	}

	c.logUnmappedLabels(s, genReq)

	payload, err := json.Marshal(genReq)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("Failed to encode generation request: %v", err))
	}

	req, err := c.newRequest(ctx, http.MethodPost, baseURL+pathGenerate, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewNetworkError("generation request", err)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, errors.NewNetworkError("generation request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError("generation response read", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewHTTPError(resp.StatusCode, string(body),
			fmt.Sprintf("Generation failed with status %d", resp.StatusCode))
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.NewMalformedResponseError(resp.StatusCode, string(body),
			"Backend returned an unparseable generation response")
	}

	prompt, ok := raw["prompt"].(string)
	if !ok || prompt == "" {
		return nil, errors.NewMalformedResponseError(resp.StatusCode, string(body),
			"Backend response did not include a prompt")
	}

	result := &GenerationResult{
		Prompt: prompt,
		Raw:    raw,
	}
	if metadata, ok := raw["metadata"].(map[string]interface{}); ok {
		result.Metadata = metadata
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, url, operation string) (map[string]interface{}, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewNetworkError(operation, err)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, errors.NewNetworkError(operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError(operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewHTTPError(resp.StatusCode, string(body),
			fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode))
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.NewMalformedResponseError(resp.StatusCode, string(body),
			fmt.Sprintf("%s returned a non-JSON body", operation))
	}
	return raw, nil
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// logUnmappedLabels surfaces labels the partial mapping silently turned
// into "other", so the gap stays visible without changing behavior.
func (c *Client) logUnmappedLabels(s settings.Settings, req *GenerationRequest) {
	if req.Orientation == "other" && !isMappedOrientation(s.Orientation) && strings.TrimSpace(s.Orientation) != "" {
		c.logger.Warn("Orientation label has no backend equivalent, sending 'other'", map[string]interface{}{
			"label": s.Orientation,
		})
	}
	if req.Platform == "other" && !isMappedPlatform(s.Platform) && strings.TrimSpace(s.Platform) != "" {
		c.logger.Warn("Platform label has no backend equivalent, sending 'other'", map[string]interface{}{
			"label": s.Platform,
		})
	}
}
