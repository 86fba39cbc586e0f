package console

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"promptpad/internal/backend"
	"promptpad/internal/common/config"
	"promptpad/internal/common/errors"
	"promptpad/internal/common/logger"
	"promptpad/internal/common/metrics"
	"promptpad/internal/common/observability"
	"promptpad/internal/settings"
)

// Dependencies carries everything the controller needs. All capabilities
// are injected at construction; the controller never inspects ambient state.
type Dependencies struct {
	Store         *settings.SettingsStore
	Client        *backend.Client
	Backend       config.BackendConfig
	Clipboard     Clipboard
	Logger        logger.Logger
	Observability *observability.Observability
}

// Controller orchestrates the settings store and the backend client across
// the three views. State is mutex-guarded; blocking operations release the
// lock so edits stay possible while a request is outstanding.
type Controller struct {
	mu   sync.Mutex
	deps Dependencies

	// live is the controller's liveness token: results of in-flight calls
	// that resume after Close are discarded, not applied.
	live   context.Context
	cancel context.CancelFunc

	settings      settings.Settings
	dirty         bool
	view          View
	gen           GenerationState
	backendStatus BackendStatus
}

func New(deps Dependencies) *Controller {
	live, cancel := context.WithCancel(context.Background())
	return &Controller{
		deps:          deps,
		live:          live,
		cancel:        cancel,
		settings:      settings.Defaults(),
		view:          ViewPromptConfig,
		gen:           GenerationState{Phase: PhaseIdle},
		backendStatus: BackendStatus{Probe: BackendNotChecked},
	}
}

// Start loads persisted settings, merges them over the defaults (persisted
// values win) and kicks off the best-effort prefetch of the backend's
// public config and defaults. Prefetch failures never block rendering.
func (c *Controller) Start(ctx context.Context) {
	stored := c.deps.Store.Load(ctx)
	merged := settings.Merge(settings.Defaults(), stored)

	c.mu.Lock()
	c.settings = merged
	c.dirty = false
	c.mu.Unlock()

	go c.prefetchBackendInfo()
}

// Close tears the controller down. Any still-in-flight request notices the
// cancelled liveness token and drops its result.
func (c *Controller) Close() {
	c.cancel()
}

func (c *Controller) prefetchBackendInfo() {
	c.mu.Lock()
	base := backend.ResolveBaseURL(c.settings, c.deps.Backend)
	c.mu.Unlock()

	if info, err := c.deps.Client.GetPublicConfig(c.live, base); err != nil {
		c.deps.Logger.Debug("Backend config prefetch failed", map[string]interface{}{
			"baseUrl": base,
			"error":   err.Error(),
		})
	} else {
		c.deps.Logger.Debug("Backend config fetched", map[string]interface{}{
			"version": info.Version,
		})
	}

	defaults, err := c.deps.Client.GetDefaultSettings(c.live, base)
	if err != nil {
		c.deps.Logger.Debug("Backend defaults prefetch failed", map[string]interface{}{
			"baseUrl": base,
			"error":   err.Error(),
		})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live.Err() != nil {
		return
	}
	// Prefill only; a brand name the user already typed is never overwritten.
	if strings.TrimSpace(c.settings.BrandName) == "" && defaults.Brand.BrandName != "" {
		c.settings.BrandName = defaults.Brand.BrandName
	}
}

// Edit applies a single-field patch and marks the settings dirty.
func (c *Controller) Edit(action EditAction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = Apply(c.settings, action)
	c.dirty = true
}

// SelectView switches the active view on explicit user action.
func (c *Controller) SelectView(v View) error {
	if !v.Valid() {
		return fmt.Errorf("unknown view %q", v)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
	return nil
}

// Save persists the current settings and clears the dirty flag. Storage
// failures are absorbed by the store.
func (c *Controller) Save(ctx context.Context) {
	c.mu.Lock()
	record := c.settings.ToMap()
	c.mu.Unlock()

	c.deps.Store.Save(ctx, record)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live.Err() != nil {
		return
	}
	c.dirty = false
}

// CheckBackend probes the backend root and records connected, disconnected
// or the transport error.
func (c *Controller) CheckBackend(ctx context.Context) BackendStatus {
	c.mu.Lock()
	base := backend.ResolveBaseURL(c.settings, c.deps.Backend)
	c.mu.Unlock()

	status, err := c.deps.Client.HealthCheck(ctx, base)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live.Err() != nil {
		return c.backendStatus
	}
	switch {
	case err != nil:
		c.backendStatus = BackendStatus{
			Probe:  BackendDisconnected,
			Detail: failureDetail(err),
		}
		metrics.BackendChecks.WithLabelValues("network_error").Inc()
	case status.OK:
		c.backendStatus = BackendStatus{
			Probe:      BackendConnected,
			StatusCode: status.Status,
		}
		metrics.BackendChecks.WithLabelValues("connected").Inc()
	default:
		c.backendStatus = BackendStatus{
			Probe:      BackendDisconnected,
			StatusCode: status.Status,
			Detail:     status.BodyText,
		}
		metrics.BackendChecks.WithLabelValues("disconnected").Inc()
	}
	return c.backendStatus
}

// Generate runs the full generation pipeline. Success and failure both land
// in the results view; the returned prompt string is stored unmodified.
func (c *Controller) Generate(ctx context.Context) GenerationState {
	c.mu.Lock()
	snapshot := c.settings
	base := backend.ResolveBaseURL(snapshot, c.deps.Backend)
	c.gen = GenerationState{Phase: PhaseInProgress}
	c.mu.Unlock()

	metrics.GenerationsStarted.Inc()
	start := time.Now()

	result, err := c.deps.Client.GeneratePrompt(ctx, base, snapshot)
	elapsed := time.Since(start)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live.Err() != nil {
		// Controller torn down while the call was in flight; discard.
		return c.gen
	}

	metrics.GenerationDuration.Observe(elapsed.Seconds())

	if err != nil {
		code := errors.CodeOf(err)
		metrics.GenerationsFailed.WithLabelValues(string(code)).Inc()
		if c.deps.Observability != nil {
			c.deps.Observability.RecordGeneration(ctx, "failure")
			c.deps.Observability.RecordGenerationDuration(ctx, elapsed, "failure")
		}

		message, bodyText := failureMessage(err)
		c.gen = GenerationState{
			Phase:    PhaseFailure,
			Message:  message,
			BodyText: bodyText,
		}
		c.view = ViewResults
		c.deps.Logger.Warn("Prompt generation failed", map[string]interface{}{
			"errorCode": string(code),
			"message":   message,
		})
		return c.gen
	}

	metrics.GenerationsCompleted.Inc()
	if c.deps.Observability != nil {
		c.deps.Observability.RecordGeneration(ctx, "success")
		c.deps.Observability.RecordGenerationDuration(ctx, elapsed, "success")
	}

	c.gen = GenerationState{
		Phase:    PhaseSuccess,
		Prompt:   result.Prompt,
		Metadata: result.Metadata,
	}
	c.view = ViewResults
	return c.gen
}

// CopyPrompt copies the current prompt to the system clipboard. The outcome
// is a transient status message, reported separately from generation state.
func (c *Controller) CopyPrompt() string {
	c.mu.Lock()
	if c.view != ViewResults {
		c.mu.Unlock()
		return "Nothing to copy: switch to the results view first."
	}
	if c.gen.Phase != PhaseSuccess || c.gen.Prompt == "" {
		c.mu.Unlock()
		return "Nothing to copy: no prompt has been generated."
	}
	prompt := c.gen.Prompt
	c.mu.Unlock()

	if err := c.deps.Clipboard.Copy(prompt); err != nil {
		return fmt.Sprintf("Copy failed: %v", err)
	}
	return "Prompt copied to clipboard."
}

// ==========================
// Read accessors for rendering
// ==========================

func (c *Controller) Settings() settings.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

func (c *Controller) ActiveView() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Controller) Generation() GenerationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *Controller) LastBackendStatus() BackendStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.backendStatus
}

// failureMessage combines the error's human message with the raw body text
// when one is available.
func failureMessage(err error) (message, bodyText string) {
	if httpErr, ok := errors.AsHTTPError(err); ok {
		message = httpErr.Message
		if strings.TrimSpace(httpErr.BodyText) != "" {
			message = message + ": " + httpErr.BodyText
		}
		return message, httpErr.BodyText
	}
	var stdErr *errors.StandardError
	if goerrors.As(err, &stdErr) {
		if stdErr.Details != "" {
			return stdErr.Message + ": " + stdErr.Details, ""
		}
		return stdErr.Message, ""
	}
	return err.Error(), ""
}

func failureDetail(err error) string {
	var stdErr *errors.StandardError
	if goerrors.As(err, &stdErr) && stdErr.Details != "" {
		return stdErr.Details
	}
	return err.Error()
}
