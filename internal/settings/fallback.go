package settings

import (
	"context"
	"time"

	"promptpad/internal/common/config"
	"promptpad/internal/common/errors"
	"promptpad/internal/common/logger"
	"promptpad/internal/common/metrics"
)

// SettingsStore fronts the preferred backend with a local fallback. All
// failures are logged and absorbed: Load always returns the best available
// record (an empty one on total failure) and Save never reports an error to
// the caller. Single writer is assumed; simultaneous saves are last-write-wins.
type SettingsStore struct {
	primary  Store
	fallback Store
	logger   logger.Logger
}

func NewSettingsStore(primary, fallback Store, log logger.Logger) *SettingsStore {
	return &SettingsStore{
		primary:  primary,
		fallback: fallback,
		logger:   log,
	}
}

// Probe chooses the preferred backend once at startup: Redis when it is
// configured and reachable, the local file otherwise. The choice is made
// here and injected, not re-inspected on every call.
func Probe(ctx context.Context, cfg config.StorageConfig, log logger.Logger) *SettingsStore {
	fileStore := NewFileStore(cfg.File.Path)

	if !cfg.Redis.Enabled() {
		return NewSettingsStore(fileStore, nil, log)
	}

	redisStore := NewRedisStore(NewRedisClient(cfg.Redis))

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisStore.Ping(pingCtx); err != nil {
		log.Warn("Preferred settings backend unavailable, using local file only", map[string]interface{}{
			"backend": redisStore.Name(),
			"error":   err.Error(),
		})
		_ = redisStore.Close()
		return NewSettingsStore(fileStore, nil, log)
	}

	return NewSettingsStore(redisStore, fileStore, log)
}

// Load reads the persisted record, preferring the primary backend and
// falling back on any failure. Missing or unreadable state yields an empty
// record, never an error.
func (s *SettingsStore) Load(ctx context.Context) map[string]string {
	if record, err := s.primary.Load(ctx); err == nil {
		metrics.SettingsLoads.WithLabelValues(s.primary.Name()).Inc()
		return record
	} else {
		stdErr := errors.NewStorageReadError(s.primary.Name(), err)
		s.logger.Warn(stdErr.Message, map[string]interface{}{
			"backend": s.primary.Name(),
			"details": stdErr.Details,
		})
	}

	if s.fallback == nil {
		return map[string]string{}
	}

	metrics.StorageFallbacks.WithLabelValues("load").Inc()
	record, err := s.fallback.Load(ctx)
	if err != nil {
		stdErr := errors.NewStorageReadError(s.fallback.Name(), err)
		s.logger.Error(stdErr.Message, map[string]interface{}{
			"backend": s.fallback.Name(),
			"details": stdErr.Details,
		})
		return map[string]string{}
	}
	metrics.SettingsLoads.WithLabelValues(s.fallback.Name()).Inc()
	return record
}

// Save writes the record with the same preference order. Failures are
// swallowed after logging.
func (s *SettingsStore) Save(ctx context.Context, record map[string]string) {
	if err := s.primary.Save(ctx, record); err == nil {
		metrics.SettingsSaves.WithLabelValues(s.primary.Name()).Inc()
		return
	} else {
		stdErr := errors.NewStorageWriteError(s.primary.Name(), err)
		s.logger.Warn(stdErr.Message, map[string]interface{}{
			"backend": s.primary.Name(),
			"details": stdErr.Details,
		})
	}

	if s.fallback == nil {
		return
	}

	metrics.StorageFallbacks.WithLabelValues("save").Inc()
	if err := s.fallback.Save(ctx, record); err != nil {
		stdErr := errors.NewStorageWriteError(s.fallback.Name(), err)
		s.logger.Error(stdErr.Message, map[string]interface{}{
			"backend": s.fallback.Name(),
			"details": stdErr.Details,
		})
		return
	}
	metrics.SettingsSaves.WithLabelValues(s.fallback.Name()).Inc()
}
