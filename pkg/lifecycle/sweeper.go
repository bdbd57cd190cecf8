// Package lifecycle enforces retention policy in the background: expired
// ephemeral sessions, persistent sessions past an account's retention
// preference, and sync operations past their bounded replay window. Sweeps
// run off the request path; the TTL sweep is the authoritative backstop for
// ephemeral cleanup, with explicit end-session as a best-effort fast path.
package lifecycle

import (
	"context"
	stdsync "sync"
	"time"

	"go.uber.org/zap"

	"github.com/motorlogic/garage/pkg/storage"
)

// Config carries the sweeper's cadence and retention windows.
type Config struct {
	// Interval is the sweep cadence. Defaults to one minute.
	Interval time.Duration

	// OpRetention bounds how long sync operations are kept for replay.
	// Defaults to seven days.
	OpRetention time.Duration

	// Logger is required.
	Logger *zap.Logger
}

// Sweeper periodically purges expired and retention-exceeded records.
type Sweeper struct {
	store  storage.Sweeper
	cfg    Config
	logger *zap.Logger

	// retention holds per-owner retention preferences for persistent
	// sessions. Zero or absent means retained indefinitely.
	mu        stdsync.RWMutex
	retention map[string]time.Duration

	// now is injectable for tests.
	now func() time.Time

	stop chan struct{}
	wg   stdsync.WaitGroup
}

// NewSweeper creates a sweeper over the store's purge surface.
func NewSweeper(store storage.Sweeper, cfg Config) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.OpRetention <= 0 {
		cfg.OpRetention = 7 * 24 * time.Hour
	}
	return &Sweeper{
		store:     store,
		cfg:       cfg,
		logger:    cfg.Logger,
		retention: make(map[string]time.Duration),
		now:       time.Now,
		stop:      make(chan struct{}),
	}
}

// SetOwnerRetention configures an account-level retention preference: the
// owner's persistent sessions inactive longer than d are purged by the next
// sweep. A non-positive d removes the preference.
func (s *Sweeper) SetOwnerRetention(ownerID string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d <= 0 {
		delete(s.retention, ownerID)
		return
	}
	s.retention[ownerID] = d
}

// Start launches the background sweep loop.
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				if err := s.Sweep(context.Background()); err != nil {
					s.logger.Error("sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	close(s.stop)
	s.wg.Wait()
}

// Sweep runs one full pass. Exported so callers (and tests) can force a pass
// without waiting for the ticker.
func (s *Sweeper) Sweep(ctx context.Context) error {
	now := s.now()

	expired, err := s.store.PurgeExpiredSessions(ctx, now)
	if err != nil {
		return err
	}

	s.mu.RLock()
	prefs := make(map[string]time.Duration, len(s.retention))
	for owner, d := range s.retention {
		prefs[owner] = d
	}
	s.mu.RUnlock()

	purged := 0
	for owner, d := range prefs {
		n, err := s.store.PurgeSessionsInactiveSince(ctx, owner, now.Add(-d))
		if err != nil {
			return err
		}
		purged += n
	}

	gced, err := s.store.PurgeOpsBefore(ctx, now.Add(-s.cfg.OpRetention))
	if err != nil {
		return err
	}

	if expired+purged+gced > 0 {
		s.logger.Debug("sweep complete",
			zap.Int("expired_sessions", expired),
			zap.Int("retention_purged", purged),
			zap.Int("ops_collected", gced),
		)
	}
	return nil
}
