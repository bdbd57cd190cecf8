// Package memctx assembles the bounded, ordered context handed to the
// external conversational engine: a window of recent turns, the session's
// structured state, and a bounded slice of the owner's active profile.
// Building a context never mutates conversation content.
package memctx

import (
	"context"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
)

// Strategy selects how the builder reduces a window that exceeds the token
// budget.
type Strategy string

const (
	// StrategyTruncate drops the oldest messages within the window until
	// the budget holds.
	StrategyTruncate Strategy = "truncate"

	// StrategySummarize replaces the oldest portion of the window with a
	// single synthesized system message, preserving the most recent
	// messages verbatim.
	StrategySummarize Strategy = "summarize"
)

// summaryCacheSize bounds the memoized summaries keyed by window identity.
const summaryCacheSize = 512

// Config carries the windowing and reduction knobs.
type Config struct {
	// Window is the maximum number of recent messages considered.
	// Defaults to 20.
	Window int

	// TokenBudget bounds the estimated size of the assembled messages.
	// Defaults to 2048.
	TokenBudget int

	// Strategy selects the reduction behavior. Defaults to truncation.
	Strategy Strategy

	// PreserveRecent is how many of the newest messages the summarizing
	// strategy keeps verbatim. Defaults to 5.
	PreserveRecent int
}

func (c Config) withDefaults() Config {
	if c.Window <= 0 {
		c.Window = 20
	}
	if c.TokenBudget <= 0 {
		c.TokenBudget = 2048
	}
	if c.Strategy == "" {
		c.Strategy = StrategyTruncate
	}
	if c.PreserveRecent <= 0 {
		c.PreserveRecent = 5
	}
	return c
}

// Context is the ordered, bounded payload the conversational engine
// consumes. Messages are chronological; State and ActiveProfile ride along
// as structured context, not as chat turns.
type Context struct {
	SessionID     string            `json:"session_id"`
	Messages      []session.Message `json:"messages"`
	State         session.State     `json:"state,omitempty"`
	ActiveProfile *session.Profile  `json:"active_profile,omitempty"`
	TokenEstimate int               `json:"token_estimate"`
}

// Summarizer condenses a run of older messages into one system-turn string.
// The built-in extractive summarizer is deterministic and local; an
// engine-backed implementation can be swapped in.
type Summarizer interface {
	Summarize(ctx context.Context, msgs []session.Message) (string, error)
}

// Reader is the slice of the store the builder needs. Reads tolerate
// slightly stale snapshots; the builder never writes.
type Reader interface {
	GetSession(ctx context.Context, id string) (*session.Session, error)
	GetProfile(ctx context.Context, id string) (*session.Profile, error)
}

// Builder assembles contexts from session and profile data.
type Builder struct {
	store      Reader
	cfg        Config
	summarizer Summarizer
	cache      *lru.Cache[string, string]
	logger     *zap.Logger
}

// NewBuilder creates a context builder. A nil summarizer falls back to the
// built-in extractive one.
func NewBuilder(store Reader, cfg Config, summarizer Summarizer, logger *zap.Logger) (*Builder, error) {
	cache, err := lru.New[string, string](summaryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating summary cache: %w", err)
	}
	if summarizer == nil {
		summarizer = ExtractiveSummarizer{}
	}
	return &Builder{
		store:      store,
		cfg:        cfg.withDefaults(),
		summarizer: summarizer,
		cache:      cache,
		logger:     logger,
	}, nil
}

// Build assembles the context for one session. A brand-new session yields an
// empty-but-valid context; a state reference to a deleted profile degrades
// to absent profile context rather than failing.
func (b *Builder) Build(ctx context.Context, sessionID string) (*Context, error) {
	s, err := b.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	msgs := s.Messages
	if len(msgs) > b.cfg.Window {
		msgs = msgs[len(msgs)-b.cfg.Window:]
	}

	msgs, err = b.reduce(ctx, sessionID, msgs)
	if err != nil {
		return nil, err
	}

	out := &Context{
		SessionID:     sessionID,
		Messages:      msgs,
		State:         s.State.Clone(),
		TokenEstimate: estimateMessages(msgs),
	}

	if s.Tier == session.TierPersistent {
		out.ActiveProfile = b.activeProfile(ctx, s)
	}
	return out, nil
}

// reduce applies the configured reduction strategy until the window fits the
// token budget. The most recent message always survives.
func (b *Builder) reduce(ctx context.Context, sessionID string, msgs []session.Message) ([]session.Message, error) {
	if estimateMessages(msgs) <= b.cfg.TokenBudget || len(msgs) <= 1 {
		return msgs, nil
	}

	if b.cfg.Strategy == StrategySummarize && len(msgs) > b.cfg.PreserveRecent {
		recent := msgs[len(msgs)-b.cfg.PreserveRecent:]
		older := msgs[:len(msgs)-b.cfg.PreserveRecent]

		summary, err := b.summarize(ctx, sessionID, older)
		if err != nil {
			return nil, fmt.Errorf("summarizing older turns: %w", err)
		}

		reduced := make([]session.Message, 0, len(recent)+1)
		reduced = append(reduced, session.Message{
			ID:        "summary-" + older[len(older)-1].ID,
			SessionID: sessionID,
			Role:      session.RoleSystem,
			Content:   summary,
			CreatedAt: older[len(older)-1].CreatedAt,
		})
		reduced = append(reduced, recent...)
		msgs = reduced
	}

	// Truncation pass: both the truncating strategy and any summarized
	// window still over budget drop oldest-first.
	for len(msgs) > 1 && estimateMessages(msgs) > b.cfg.TokenBudget {
		msgs = msgs[1:]
	}
	return msgs, nil
}

func (b *Builder) summarize(ctx context.Context, sessionID string, older []session.Message) (string, error) {
	// The window identity is the span being condensed; a repeat build over
	// the same span reuses the cached summary.
	key := sessionID + "|" + older[0].ID + "|" + older[len(older)-1].ID
	if cached, ok := b.cache.Get(key); ok {
		return cached, nil
	}
	summary, err := b.summarizer.Summarize(ctx, older)
	if err != nil {
		return "", err
	}
	b.cache.Add(key, summary)
	return summary, nil
}

// activeProfile resolves the session's active-vehicle reference to a bounded
// profile slice. Missing references are absent context, not errors.
func (b *Builder) activeProfile(ctx context.Context, s *session.Session) *session.Profile {
	raw, ok := s.State[session.StateKeyActiveVehicle]
	if !ok {
		return nil
	}
	var av session.ActiveVehicle
	if err := json.Unmarshal(raw, &av); err != nil || av.ProfileID == "" {
		return nil
	}
	p, err := b.store.GetProfile(ctx, av.ProfileID)
	if err != nil {
		if storage.IsNotFound(err) {
			b.logger.Debug("active profile no longer exists, omitting from context",
				zap.String("session_id", s.ID),
				zap.String("profile_id", av.ProfileID),
			)
			return nil
		}
		b.logger.Warn("profile lookup failed, omitting from context",
			zap.String("profile_id", av.ProfileID),
			zap.Error(err),
		)
		return nil
	}
	return p
}
