package memctx_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/logger"
	"github.com/motorlogic/garage/pkg/memctx"
	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
)

// stubReader serves canned sessions and profiles to the builder.
type stubReader struct {
	sessions map[string]*session.Session
	profiles map[string]*session.Profile

	profileLookups int
}

func newStubReader() *stubReader {
	return &stubReader{
		sessions: make(map[string]*session.Session),
		profiles: make(map[string]*session.Profile),
	}
}

func (r *stubReader) GetSession(_ context.Context, id string) (*session.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, storage.SessionNotFoundError{ID: id}
	}
	return s.Clone(), nil
}

func (r *stubReader) GetProfile(_ context.Context, id string) (*session.Profile, error) {
	r.profileLookups++
	p, ok := r.profiles[id]
	if !ok {
		return nil, storage.ProfileNotFoundError{ID: id}
	}
	out := *p
	return &out, nil
}

func turns(sessionID string, n int, content string) []session.Message {
	msgs := make([]session.Message, 0, n)
	for i := 0; i < n; i++ {
		role := session.RoleUser
		if i%2 == 1 {
			role = session.RoleAssistant
		}
		msgs = append(msgs, session.Message{
			ID:        fmt.Sprintf("m%d", i),
			SessionID: sessionID,
			Role:      role,
			Content:   fmt.Sprintf("%s %d", content, i),
		})
	}
	return msgs
}

var _ = Describe("Builder", func() {
	var (
		ctx    context.Context
		reader *stubReader
	)

	BeforeEach(func() {
		ctx = context.Background()
		reader = newStubReader()
	})

	newBuilder := func(cfg memctx.Config) *memctx.Builder {
		b, err := memctx.NewBuilder(reader, cfg, nil, logger.NewNop())
		Expect(err).NotTo(HaveOccurred())
		return b
	}

	It("yields an empty but valid context for a brand-new session", func() {
		reader.sessions["s1"] = &session.Session{ID: "s1", Tier: session.TierEphemeral}

		out, err := newBuilder(memctx.Config{}).Build(ctx, "s1")
		Expect(err).NotTo(HaveOccurred())
		Expect(out.SessionID).To(Equal("s1"))
		Expect(out.Messages).To(BeEmpty())
		Expect(out.TokenEstimate).To(BeZero())
	})

	It("propagates a missing session", func() {
		_, err := newBuilder(memctx.Config{}).Build(ctx, "nope")
		Expect(storage.IsNotFound(err)).To(BeTrue())
	})

	It("bounds the window to the most recent messages", func() {
		reader.sessions["s1"] = &session.Session{
			ID:       "s1",
			Tier:     session.TierEphemeral,
			Messages: turns("s1", 30, "short"),
		}

		out, err := newBuilder(memctx.Config{Window: 20, TokenBudget: 100000}).Build(ctx, "s1")
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Messages).To(HaveLen(20))
		Expect(out.Messages[0].ID).To(Equal("m10"))
		Expect(out.Messages[19].ID).To(Equal("m29"))
	})

	It("carries the session state without mutating it", func() {
		reader.sessions["s1"] = &session.Session{
			ID:    "s1",
			Tier:  session.TierEphemeral,
			State: session.State{"prefs.units": json.RawMessage(`{"system":"metric"}`)},
		}

		out, err := newBuilder(memctx.Config{}).Build(ctx, "s1")
		Expect(err).NotTo(HaveOccurred())
		Expect(out.State).To(HaveKey("prefs.units"))
	})

	Describe("truncation strategy", func() {
		It("drops oldest messages until the budget holds", func() {
			// Each message estimates to (40+3)/4 + 4 = 14 tokens; ten of
			// them total 140 against a budget of 50.
			reader.sessions["s1"] = &session.Session{
				ID:       "s1",
				Tier:     session.TierEphemeral,
				Messages: turns("s1", 10, strings.Repeat("x", 38)),
			}

			out, err := newBuilder(memctx.Config{Window: 20, TokenBudget: 50, Strategy: memctx.StrategyTruncate}).Build(ctx, "s1")
			Expect(err).NotTo(HaveOccurred())
			Expect(out.TokenEstimate).To(BeNumerically("<=", 50))
			Expect(out.Messages).NotTo(BeEmpty())
			// The newest message always survives.
			Expect(out.Messages[len(out.Messages)-1].ID).To(Equal("m9"))
		})

		It("keeps the most recent message even when it alone busts the budget", func() {
			reader.sessions["s1"] = &session.Session{
				ID:   "s1",
				Tier: session.TierEphemeral,
				Messages: []session.Message{
					{ID: "m0", Content: strings.Repeat("a", 400)},
					{ID: "m1", Content: strings.Repeat("b", 400)},
				},
			}

			out, err := newBuilder(memctx.Config{TokenBudget: 10}).Build(ctx, "s1")
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Messages).To(HaveLen(1))
			Expect(out.Messages[0].ID).To(Equal("m1"))
		})
	})

	Describe("summarizing strategy", func() {
		It("replaces the oldest turns with one system summary, preserving the newest verbatim", func() {
			reader.sessions["s1"] = &session.Session{
				ID:       "s1",
				Tier:     session.TierEphemeral,
				Messages: turns("s1", 12, strings.Repeat("y", 60)),
			}

			out, err := newBuilder(memctx.Config{
				Window:         20,
				TokenBudget:    200,
				Strategy:       memctx.StrategySummarize,
				PreserveRecent: 5,
			}).Build(ctx, "s1")
			Expect(err).NotTo(HaveOccurred())

			Expect(out.Messages[0].Role).To(Equal(session.RoleSystem))
			Expect(out.Messages[0].ID).To(Equal("summary-m6"))
			Expect(out.Messages[0].Content).To(ContainSubstring("Summary of 7 earlier turns"))

			tail := out.Messages[1:]
			Expect(tail).To(HaveLen(5))
			Expect(tail[0].ID).To(Equal("m7"))
			Expect(tail[4].ID).To(Equal("m11"))
		})

		It("falls back to plain truncation when the window is within the preserved count", func() {
			reader.sessions["s1"] = &session.Session{
				ID:       "s1",
				Tier:     session.TierEphemeral,
				Messages: turns("s1", 3, strings.Repeat("z", 200)),
			}

			out, err := newBuilder(memctx.Config{
				TokenBudget:    60,
				Strategy:       memctx.StrategySummarize,
				PreserveRecent: 5,
			}).Build(ctx, "s1")
			Expect(err).NotTo(HaveOccurred())
			for _, m := range out.Messages {
				Expect(m.Role).NotTo(Equal(session.RoleSystem))
			}
		})
	})

	Describe("active profile", func() {
		activeVehicle := func(profileID string) json.RawMessage {
			raw, err := json.Marshal(session.ActiveVehicle{ProfileID: profileID})
			Expect(err).NotTo(HaveOccurred())
			return raw
		}

		It("resolves the active-vehicle reference for persistent sessions", func() {
			reader.profiles["p1"] = &session.Profile{ID: "p1", OwnerID: "acct_1"}
			reader.sessions["s1"] = &session.Session{
				ID:      "s1",
				OwnerID: "acct_1",
				Tier:    session.TierPersistent,
				State:   session.State{session.StateKeyActiveVehicle: activeVehicle("p1")},
			}

			out, err := newBuilder(memctx.Config{}).Build(ctx, "s1")
			Expect(err).NotTo(HaveOccurred())
			Expect(out.ActiveProfile).NotTo(BeNil())
			Expect(out.ActiveProfile.ID).To(Equal("p1"))
		})

		It("omits profile context for ephemeral sessions", func() {
			reader.profiles["p1"] = &session.Profile{ID: "p1"}
			reader.sessions["s1"] = &session.Session{
				ID:    "s1",
				Tier:  session.TierEphemeral,
				State: session.State{session.StateKeyActiveVehicle: activeVehicle("p1")},
			}

			out, err := newBuilder(memctx.Config{}).Build(ctx, "s1")
			Expect(err).NotTo(HaveOccurred())
			Expect(out.ActiveProfile).To(BeNil())
			Expect(reader.profileLookups).To(BeZero())
		})

		It("degrades gracefully when the referenced profile was deleted", func() {
			reader.sessions["s1"] = &session.Session{
				ID:      "s1",
				OwnerID: "acct_1",
				Tier:    session.TierPersistent,
				State:   session.State{session.StateKeyActiveVehicle: activeVehicle("gone")},
			}

			out, err := newBuilder(memctx.Config{}).Build(ctx, "s1")
			Expect(err).NotTo(HaveOccurred())
			Expect(out.ActiveProfile).To(BeNil())
		})

		It("ignores an active-vehicle document without a profile reference", func() {
			reader.sessions["s1"] = &session.Session{
				ID:      "s1",
				OwnerID: "acct_1",
				Tier:    session.TierPersistent,
				State:   session.State{session.StateKeyActiveVehicle: json.RawMessage(`{"make":"Honda","model":"Civic"}`)},
			}

			out, err := newBuilder(memctx.Config{}).Build(ctx, "s1")
			Expect(err).NotTo(HaveOccurred())
			Expect(out.ActiveProfile).To(BeNil())
			Expect(reader.profileLookups).To(BeZero())
		})
	})
})
