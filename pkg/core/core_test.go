package core_test

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/core"
	"github.com/motorlogic/garage/pkg/logger"
	"github.com/motorlogic/garage/pkg/memctx"
	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
	"github.com/motorlogic/garage/pkg/storage/inmemory"
	gsync "github.com/motorlogic/garage/pkg/sync"
)

// recordingRetention captures retention preferences for assertions.
type recordingRetention struct {
	owners map[string]time.Duration
}

func (r *recordingRetention) SetOwnerRetention(ownerID string, d time.Duration) {
	r.owners[ownerID] = d
}

var _ = Describe("Core", func() {
	var (
		ctx    context.Context
		store  *inmemory.Driver
		engine *gsync.Engine
		c      *core.Core
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = inmemory.NewDriver(storage.DefaultOptions())
		engine = gsync.NewEngine(gsync.Config{Ops: store, Logger: logger.NewNop()})

		builder, err := memctx.NewBuilder(store, memctx.Config{}, nil, logger.NewNop())
		Expect(err).NotTo(HaveOccurred())

		c = core.New(store, engine, builder, logger.NewNop())
	})

	AfterEach(func() {
		Expect(engine.Close()).To(Succeed())
	})

	opsFor := func(owner string) []*session.SyncOperation {
		ops, err := c.OpsSince(ctx, owner, session.Clock{}, "")
		Expect(err).NotTo(HaveOccurred())
		return ops
	}

	kinds := func(ops []*session.SyncOperation) []session.OpKind {
		out := make([]session.OpKind, 0, len(ops))
		for _, op := range ops {
			out = append(out, op.Kind)
		}
		return out
	}

	Describe("StartSession", func() {
		It("creates the session and records the creation op", func() {
			s, err := c.StartSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			ops := opsFor("acct_1")
			Expect(kinds(ops)).To(Equal([]session.OpKind{session.OpSessionCreate}))
			Expect(ops[0].TargetID).To(Equal(s.ID))
			Expect(ops[0].OriginDevice).To(Equal("phone"))
		})

		It("propagates tier mismatches without recording anything", func() {
			_, err := c.StartSession(ctx, session.NewGuestOwnerID(), session.TierPersistent, "phone")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CommitTurn", func() {
		var s *session.Session

		BeforeEach(func() {
			var err error
			s, err = c.StartSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())
		})

		It("appends both messages with forced roles", func() {
			res, err := c.CommitTurn(ctx, s.ID,
				session.Message{Content: "My brakes squeal", Role: session.RoleSystem},
				session.Message{Content: "Likely glazed pads", Role: session.RoleSystem},
				nil, "phone")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.UserMessage.Role).To(Equal(session.RoleUser))
			Expect(res.AssistantMessage.Role).To(Equal(session.RoleAssistant))

			got, err := c.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Messages).To(HaveLen(2))
		})

		It("persists requested state updates", func() {
			updates := map[string]json.RawMessage{
				session.StateKeyUnits: json.RawMessage(`{"system":"imperial"}`),
			}
			_, err := c.CommitTurn(ctx, s.ID,
				session.Message{Content: "use imperial"},
				session.Message{Content: "done"},
				updates, "phone")
			Expect(err).NotTo(HaveOccurred())

			value, err := c.GetState(ctx, s.ID, session.StateKeyUnits)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(MatchJSON(`{"system":"imperial"}`))
		})

		It("derives a title from the first user message", func() {
			_, err := c.CommitTurn(ctx, s.ID,
				session.Message{Content: "Why does my Outback stall at idle?\nIt started yesterday."},
				session.Message{Content: "A few possibilities..."},
				nil, "phone")
			Expect(err).NotTo(HaveOccurred())

			got, err := c.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(Equal("Why does my Outback stall at idle?"))
		})

		It("caps the derived title length", func() {
			long := strings.Repeat("brake ", 30)
			_, err := c.CommitTurn(ctx, s.ID,
				session.Message{Content: long},
				session.Message{Content: "ok"},
				nil, "phone")
			Expect(err).NotTo(HaveOccurred())

			got, err := c.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(HaveSuffix("…"))
			Expect(len([]rune(got.Title))).To(BeNumerically("<=", 61))
		})

		It("never overwrites an existing title", func() {
			Expect(c.SetTitle(ctx, s.ID, "Chosen by the user", "phone")).To(Succeed())

			_, err := c.CommitTurn(ctx, s.ID,
				session.Message{Content: "something else entirely"},
				session.Message{Content: "reply"},
				nil, "phone")
			Expect(err).NotTo(HaveOccurred())

			got, err := c.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(Equal("Chosen by the user"))
		})

		It("records one op per write", func() {
			_, err := c.CommitTurn(ctx, s.ID,
				session.Message{Content: "hello"},
				session.Message{Content: "hi"},
				map[string]json.RawMessage{session.StateKeyUnits: json.RawMessage(`{"system":"metric"}`)},
				"phone")
			Expect(err).NotTo(HaveOccurred())

			ops := opsFor("acct_1")
			Expect(kinds(ops)).To(ConsistOf(
				session.OpSessionCreate,
				session.OpMessageAppend,
				session.OpMessageAppend,
				session.OpStateSet,
				session.OpSessionTitle,
			))
		})
	})

	Describe("SetState", func() {
		It("records a profile use when activating a saved vehicle", func() {
			s, err := c.StartSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())
			p, err := c.AddProfile(ctx, &session.Profile{OwnerID: "acct_1", Payload: json.RawMessage(`{"make":"Subaru"}`)}, "phone")
			Expect(err).NotTo(HaveOccurred())

			value, err := json.Marshal(session.ActiveVehicle{ProfileID: p.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.SetState(ctx, s.ID, session.StateKeyActiveVehicle, value, "phone")).To(Succeed())

			profiles, err := c.ListProfiles(ctx, "acct_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(profiles[0].UsageCount).To(Equal(int64(1)))
			Expect(kinds(opsFor("acct_1"))).To(ContainElement(session.OpProfileTouch))
		})

		It("tolerates activating a vehicle with no saved profile", func() {
			s, err := c.StartSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			value := json.RawMessage(`{"make":"Honda","model":"Civic","year":2015}`)
			Expect(c.SetState(ctx, s.ID, session.StateKeyActiveVehicle, value, "phone")).To(Succeed())
		})
	})

	Describe("ClaimSession", func() {
		It("attributes the claim op to the new owner", func() {
			s, err := c.StartSession(ctx, session.NewGuestOwnerID(), session.TierEphemeral, "phone")
			Expect(err).NotTo(HaveOccurred())

			claimed, err := c.ClaimSession(ctx, s.ID, "acct_9", "phone")
			Expect(err).NotTo(HaveOccurred())
			Expect(claimed.Tier).To(Equal(session.TierPersistent))

			ops := opsFor("acct_9")
			Expect(kinds(ops)).To(Equal([]session.OpKind{session.OpSessionClaim}))

			var delta session.ClaimDelta
			Expect(json.Unmarshal(ops[0].Delta, &delta)).To(Succeed())
			Expect(delta.NewOwnerID).To(Equal("acct_9"))
		})
	})

	Describe("EndSession", func() {
		It("deletes the session and records the op", func() {
			s, err := c.StartSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			Expect(c.EndSession(ctx, s.ID, "phone")).To(Succeed())

			_, err = c.GetSession(ctx, s.ID)
			Expect(storage.IsNotFound(err)).To(BeTrue())
			Expect(kinds(opsFor("acct_1"))).To(ContainElement(session.OpSessionDelete))
		})

		It("is a no-op for a session that no longer exists", func() {
			Expect(c.EndSession(ctx, "already-gone", "phone")).To(Succeed())
		})
	})

	Describe("SetOwnerRetention", func() {
		var policy *recordingRetention

		BeforeEach(func() {
			policy = &recordingRetention{owners: map[string]time.Duration{}}
			c.AttachRetentionPolicy(policy)
		})

		It("converts days into a sweep window", func() {
			Expect(c.SetOwnerRetention("acct_1", 30)).To(Succeed())
			Expect(policy.owners).To(HaveKeyWithValue("acct_1", 30*24*time.Hour))
		})

		It("clears the preference with zero days", func() {
			Expect(c.SetOwnerRetention("acct_1", 0)).To(Succeed())
			Expect(policy.owners).To(HaveKeyWithValue("acct_1", time.Duration(0)))
		})

		It("refuses guest owners", func() {
			err := c.SetOwnerRetention(session.NewGuestOwnerID(), 30)
			Expect(err).To(HaveOccurred())
			Expect(policy.owners).To(BeEmpty())
		})

		It("fails when no policy is attached", func() {
			bare := core.New(store, engine, nil, logger.NewNop())
			Expect(bare.SetOwnerRetention("acct_1", 30)).To(HaveOccurred())
		})
	})

	Describe("ExportOwnerData", func() {
		It("stamps the snapshot with a resume clock", func() {
			_, err := c.StartSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			snap, err := c.ExportOwnerData(ctx, "acct_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Sessions).To(HaveLen(1))
			Expect(snap.AsOf.IsZero()).To(BeFalse())

			// Nothing recorded before the stamp is newer than it.
			for _, op := range opsFor("acct_1") {
				Expect(op.Clock.Less(snap.AsOf)).To(BeTrue())
			}
		})
	})

	Describe("EraseOwnerData", func() {
		It("removes everything the owner holds", func() {
			s, err := c.StartSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())
			_, err = c.AddProfile(ctx, &session.Profile{OwnerID: "acct_1", Payload: json.RawMessage(`{}`)}, "phone")
			Expect(err).NotTo(HaveOccurred())

			Expect(c.EraseOwnerData(ctx, "acct_1")).To(Succeed())

			_, err = c.GetSession(ctx, s.ID)
			Expect(storage.IsNotFound(err)).To(BeTrue())
			Expect(opsFor("acct_1")).To(BeEmpty())
		})
	})

	Describe("ApplyOp", func() {
		var s *session.Session

		BeforeEach(func() {
			var err error
			s, err = c.StartSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())
		})

		replayOp := func(kind session.OpKind, targetType session.TargetType, targetID string, delta any) *session.SyncOperation {
			op := &session.SyncOperation{
				OpID:         "replayed",
				OwnerID:      "acct_1",
				TargetID:     targetID,
				TargetType:   targetType,
				Kind:         kind,
				OriginDevice: "tablet",
				Clock:        session.Clock{WallMicros: 1, Device: "tablet"},
			}
			if delta != nil {
				raw, err := json.Marshal(delta)
				Expect(err).NotTo(HaveOccurred())
				op.Delta = raw
			}
			return op
		}

		It("applies a replayed message append", func() {
			msg := session.Message{ID: "m1", Role: session.RoleUser, Content: "from the tablet"}
			Expect(c.ApplyOp(ctx, replayOp(session.OpMessageAppend, session.TargetSession, s.ID, msg))).To(Succeed())

			got, err := c.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Messages).To(HaveLen(1))
			Expect(got.Messages[0].Content).To(Equal("from the tablet"))
		})

		It("applies a replayed state write", func() {
			delta := session.StateDelta{Key: session.StateKeyUnits, Value: json.RawMessage(`{"system":"metric"}`)}
			Expect(c.ApplyOp(ctx, replayOp(session.OpStateSet, session.TargetSession, s.ID, delta))).To(Succeed())

			value, err := c.GetState(ctx, s.ID, session.StateKeyUnits)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(MatchJSON(`{"system":"metric"}`))
		})

		It("applies a replayed title edit", func() {
			Expect(c.ApplyOp(ctx, replayOp(session.OpSessionTitle, session.TargetSession, s.ID, session.TitleDelta{Title: "From offline"}))).To(Succeed())

			got, err := c.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(Equal("From offline"))
		})

		It("applies a replayed profile add and delete", func() {
			p := session.Profile{ID: "p1", OwnerID: "acct_1", Payload: json.RawMessage(`{}`)}
			Expect(c.ApplyOp(ctx, replayOp(session.OpProfileAdd, session.TargetProfile, "p1", p))).To(Succeed())

			profiles, err := c.ListProfiles(ctx, "acct_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(profiles).To(HaveLen(1))

			Expect(c.ApplyOp(ctx, replayOp(session.OpProfileDelete, session.TargetProfile, "p1", nil))).To(Succeed())
			profiles, err = c.ListProfiles(ctx, "acct_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(profiles).To(BeEmpty())
		})

		It("rejects operation kinds that only make sense interactively", func() {
			err := c.ApplyOp(ctx, replayOp(session.OpSessionCreate, session.TargetSession, s.ID, nil))
			Expect(err).To(HaveOccurred())

			err = c.ApplyOp(ctx, replayOp(session.OpSessionClaim, session.TargetSession, s.ID, session.ClaimDelta{NewOwnerID: "acct_2"}))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ReplayQueued", func() {
		It("lands offline writes in the store", func() {
			s, err := c.StartSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			raw, err := json.Marshal(session.Message{ID: "m-offline", Role: session.RoleUser, Content: "queued while offline"})
			Expect(err).NotTo(HaveOccurred())
			queued := []*session.SyncOperation{{
				OpID:         "q1",
				OwnerID:      "acct_1",
				TargetID:     s.ID,
				TargetType:   session.TargetSession,
				Kind:         session.OpMessageAppend,
				Delta:        raw,
				OriginDevice: "tablet",
				Clock:        session.Clock{WallMicros: 1, Device: "tablet"},
			}}

			conflicts, err := c.ReplayQueued(ctx, "acct_1", queued)
			Expect(err).NotTo(HaveOccurred())
			Expect(conflicts).To(BeEmpty())

			got, err := c.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Messages).To(HaveLen(1))
		})

		It("propagates replayed writes to devices that were offline during the replay", func() {
			s, err := c.StartSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			raw, err := json.Marshal(session.Message{ID: "m-offline", Role: session.RoleUser, Content: "queued while offline"})
			Expect(err).NotTo(HaveOccurred())
			_, err = c.ReplayQueued(ctx, "acct_1", []*session.SyncOperation{{
				OpID:         "q1",
				OwnerID:      "acct_1",
				TargetID:     s.ID,
				TargetType:   session.TargetSession,
				Kind:         session.OpMessageAppend,
				Delta:        raw,
				OriginDevice: "tablet",
				Clock:        session.Clock{WallMicros: 1, Device: "tablet"},
			}})
			Expect(err).NotTo(HaveOccurred())

			// A third device that saw neither the live write nor the replay
			// pulls everything, the tablet's append included.
			ops, err := c.OpsSince(ctx, "acct_1", session.Clock{}, "car")
			Expect(err).NotTo(HaveOccurred())
			Expect(kinds(ops)).To(ContainElement(session.OpMessageAppend))
		})
	})

	Describe("AssembleContext", func() {
		It("builds the bounded context through the facade", func() {
			s, err := c.StartSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())
			_, err = c.CommitTurn(ctx, s.ID,
				session.Message{Content: "hello"},
				session.Message{Content: "hi there"},
				nil, "phone")
			Expect(err).NotTo(HaveOccurred())

			out, err := c.AssembleContext(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.SessionID).To(Equal(s.ID))
			Expect(out.Messages).To(HaveLen(2))
			Expect(out.TokenEstimate).To(BeNumerically(">", 0))
		})
	})
})
