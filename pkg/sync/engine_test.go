package sync_test

import (
	"context"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/logger"
	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
	"github.com/motorlogic/garage/pkg/storage/inmemory"
	gsync "github.com/motorlogic/garage/pkg/sync"
)

// recordingApplier captures applied operations for assertions.
type recordingApplier struct {
	applied []*session.SyncOperation
	fail    error
}

func (r *recordingApplier) ApplyOp(_ context.Context, op *session.SyncOperation) error {
	if r.fail != nil {
		return r.fail
	}
	r.applied = append(r.applied, op)
	return nil
}

var _ = Describe("Engine", func() {
	var (
		ctx    context.Context
		store  *inmemory.Driver
		engine *gsync.Engine
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = inmemory.NewDriver(storage.DefaultOptions())
		engine = gsync.NewEngine(gsync.Config{
			Ops:    store,
			Logger: logger.NewNop(),
		})
	})

	AfterEach(func() {
		Expect(engine.Close()).To(Succeed())
	})

	Describe("Record", func() {
		It("stamps, logs, and fans out one operation", func() {
			sub := engine.Hub().Subscribe("acct_1", "tablet")
			defer sub.Close()

			op, err := engine.Record(ctx, session.OpSessionTitle, session.TargetSession, "s1", "acct_1", "phone", session.TitleDelta{Title: "Brakes"})
			Expect(err).NotTo(HaveOccurred())
			Expect(op.OpID).NotTo(BeEmpty())
			Expect(op.Clock.Device).To(Equal("phone"))

			logged, err := store.OpsSince(ctx, "acct_1", session.Clock{})
			Expect(err).NotTo(HaveOccurred())
			Expect(logged).To(HaveLen(1))
			Expect(logged[0].Kind).To(Equal(session.OpSessionTitle))

			Eventually(sub.Ops()).Should(Receive(HaveField("OpID", op.OpID)))
		})

		It("issues strictly increasing clocks across operations", func() {
			first, err := engine.Record(ctx, session.OpSessionTitle, session.TargetSession, "s1", "acct_1", "phone", session.TitleDelta{Title: "a"})
			Expect(err).NotTo(HaveOccurred())
			second, err := engine.Record(ctx, session.OpSessionTitle, session.TargetSession, "s1", "acct_1", "phone", session.TitleDelta{Title: "b"})
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Clock.Less(second.Clock)).To(BeTrue())
		})
	})

	Describe("OpsSince", func() {
		It("excludes the reconnecting device's own operations", func() {
			_, err := engine.Record(ctx, session.OpSessionTitle, session.TargetSession, "s1", "acct_1", "phone", session.TitleDelta{Title: "a"})
			Expect(err).NotTo(HaveOccurred())
			_, err = engine.Record(ctx, session.OpSessionTitle, session.TargetSession, "s1", "acct_1", "tablet", session.TitleDelta{Title: "b"})
			Expect(err).NotTo(HaveOccurred())

			ops, err := engine.OpsSince(ctx, "acct_1", session.Clock{}, "phone")
			Expect(err).NotTo(HaveOccurred())
			Expect(ops).To(HaveLen(1))
			Expect(ops[0].OriginDevice).To(Equal("tablet"))
		})
	})

	Describe("Replay", func() {
		queuedOp := func(kind session.OpKind, clock session.Clock, delta any) *session.SyncOperation {
			raw, err := json.Marshal(delta)
			Expect(err).NotTo(HaveOccurred())
			return &session.SyncOperation{
				OpID:         clock.String(),
				OwnerID:      "acct_1",
				TargetID:     "s1",
				TargetType:   session.TargetSession,
				Kind:         kind,
				Delta:        raw,
				OriginDevice: clock.Device,
				Clock:        clock,
			}
		}

		It("applies queued operations in order", func() {
			applier := &recordingApplier{}
			queued := []*session.SyncOperation{
				queuedOp(session.OpMessageAppend, session.Clock{WallMicros: 10, Device: "tablet"}, session.Message{ID: "m1", Content: "hi"}),
				queuedOp(session.OpMessageAppend, session.Clock{WallMicros: 20, Device: "tablet"}, session.Message{ID: "m2", Content: "there"}),
			}

			conflicts, err := engine.Replay(ctx, applier, "acct_1", queued)
			Expect(err).NotTo(HaveOccurred())
			Expect(conflicts).To(BeEmpty())
			Expect(applier.applied).To(HaveLen(2))
		})

		It("drops a stale scalar write and reports the conflict", func() {
			// A live title write lands first with a fresh clock.
			winner, err := engine.Record(ctx, session.OpSessionTitle, session.TargetSession, "s1", "acct_1", "phone", session.TitleDelta{Title: "Winner"})
			Expect(err).NotTo(HaveOccurred())

			applier := &recordingApplier{}
			stale := queuedOp(session.OpSessionTitle, session.Clock{WallMicros: 1, Device: "tablet"}, session.TitleDelta{Title: "Loser"})

			conflicts, err := engine.Replay(ctx, applier, "acct_1", []*session.SyncOperation{stale})
			Expect(err).NotTo(HaveOccurred())
			Expect(applier.applied).To(BeEmpty())
			Expect(conflicts).To(HaveLen(1))
			Expect(conflicts[0].Field).To(Equal("title"))
			Expect(conflicts[0].LosingOp.OpID).To(Equal(stale.OpID))
			Expect(conflicts[0].WinnerSeen).To(Equal(winner.Clock))
		})

		It("resolves conflicts per state key, not across keys", func() {
			_, err := engine.Record(ctx, session.OpStateSet, session.TargetSession, "s1", "acct_1", "phone",
				session.StateDelta{Key: "prefs.units", Value: json.RawMessage(`{"system":"metric"}`)})
			Expect(err).NotTo(HaveOccurred())

			applier := &recordingApplier{}
			// Stale clock but a different key: no conflict.
			other := queuedOp(session.OpStateSet, session.Clock{WallMicros: 1, Device: "tablet"},
				session.StateDelta{Key: "diagnostic.level", Value: json.RawMessage(`{"level":"basic"}`)})

			conflicts, err := engine.Replay(ctx, applier, "acct_1", []*session.SyncOperation{other})
			Expect(err).NotTo(HaveOccurred())
			Expect(conflicts).To(BeEmpty())
			Expect(applier.applied).To(HaveLen(1))
		})

		It("always applies message appends regardless of clock", func() {
			_, err := engine.Record(ctx, session.OpSessionTitle, session.TargetSession, "s1", "acct_1", "phone", session.TitleDelta{Title: "t"})
			Expect(err).NotTo(HaveOccurred())

			applier := &recordingApplier{}
			old := queuedOp(session.OpMessageAppend, session.Clock{WallMicros: 1, Device: "tablet"}, session.Message{ID: "m1", Content: "queued offline"})

			conflicts, err := engine.Replay(ctx, applier, "acct_1", []*session.SyncOperation{old})
			Expect(err).NotTo(HaveOccurred())
			Expect(conflicts).To(BeEmpty())
			Expect(applier.applied).To(HaveLen(1))
		})

		It("skips operations whose target vanished while offline", func() {
			applier := &recordingApplier{fail: storage.SessionNotFoundError{ID: "s1"}}
			gone := queuedOp(session.OpSessionTitle, session.Clock{WallMicros: 5, Device: "tablet"}, session.TitleDelta{Title: "moot"})

			conflicts, err := engine.Replay(ctx, applier, "acct_1", []*session.SyncOperation{gone})
			Expect(err).NotTo(HaveOccurred())
			Expect(conflicts).To(BeEmpty())
		})

		It("refuses a queue holding another owner's operations", func() {
			foreign := queuedOp(session.OpSessionTitle, session.Clock{WallMicros: 5, Device: "tablet"}, session.TitleDelta{Title: "x"})
			foreign.OwnerID = "acct_2"

			_, err := engine.Replay(ctx, &recordingApplier{}, "acct_1", []*session.SyncOperation{foreign})
			Expect(err).To(HaveOccurred())
		})

		It("logs applied operations so devices offline during the replay still see them", func() {
			applier := &recordingApplier{}
			queued := queuedOp(session.OpMessageAppend, session.Clock{WallMicros: 10, Device: "tablet"}, session.Message{ID: "m1", Content: "hi"})

			_, err := engine.Replay(ctx, applier, "acct_1", []*session.SyncOperation{queued})
			Expect(err).NotTo(HaveOccurred())

			// A third device pulling from scratch must receive the replayed op.
			ops, err := engine.OpsSince(ctx, "acct_1", session.Clock{}, "car")
			Expect(err).NotTo(HaveOccurred())
			Expect(ops).To(HaveLen(1))
			Expect(ops[0].OpID).To(Equal(queued.OpID))
		})

		It("does not log operations dropped by conflict resolution", func() {
			_, err := engine.Record(ctx, session.OpSessionTitle, session.TargetSession, "s1", "acct_1", "phone", session.TitleDelta{Title: "Winner"})
			Expect(err).NotTo(HaveOccurred())

			stale := queuedOp(session.OpSessionTitle, session.Clock{WallMicros: 1, Device: "tablet"}, session.TitleDelta{Title: "Loser"})
			_, err = engine.Replay(ctx, &recordingApplier{}, "acct_1", []*session.SyncOperation{stale})
			Expect(err).NotTo(HaveOccurred())

			ops, err := engine.OpsSince(ctx, "acct_1", session.Clock{}, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(ops).To(HaveLen(1))
			Expect(ops[0].OriginDevice).To(Equal("phone"))
		})

		It("fans replayed operations out to the owner's other devices", func() {
			sub := engine.Hub().Subscribe("acct_1", "phone")
			defer sub.Close()

			queued := queuedOp(session.OpMessageAppend, session.Clock{WallMicros: 10, Device: "tablet"}, session.Message{ID: "m1", Content: "hi"})
			_, err := engine.Replay(ctx, &recordingApplier{}, "acct_1", []*session.SyncOperation{queued})
			Expect(err).NotTo(HaveOccurred())

			Eventually(sub.Ops()).Should(Receive(HaveField("OpID", queued.OpID)))
		})
	})

	Describe("Stamp", func() {
		It("advances with recorded operations", func() {
			op, err := engine.Record(ctx, session.OpSessionTitle, session.TargetSession, "s1", "acct_1", "phone", session.TitleDelta{Title: "a"})
			Expect(err).NotTo(HaveOccurred())

			stamp := engine.Stamp("")
			Expect(op.Clock.Less(stamp)).To(BeTrue())
		})
	})
})
