package inmemory_test

import (
	"context"
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
	"github.com/motorlogic/garage/pkg/storage/inmemory"
)

var _ = Describe("Driver op log and privacy surface", func() {
	var (
		ctx   context.Context
		clock *fakeClock
		d     *inmemory.Driver
	)

	BeforeEach(func() {
		ctx = context.Background()
		clock = newFakeClock()
		d = inmemory.NewDriverWithClock(storage.DefaultOptions(), clock.Now)
	})

	op := func(owner string, wall int64, device string) *session.SyncOperation {
		return &session.SyncOperation{
			OpID:         owner + "-op",
			OwnerID:      owner,
			TargetID:     "s1",
			TargetType:   session.TargetSession,
			Kind:         session.OpSessionTitle,
			OriginDevice: device,
			Clock:        session.Clock{WallMicros: wall, Device: device},
		}
	}

	Describe("OpsSince", func() {
		It("returns only clocks strictly after since, in clock order", func() {
			for _, wall := range []int64{30, 10, 20} {
				Expect(d.AppendOp(ctx, op("acct_1", wall, "phone"))).To(Succeed())
			}

			ops, err := d.OpsSince(ctx, "acct_1", session.Clock{WallMicros: 10, Device: "phone"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ops).To(HaveLen(2))
			Expect(ops[0].Clock.WallMicros).To(Equal(int64(20)))
			Expect(ops[1].Clock.WallMicros).To(Equal(int64(30)))
		})

		It("returns everything retained for a zero clock", func() {
			Expect(d.AppendOp(ctx, op("acct_1", 10, "phone"))).To(Succeed())
			Expect(d.AppendOp(ctx, op("acct_1", 20, "tablet"))).To(Succeed())

			ops, err := d.OpsSince(ctx, "acct_1", session.Clock{})
			Expect(err).NotTo(HaveOccurred())
			Expect(ops).To(HaveLen(2))
		})

		It("scopes the log per owner", func() {
			Expect(d.AppendOp(ctx, op("acct_1", 10, "phone"))).To(Succeed())
			Expect(d.AppendOp(ctx, op("acct_2", 20, "phone"))).To(Succeed())

			ops, err := d.OpsSince(ctx, "acct_1", session.Clock{})
			Expect(err).NotTo(HaveOccurred())
			Expect(ops).To(HaveLen(1))
			Expect(ops[0].OwnerID).To(Equal("acct_1"))
		})
	})

	Describe("PurgeExpiredSessions", func() {
		It("deletes only sessions past their deadline", func() {
			_, err := d.CreateSession(ctx, "guest_a", session.TierEphemeral, "phone")
			Expect(err).NotTo(HaveOccurred())
			_, err = d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			n, err := d.PurgeExpiredSessions(ctx, clock.Now().Add(2*time.Hour))
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))

			list, err := d.ListSessions(ctx, "acct_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
		})
	})

	Describe("PurgeSessionsInactiveSince", func() {
		It("deletes the owner's persistent sessions inactive before the cutoff", func() {
			old, err := d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			clock.Advance(72 * time.Hour)
			fresh, err := d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			n, err := d.PurgeSessionsInactiveSince(ctx, "acct_1", clock.Now().Add(-time.Hour))
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))

			_, err = d.GetSession(ctx, old.ID)
			Expect(storage.IsNotFound(err)).To(BeTrue())
			_, err = d.GetSession(ctx, fresh.ID)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("PurgeOpsBefore", func() {
		It("drops operations created before the cutoff", func() {
			Expect(d.AppendOp(ctx, op("acct_1", 10, "phone"))).To(Succeed())
			cutoff := clock.Now().Add(time.Minute)
			clock.Advance(2 * time.Minute)
			Expect(d.AppendOp(ctx, op("acct_1", 20, "phone"))).To(Succeed())

			n, err := d.PurgeOpsBefore(ctx, cutoff)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))

			ops, err := d.OpsSince(ctx, "acct_1", session.Clock{})
			Expect(err).NotTo(HaveOccurred())
			Expect(ops).To(HaveLen(1))
			Expect(ops[0].Clock.WallMicros).To(Equal(int64(20)))
		})
	})

	Describe("ExportOwner", func() {
		It("serializes the owner's sessions with messages and profiles", func() {
			s, err := d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())
			_, err = d.AppendMessage(ctx, s.ID, session.Message{Role: session.RoleUser, Content: "hi"}, "phone")
			Expect(err).NotTo(HaveOccurred())
			_, err = d.AddProfile(ctx, &session.Profile{OwnerID: "acct_1", Payload: json.RawMessage(`{}`)})
			Expect(err).NotTo(HaveOccurred())

			// Someone else's data never leaks into the export.
			_, err = d.CreateSession(ctx, "acct_2", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			snap, err := d.ExportOwner(ctx, "acct_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.OwnerID).To(Equal("acct_1"))
			Expect(snap.Sessions).To(HaveLen(1))
			Expect(snap.Sessions[0].Messages).To(HaveLen(1))
			Expect(snap.Profiles).To(HaveLen(1))
		})
	})

	Describe("EraseOwner", func() {
		It("deletes sessions, profiles, and queued ops, and is idempotent", func() {
			s, err := d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())
			_, err = d.AddProfile(ctx, &session.Profile{ID: "p1", OwnerID: "acct_1", Payload: json.RawMessage(`{}`)})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.AppendOp(ctx, op("acct_1", 10, "phone"))).To(Succeed())
			Expect(d.AppendOp(ctx, op("acct_2", 20, "phone"))).To(Succeed())

			Expect(d.EraseOwner(ctx, "acct_1")).To(Succeed())
			Expect(d.EraseOwner(ctx, "acct_1")).To(Succeed())

			_, err = d.GetSession(ctx, s.ID)
			Expect(storage.IsNotFound(err)).To(BeTrue())
			_, err = d.GetProfile(ctx, "p1")
			Expect(storage.IsNotFound(err)).To(BeTrue())

			ops, err := d.OpsSince(ctx, "acct_1", session.Clock{})
			Expect(err).NotTo(HaveOccurred())
			Expect(ops).To(BeEmpty())

			// Other owners are untouched.
			ops, err = d.OpsSince(ctx, "acct_2", session.Clock{})
			Expect(err).NotTo(HaveOccurred())
			Expect(ops).To(HaveLen(1))
		})
	})
})
