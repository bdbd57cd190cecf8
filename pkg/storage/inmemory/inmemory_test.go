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

// fakeClock gives tests control over the store's notion of now.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

var _ = Describe("Driver sessions", func() {
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

	Describe("CreateSession", func() {
		It("creates an ephemeral session for a guest owner with an expiry", func() {
			owner := session.NewGuestOwnerID()
			s, err := d.CreateSession(ctx, owner, session.TierEphemeral, "phone")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.ID).NotTo(BeEmpty())
			Expect(s.Tier).To(Equal(session.TierEphemeral))
			Expect(s.ExpiresAt).NotTo(BeNil())
			Expect(*s.ExpiresAt).To(Equal(clock.Now().Add(time.Hour)))
			Expect(s.Version).To(Equal(int64(1)))
		})

		It("creates a persistent session for an account owner without an expiry", func() {
			s, err := d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Tier).To(Equal(session.TierPersistent))
			Expect(s.ExpiresAt).To(BeNil())
		})

		It("rejects a persistent session for a guest owner", func() {
			_, err := d.CreateSession(ctx, session.NewGuestOwnerID(), session.TierPersistent, "phone")
			var tierErr storage.InvalidTierError
			Expect(err).To(BeAssignableToTypeOf(tierErr))
		})

		It("rejects an ephemeral session for an account owner", func() {
			_, err := d.CreateSession(ctx, "acct_1", session.TierEphemeral, "phone")
			var tierErr storage.InvalidTierError
			Expect(err).To(BeAssignableToTypeOf(tierErr))
		})

		It("requires an owner id", func() {
			_, err := d.CreateSession(ctx, "", session.TierEphemeral, "phone")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetSession", func() {
		It("fails with SessionNotFoundError for unknown ids", func() {
			_, err := d.GetSession(ctx, "missing")
			var nf storage.SessionNotFoundError
			Expect(err).To(BeAssignableToTypeOf(nf))
			Expect(storage.IsNotFound(err)).To(BeTrue())
		})

		It("refreshes the sliding expiry on read", func() {
			s, err := d.CreateSession(ctx, session.NewGuestOwnerID(), session.TierEphemeral, "phone")
			Expect(err).NotTo(HaveOccurred())

			clock.Advance(40 * time.Minute)
			got, err := d.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*got.ExpiresAt).To(Equal(clock.Now().Add(time.Hour)))

			// Another 40 minutes is past the original deadline but within
			// the refreshed one.
			clock.Advance(40 * time.Minute)
			_, err = d.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("treats a session at its deadline as expired", func() {
			s, err := d.CreateSession(ctx, session.NewGuestOwnerID(), session.TierEphemeral, "phone")
			Expect(err).NotTo(HaveOccurred())

			clock.Advance(time.Hour)
			_, err = d.GetSession(ctx, s.ID)
			var exp storage.SessionExpiredError
			Expect(err).To(BeAssignableToTypeOf(exp))
			Expect(storage.IsNotFound(err)).To(BeTrue())
		})

		It("does not bump the version on read", func() {
			s, err := d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			got, err := d.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Version).To(Equal(s.Version))
		})
	})

	Describe("ListSessions", func() {
		It("returns only the owner's live sessions, newest activity first, without messages", func() {
			a, err := d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())
			clock.Advance(time.Minute)
			b, err := d.CreateSession(ctx, "acct_1", session.TierPersistent, "tablet")
			Expect(err).NotTo(HaveOccurred())
			_, err = d.CreateSession(ctx, "acct_2", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			_, err = d.AppendMessage(ctx, a.ID, session.Message{Role: session.RoleUser, Content: "hi"}, "phone")
			Expect(err).NotTo(HaveOccurred())

			list, err := d.ListSessions(ctx, "acct_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			// a was touched after b was created, so a leads.
			Expect(list[0].ID).To(Equal(a.ID))
			Expect(list[1].ID).To(Equal(b.ID))
			Expect(list[0].Messages).To(BeEmpty())
		})

		It("omits expired sessions", func() {
			_, err := d.CreateSession(ctx, "guest_x", session.TierEphemeral, "phone")
			Expect(err).NotTo(HaveOccurred())

			clock.Advance(2 * time.Hour)
			list, err := d.ListSessions(ctx, "guest_x")
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})
	})

	Describe("AppendMessage", func() {
		var s *session.Session

		BeforeEach(func() {
			var err error
			s, err = d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())
		})

		It("assigns an id and timestamps when absent", func() {
			stored, err := d.AppendMessage(ctx, s.ID, session.Message{Role: session.RoleUser, Content: "hello"}, "phone")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.ID).NotTo(BeEmpty())
			Expect(stored.SessionID).To(Equal(s.ID))
			Expect(stored.CreatedAt).To(Equal(clock.Now()))
		})

		It("deduplicates by message id", func() {
			msg := session.Message{ID: "m1", Role: session.RoleUser, Content: "first"}
			_, err := d.AppendMessage(ctx, s.ID, msg, "phone")
			Expect(err).NotTo(HaveOccurred())

			dup := session.Message{ID: "m1", Role: session.RoleUser, Content: "second"}
			stored, err := d.AppendMessage(ctx, s.ID, dup, "tablet")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Content).To(Equal("first"))

			got, err := d.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Messages).To(HaveLen(1))
		})

		It("bumps the version and records the mutating device", func() {
			_, err := d.AppendMessage(ctx, s.ID, session.Message{Role: session.RoleUser, Content: "hi"}, "tablet")
			Expect(err).NotTo(HaveOccurred())

			got, err := d.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Version).To(Equal(int64(2)))
			Expect(got.DeviceOrigin).To(Equal("tablet"))
		})
	})

	Describe("SetState and GetState", func() {
		var s *session.Session

		BeforeEach(func() {
			var err error
			s, err = d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())
		})

		It("round-trips a state slot", func() {
			value := json.RawMessage(`{"system":"metric"}`)
			Expect(d.SetState(ctx, s.ID, session.StateKeyUnits, value, "phone")).To(Succeed())

			got, err := d.GetState(ctx, s.ID, session.StateKeyUnits)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(MatchJSON(value))
		})

		It("returns nil for a missing key", func() {
			got, err := d.GetState(ctx, s.ID, "never.set")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})

		It("rejects malformed values and leaves state untouched", func() {
			err := d.SetState(ctx, s.ID, session.StateKeyUnits, json.RawMessage(`{"system":"cubits"}`), "phone")
			var stateErr storage.StateError
			Expect(err).To(BeAssignableToTypeOf(stateErr))

			got, err := d.GetState(ctx, s.ID, session.StateKeyUnits)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})
	})

	Describe("SetTitle", func() {
		It("trims and stores the title", func() {
			s, err := d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			Expect(d.SetTitle(ctx, s.ID, "  Brake noise diagnosis  ", "phone")).To(Succeed())

			got, err := d.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(Equal("Brake noise diagnosis"))
		})
	})

	Describe("ClaimSession", func() {
		var ephemeral *session.Session

		BeforeEach(func() {
			var err error
			ephemeral, err = d.CreateSession(ctx, session.NewGuestOwnerID(), session.TierEphemeral, "phone")
			Expect(err).NotTo(HaveOccurred())
		})

		It("migrates the session to the persistent tier and clears the expiry", func() {
			claimed, err := d.ClaimSession(ctx, ephemeral.ID, "acct_9", "phone")
			Expect(err).NotTo(HaveOccurred())
			Expect(claimed.OwnerID).To(Equal("acct_9"))
			Expect(claimed.Tier).To(Equal(session.TierPersistent))
			Expect(claimed.ExpiresAt).To(BeNil())

			// The claimed session survives well past the old TTL.
			clock.Advance(48 * time.Hour)
			_, err = d.GetSession(ctx, claimed.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("is idempotent for the same owner", func() {
			_, err := d.ClaimSession(ctx, ephemeral.ID, "acct_9", "phone")
			Expect(err).NotTo(HaveOccurred())

			again, err := d.ClaimSession(ctx, ephemeral.ID, "acct_9", "phone")
			Expect(err).NotTo(HaveOccurred())
			Expect(again.OwnerID).To(Equal("acct_9"))
		})

		It("refuses a claim by a different owner", func() {
			_, err := d.ClaimSession(ctx, ephemeral.ID, "acct_9", "phone")
			Expect(err).NotTo(HaveOccurred())

			_, err = d.ClaimSession(ctx, ephemeral.ID, "acct_10", "tablet")
			var conflict storage.OwnershipConflictError
			Expect(err).To(BeAssignableToTypeOf(conflict))
		})

		It("refuses a claim by a guest-shaped owner", func() {
			_, err := d.ClaimSession(ctx, ephemeral.ID, session.NewGuestOwnerID(), "phone")
			var tierErr storage.InvalidTierError
			Expect(err).To(BeAssignableToTypeOf(tierErr))
		})

		It("cannot claim an already-expired session", func() {
			clock.Advance(2 * time.Hour)
			_, err := d.ClaimSession(ctx, ephemeral.ID, "acct_9", "phone")
			Expect(storage.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("DeleteSession", func() {
		It("removes the session and is idempotent", func() {
			s, err := d.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			Expect(d.DeleteSession(ctx, s.ID)).To(Succeed())
			Expect(d.DeleteSession(ctx, s.ID)).To(Succeed())

			_, err = d.GetSession(ctx, s.ID)
			Expect(storage.IsNotFound(err)).To(BeTrue())
		})
	})
})
