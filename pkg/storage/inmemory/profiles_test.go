package inmemory_test

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
	"github.com/motorlogic/garage/pkg/storage/inmemory"
)

var _ = Describe("Driver profiles", func() {
	var (
		ctx   context.Context
		clock *fakeClock
	)

	BeforeEach(func() {
		ctx = context.Background()
		clock = newFakeClock()
	})

	newProfile := func(owner, id string) *session.Profile {
		return &session.Profile{
			ID:      id,
			OwnerID: owner,
			Payload: json.RawMessage(`{"year":2019,"make":"Subaru","model":"Outback"}`),
		}
	}

	Describe("AddProfile", func() {
		var d *inmemory.Driver

		BeforeEach(func() {
			d = inmemory.NewDriverWithClock(storage.DefaultOptions(), clock.Now)
		})

		It("stores the profile and generates an id when absent", func() {
			stored, err := d.AddProfile(ctx, newProfile("acct_1", ""))
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.ID).NotTo(BeEmpty())
			Expect(stored.OwnerID).To(Equal("acct_1"))
			Expect(stored.CreatedAt).To(Equal(clock.Now()))
		})

		It("refuses profiles for guest-shaped owners", func() {
			_, err := d.AddProfile(ctx, newProfile(session.NewGuestOwnerID(), ""))
			var tierErr storage.InvalidTierError
			Expect(err).To(BeAssignableToTypeOf(tierErr))
		})

		It("rejects the write at the cap under the rejection policy", func() {
			for i := 0; i < 10; i++ {
				_, err := d.AddProfile(ctx, newProfile("acct_1", fmt.Sprintf("p%d", i)))
				Expect(err).NotTo(HaveOccurred())
			}

			_, err := d.AddProfile(ctx, newProfile("acct_1", "p10"))
			var limitErr storage.ProfileLimitError
			Expect(err).To(BeAssignableToTypeOf(limitErr))

			list, err := d.ListProfiles(ctx, "acct_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(10))
		})

		It("counts the cap per owner", func() {
			for i := 0; i < 10; i++ {
				_, err := d.AddProfile(ctx, newProfile("acct_1", fmt.Sprintf("p%d", i)))
				Expect(err).NotTo(HaveOccurred())
			}

			_, err := d.AddProfile(ctx, newProfile("acct_2", "other"))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("AddProfile with LRU eviction", func() {
		var d *inmemory.Driver

		BeforeEach(func() {
			opts := storage.DefaultOptions()
			opts.MaxProfiles = 3
			opts.CapPolicy = storage.CapEvictLRU
			d = inmemory.NewDriverWithClock(opts, clock.Now)
		})

		It("evicts the least-recently-used profile to make room", func() {
			for _, id := range []string{"p0", "p1", "p2"} {
				_, err := d.AddProfile(ctx, newProfile("acct_1", id))
				Expect(err).NotTo(HaveOccurred())
				clock.Advance(time.Minute)
			}

			// Touch p0 so p1 becomes the LRU candidate.
			Expect(d.TouchProfile(ctx, "p0")).To(Succeed())
			clock.Advance(time.Minute)

			_, err := d.AddProfile(ctx, newProfile("acct_1", "p3"))
			Expect(err).NotTo(HaveOccurred())

			_, err = d.GetProfile(ctx, "p1")
			Expect(storage.IsNotFound(err)).To(BeTrue())
			for _, id := range []string{"p0", "p2", "p3"} {
				_, err := d.GetProfile(ctx, id)
				Expect(err).NotTo(HaveOccurred())
			}
		})
	})

	Describe("TouchProfile", func() {
		var d *inmemory.Driver

		BeforeEach(func() {
			d = inmemory.NewDriverWithClock(storage.DefaultOptions(), clock.Now)
		})

		It("increments usage and moves last_used_at forward", func() {
			stored, err := d.AddProfile(ctx, newProfile("acct_1", ""))
			Expect(err).NotTo(HaveOccurred())

			clock.Advance(time.Hour)
			Expect(d.TouchProfile(ctx, stored.ID)).To(Succeed())

			got, err := d.GetProfile(ctx, stored.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.UsageCount).To(Equal(int64(1)))
			Expect(got.LastUsedAt).To(Equal(clock.Now()))
		})

		It("fails for a missing profile", func() {
			err := d.TouchProfile(ctx, "missing")
			Expect(storage.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("ListProfiles", func() {
		It("orders by most recently used", func() {
			d := inmemory.NewDriverWithClock(storage.DefaultOptions(), clock.Now)

			for _, id := range []string{"p0", "p1", "p2"} {
				_, err := d.AddProfile(ctx, newProfile("acct_1", id))
				Expect(err).NotTo(HaveOccurred())
				clock.Advance(time.Minute)
			}
			Expect(d.TouchProfile(ctx, "p0")).To(Succeed())

			list, err := d.ListProfiles(ctx, "acct_1")
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(3))
			Expect(list[0].ID).To(Equal("p0"))
		})
	})

	Describe("DeleteProfile", func() {
		It("removes the profile and is idempotent", func() {
			d := inmemory.NewDriverWithClock(storage.DefaultOptions(), clock.Now)

			stored, err := d.AddProfile(ctx, newProfile("acct_1", ""))
			Expect(err).NotTo(HaveOccurred())

			Expect(d.DeleteProfile(ctx, stored.ID)).To(Succeed())
			Expect(d.DeleteProfile(ctx, stored.ID)).To(Succeed())

			_, err = d.GetProfile(ctx, stored.ID)
			Expect(storage.IsNotFound(err)).To(BeTrue())
		})
	})
})
