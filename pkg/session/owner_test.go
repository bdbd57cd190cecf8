package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/session"
)

var _ = Describe("owner identity", func() {
	Describe("NewGuestOwnerID", func() {
		It("generates unique guest-shaped ids", func() {
			a := session.NewGuestOwnerID()
			b := session.NewGuestOwnerID()
			Expect(a).To(HavePrefix(session.GuestPrefix))
			Expect(b).To(HavePrefix(session.GuestPrefix))
			Expect(a).NotTo(Equal(b))
		})
	})

	Describe("IsGuestOwner", func() {
		It("recognizes the guest prefix", func() {
			Expect(session.IsGuestOwner("guest_abc")).To(BeTrue())
			Expect(session.IsGuestOwner("acct_abc")).To(BeFalse())
			Expect(session.IsGuestOwner("")).To(BeFalse())
		})
	})

	Describe("TierForOwner", func() {
		It("maps guest ids to the ephemeral tier", func() {
			Expect(session.TierForOwner(session.NewGuestOwnerID())).To(Equal(session.TierEphemeral))
		})

		It("maps account ids to the persistent tier", func() {
			Expect(session.TierForOwner("acct_42")).To(Equal(session.TierPersistent))
		})
	})

	Describe("ValidTierFor", func() {
		It("allows only the tier the owner id implies", func() {
			guest := session.NewGuestOwnerID()
			Expect(session.ValidTierFor(guest, session.TierEphemeral)).To(BeTrue())
			Expect(session.ValidTierFor(guest, session.TierPersistent)).To(BeFalse())
			Expect(session.ValidTierFor("acct_42", session.TierPersistent)).To(BeTrue())
			Expect(session.ValidTierFor("acct_42", session.TierEphemeral)).To(BeFalse())
		})

		It("treats an account id containing guest_ mid-string as an account", func() {
			owner := "acct_guest_42"
			Expect(session.IsGuestOwner(owner)).To(BeFalse())
			Expect(session.ValidTierFor(owner, session.TierPersistent)).To(BeTrue())
		})
	})
})
