package sync_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/logger"
	"github.com/motorlogic/garage/pkg/session"
	gsync "github.com/motorlogic/garage/pkg/sync"
)

var _ = Describe("Hub", func() {
	var hub *gsync.Hub

	BeforeEach(func() {
		hub = gsync.NewHub(logger.NewNop())
	})

	op := func(owner, device, id string) *session.SyncOperation {
		return &session.SyncOperation{
			OpID:         id,
			OwnerID:      owner,
			TargetID:     "s1",
			TargetType:   session.TargetSession,
			Kind:         session.OpMessageAppend,
			OriginDevice: device,
		}
	}

	It("delivers an owner's operations to other devices", func() {
		phone := hub.Subscribe("acct_1", "phone")
		tablet := hub.Subscribe("acct_1", "tablet")
		defer phone.Close()
		defer tablet.Close()

		hub.Publish(op("acct_1", "phone", "op-1"))

		Eventually(tablet.Ops()).Should(Receive(HaveField("OpID", "op-1")))
		Consistently(phone.Ops()).ShouldNot(Receive())
	})

	It("never delivers across owners", func() {
		other := hub.Subscribe("acct_2", "phone")
		defer other.Close()

		hub.Publish(op("acct_1", "tablet", "op-1"))

		Consistently(other.Ops()).ShouldNot(Receive())
	})

	It("closes the channel when the subscription is cancelled", func() {
		sub := hub.Subscribe("acct_1", "phone")
		sub.Close()

		Eventually(sub.Ops()).Should(BeClosed())
		Expect(hub.ActiveDevices("acct_1")).To(BeZero())
	})

	It("tolerates closing a subscription twice", func() {
		sub := hub.Subscribe("acct_1", "phone")
		sub.Close()
		sub.Close()
	})

	It("evicts a subscriber whose buffer is full instead of blocking", func() {
		slow := hub.Subscribe("acct_1", "tablet")

		// One more publish than the subscription buffer holds. The slow
		// subscriber never drains, so the final publish evicts it.
		for i := 0; i <= 256; i++ {
			hub.Publish(op("acct_1", "phone", fmt.Sprintf("op-%d", i)))
		}

		Expect(hub.ActiveDevices("acct_1")).To(BeZero())

		// Eviction closes the channel after the buffered backlog.
		received := 0
		for range slow.Ops() {
			received++
		}
		Expect(received).To(Equal(256))
	})

	It("counts active subscriptions per owner", func() {
		a := hub.Subscribe("acct_1", "phone")
		b := hub.Subscribe("acct_1", "tablet")
		defer b.Close()

		Expect(hub.ActiveDevices("acct_1")).To(Equal(2))
		a.Close()
		Expect(hub.ActiveDevices("acct_1")).To(Equal(1))
	})
})
