package sync_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/session"
	gsync "github.com/motorlogic/garage/pkg/sync"
)

var _ = Describe("Device", func() {
	var d *gsync.Device

	BeforeEach(func() {
		d = gsync.NewDevice("phone", "acct_1")
	})

	op := func(i int) *session.SyncOperation {
		return &session.SyncOperation{
			OpID:    fmt.Sprintf("op-%d", i),
			OwnerID: "acct_1",
			Clock:   session.Clock{WallMicros: int64(i), Device: "phone"},
		}
	}

	It("starts disconnected", func() {
		Expect(d.State()).To(Equal(gsync.StateDisconnected))
	})

	It("walks the connection lifecycle", func() {
		d.BeginConnect()
		Expect(d.State()).To(Equal(gsync.StateConnecting))
		d.MarkSynced()
		Expect(d.State()).To(Equal(gsync.StateSynced))
		d.MarkDisconnected()
		Expect(d.State()).To(Equal(gsync.StateDisconnected))
	})

	Describe("Observe", func() {
		It("only moves the last-seen clock forward", func() {
			d.Observe(session.Clock{WallMicros: 10, Device: "tablet"})
			d.Observe(session.Clock{WallMicros: 5, Device: "tablet"})
			Expect(d.LastSeen().WallMicros).To(Equal(int64(10)))
		})
	})

	Describe("offline queue", func() {
		It("buffers and drains mutations in order", func() {
			for i := 0; i < 3; i++ {
				Expect(d.QueueWhileOffline(op(i))).To(Succeed())
			}

			queued, err := d.DrainQueue()
			Expect(err).NotTo(HaveOccurred())
			Expect(queued).To(HaveLen(3))
			Expect(queued[0].OpID).To(Equal("op-0"))

			// The drain clears the queue.
			queued, err = d.DrainQueue()
			Expect(err).NotTo(HaveOccurred())
			Expect(queued).To(BeEmpty())
		})

		It("forces a full resync once the bound is exceeded", func() {
			for i := 0; i < gsync.DefaultOfflineQueueLimit; i++ {
				Expect(d.QueueWhileOffline(op(i))).To(Succeed())
			}

			err := d.QueueWhileOffline(op(gsync.DefaultOfflineQueueLimit))
			Expect(err).To(MatchError(gsync.ErrResyncRequired))

			// Every subsequent enqueue keeps failing.
			Expect(d.QueueWhileOffline(op(0))).To(MatchError(gsync.ErrResyncRequired))

			// The drain reports it too; the queue contents are gone.
			_, err = d.DrainQueue()
			Expect(err).To(MatchError(gsync.ErrResyncRequired))
		})

		It("honors a configured queue bound", func() {
			small := gsync.NewDeviceWithQueueLimit("phone", "acct_1", 3)
			for i := 0; i < 3; i++ {
				Expect(small.QueueWhileOffline(op(i))).To(Succeed())
			}
			Expect(small.QueueWhileOffline(op(3))).To(MatchError(gsync.ErrResyncRequired))
		})

		It("falls back to the default bound for non-positive limits", func() {
			loose := gsync.NewDeviceWithQueueLimit("phone", "acct_1", 0)
			Expect(loose.QueueWhileOffline(op(0))).To(Succeed())
		})

		It("recovers after a snapshot resync", func() {
			for i := 0; i <= gsync.DefaultOfflineQueueLimit; i++ {
				_ = d.QueueWhileOffline(op(i))
			}
			_, err := d.DrainQueue()
			Expect(err).To(MatchError(gsync.ErrResyncRequired))

			asOf := session.Clock{WallMicros: 99, Device: ""}
			d.ResetAfterSnapshot(asOf)

			Expect(d.State()).To(Equal(gsync.StateSynced))
			Expect(d.LastSeen()).To(Equal(asOf))
			Expect(d.QueueWhileOffline(op(100))).To(Succeed())
		})
	})
})
