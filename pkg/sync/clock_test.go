package sync_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	gsync "github.com/motorlogic/garage/pkg/sync"
)

var _ = Describe("ClockSource", func() {
	It("issues strictly increasing clocks from the same source", func() {
		src := gsync.NewClockSource()
		prev := src.Next("phone")
		for i := 0; i < 1000; i++ {
			next := src.Next("phone")
			Expect(prev.Less(next)).To(BeTrue())
			prev = next
		}
	})

	It("breaks same-microsecond ties with the counter", func() {
		frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		src := gsync.NewClockSourceWithNow(func() time.Time { return frozen })

		a := src.Next("phone")
		b := src.Next("phone")
		Expect(b.WallMicros).To(Equal(a.WallMicros))
		Expect(b.Counter).To(Equal(a.Counter + 1))
		Expect(a.Less(b)).To(BeTrue())
	})

	It("never goes backwards when the wall clock does", func() {
		times := []time.Time{
			time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC),
			time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC), // wall clock jumped back
			time.Date(2026, 3, 1, 12, 0, 2, 0, time.UTC),
		}
		i := 0
		src := gsync.NewClockSourceWithNow(func() time.Time {
			t := times[i]
			if i < len(times)-1 {
				i++
			}
			return t
		})

		a := src.Next("phone")
		b := src.Next("phone")
		c := src.Next("phone")
		Expect(a.Less(b)).To(BeTrue())
		Expect(b.Less(c)).To(BeTrue())
		Expect(b.WallMicros).To(BeNumerically(">=", a.WallMicros))
	})

	It("stamps the origin device onto the clock", func() {
		src := gsync.NewClockSource()
		Expect(src.Next("tablet").Device).To(Equal("tablet"))
	})
})
