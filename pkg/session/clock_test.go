package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/session"
)

var _ = Describe("Clock", func() {
	Describe("Less", func() {
		It("orders by wall time first", func() {
			a := session.Clock{WallMicros: 100, Counter: 9, Device: "z"}
			b := session.Clock{WallMicros: 200, Counter: 0, Device: "a"}
			Expect(a.Less(b)).To(BeTrue())
			Expect(b.Less(a)).To(BeFalse())
		})

		It("breaks wall-time ties with the counter", func() {
			a := session.Clock{WallMicros: 100, Counter: 1, Device: "z"}
			b := session.Clock{WallMicros: 100, Counter: 2, Device: "a"}
			Expect(a.Less(b)).To(BeTrue())
			Expect(b.Less(a)).To(BeFalse())
		})

		It("breaks full ties with the device id", func() {
			a := session.Clock{WallMicros: 100, Counter: 1, Device: "phone"}
			b := session.Clock{WallMicros: 100, Counter: 1, Device: "tablet"}
			Expect(a.Less(b)).To(BeTrue())
			Expect(b.Less(a)).To(BeFalse())
		})

		It("is irreflexive so equal clocks are never ordered", func() {
			a := session.Clock{WallMicros: 100, Counter: 1, Device: "phone"}
			Expect(a.Less(a)).To(BeFalse())
		})
	})

	Describe("IsZero", func() {
		It("reports true only for the zero value", func() {
			Expect(session.Clock{}.IsZero()).To(BeTrue())
			Expect(session.Clock{WallMicros: 1}.IsZero()).To(BeFalse())
			Expect(session.Clock{Counter: 1}.IsZero()).To(BeFalse())
			Expect(session.Clock{Device: "d"}.IsZero()).To(BeFalse())
		})
	})
})
