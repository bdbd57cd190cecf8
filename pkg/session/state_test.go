package session_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/session"
)

func farFuture() time.Time {
	return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("ValidateStateValue", func() {
	It("rejects empty values", func() {
		err := session.ValidateStateValue("prefs.units", nil)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("empty"))
	})

	It("rejects values that are not JSON", func() {
		err := session.ValidateStateValue("anything", json.RawMessage("{not json"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("not valid JSON"))
	})

	It("accepts arbitrary JSON under unknown keys", func() {
		err := session.ValidateStateValue("feature.custom", json.RawMessage(`{"anything":["goes",1,true]}`))
		Expect(err).NotTo(HaveOccurred())
	})

	Context("vehicle.active_profile", func() {
		It("accepts a well-formed vehicle document", func() {
			raw := json.RawMessage(`{"profile_id":"p1","year":2019,"make":"Subaru","model":"Outback","mileage":82000}`)
			Expect(session.ValidateStateValue(session.StateKeyActiveVehicle, raw)).To(Succeed())
		})

		It("rejects unknown fields", func() {
			raw := json.RawMessage(`{"profile_id":"p1","color":"red"}`)
			Expect(session.ValidateStateValue(session.StateKeyActiveVehicle, raw)).NotTo(Succeed())
		})
	})

	Context("diagnostic.level", func() {
		It("accepts the known levels", func() {
			for _, level := range []string{"basic", "standard", "advanced"} {
				raw := json.RawMessage(`{"level":"` + level + `"}`)
				Expect(session.ValidateStateValue(session.StateKeyDiagnosticLevel, raw)).To(Succeed())
			}
		})

		It("rejects an unknown level", func() {
			raw := json.RawMessage(`{"level":"expert"}`)
			err := session.ValidateStateValue(session.StateKeyDiagnosticLevel, raw)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown diagnostic level"))
		})
	})

	Context("prefs.units", func() {
		It("accepts metric and imperial", func() {
			Expect(session.ValidateStateValue(session.StateKeyUnits, json.RawMessage(`{"system":"metric"}`))).To(Succeed())
			Expect(session.ValidateStateValue(session.StateKeyUnits, json.RawMessage(`{"system":"imperial"}`))).To(Succeed())
		})

		It("rejects other systems", func() {
			err := session.ValidateStateValue(session.StateKeyUnits, json.RawMessage(`{"system":"cubits"}`))
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Session", func() {
	Describe("Expired", func() {
		It("never expires without a deadline", func() {
			s := &session.Session{Tier: session.TierPersistent}
			Expect(s.Expired(farFuture())).To(BeFalse())
		})

		It("expires exactly at the deadline", func() {
			deadline := farFuture()
			s := &session.Session{Tier: session.TierEphemeral, ExpiresAt: &deadline}
			Expect(s.Expired(deadline.Add(-1))).To(BeFalse())
			Expect(s.Expired(deadline)).To(BeTrue())
			Expect(s.Expired(deadline.Add(1))).To(BeTrue())
		})
	})

	Describe("Clone", func() {
		It("deep-copies messages, state, and the expiry", func() {
			deadline := farFuture()
			s := &session.Session{
				ID:        "s1",
				State:     session.State{"k": json.RawMessage(`1`)},
				Messages:  []session.Message{{ID: "m1", Content: "hello"}},
				ExpiresAt: &deadline,
			}

			c := s.Clone()
			c.Messages[0].Content = "mutated"
			c.State["k"] = json.RawMessage(`2`)
			*c.ExpiresAt = deadline.Add(1)

			Expect(s.Messages[0].Content).To(Equal("hello"))
			Expect(s.State["k"]).To(Equal(json.RawMessage(`1`)))
			Expect(*s.ExpiresAt).To(Equal(deadline))
		})

		It("clones nil as nil", func() {
			var s *session.Session
			Expect(s.Clone()).To(BeNil())
		})
	})
})
