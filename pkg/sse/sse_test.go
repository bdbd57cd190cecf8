package sse_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/sse"
)

var _ = Describe("Reader", func() {
	It("parses a single event", func() {
		src := strings.NewReader("event: op\nid: op-1\ndata: {\"kind\":\"state.set\"}\n\n")
		r := sse.NewReader(src)

		ev, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ev).NotTo(BeNil())
		Expect(ev.Type).To(Equal("op"))
		Expect(ev.ID).To(Equal("op-1"))
		Expect(ev.Data).To(Equal(`{"kind":"state.set"}`))
	})

	It("parses consecutive events", func() {
		src := strings.NewReader("data: first\n\ndata: second\n\n")
		r := sse.NewReader(src)

		first, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Data).To(Equal("first"))

		second, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Data).To(Equal("second"))

		done, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(BeNil())
	})

	It("joins multiple data fields with newlines", func() {
		src := strings.NewReader("data: line one\ndata: line two\n\n")
		r := sse.NewReader(src)

		ev, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.Data).To(Equal("line one\nline two"))
	})

	It("skips comments and keep-alive blank lines", func() {
		src := strings.NewReader(": keep-alive\n\n: another\ndata: real\n\n")
		r := sse.NewReader(src)

		ev, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.Data).To(Equal("real"))
	})

	It("yields a trailing event with no terminating blank line", func() {
		src := strings.NewReader("data: tail")
		r := sse.NewReader(src)

		ev, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ev).NotTo(BeNil())
		Expect(ev.Data).To(Equal("tail"))
	})

	It("returns nil for an empty stream", func() {
		r := sse.NewReader(strings.NewReader(""))
		ev, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ev).To(BeNil())
	})
})

var _ = Describe("WriteEvent", func() {
	It("serializes type, id, and data", func() {
		var buf bytes.Buffer
		err := sse.WriteEvent(&buf, &sse.Event{Type: "op", ID: "op-1", Data: "payload"})
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(Equal("event: op\nid: op-1\ndata: payload\n\n"))
	})

	It("splits multi-line data across data fields", func() {
		var buf bytes.Buffer
		err := sse.WriteEvent(&buf, &sse.Event{Data: "one\ntwo"})
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(Equal("data: one\ndata: two\n\n"))
	})

	It("round-trips through the reader", func() {
		var buf bytes.Buffer
		in := &sse.Event{Type: "op", ID: "42", Data: "line one\nline two"}
		Expect(sse.WriteEvent(&buf, in)).To(Succeed())

		out, err := sse.NewReader(&buf).Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(in))
	})
})
