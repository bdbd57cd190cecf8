package memctx_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/memctx"
	"github.com/motorlogic/garage/pkg/session"
)

var _ = Describe("ExtractiveSummarizer", func() {
	var s memctx.ExtractiveSummarizer

	It("recaps only the user's turns", func() {
		out, err := s.Summarize(context.Background(), []session.Message{
			{Role: session.RoleUser, Content: "My brakes squeal when cold"},
			{Role: session.RoleAssistant, Content: "That is often glazed pads"},
			{Role: session.RoleUser, Content: "It started last week"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HavePrefix("Summary of 3 earlier turns"))
		Expect(out).To(ContainSubstring("- user: My brakes squeal when cold"))
		Expect(out).To(ContainSubstring("- user: It started last week"))
		Expect(out).NotTo(ContainSubstring("glazed pads"))
	})

	It("keeps only the first line of a multi-line turn", func() {
		out, err := s.Summarize(context.Background(), []session.Message{
			{Role: session.RoleUser, Content: "First line\nsecond line\nthird"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("- user: First line"))
		Expect(out).NotTo(ContainSubstring("second line"))
	})

	It("truncates very long lines", func() {
		long := strings.Repeat("a", 500)
		out, err := s.Summarize(context.Background(), []session.Message{
			{Role: session.RoleUser, Content: long},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("…"))
		Expect(len(out)).To(BeNumerically("<", len(long)))
	})

	It("skips empty user turns", func() {
		out, err := s.Summarize(context.Background(), []session.Message{
			{Role: session.RoleUser, Content: "   \n  "},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).NotTo(ContainSubstring("- user:"))
	})
})
