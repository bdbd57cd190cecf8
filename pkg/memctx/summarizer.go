package memctx

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/motorlogic/garage/pkg/session"
)

// maxLineRunes caps each extracted line in the synthesized summary.
const maxLineRunes = 120

// ExtractiveSummarizer is the built-in deterministic summarizer: it distills
// the condensed turns into a compact recap of what the user said, without
// calling out to any model. It trades fluency for predictability, which is
// what a state core should do; engine-backed summarizers can replace it via
// the Summarizer interface.
type ExtractiveSummarizer struct{}

// Summarize renders one recap line per user turn, newest last.
func (ExtractiveSummarizer) Summarize(_ context.Context, msgs []session.Message) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Summary of %d earlier turns in this conversation:", len(msgs))

	for _, m := range msgs {
		if m.Role != session.RoleUser {
			continue
		}
		line := firstLine(m.Content)
		if line == "" {
			continue
		}
		sb.WriteString("\n- user: ")
		sb.WriteString(truncateRunes(line, maxLineRunes))
	}
	return sb.String(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
