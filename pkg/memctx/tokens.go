package memctx

import "github.com/motorlogic/garage/pkg/session"

// perMessageOverhead accounts for role/framing tokens around each turn.
const perMessageOverhead = 4

// estimateTokens approximates token count from byte length. The standard
// rough cut of one token per four bytes is plenty for budget enforcement;
// exact tokenization belongs to the engine, not the state core.
func estimateTokens(s string) int {
	return (len(s) + 3) / 4
}

func estimateMessage(m session.Message) int {
	return estimateTokens(m.Content) + perMessageOverhead
}

func estimateMessages(msgs []session.Message) int {
	total := 0
	for _, m := range msgs {
		total += estimateMessage(m)
	}
	return total
}
