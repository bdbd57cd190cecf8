package sse

import (
	"fmt"
	"io"
	"strings"
)

// WriteEvent serializes one event to w in wire format, terminated by the
// blank line that delimits events. Multi-line data is split across multiple
// data: fields per the spec.
func WriteEvent(w io.Writer, ev *Event) error {
	if ev.Type != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", ev.Type); err != nil {
			return err
		}
	}
	if ev.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", ev.ID); err != nil {
			return err
		}
	}
	for _, line := range strings.Split(ev.Data, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
