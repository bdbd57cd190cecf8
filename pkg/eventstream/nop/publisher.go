// Package nop provides a no-op eventstream publisher for tests and
// single-node deployments where in-process fan-out is sufficient.
package nop

import (
	"context"

	"github.com/motorlogic/garage/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher.
type Publisher struct{}

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishOp validates input and otherwise does nothing.
func (p *Publisher) PublishOp(_ context.Context, event *eventstream.OpRecordedEvent) error {
	if event == nil {
		return eventstream.ErrNilOpEvent
	}
	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
