package eventstream

import "context"

// Publisher publishes sync-operation events to an event stream backend.
type Publisher interface {
	PublishOp(ctx context.Context, event *OpRecordedEvent) error
	Close() error
}
