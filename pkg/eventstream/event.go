// Package eventstream defines transport-neutral event payloads for sync
// operations, and the Publisher interface backends implement. The kafka
// subpackage carries operations between garage nodes; the nop subpackage
// serves tests and single-node deployments.
package eventstream

import (
	"time"

	"github.com/motorlogic/garage/pkg/session"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeOpRecorded is emitted after a sync operation is recorded.
	EventTypeOpRecorded = "garage.sync.op_recorded"
)

// OpRecordedEvent is a transport-neutral payload wrapping one recorded sync
// operation for cross-node propagation.
type OpRecordedEvent struct {
	SchemaVersion int                   `json:"schema_version"`
	EventType     string                `json:"event_type"`
	EventID       string                `json:"event_id"`
	EmittedAt     time.Time             `json:"emitted_at"`
	Op            session.SyncOperation `json:"op"`
}
