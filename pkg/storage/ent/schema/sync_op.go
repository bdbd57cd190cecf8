package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SyncOp holds the schema definition for the SyncOp entity: the transient,
// owner-scoped log of mutations replayed to reconnecting devices. Rows are
// garbage-collected after a bounded retention window.
type SyncOp struct {
	ent.Schema
}

// Fields of the SyncOp.
func (SyncOp) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			NotEmpty(),

		field.String("owner_id").
			Immutable().
			NotEmpty(),

		field.String("target_id").
			Immutable().
			NotEmpty(),

		// target_type is "session" or "profile".
		field.String("target_type").
			Immutable().
			NotEmpty(),

		field.String("kind").
			Immutable().
			NotEmpty(),

		field.JSON("delta", map[string]any{}).
			Optional(),

		field.String("origin_device").
			Optional().
			Immutable(),

		// Hybrid logical clock, flattened for index-friendly range scans.
		field.Int64("clock_wall_micros").
			Immutable(),

		field.Int64("clock_counter").
			Immutable(),

		field.String("clock_device").
			Optional().
			Immutable(),

		field.Time("created_at").
			Default(time.Now).
			Immutable().
			Annotations(entsql.Default("CURRENT_TIMESTAMP")),
	}
}

// Indexes of the SyncOp.
func (SyncOp) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id", "clock_wall_micros", "clock_counter"),
		index.Fields("created_at"),
	}
}
