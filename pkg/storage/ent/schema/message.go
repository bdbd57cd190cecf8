package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Message holds the schema definition for the Message entity. Messages are
// immutable once written; the only mutation path is appending new rows.
type Message struct {
	ent.Schema
}

// Fields of the Message.
func (Message) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			NotEmpty(),

		field.String("session_id").
			Immutable().
			NotEmpty(),

		// role is "user", "assistant", or "system".
		field.String("role").
			Immutable().
			NotEmpty(),

		field.Text("content").
			Immutable(),

		// seq is the server-assigned transcript position, issued at receipt.
		// Replayed offline appends take the next position even when their
		// created_at predates already-stored messages; created_at is display
		// metadata and never drives ordering.
		field.Int64("seq").
			Immutable(),

		// metadata is free-form (processing time, confidence, ...).
		field.JSON("metadata", map[string]any{}).
			Optional(),

		field.Time("created_at").
			Default(time.Now).
			Immutable().
			Annotations(entsql.Default("CURRENT_TIMESTAMP")),
	}
}

// Indexes of the Message.
func (Message) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("session_id", "seq").
			Unique(),
	}
}

// Edges of the Message.
func (Message) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("session", Session.Type).
			Ref("messages").
			Field("session_id").
			Unique().
			Required().
			Immutable(),
	}
}
