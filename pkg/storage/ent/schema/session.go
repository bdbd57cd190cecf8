package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Session holds the schema definition for the Session entity. This is the
// single source of truth for one conversation: message rows hang off it and
// are cascade-deleted with it.
type Session struct {
	ent.Schema
}

// Fields of the Session.
func (Session) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			NotEmpty(),

		field.String("owner_id").
			NotEmpty(),

		// tier is "ephemeral" or "persistent". It changes only through
		// the claim flow.
		field.String("tier").
			NotEmpty(),

		field.String("title").
			Optional(),

		// state is the namespaced key/value document store. Values are
		// arbitrary JSON, validated per well-known key at the write
		// boundary, not by the schema.
		field.JSON("state", map[string]any{}).
			Optional(),

		field.Time("created_at").
			Default(time.Now).
			Immutable().
			Annotations(entsql.Default("CURRENT_TIMESTAMP")),

		field.Time("last_active_at"),

		// expires_at is set only for the ephemeral tier. NULL signals a
		// persistent session.
		field.Time("expires_at").
			Optional().
			Nillable(),

		field.String("device_origin").
			Optional(),

		// version backs optimistic concurrency: mutations are
		// conditional updates on the version they read.
		field.Int64("version").
			Default(1),
	}
}

// Indexes of the Session.
func (Session) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id"),
		index.Fields("owner_id", "last_active_at"),
		index.Fields("expires_at"),
	}
}

// Edges of the Session.
func (Session) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("messages", Message.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}
