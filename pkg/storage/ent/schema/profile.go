package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Profile holds the schema definition for the Profile entity: a saved,
// reusable structured record (typically a vehicle) owned by a persistent
// account. The per-owner cap is enforced by the driver at write time, not by
// the schema.
type Profile struct {
	ent.Schema
}

// Fields of the Profile.
func (Profile) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			NotEmpty(),

		field.String("owner_id").
			Immutable().
			NotEmpty(),

		field.JSON("payload", map[string]any{}),

		field.Int64("usage_count").
			Default(0),

		field.Time("last_used_at"),

		field.Time("created_at").
			Default(time.Now).
			Immutable().
			Annotations(entsql.Default("CURRENT_TIMESTAMP")),
	}
}

// Indexes of the Profile.
func (Profile) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id"),
		index.Fields("owner_id", "last_used_at"),
	}
}
