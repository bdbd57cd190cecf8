// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// Message is the predicate function for message builders.
type Message func(*sql.Selector)

// Profile is the predicate function for profile builders.
type Profile func(*sql.Selector)

// Session is the predicate function for session builders.
type Session func(*sql.Selector)

// SyncOp is the predicate function for syncop builders.
type SyncOp func(*sql.Selector)
