// Code generated by ent, DO NOT EDIT.

package syncop

import (
	"time"

	"entgo.io/ent/dialect/sql"
)

const (
	// Label holds the string label denoting the syncop type in the database.
	Label = "sync_op"
	// FieldID holds the string denoting the id field in the database.
	FieldID = "id"
	// FieldOwnerID holds the string denoting the owner_id field in the database.
	FieldOwnerID = "owner_id"
	// FieldTargetID holds the string denoting the target_id field in the database.
	FieldTargetID = "target_id"
	// FieldTargetType holds the string denoting the target_type field in the database.
	FieldTargetType = "target_type"
	// FieldKind holds the string denoting the kind field in the database.
	FieldKind = "kind"
	// FieldDelta holds the string denoting the delta field in the database.
	FieldDelta = "delta"
	// FieldOriginDevice holds the string denoting the origin_device field in the database.
	FieldOriginDevice = "origin_device"
	// FieldClockWallMicros holds the string denoting the clock_wall_micros field in the database.
	FieldClockWallMicros = "clock_wall_micros"
	// FieldClockCounter holds the string denoting the clock_counter field in the database.
	FieldClockCounter = "clock_counter"
	// FieldClockDevice holds the string denoting the clock_device field in the database.
	FieldClockDevice = "clock_device"
	// FieldCreatedAt holds the string denoting the created_at field in the database.
	FieldCreatedAt = "created_at"
	// Table holds the table name of the syncop in the database.
	Table = "sync_ops"
)

// Columns holds all SQL columns for syncop fields.
var Columns = []string{
	FieldID,
	FieldOwnerID,
	FieldTargetID,
	FieldTargetType,
	FieldKind,
	FieldDelta,
	FieldOriginDevice,
	FieldClockWallMicros,
	FieldClockCounter,
	FieldClockDevice,
	FieldCreatedAt,
}

// ValidColumn reports if the column name is valid (part of the table columns).
func ValidColumn(column string) bool {
	for i := range Columns {
		if column == Columns[i] {
			return true
		}
	}
	return false
}

var (
	// OwnerIDValidator is a validator for the "owner_id" field. It is called by the builders before save.
	OwnerIDValidator func(string) error
	// TargetIDValidator is a validator for the "target_id" field. It is called by the builders before save.
	TargetIDValidator func(string) error
	// TargetTypeValidator is a validator for the "target_type" field. It is called by the builders before save.
	TargetTypeValidator func(string) error
	// KindValidator is a validator for the "kind" field. It is called by the builders before save.
	KindValidator func(string) error
	// DefaultCreatedAt holds the default value on creation for the "created_at" field.
	DefaultCreatedAt func() time.Time
	// IDValidator is a validator for the "id" field. It is called by the builders before save.
	IDValidator func(string) error
)

// OrderOption defines the ordering options for the SyncOp queries.
type OrderOption func(*sql.Selector)

// ByID orders the results by the id field.
func ByID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldID, opts...).ToFunc()
}

// ByOwnerID orders the results by the owner_id field.
func ByOwnerID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldOwnerID, opts...).ToFunc()
}

// ByTargetID orders the results by the target_id field.
func ByTargetID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldTargetID, opts...).ToFunc()
}

// ByTargetType orders the results by the target_type field.
func ByTargetType(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldTargetType, opts...).ToFunc()
}

// ByKind orders the results by the kind field.
func ByKind(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldKind, opts...).ToFunc()
}

// ByOriginDevice orders the results by the origin_device field.
func ByOriginDevice(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldOriginDevice, opts...).ToFunc()
}

// ByClockWallMicros orders the results by the clock_wall_micros field.
func ByClockWallMicros(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldClockWallMicros, opts...).ToFunc()
}

// ByClockCounter orders the results by the clock_counter field.
func ByClockCounter(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldClockCounter, opts...).ToFunc()
}

// ByClockDevice orders the results by the clock_device field.
func ByClockDevice(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldClockDevice, opts...).ToFunc()
}

// ByCreatedAt orders the results by the created_at field.
func ByCreatedAt(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldCreatedAt, opts...).ToFunc()
}
