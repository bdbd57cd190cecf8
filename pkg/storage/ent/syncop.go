// Code generated by ent, DO NOT EDIT.

package ent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/motorlogic/garage/pkg/storage/ent/syncop"
)

// SyncOp is the model entity for the SyncOp schema.
type SyncOp struct {
	config `json:"-"`
	// ID of the ent.
	ID string `json:"id,omitempty"`
	// OwnerID holds the value of the "owner_id" field.
	OwnerID string `json:"owner_id,omitempty"`
	// TargetID holds the value of the "target_id" field.
	TargetID string `json:"target_id,omitempty"`
	// TargetType holds the value of the "target_type" field.
	TargetType string `json:"target_type,omitempty"`
	// Kind holds the value of the "kind" field.
	Kind string `json:"kind,omitempty"`
	// Delta holds the value of the "delta" field.
	Delta map[string]interface{} `json:"delta,omitempty"`
	// OriginDevice holds the value of the "origin_device" field.
	OriginDevice string `json:"origin_device,omitempty"`
	// ClockWallMicros holds the value of the "clock_wall_micros" field.
	ClockWallMicros int64 `json:"clock_wall_micros,omitempty"`
	// ClockCounter holds the value of the "clock_counter" field.
	ClockCounter int64 `json:"clock_counter,omitempty"`
	// ClockDevice holds the value of the "clock_device" field.
	ClockDevice string `json:"clock_device,omitempty"`
	// CreatedAt holds the value of the "created_at" field.
	CreatedAt    time.Time `json:"created_at,omitempty"`
	selectValues sql.SelectValues
}

// scanValues returns the types for scanning values from sql.Rows.
func (*SyncOp) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case syncop.FieldDelta:
			values[i] = new([]byte)
		case syncop.FieldClockWallMicros, syncop.FieldClockCounter:
			values[i] = new(sql.NullInt64)
		case syncop.FieldID, syncop.FieldOwnerID, syncop.FieldTargetID, syncop.FieldTargetType, syncop.FieldKind, syncop.FieldOriginDevice, syncop.FieldClockDevice:
			values[i] = new(sql.NullString)
		case syncop.FieldCreatedAt:
			values[i] = new(sql.NullTime)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

// assignValues assigns the values that were returned from sql.Rows (after scanning)
// to the SyncOp fields.
func (_m *SyncOp) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case syncop.FieldID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field id", values[i])
			} else if value.Valid {
				_m.ID = value.String
			}
		case syncop.FieldOwnerID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field owner_id", values[i])
			} else if value.Valid {
				_m.OwnerID = value.String
			}
		case syncop.FieldTargetID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field target_id", values[i])
			} else if value.Valid {
				_m.TargetID = value.String
			}
		case syncop.FieldTargetType:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field target_type", values[i])
			} else if value.Valid {
				_m.TargetType = value.String
			}
		case syncop.FieldKind:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field kind", values[i])
			} else if value.Valid {
				_m.Kind = value.String
			}
		case syncop.FieldDelta:
			if value, ok := values[i].(*[]byte); !ok {
				return fmt.Errorf("unexpected type %T for field delta", values[i])
			} else if value != nil && len(*value) > 0 {
				if err := json.Unmarshal(*value, &_m.Delta); err != nil {
					return fmt.Errorf("unmarshal field delta: %w", err)
				}
			}
		case syncop.FieldOriginDevice:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field origin_device", values[i])
			} else if value.Valid {
				_m.OriginDevice = value.String
			}
		case syncop.FieldClockWallMicros:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field clock_wall_micros", values[i])
			} else if value.Valid {
				_m.ClockWallMicros = value.Int64
			}
		case syncop.FieldClockCounter:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field clock_counter", values[i])
			} else if value.Valid {
				_m.ClockCounter = value.Int64
			}
		case syncop.FieldClockDevice:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field clock_device", values[i])
			} else if value.Valid {
				_m.ClockDevice = value.String
			}
		case syncop.FieldCreatedAt:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field created_at", values[i])
			} else if value.Valid {
				_m.CreatedAt = value.Time
			}
		default:
			_m.selectValues.Set(columns[i], values[i])
		}
	}
	return nil
}

// Value returns the ent.Value that was dynamically selected and assigned to the SyncOp.
// This includes values selected through modifiers, order, etc.
func (_m *SyncOp) Value(name string) (ent.Value, error) {
	return _m.selectValues.Get(name)
}

// Update returns a builder for updating this SyncOp.
// Note that you need to call SyncOp.Unwrap() before calling this method if this SyncOp
// was returned from a transaction, and the transaction was committed or rolled back.
func (_m *SyncOp) Update() *SyncOpUpdateOne {
	return NewSyncOpClient(_m.config).UpdateOne(_m)
}

// Unwrap unwraps the SyncOp entity that was returned from a transaction after it was closed,
// so that all future queries will be executed through the driver which created the transaction.
func (_m *SyncOp) Unwrap() *SyncOp {
	_tx, ok := _m.config.driver.(*txDriver)
	if !ok {
		panic("ent: SyncOp is not a transactional entity")
	}
	_m.config.driver = _tx.drv
	return _m
}

// String implements the fmt.Stringer.
func (_m *SyncOp) String() string {
	var builder strings.Builder
	builder.WriteString("SyncOp(")
	builder.WriteString(fmt.Sprintf("id=%v, ", _m.ID))
	builder.WriteString("owner_id=")
	builder.WriteString(_m.OwnerID)
	builder.WriteString(", ")
	builder.WriteString("target_id=")
	builder.WriteString(_m.TargetID)
	builder.WriteString(", ")
	builder.WriteString("target_type=")
	builder.WriteString(_m.TargetType)
	builder.WriteString(", ")
	builder.WriteString("kind=")
	builder.WriteString(_m.Kind)
	builder.WriteString(", ")
	builder.WriteString("delta=")
	builder.WriteString(fmt.Sprintf("%v", _m.Delta))
	builder.WriteString(", ")
	builder.WriteString("origin_device=")
	builder.WriteString(_m.OriginDevice)
	builder.WriteString(", ")
	builder.WriteString("clock_wall_micros=")
	builder.WriteString(fmt.Sprintf("%v", _m.ClockWallMicros))
	builder.WriteString(", ")
	builder.WriteString("clock_counter=")
	builder.WriteString(fmt.Sprintf("%v", _m.ClockCounter))
	builder.WriteString(", ")
	builder.WriteString("clock_device=")
	builder.WriteString(_m.ClockDevice)
	builder.WriteString(", ")
	builder.WriteString("created_at=")
	builder.WriteString(_m.CreatedAt.Format(time.ANSIC))
	builder.WriteByte(')')
	return builder.String()
}

// SyncOps is a parsable slice of SyncOp.
type SyncOps []*SyncOp
