// Code generated by ent, DO NOT EDIT.

package syncop

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/motorlogic/garage/pkg/storage/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLTE(FieldID, id))
}

// IDEqualFold applies the EqualFold predicate on the ID field.
func IDEqualFold(id string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEqualFold(FieldID, id))
}

// IDContainsFold applies the ContainsFold predicate on the ID field.
func IDContainsFold(id string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContainsFold(FieldID, id))
}

// OwnerID applies equality check predicate on the "owner_id" field. It's identical to OwnerIDEQ.
func OwnerID(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldOwnerID, v))
}

// TargetID applies equality check predicate on the "target_id" field. It's identical to TargetIDEQ.
func TargetID(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldTargetID, v))
}

// TargetType applies equality check predicate on the "target_type" field. It's identical to TargetTypeEQ.
func TargetType(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldTargetType, v))
}

// Kind applies equality check predicate on the "kind" field. It's identical to KindEQ.
func Kind(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldKind, v))
}

// OriginDevice applies equality check predicate on the "origin_device" field. It's identical to OriginDeviceEQ.
func OriginDevice(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldOriginDevice, v))
}

// ClockWallMicros applies equality check predicate on the "clock_wall_micros" field. It's identical to ClockWallMicrosEQ.
func ClockWallMicros(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldClockWallMicros, v))
}

// ClockCounter applies equality check predicate on the "clock_counter" field. It's identical to ClockCounterEQ.
func ClockCounter(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldClockCounter, v))
}

// ClockDevice applies equality check predicate on the "clock_device" field. It's identical to ClockDeviceEQ.
func ClockDevice(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldClockDevice, v))
}

// CreatedAt applies equality check predicate on the "created_at" field. It's identical to CreatedAtEQ.
func CreatedAt(v time.Time) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldCreatedAt, v))
}

// OwnerIDEQ applies the EQ predicate on the "owner_id" field.
func OwnerIDEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldOwnerID, v))
}

// OwnerIDNEQ applies the NEQ predicate on the "owner_id" field.
func OwnerIDNEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNEQ(FieldOwnerID, v))
}

// OwnerIDIn applies the In predicate on the "owner_id" field.
func OwnerIDIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIn(FieldOwnerID, vs...))
}

// OwnerIDNotIn applies the NotIn predicate on the "owner_id" field.
func OwnerIDNotIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotIn(FieldOwnerID, vs...))
}

// OwnerIDGT applies the GT predicate on the "owner_id" field.
func OwnerIDGT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGT(FieldOwnerID, v))
}

// OwnerIDGTE applies the GTE predicate on the "owner_id" field.
func OwnerIDGTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGTE(FieldOwnerID, v))
}

// OwnerIDLT applies the LT predicate on the "owner_id" field.
func OwnerIDLT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLT(FieldOwnerID, v))
}

// OwnerIDLTE applies the LTE predicate on the "owner_id" field.
func OwnerIDLTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLTE(FieldOwnerID, v))
}

// OwnerIDContains applies the Contains predicate on the "owner_id" field.
func OwnerIDContains(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContains(FieldOwnerID, v))
}

// OwnerIDHasPrefix applies the HasPrefix predicate on the "owner_id" field.
func OwnerIDHasPrefix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasPrefix(FieldOwnerID, v))
}

// OwnerIDHasSuffix applies the HasSuffix predicate on the "owner_id" field.
func OwnerIDHasSuffix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasSuffix(FieldOwnerID, v))
}

// OwnerIDEqualFold applies the EqualFold predicate on the "owner_id" field.
func OwnerIDEqualFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEqualFold(FieldOwnerID, v))
}

// OwnerIDContainsFold applies the ContainsFold predicate on the "owner_id" field.
func OwnerIDContainsFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContainsFold(FieldOwnerID, v))
}

// TargetIDEQ applies the EQ predicate on the "target_id" field.
func TargetIDEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldTargetID, v))
}

// TargetIDNEQ applies the NEQ predicate on the "target_id" field.
func TargetIDNEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNEQ(FieldTargetID, v))
}

// TargetIDIn applies the In predicate on the "target_id" field.
func TargetIDIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIn(FieldTargetID, vs...))
}

// TargetIDNotIn applies the NotIn predicate on the "target_id" field.
func TargetIDNotIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotIn(FieldTargetID, vs...))
}

// TargetIDGT applies the GT predicate on the "target_id" field.
func TargetIDGT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGT(FieldTargetID, v))
}

// TargetIDGTE applies the GTE predicate on the "target_id" field.
func TargetIDGTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGTE(FieldTargetID, v))
}

// TargetIDLT applies the LT predicate on the "target_id" field.
func TargetIDLT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLT(FieldTargetID, v))
}

// TargetIDLTE applies the LTE predicate on the "target_id" field.
func TargetIDLTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLTE(FieldTargetID, v))
}

// TargetIDContains applies the Contains predicate on the "target_id" field.
func TargetIDContains(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContains(FieldTargetID, v))
}

// TargetIDHasPrefix applies the HasPrefix predicate on the "target_id" field.
func TargetIDHasPrefix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasPrefix(FieldTargetID, v))
}

// TargetIDHasSuffix applies the HasSuffix predicate on the "target_id" field.
func TargetIDHasSuffix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasSuffix(FieldTargetID, v))
}

// TargetIDEqualFold applies the EqualFold predicate on the "target_id" field.
func TargetIDEqualFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEqualFold(FieldTargetID, v))
}

// TargetIDContainsFold applies the ContainsFold predicate on the "target_id" field.
func TargetIDContainsFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContainsFold(FieldTargetID, v))
}

// TargetTypeEQ applies the EQ predicate on the "target_type" field.
func TargetTypeEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldTargetType, v))
}

// TargetTypeNEQ applies the NEQ predicate on the "target_type" field.
func TargetTypeNEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNEQ(FieldTargetType, v))
}

// TargetTypeIn applies the In predicate on the "target_type" field.
func TargetTypeIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIn(FieldTargetType, vs...))
}

// TargetTypeNotIn applies the NotIn predicate on the "target_type" field.
func TargetTypeNotIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotIn(FieldTargetType, vs...))
}

// TargetTypeGT applies the GT predicate on the "target_type" field.
func TargetTypeGT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGT(FieldTargetType, v))
}

// TargetTypeGTE applies the GTE predicate on the "target_type" field.
func TargetTypeGTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGTE(FieldTargetType, v))
}

// TargetTypeLT applies the LT predicate on the "target_type" field.
func TargetTypeLT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLT(FieldTargetType, v))
}

// TargetTypeLTE applies the LTE predicate on the "target_type" field.
func TargetTypeLTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLTE(FieldTargetType, v))
}

// TargetTypeContains applies the Contains predicate on the "target_type" field.
func TargetTypeContains(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContains(FieldTargetType, v))
}

// TargetTypeHasPrefix applies the HasPrefix predicate on the "target_type" field.
func TargetTypeHasPrefix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasPrefix(FieldTargetType, v))
}

// TargetTypeHasSuffix applies the HasSuffix predicate on the "target_type" field.
func TargetTypeHasSuffix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasSuffix(FieldTargetType, v))
}

// TargetTypeEqualFold applies the EqualFold predicate on the "target_type" field.
func TargetTypeEqualFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEqualFold(FieldTargetType, v))
}

// TargetTypeContainsFold applies the ContainsFold predicate on the "target_type" field.
func TargetTypeContainsFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContainsFold(FieldTargetType, v))
}

// KindEQ applies the EQ predicate on the "kind" field.
func KindEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldKind, v))
}

// KindNEQ applies the NEQ predicate on the "kind" field.
func KindNEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNEQ(FieldKind, v))
}

// KindIn applies the In predicate on the "kind" field.
func KindIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIn(FieldKind, vs...))
}

// KindNotIn applies the NotIn predicate on the "kind" field.
func KindNotIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotIn(FieldKind, vs...))
}

// KindGT applies the GT predicate on the "kind" field.
func KindGT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGT(FieldKind, v))
}

// KindGTE applies the GTE predicate on the "kind" field.
func KindGTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGTE(FieldKind, v))
}

// KindLT applies the LT predicate on the "kind" field.
func KindLT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLT(FieldKind, v))
}

// KindLTE applies the LTE predicate on the "kind" field.
func KindLTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLTE(FieldKind, v))
}

// KindContains applies the Contains predicate on the "kind" field.
func KindContains(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContains(FieldKind, v))
}

// KindHasPrefix applies the HasPrefix predicate on the "kind" field.
func KindHasPrefix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasPrefix(FieldKind, v))
}

// KindHasSuffix applies the HasSuffix predicate on the "kind" field.
func KindHasSuffix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasSuffix(FieldKind, v))
}

// KindEqualFold applies the EqualFold predicate on the "kind" field.
func KindEqualFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEqualFold(FieldKind, v))
}

// KindContainsFold applies the ContainsFold predicate on the "kind" field.
func KindContainsFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContainsFold(FieldKind, v))
}

// DeltaIsNil applies the IsNil predicate on the "delta" field.
func DeltaIsNil() predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIsNull(FieldDelta))
}

// DeltaNotNil applies the NotNil predicate on the "delta" field.
func DeltaNotNil() predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotNull(FieldDelta))
}

// OriginDeviceEQ applies the EQ predicate on the "origin_device" field.
func OriginDeviceEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldOriginDevice, v))
}

// OriginDeviceNEQ applies the NEQ predicate on the "origin_device" field.
func OriginDeviceNEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNEQ(FieldOriginDevice, v))
}

// OriginDeviceIn applies the In predicate on the "origin_device" field.
func OriginDeviceIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIn(FieldOriginDevice, vs...))
}

// OriginDeviceNotIn applies the NotIn predicate on the "origin_device" field.
func OriginDeviceNotIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotIn(FieldOriginDevice, vs...))
}

// OriginDeviceGT applies the GT predicate on the "origin_device" field.
func OriginDeviceGT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGT(FieldOriginDevice, v))
}

// OriginDeviceGTE applies the GTE predicate on the "origin_device" field.
func OriginDeviceGTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGTE(FieldOriginDevice, v))
}

// OriginDeviceLT applies the LT predicate on the "origin_device" field.
func OriginDeviceLT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLT(FieldOriginDevice, v))
}

// OriginDeviceLTE applies the LTE predicate on the "origin_device" field.
func OriginDeviceLTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLTE(FieldOriginDevice, v))
}

// OriginDeviceContains applies the Contains predicate on the "origin_device" field.
func OriginDeviceContains(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContains(FieldOriginDevice, v))
}

// OriginDeviceHasPrefix applies the HasPrefix predicate on the "origin_device" field.
func OriginDeviceHasPrefix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasPrefix(FieldOriginDevice, v))
}

// OriginDeviceHasSuffix applies the HasSuffix predicate on the "origin_device" field.
func OriginDeviceHasSuffix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasSuffix(FieldOriginDevice, v))
}

// OriginDeviceIsNil applies the IsNil predicate on the "origin_device" field.
func OriginDeviceIsNil() predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIsNull(FieldOriginDevice))
}

// OriginDeviceNotNil applies the NotNil predicate on the "origin_device" field.
func OriginDeviceNotNil() predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotNull(FieldOriginDevice))
}

// OriginDeviceEqualFold applies the EqualFold predicate on the "origin_device" field.
func OriginDeviceEqualFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEqualFold(FieldOriginDevice, v))
}

// OriginDeviceContainsFold applies the ContainsFold predicate on the "origin_device" field.
func OriginDeviceContainsFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContainsFold(FieldOriginDevice, v))
}

// ClockWallMicrosEQ applies the EQ predicate on the "clock_wall_micros" field.
func ClockWallMicrosEQ(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldClockWallMicros, v))
}

// ClockWallMicrosNEQ applies the NEQ predicate on the "clock_wall_micros" field.
func ClockWallMicrosNEQ(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNEQ(FieldClockWallMicros, v))
}

// ClockWallMicrosIn applies the In predicate on the "clock_wall_micros" field.
func ClockWallMicrosIn(vs ...int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIn(FieldClockWallMicros, vs...))
}

// ClockWallMicrosNotIn applies the NotIn predicate on the "clock_wall_micros" field.
func ClockWallMicrosNotIn(vs ...int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotIn(FieldClockWallMicros, vs...))
}

// ClockWallMicrosGT applies the GT predicate on the "clock_wall_micros" field.
func ClockWallMicrosGT(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGT(FieldClockWallMicros, v))
}

// ClockWallMicrosGTE applies the GTE predicate on the "clock_wall_micros" field.
func ClockWallMicrosGTE(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGTE(FieldClockWallMicros, v))
}

// ClockWallMicrosLT applies the LT predicate on the "clock_wall_micros" field.
func ClockWallMicrosLT(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLT(FieldClockWallMicros, v))
}

// ClockWallMicrosLTE applies the LTE predicate on the "clock_wall_micros" field.
func ClockWallMicrosLTE(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLTE(FieldClockWallMicros, v))
}

// ClockCounterEQ applies the EQ predicate on the "clock_counter" field.
func ClockCounterEQ(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldClockCounter, v))
}

// ClockCounterNEQ applies the NEQ predicate on the "clock_counter" field.
func ClockCounterNEQ(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNEQ(FieldClockCounter, v))
}

// ClockCounterIn applies the In predicate on the "clock_counter" field.
func ClockCounterIn(vs ...int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIn(FieldClockCounter, vs...))
}

// ClockCounterNotIn applies the NotIn predicate on the "clock_counter" field.
func ClockCounterNotIn(vs ...int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotIn(FieldClockCounter, vs...))
}

// ClockCounterGT applies the GT predicate on the "clock_counter" field.
func ClockCounterGT(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGT(FieldClockCounter, v))
}

// ClockCounterGTE applies the GTE predicate on the "clock_counter" field.
func ClockCounterGTE(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGTE(FieldClockCounter, v))
}

// ClockCounterLT applies the LT predicate on the "clock_counter" field.
func ClockCounterLT(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLT(FieldClockCounter, v))
}

// ClockCounterLTE applies the LTE predicate on the "clock_counter" field.
func ClockCounterLTE(v int64) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLTE(FieldClockCounter, v))
}

// ClockDeviceEQ applies the EQ predicate on the "clock_device" field.
func ClockDeviceEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldClockDevice, v))
}

// ClockDeviceNEQ applies the NEQ predicate on the "clock_device" field.
func ClockDeviceNEQ(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNEQ(FieldClockDevice, v))
}

// ClockDeviceIn applies the In predicate on the "clock_device" field.
func ClockDeviceIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIn(FieldClockDevice, vs...))
}

// ClockDeviceNotIn applies the NotIn predicate on the "clock_device" field.
func ClockDeviceNotIn(vs ...string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotIn(FieldClockDevice, vs...))
}

// ClockDeviceGT applies the GT predicate on the "clock_device" field.
func ClockDeviceGT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGT(FieldClockDevice, v))
}

// ClockDeviceGTE applies the GTE predicate on the "clock_device" field.
func ClockDeviceGTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGTE(FieldClockDevice, v))
}

// ClockDeviceLT applies the LT predicate on the "clock_device" field.
func ClockDeviceLT(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLT(FieldClockDevice, v))
}

// ClockDeviceLTE applies the LTE predicate on the "clock_device" field.
func ClockDeviceLTE(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLTE(FieldClockDevice, v))
}

// ClockDeviceContains applies the Contains predicate on the "clock_device" field.
func ClockDeviceContains(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContains(FieldClockDevice, v))
}

// ClockDeviceHasPrefix applies the HasPrefix predicate on the "clock_device" field.
func ClockDeviceHasPrefix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasPrefix(FieldClockDevice, v))
}

// ClockDeviceHasSuffix applies the HasSuffix predicate on the "clock_device" field.
func ClockDeviceHasSuffix(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldHasSuffix(FieldClockDevice, v))
}

// ClockDeviceIsNil applies the IsNil predicate on the "clock_device" field.
func ClockDeviceIsNil() predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIsNull(FieldClockDevice))
}

// ClockDeviceNotNil applies the NotNil predicate on the "clock_device" field.
func ClockDeviceNotNil() predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotNull(FieldClockDevice))
}

// ClockDeviceEqualFold applies the EqualFold predicate on the "clock_device" field.
func ClockDeviceEqualFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEqualFold(FieldClockDevice, v))
}

// ClockDeviceContainsFold applies the ContainsFold predicate on the "clock_device" field.
func ClockDeviceContainsFold(v string) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldContainsFold(FieldClockDevice, v))
}

// CreatedAtEQ applies the EQ predicate on the "created_at" field.
func CreatedAtEQ(v time.Time) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldEQ(FieldCreatedAt, v))
}

// CreatedAtNEQ applies the NEQ predicate on the "created_at" field.
func CreatedAtNEQ(v time.Time) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNEQ(FieldCreatedAt, v))
}

// CreatedAtIn applies the In predicate on the "created_at" field.
func CreatedAtIn(vs ...time.Time) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldIn(FieldCreatedAt, vs...))
}

// CreatedAtNotIn applies the NotIn predicate on the "created_at" field.
func CreatedAtNotIn(vs ...time.Time) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldNotIn(FieldCreatedAt, vs...))
}

// CreatedAtGT applies the GT predicate on the "created_at" field.
func CreatedAtGT(v time.Time) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGT(FieldCreatedAt, v))
}

// CreatedAtGTE applies the GTE predicate on the "created_at" field.
func CreatedAtGTE(v time.Time) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldGTE(FieldCreatedAt, v))
}

// CreatedAtLT applies the LT predicate on the "created_at" field.
func CreatedAtLT(v time.Time) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLT(FieldCreatedAt, v))
}

// CreatedAtLTE applies the LTE predicate on the "created_at" field.
func CreatedAtLTE(v time.Time) predicate.SyncOp {
	return predicate.SyncOp(sql.FieldLTE(FieldCreatedAt, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.SyncOp) predicate.SyncOp {
	return predicate.SyncOp(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.SyncOp) predicate.SyncOp {
	return predicate.SyncOp(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.SyncOp) predicate.SyncOp {
	return predicate.SyncOp(sql.NotPredicates(p))
}
