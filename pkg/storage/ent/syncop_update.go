// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/motorlogic/garage/pkg/storage/ent/predicate"
	"github.com/motorlogic/garage/pkg/storage/ent/syncop"
)

// SyncOpUpdate is the builder for updating SyncOp entities.
type SyncOpUpdate struct {
	config
	hooks    []Hook
	mutation *SyncOpMutation
}

// Where appends a list predicates to the SyncOpUpdate builder.
func (_u *SyncOpUpdate) Where(ps ...predicate.SyncOp) *SyncOpUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetDelta sets the "delta" field.
func (_u *SyncOpUpdate) SetDelta(v map[string]interface{}) *SyncOpUpdate {
	_u.mutation.SetDelta(v)
	return _u
}

// ClearDelta clears the value of the "delta" field.
func (_u *SyncOpUpdate) ClearDelta() *SyncOpUpdate {
	_u.mutation.ClearDelta()
	return _u
}

// Mutation returns the SyncOpMutation object of the builder.
func (_u *SyncOpUpdate) Mutation() *SyncOpMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *SyncOpUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SyncOpUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *SyncOpUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SyncOpUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *SyncOpUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	_spec := sqlgraph.NewUpdateSpec(syncop.Table, syncop.Columns, sqlgraph.NewFieldSpec(syncop.FieldID, field.TypeString))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Delta(); ok {
		_spec.SetField(syncop.FieldDelta, field.TypeJSON, value)
	}
	if _u.mutation.DeltaCleared() {
		_spec.ClearField(syncop.FieldDelta, field.TypeJSON)
	}
	if _u.mutation.OriginDeviceCleared() {
		_spec.ClearField(syncop.FieldOriginDevice, field.TypeString)
	}
	if _u.mutation.ClockDeviceCleared() {
		_spec.ClearField(syncop.FieldClockDevice, field.TypeString)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{syncop.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// SyncOpUpdateOne is the builder for updating a single SyncOp entity.
type SyncOpUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *SyncOpMutation
}

// SetDelta sets the "delta" field.
func (_u *SyncOpUpdateOne) SetDelta(v map[string]interface{}) *SyncOpUpdateOne {
	_u.mutation.SetDelta(v)
	return _u
}

// ClearDelta clears the value of the "delta" field.
func (_u *SyncOpUpdateOne) ClearDelta() *SyncOpUpdateOne {
	_u.mutation.ClearDelta()
	return _u
}

// Mutation returns the SyncOpMutation object of the builder.
func (_u *SyncOpUpdateOne) Mutation() *SyncOpMutation {
	return _u.mutation
}

// Where appends a list predicates to the SyncOpUpdate builder.
func (_u *SyncOpUpdateOne) Where(ps ...predicate.SyncOp) *SyncOpUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *SyncOpUpdateOne) Select(field string, fields ...string) *SyncOpUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated SyncOp entity.
func (_u *SyncOpUpdateOne) Save(ctx context.Context) (*SyncOp, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SyncOpUpdateOne) SaveX(ctx context.Context) *SyncOp {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *SyncOpUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SyncOpUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *SyncOpUpdateOne) sqlSave(ctx context.Context) (_node *SyncOp, err error) {
	_spec := sqlgraph.NewUpdateSpec(syncop.Table, syncop.Columns, sqlgraph.NewFieldSpec(syncop.FieldID, field.TypeString))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "SyncOp.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, syncop.FieldID)
		for _, f := range fields {
			if !syncop.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != syncop.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Delta(); ok {
		_spec.SetField(syncop.FieldDelta, field.TypeJSON, value)
	}
	if _u.mutation.DeltaCleared() {
		_spec.ClearField(syncop.FieldDelta, field.TypeJSON)
	}
	if _u.mutation.OriginDeviceCleared() {
		_spec.ClearField(syncop.FieldOriginDevice, field.TypeString)
	}
	if _u.mutation.ClockDeviceCleared() {
		_spec.ClearField(syncop.FieldClockDevice, field.TypeString)
	}
	_node = &SyncOp{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{syncop.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
