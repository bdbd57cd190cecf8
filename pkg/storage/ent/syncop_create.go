// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/motorlogic/garage/pkg/storage/ent/syncop"
)

// SyncOpCreate is the builder for creating a SyncOp entity.
type SyncOpCreate struct {
	config
	mutation *SyncOpMutation
	hooks    []Hook
}

// SetOwnerID sets the "owner_id" field.
func (_c *SyncOpCreate) SetOwnerID(v string) *SyncOpCreate {
	_c.mutation.SetOwnerID(v)
	return _c
}

// SetTargetID sets the "target_id" field.
func (_c *SyncOpCreate) SetTargetID(v string) *SyncOpCreate {
	_c.mutation.SetTargetID(v)
	return _c
}

// SetTargetType sets the "target_type" field.
func (_c *SyncOpCreate) SetTargetType(v string) *SyncOpCreate {
	_c.mutation.SetTargetType(v)
	return _c
}

// SetKind sets the "kind" field.
func (_c *SyncOpCreate) SetKind(v string) *SyncOpCreate {
	_c.mutation.SetKind(v)
	return _c
}

// SetDelta sets the "delta" field.
func (_c *SyncOpCreate) SetDelta(v map[string]interface{}) *SyncOpCreate {
	_c.mutation.SetDelta(v)
	return _c
}

// SetOriginDevice sets the "origin_device" field.
func (_c *SyncOpCreate) SetOriginDevice(v string) *SyncOpCreate {
	_c.mutation.SetOriginDevice(v)
	return _c
}

// SetNillableOriginDevice sets the "origin_device" field if the given value is not nil.
func (_c *SyncOpCreate) SetNillableOriginDevice(v *string) *SyncOpCreate {
	if v != nil {
		_c.SetOriginDevice(*v)
	}
	return _c
}

// SetClockWallMicros sets the "clock_wall_micros" field.
func (_c *SyncOpCreate) SetClockWallMicros(v int64) *SyncOpCreate {
	_c.mutation.SetClockWallMicros(v)
	return _c
}

// SetClockCounter sets the "clock_counter" field.
func (_c *SyncOpCreate) SetClockCounter(v int64) *SyncOpCreate {
	_c.mutation.SetClockCounter(v)
	return _c
}

// SetClockDevice sets the "clock_device" field.
func (_c *SyncOpCreate) SetClockDevice(v string) *SyncOpCreate {
	_c.mutation.SetClockDevice(v)
	return _c
}

// SetNillableClockDevice sets the "clock_device" field if the given value is not nil.
func (_c *SyncOpCreate) SetNillableClockDevice(v *string) *SyncOpCreate {
	if v != nil {
		_c.SetClockDevice(*v)
	}
	return _c
}

// SetCreatedAt sets the "created_at" field.
func (_c *SyncOpCreate) SetCreatedAt(v time.Time) *SyncOpCreate {
	_c.mutation.SetCreatedAt(v)
	return _c
}

// SetNillableCreatedAt sets the "created_at" field if the given value is not nil.
func (_c *SyncOpCreate) SetNillableCreatedAt(v *time.Time) *SyncOpCreate {
	if v != nil {
		_c.SetCreatedAt(*v)
	}
	return _c
}

// SetID sets the "id" field.
func (_c *SyncOpCreate) SetID(v string) *SyncOpCreate {
	_c.mutation.SetID(v)
	return _c
}

// Mutation returns the SyncOpMutation object of the builder.
func (_c *SyncOpCreate) Mutation() *SyncOpMutation {
	return _c.mutation
}

// Save creates the SyncOp in the database.
func (_c *SyncOpCreate) Save(ctx context.Context) (*SyncOp, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *SyncOpCreate) SaveX(ctx context.Context) *SyncOp {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *SyncOpCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *SyncOpCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *SyncOpCreate) defaults() {
	if _, ok := _c.mutation.CreatedAt(); !ok {
		v := syncop.DefaultCreatedAt()
		_c.mutation.SetCreatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *SyncOpCreate) check() error {
	if _, ok := _c.mutation.OwnerID(); !ok {
		return &ValidationError{Name: "owner_id", err: errors.New(`ent: missing required field "SyncOp.owner_id"`)}
	}
	if v, ok := _c.mutation.OwnerID(); ok {
		if err := syncop.OwnerIDValidator(v); err != nil {
			return &ValidationError{Name: "owner_id", err: fmt.Errorf(`ent: validator failed for field "SyncOp.owner_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.TargetID(); !ok {
		return &ValidationError{Name: "target_id", err: errors.New(`ent: missing required field "SyncOp.target_id"`)}
	}
	if v, ok := _c.mutation.TargetID(); ok {
		if err := syncop.TargetIDValidator(v); err != nil {
			return &ValidationError{Name: "target_id", err: fmt.Errorf(`ent: validator failed for field "SyncOp.target_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.TargetType(); !ok {
		return &ValidationError{Name: "target_type", err: errors.New(`ent: missing required field "SyncOp.target_type"`)}
	}
	if v, ok := _c.mutation.TargetType(); ok {
		if err := syncop.TargetTypeValidator(v); err != nil {
			return &ValidationError{Name: "target_type", err: fmt.Errorf(`ent: validator failed for field "SyncOp.target_type": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Kind(); !ok {
		return &ValidationError{Name: "kind", err: errors.New(`ent: missing required field "SyncOp.kind"`)}
	}
	if v, ok := _c.mutation.Kind(); ok {
		if err := syncop.KindValidator(v); err != nil {
			return &ValidationError{Name: "kind", err: fmt.Errorf(`ent: validator failed for field "SyncOp.kind": %w`, err)}
		}
	}
	if _, ok := _c.mutation.ClockWallMicros(); !ok {
		return &ValidationError{Name: "clock_wall_micros", err: errors.New(`ent: missing required field "SyncOp.clock_wall_micros"`)}
	}
	if _, ok := _c.mutation.ClockCounter(); !ok {
		return &ValidationError{Name: "clock_counter", err: errors.New(`ent: missing required field "SyncOp.clock_counter"`)}
	}
	if _, ok := _c.mutation.CreatedAt(); !ok {
		return &ValidationError{Name: "created_at", err: errors.New(`ent: missing required field "SyncOp.created_at"`)}
	}
	if v, ok := _c.mutation.ID(); ok {
		if err := syncop.IDValidator(v); err != nil {
			return &ValidationError{Name: "id", err: fmt.Errorf(`ent: validator failed for field "SyncOp.id": %w`, err)}
		}
	}
	return nil
}

func (_c *SyncOpCreate) sqlSave(ctx context.Context) (*SyncOp, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	if _spec.ID.Value != nil {
		if id, ok := _spec.ID.Value.(string); ok {
			_node.ID = id
		} else {
			return nil, fmt.Errorf("unexpected SyncOp.ID type: %T", _spec.ID.Value)
		}
	}
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *SyncOpCreate) createSpec() (*SyncOp, *sqlgraph.CreateSpec) {
	var (
		_node = &SyncOp{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(syncop.Table, sqlgraph.NewFieldSpec(syncop.FieldID, field.TypeString))
	)
	if id, ok := _c.mutation.ID(); ok {
		_node.ID = id
		_spec.ID.Value = id
	}
	if value, ok := _c.mutation.OwnerID(); ok {
		_spec.SetField(syncop.FieldOwnerID, field.TypeString, value)
		_node.OwnerID = value
	}
	if value, ok := _c.mutation.TargetID(); ok {
		_spec.SetField(syncop.FieldTargetID, field.TypeString, value)
		_node.TargetID = value
	}
	if value, ok := _c.mutation.TargetType(); ok {
		_spec.SetField(syncop.FieldTargetType, field.TypeString, value)
		_node.TargetType = value
	}
	if value, ok := _c.mutation.Kind(); ok {
		_spec.SetField(syncop.FieldKind, field.TypeString, value)
		_node.Kind = value
	}
	if value, ok := _c.mutation.Delta(); ok {
		_spec.SetField(syncop.FieldDelta, field.TypeJSON, value)
		_node.Delta = value
	}
	if value, ok := _c.mutation.OriginDevice(); ok {
		_spec.SetField(syncop.FieldOriginDevice, field.TypeString, value)
		_node.OriginDevice = value
	}
	if value, ok := _c.mutation.ClockWallMicros(); ok {
		_spec.SetField(syncop.FieldClockWallMicros, field.TypeInt64, value)
		_node.ClockWallMicros = value
	}
	if value, ok := _c.mutation.ClockCounter(); ok {
		_spec.SetField(syncop.FieldClockCounter, field.TypeInt64, value)
		_node.ClockCounter = value
	}
	if value, ok := _c.mutation.ClockDevice(); ok {
		_spec.SetField(syncop.FieldClockDevice, field.TypeString, value)
		_node.ClockDevice = value
	}
	if value, ok := _c.mutation.CreatedAt(); ok {
		_spec.SetField(syncop.FieldCreatedAt, field.TypeTime, value)
		_node.CreatedAt = value
	}
	return _node, _spec
}

// SyncOpCreateBulk is the builder for creating many SyncOp entities in bulk.
type SyncOpCreateBulk struct {
	config
	err      error
	builders []*SyncOpCreate
}

// Save creates the SyncOp entities in the database.
func (_c *SyncOpCreateBulk) Save(ctx context.Context) ([]*SyncOp, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*SyncOp, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*SyncOpMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *SyncOpCreateBulk) SaveX(ctx context.Context) []*SyncOp {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *SyncOpCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *SyncOpCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
