// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/motorlogic/garage/pkg/storage/ent/message"
	"github.com/motorlogic/garage/pkg/storage/ent/profile"
	"github.com/motorlogic/garage/pkg/storage/ent/schema"
	"github.com/motorlogic/garage/pkg/storage/ent/session"
	"github.com/motorlogic/garage/pkg/storage/ent/syncop"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	messageFields := schema.Message{}.Fields()
	_ = messageFields
	// messageDescSessionID is the schema descriptor for session_id field.
	messageDescSessionID := messageFields[1].Descriptor()
	// message.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	message.SessionIDValidator = messageDescSessionID.Validators[0].(func(string) error)
	// messageDescRole is the schema descriptor for role field.
	messageDescRole := messageFields[2].Descriptor()
	// message.RoleValidator is a validator for the "role" field. It is called by the builders before save.
	message.RoleValidator = messageDescRole.Validators[0].(func(string) error)
	// messageDescCreatedAt is the schema descriptor for created_at field.
	messageDescCreatedAt := messageFields[6].Descriptor()
	// message.DefaultCreatedAt holds the default value on creation for the created_at field.
	message.DefaultCreatedAt = messageDescCreatedAt.Default.(func() time.Time)
	// messageDescID is the schema descriptor for id field.
	messageDescID := messageFields[0].Descriptor()
	// message.IDValidator is a validator for the "id" field. It is called by the builders before save.
	message.IDValidator = messageDescID.Validators[0].(func(string) error)
	profileFields := schema.Profile{}.Fields()
	_ = profileFields
	// profileDescOwnerID is the schema descriptor for owner_id field.
	profileDescOwnerID := profileFields[1].Descriptor()
	// profile.OwnerIDValidator is a validator for the "owner_id" field. It is called by the builders before save.
	profile.OwnerIDValidator = profileDescOwnerID.Validators[0].(func(string) error)
	// profileDescUsageCount is the schema descriptor for usage_count field.
	profileDescUsageCount := profileFields[3].Descriptor()
	// profile.DefaultUsageCount holds the default value on creation for the usage_count field.
	profile.DefaultUsageCount = profileDescUsageCount.Default.(int64)
	// profileDescCreatedAt is the schema descriptor for created_at field.
	profileDescCreatedAt := profileFields[5].Descriptor()
	// profile.DefaultCreatedAt holds the default value on creation for the created_at field.
	profile.DefaultCreatedAt = profileDescCreatedAt.Default.(func() time.Time)
	// profileDescID is the schema descriptor for id field.
	profileDescID := profileFields[0].Descriptor()
	// profile.IDValidator is a validator for the "id" field. It is called by the builders before save.
	profile.IDValidator = profileDescID.Validators[0].(func(string) error)
	sessionFields := schema.Session{}.Fields()
	_ = sessionFields
	// sessionDescOwnerID is the schema descriptor for owner_id field.
	sessionDescOwnerID := sessionFields[1].Descriptor()
	// session.OwnerIDValidator is a validator for the "owner_id" field. It is called by the builders before save.
	session.OwnerIDValidator = sessionDescOwnerID.Validators[0].(func(string) error)
	// sessionDescTier is the schema descriptor for tier field.
	sessionDescTier := sessionFields[2].Descriptor()
	// session.TierValidator is a validator for the "tier" field. It is called by the builders before save.
	session.TierValidator = sessionDescTier.Validators[0].(func(string) error)
	// sessionDescCreatedAt is the schema descriptor for created_at field.
	sessionDescCreatedAt := sessionFields[5].Descriptor()
	// session.DefaultCreatedAt holds the default value on creation for the created_at field.
	session.DefaultCreatedAt = sessionDescCreatedAt.Default.(func() time.Time)
	// sessionDescVersion is the schema descriptor for version field.
	sessionDescVersion := sessionFields[9].Descriptor()
	// session.DefaultVersion holds the default value on creation for the version field.
	session.DefaultVersion = sessionDescVersion.Default.(int64)
	// sessionDescID is the schema descriptor for id field.
	sessionDescID := sessionFields[0].Descriptor()
	// session.IDValidator is a validator for the "id" field. It is called by the builders before save.
	session.IDValidator = sessionDescID.Validators[0].(func(string) error)
	syncopFields := schema.SyncOp{}.Fields()
	_ = syncopFields
	// syncopDescOwnerID is the schema descriptor for owner_id field.
	syncopDescOwnerID := syncopFields[1].Descriptor()
	// syncop.OwnerIDValidator is a validator for the "owner_id" field. It is called by the builders before save.
	syncop.OwnerIDValidator = syncopDescOwnerID.Validators[0].(func(string) error)
	// syncopDescTargetID is the schema descriptor for target_id field.
	syncopDescTargetID := syncopFields[2].Descriptor()
	// syncop.TargetIDValidator is a validator for the "target_id" field. It is called by the builders before save.
	syncop.TargetIDValidator = syncopDescTargetID.Validators[0].(func(string) error)
	// syncopDescTargetType is the schema descriptor for target_type field.
	syncopDescTargetType := syncopFields[3].Descriptor()
	// syncop.TargetTypeValidator is a validator for the "target_type" field. It is called by the builders before save.
	syncop.TargetTypeValidator = syncopDescTargetType.Validators[0].(func(string) error)
	// syncopDescKind is the schema descriptor for kind field.
	syncopDescKind := syncopFields[4].Descriptor()
	// syncop.KindValidator is a validator for the "kind" field. It is called by the builders before save.
	syncop.KindValidator = syncopDescKind.Validators[0].(func(string) error)
	// syncopDescCreatedAt is the schema descriptor for created_at field.
	syncopDescCreatedAt := syncopFields[10].Descriptor()
	// syncop.DefaultCreatedAt holds the default value on creation for the created_at field.
	syncop.DefaultCreatedAt = syncopDescCreatedAt.Default.(func() time.Time)
	// syncopDescID is the schema descriptor for id field.
	syncopDescID := syncopFields[0].Descriptor()
	// syncop.IDValidator is a validator for the "id" field. It is called by the builders before save.
	syncop.IDValidator = syncopDescID.Validators[0].(func(string) error)
}
