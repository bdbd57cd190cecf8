// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// MessagesColumns holds the columns for the "messages" table.
	MessagesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "role", Type: field.TypeString},
		{Name: "content", Type: field.TypeString, Size: 2147483647},
		{Name: "seq", Type: field.TypeInt64},
		{Name: "metadata", Type: field.TypeJSON, Nullable: true},
		{Name: "created_at", Type: field.TypeTime, Default: "CURRENT_TIMESTAMP"},
		{Name: "session_id", Type: field.TypeString},
	}
	// MessagesTable holds the schema information for the "messages" table.
	MessagesTable = &schema.Table{
		Name:       "messages",
		Columns:    MessagesColumns,
		PrimaryKey: []*schema.Column{MessagesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "messages_sessions_messages",
				Columns:    []*schema.Column{MessagesColumns[6]},
				RefColumns: []*schema.Column{SessionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "message_session_id",
				Unique:  false,
				Columns: []*schema.Column{MessagesColumns[6]},
			},
			{
				Name:    "message_session_id_seq",
				Unique:  true,
				Columns: []*schema.Column{MessagesColumns[6], MessagesColumns[3]},
			},
		},
	}
	// ProfilesColumns holds the columns for the "profiles" table.
	ProfilesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "owner_id", Type: field.TypeString},
		{Name: "payload", Type: field.TypeJSON},
		{Name: "usage_count", Type: field.TypeInt64, Default: 0},
		{Name: "last_used_at", Type: field.TypeTime},
		{Name: "created_at", Type: field.TypeTime, Default: "CURRENT_TIMESTAMP"},
	}
	// ProfilesTable holds the schema information for the "profiles" table.
	ProfilesTable = &schema.Table{
		Name:       "profiles",
		Columns:    ProfilesColumns,
		PrimaryKey: []*schema.Column{ProfilesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "profile_owner_id",
				Unique:  false,
				Columns: []*schema.Column{ProfilesColumns[1]},
			},
			{
				Name:    "profile_owner_id_last_used_at",
				Unique:  false,
				Columns: []*schema.Column{ProfilesColumns[1], ProfilesColumns[4]},
			},
		},
	}
	// SessionsColumns holds the columns for the "sessions" table.
	SessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "owner_id", Type: field.TypeString},
		{Name: "tier", Type: field.TypeString},
		{Name: "title", Type: field.TypeString, Nullable: true},
		{Name: "state", Type: field.TypeJSON, Nullable: true},
		{Name: "created_at", Type: field.TypeTime, Default: "CURRENT_TIMESTAMP"},
		{Name: "last_active_at", Type: field.TypeTime},
		{Name: "expires_at", Type: field.TypeTime, Nullable: true},
		{Name: "device_origin", Type: field.TypeString, Nullable: true},
		{Name: "version", Type: field.TypeInt64, Default: 1},
	}
	// SessionsTable holds the schema information for the "sessions" table.
	SessionsTable = &schema.Table{
		Name:       "sessions",
		Columns:    SessionsColumns,
		PrimaryKey: []*schema.Column{SessionsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "session_owner_id",
				Unique:  false,
				Columns: []*schema.Column{SessionsColumns[1]},
			},
			{
				Name:    "session_owner_id_last_active_at",
				Unique:  false,
				Columns: []*schema.Column{SessionsColumns[1], SessionsColumns[6]},
			},
			{
				Name:    "session_expires_at",
				Unique:  false,
				Columns: []*schema.Column{SessionsColumns[7]},
			},
		},
	}
	// SyncOpsColumns holds the columns for the "sync_ops" table.
	SyncOpsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "owner_id", Type: field.TypeString},
		{Name: "target_id", Type: field.TypeString},
		{Name: "target_type", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "delta", Type: field.TypeJSON, Nullable: true},
		{Name: "origin_device", Type: field.TypeString, Nullable: true},
		{Name: "clock_wall_micros", Type: field.TypeInt64},
		{Name: "clock_counter", Type: field.TypeInt64},
		{Name: "clock_device", Type: field.TypeString, Nullable: true},
		{Name: "created_at", Type: field.TypeTime, Default: "CURRENT_TIMESTAMP"},
	}
	// SyncOpsTable holds the schema information for the "sync_ops" table.
	SyncOpsTable = &schema.Table{
		Name:       "sync_ops",
		Columns:    SyncOpsColumns,
		PrimaryKey: []*schema.Column{SyncOpsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "syncop_owner_id_clock_wall_micros_clock_counter",
				Unique:  false,
				Columns: []*schema.Column{SyncOpsColumns[1], SyncOpsColumns[7], SyncOpsColumns[8]},
			},
			{
				Name:    "syncop_created_at",
				Unique:  false,
				Columns: []*schema.Column{SyncOpsColumns[10]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		MessagesTable,
		ProfilesTable,
		SessionsTable,
		SyncOpsTable,
	}
)

func init() {
	MessagesTable.ForeignKeys[0].RefTable = SessionsTable
}
