package sync

import "github.com/motorlogic/garage/pkg/session"

// ConflictPolicy selects how a concurrent write to one logical field is
// reconciled when a stale-clocked operation arrives (typically via an
// offline-queue replay).
type ConflictPolicy string

const (
	// LastWriteWins drops the stale write silently.
	LastWriteWins ConflictPolicy = "lww"

	// LastWriteWinsLogged drops the stale write but records the losing
	// value so it can be surfaced to the user. Used for user-authored
	// fields like the session title, where silent loss should at minimum
	// be diagnosable.
	LastWriteWinsLogged ConflictPolicy = "lww_logged"
)

// FieldPolicies maps logical field keys to their conflict policy. Keys are
// "title" for the session label and "state.<key>" for state slots; Default
// covers everything unlisted.
type FieldPolicies struct {
	Default  ConflictPolicy
	PerField map[string]ConflictPolicy
}

// DefaultFieldPolicies returns the stock policy: last-write-wins everywhere,
// with losing title edits logged because they are user-authored.
func DefaultFieldPolicies() FieldPolicies {
	return FieldPolicies{
		Default: LastWriteWins,
		PerField: map[string]ConflictPolicy{
			"title": LastWriteWinsLogged,
		},
	}
}

// For returns the policy for a logical field key.
func (p FieldPolicies) For(field string) ConflictPolicy {
	if pol, ok := p.PerField[field]; ok {
		return pol
	}
	if p.Default == "" {
		return LastWriteWins
	}
	return p.Default
}

// fieldKey derives the logical field an operation writes, or "" for
// operations that cannot conflict (appends, creates, deletes).
func fieldKey(op *session.SyncOperation) string {
	switch op.Kind {
	case session.OpSessionTitle:
		return "title"
	case session.OpStateSet:
		var delta struct {
			Key string `json:"key"`
		}
		if err := unmarshalDelta(op.Delta, &delta); err != nil || delta.Key == "" {
			return ""
		}
		return "state." + delta.Key
	default:
		return ""
	}
}
