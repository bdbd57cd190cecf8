package session

import "encoding/json"

// Delta payloads carried by sync operations. Each mutating operation stores
// enough of the mutation to be re-applied on another device or replayed from
// an offline queue.

// StateDelta carries one state-slot write.
type StateDelta struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// TitleDelta carries a session-title edit.
type TitleDelta struct {
	Title string `json:"title"`
}

// ClaimDelta carries an ephemeral-to-persistent migration.
type ClaimDelta struct {
	NewOwnerID string `json:"new_owner_id"`
}
