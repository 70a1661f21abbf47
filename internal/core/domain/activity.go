package domain

import "time"

// Resource types recorded in the activity trail.
const (
	ResourceVehicle = "vehicle"
	ResourceUser    = "user"
)

// ActivityEntry is one immutable record in the audit trail. Entries are
// append-only; nothing in the system mutates or deletes them.
type ActivityEntry struct {
	ID           string         `json:"id"`
	ActorID      string         `json:"actor_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Detail       map[string]any `json:"detail,omitempty"`
	IP           string         `json:"ip,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// FieldChange is a single before/after diff on a resource field.
type FieldChange struct {
	Field string `json:"field"`
	From  any    `json:"from"`
	To    any    `json:"to"`
}
