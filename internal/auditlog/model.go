package auditlog

import "time"

// Entry is one mutation audit record shipped to the Kafka topic.
type Entry struct {
	Action   string    `json:"action"`    // e.g. USER_CREATED, EVENT_DELETED
	Entity   string    `json:"entity"`    // user | event | location | participant
	EntityID string    `json:"entity_id"` // empty for delete-all
	ClientIP string    `json:"client_ip,omitempty"`
	At       time.Time `json:"at"`
}
