package participant

// ============================
// 🔷 Participant Model — links a User to an Event it attends
type Participant struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
}

func (p Participant) GetID() string { return p.ID }

// Subscription topics published by the service.
const (
	TopicCreated = "participantCreated"
	TopicUpdated = "participantUpdated"
)

// ============================
// 🟡 Create Participant Request
//
// Nothing prevents duplicate (user_id, event_id) pairs; no uniqueness
// constraint exists beyond id.
type CreateParticipantRequest struct {
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
}

// ============================
// 🟠 Update Participant Request — every field optional
type UpdateParticipantRequest struct {
	UserID  *string `json:"user_id,omitempty"`
	EventID *string `json:"event_id,omitempty"`
}
