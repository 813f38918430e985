package event

// ============================
// 🔷 Event Model
//
// Date and the from/to times are opaque strings on the wire; no
// parsing or range checking happens here. Foreign keys are not
// enforced: an Event may reference a deleted User or Location, and
// relation resolution treats that as "not found", never as an error.
type Event struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Desc       string `json:"desc"`
	Date       string `json:"date"`
	From       string `json:"from"`
	To         string `json:"to"`
	LocationID string `json:"location_id"`
	UserID     string `json:"user_id"`
}

func (e Event) GetID() string { return e.ID }

// Subscription topics published by the service.
const (
	TopicCreated = "eventCreated"
	TopicUpdated = "eventUpdated"
)

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title      string `json:"title"`
	Desc       string `json:"desc"`
	Date       string `json:"date"`
	From       string `json:"from"`
	To         string `json:"to"`
	LocationID string `json:"location_id"`
	UserID     string `json:"user_id"`
}

// ============================
// 🟠 Update Event Request — every field optional
type UpdateEventRequest struct {
	Title      *string `json:"title,omitempty"`
	Desc       *string `json:"desc,omitempty"`
	Date       *string `json:"date,omitempty"`
	From       *string `json:"from,omitempty"`
	To         *string `json:"to,omitempty"`
	LocationID *string `json:"location_id,omitempty"`
	UserID     *string `json:"user_id,omitempty"`
}
