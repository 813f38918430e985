package location

// ============================
// 🔷 Location Model
//
// Field names match the public wire shape (`desc`, `lat`, `lng`).
type Location struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Desc string  `json:"desc"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func (l Location) GetID() string { return l.ID }

// Subscription topics published by the service.
const (
	TopicCreated = "locationCreated"
	TopicUpdated = "locationUpdated"
)

// ============================
// 🟡 Create Location Request
//
// No range validation on lat/lng; the schema boundary enforces
// presence and type, nothing more.
type CreateLocationRequest struct {
	Name string  `json:"name"`
	Desc string  `json:"desc"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// ============================
// 🟠 Update Location Request — every field optional
type UpdateLocationRequest struct {
	Name *string  `json:"name,omitempty"`
	Desc *string  `json:"desc,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}
