package user

// ============================
// 🔷 User Model
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) GetID() string { return u.ID }

// Subscription topics published by the service.
const (
	TopicCreated = "userCreated"
	TopicUpdated = "userUpdated"
)

// ============================
// 🟡 Create User Request
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ============================
// 🟠 Update User Request — every field optional, nil means untouched
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}
