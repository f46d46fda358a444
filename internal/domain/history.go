package domain

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one replayed message of the bounded conversation history.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
