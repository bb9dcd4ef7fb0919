package user

import "time"

// Role controls what a user may do. Hosts manage runs and money; runners
// and viewers get read access.
type Role string

const (
	RoleHost   Role = "host"
	RoleRunner Role = "runner"
	RoleViewer Role = "viewer"
)

// User represents an account that can sign in
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
