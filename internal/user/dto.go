package user

// RegisterRequest represents the request body for creating an account.
// Unknown roles silently fall back to host.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserInfo is the public view of an account.
type UserInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuthResponse carries a signed token and the account it belongs to
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// Info converts a User to its public view.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, Role: u.Role}
}
