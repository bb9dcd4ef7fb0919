package user

import (
	"context"
	"errors"
	"strings"

	"github.com/azmy/lootledger/internal/auth"
)

// Common errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
	ErrEmailRequired     = errors.New("email and password are required")
)

// Service handles account business logic
type Service struct {
	repo *Repository
	jwt  *auth.JWTManager
}

// NewService creates a new user service with dependencies injected
func NewService(repo *Repository, jwt *auth.JWTManager) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Register creates an account and signs it in. Unknown roles fall back to
// host rather than failing.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrEmailRequired
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := RoleHost
	switch Role(req.Role) {
	case RoleRunner, RoleViewer:
		role = Role(req.Role)
	}

	u, err := s.repo.Create(ctx, email, hash, role)
	if err != nil {
		return nil, err
	}

	return s.authResponse(u)
}

// Login verifies credentials and issues a token. A missing account and a
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, auth.ErrInvalidCredentials
	}

	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	return s.authResponse(u)
}

// Me returns the account behind an authenticated request.
func (s *Service) Me(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) authResponse(u *User) (*AuthResponse, error) {
	token, err := s.jwt.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: u.Info()}, nil
}
