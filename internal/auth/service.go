package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	sharedauth "resume-api/internal/shared/auth"
	"resume-api/internal/users"
)

// Service issues tokens and manages user accounts. Tokens are
// self-contained: any verifier holding the signing key can validate
// them, so authentication keeps no server-side session state.
type Service struct {
	Users users.Repo
}

func NewService(repo users.Repo) *Service {
	return &Service{Users: repo}
}

// Authenticate looks up the user for the given email, creating a guest
// account on first sight, and returns a signed access token. Two
// concurrent calls with the same unseen email collapse to a single
// created user: the loser of the insert race reads the winner's record.
func (s *Service) Authenticate(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("email is required")
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, users.ErrNotFound) {
		user, err = s.CreateUser(ctx, email, "", sharedauth.RoleGuest)
		if errors.Is(err, users.ErrEmailTaken) {
			user, err = s.Users.GetByEmail(ctx, email)
		}
	}
	if err != nil {
		return "", err
	}

	return sharedauth.SignJWT(sharedauth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	})
}

// CreateUser registers a user explicitly. The email must be unseen;
// users.ErrEmailTaken is returned otherwise. The password, when given,
// is stored hashed and plays no part in token issuance.
func (s *Service) CreateUser(ctx context.Context, email, password string, role sharedauth.Role) (users.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return users.User{}, errors.New("email is required")
	}
	if !role.Valid() {
		role = sharedauth.RoleGuest
	}

	var passwordHash string
	if password != "" {
		hash, err := sharedauth.HashPassword(password)
		if err != nil {
			return users.User{}, err
		}
		passwordHash = hash
	}

	now := time.Now().UTC()
	return s.Users.Create(ctx, users.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// GetUser fetches a user by id.
func (s *Service) GetUser(ctx context.Context, userID string) (users.User, error) {
	if strings.TrimSpace(userID) == "" {
		return users.User{}, errors.New("user id is required")
	}
	return s.Users.GetByID(ctx, userID)
}
