package users

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

// Role is a user's authorization level
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// represents a federated user in the system. (provider, provider_id) is the
// immutable identity key; nickname and phone are unique once set.
type User struct {
	ID              int64     `json:"id"`
	Provider        string    `json:"provider"`
	ProviderID      string    `json:"-"`
	Email           *string   `json:"email"`
	Nickname        *string   `json:"nickname"`
	ProfileImageURL *string   `json:"profile_image_url"`
	Phone           *string   `json:"-"`
	Role            Role      `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// returns the synthetic "provider:providerId" identifier
func (u *User) GlobalID() string {
	return u.Provider + ":" + u.ProviderID
}

// reports whether the profile-completion step is still owed
func (u *User) ProfileComplete() bool {
	return u.Nickname != nil
}

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateIdentity = errors.New("identity already registered")
	ErrDuplicateNickname = errors.New("nickname already taken")
	ErrDuplicatePhone    = errors.New("phone number already registered")
)
