package auth

import (
	"context"

	"github.com/bottlen/server/bottlen/users"
	"github.com/bottlen/server/internal/identity"
)

// IdentityResolver maps a verified external identity to a persisted user;
// the bool reports whether the user was created by this call
type IdentityResolver interface {
	Resolve(ctx context.Context, id identity.CanonicalIdentity) (*users.User, bool, error)
}

// UserResponse wraps user data
type UserResponse struct {
	User *users.User `json:"user"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
