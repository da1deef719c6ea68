// Package provision resolves a canonical federated identity to a persisted
// user, creating the local record on first sight. It is the one place in the
// system where a cross-request race exists: two near-simultaneous callbacks
// for the same external identity must converge to a single row.
package provision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bottlen/server/bottlen/users"
	"github.com/bottlen/server/internal/identity"
	"github.com/bottlen/server/internal/logger"
)

// surfaced only when the post-conflict retry-read also fails (store unavailable)
var ErrProvisioningConflict = errors.New("provisioning conflict")

const (
	signupMarkerPrefix = "signup:"

	// how long the client has to complete the profile after first login
	signupMarkerTTL = 300 * time.Second
)

// UserStore is the persistence collaborator. The store's uniqueness constraint
// on (provider, provider_id), not an application lock, is what makes
// concurrent first logins safe.
type UserStore interface {
	FindByProvider(ctx context.Context, provider, providerID string) (*users.User, error)
	Create(ctx context.Context, provider, providerID, email string) (*users.User, error)
	UpdateEmail(ctx context.Context, userID int64, email string) (*users.User, error)
}

// TransientCache receives the fire-and-forget pending-signup markers
type TransientCache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// PendingSignup is the marker snapshot bridging first login and the client's
// follow-up profile-completion call. It expires via TTL, never deleted.
type PendingSignup struct {
	UserID   int64  `json:"userId"`
	Provider string `json:"provider"`
	GlobalID string `json:"globalId"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// returns the cache key flagging that a user still owes profile input
func SignupMarkerKey(userID int64) string {
	return fmt.Sprintf("%s%d", signupMarkerPrefix, userID)
}

type Provisioner struct {
	store UserStore
	cache TransientCache
}

func New(store UserStore, cache TransientCache) *Provisioner {
	return &Provisioner{store: store, cache: cache}
}

// Resolve maps a canonical identity to a persisted user. Repeat logins refresh
// the stored email; first logins create the row and write a pending-signup
// marker. A create that loses the uniqueness race is converged by one
// retry-read returning the winner's row, never surfaced as an error.
func (p *Provisioner) Resolve(ctx context.Context, id identity.CanonicalIdentity) (*users.User, bool, error) {
	existing, err := p.store.FindByProvider(ctx, string(id.Provider), id.ProviderID)
	if err == nil {
		refreshed, err := p.store.UpdateEmail(ctx, existing.ID, id.Email)
		if err != nil {
			return nil, false, fmt.Errorf("failed to refresh email for user %d: %w", existing.ID, err)
		}

		return refreshed, false, nil
	}

	if !errors.Is(err, users.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up identity %s: %w", id.GlobalID(), err)
	}

	created, err := p.store.Create(ctx, string(id.Provider), id.ProviderID, id.Email)
	if errors.Is(err, users.ErrDuplicateIdentity) {
		// a concurrent caller won the race for this identity; the winner's
		// row is the truth
		winner, err := p.store.FindByProvider(ctx, string(id.Provider), id.ProviderID)
		if err != nil {
			return nil, false, fmt.Errorf("%w: retry-read for %s failed: %v",
				ErrProvisioningConflict, id.GlobalID(), err)
		}

		return winner, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("failed to create user for %s: %w", id.GlobalID(), err)
	}

	p.markPendingSignup(ctx, created)

	return created, true, nil
}

// best-effort marker write; a cache outage must not fail the login
func (p *Provisioner) markPendingSignup(ctx context.Context, user *users.User) {
	marker := PendingSignup{
		UserID:   user.ID,
		Provider: user.Provider,
		GlobalID: user.GlobalID(),
		Role:     string(user.Role),
	}
	if user.Email != nil {
		marker.Email = *user.Email
	}

	payload, err := json.Marshal(marker)
	if err != nil {
		logger.ErrorErr(err, "failed to serialize pending signup marker", "user_id", user.ID)
		return
	}

	if err := p.cache.Set(ctx, SignupMarkerKey(user.ID), string(payload), signupMarkerTTL); err != nil {
		logger.ErrorErr(err, "failed to write pending signup marker", "user_id", user.ID)
	}
}
