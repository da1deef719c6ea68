package users

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// finds a user by their OAuth identity key
func (r *Repository) FindByProvider(ctx context.Context, provider, providerID string) (*User, error) {
	return r.scanOne(r.db.QueryRow(ctx, queryFindByProvider, provider, providerID))
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID int64) (*User, error) {
	return r.scanOne(r.db.QueryRow(ctx, queryFindByID, userID))
}

// inserts a new user with the default role. Returns ErrDuplicateIdentity when
// another row already holds the same (provider, provider_id); the caller is
// expected to re-read and use the winner.
func (r *Repository) Create(ctx context.Context, provider, providerID, email string) (*User, error) {
	user, err := r.scanOne(r.db.QueryRow(ctx, queryCreate, provider, providerID, nullable(email)))
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return user, nil
}

// refreshes the email delivered by the provider on a repeat login
func (r *Repository) UpdateEmail(ctx context.Context, userID int64, email string) (*User, error) {
	return r.scanOne(r.db.QueryRow(ctx, queryUpdateEmail, nullable(email), userID))
}

// stores the profile-completion fields collected after first login.
// Nickname and phone are globally unique once set.
func (r *Repository) CompleteProfile(ctx context.Context, userID int64, nickname, profileImageURL, phone string) (*User, error) {
	user, err := r.scanOne(r.db.QueryRow(ctx, queryCompleteProfile,
		nickname, nullable(profileImageURL), nullable(phone), userID))
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return user, nil
}

func (r *Repository) scanOne(row pgx.Row) (*User, error) {
	var user User

	err := row.Scan(
		&user.ID,
		&user.Provider,
		&user.ProviderID,
		&user.Email,
		&user.Nickname,
		&user.ProfileImageURL,
		&user.Phone,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// converts empty strings to SQL NULL for nullable columns
func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// translates Postgres unique violations into sentinel errors by constraint
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "provider"):
		return ErrDuplicateIdentity
	case strings.Contains(pgErr.ConstraintName, "nickname"):
		return ErrDuplicateNickname
	case strings.Contains(pgErr.ConstraintName, "phone"):
		return ErrDuplicatePhone
	default:
		return err
	}
}
