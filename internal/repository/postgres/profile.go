package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	apperrors "github.com/adil24689/fashion-haven-hub-sub000/pkg/errors"
)

// ProfileRepository implements repository.ProfileRepository using PostgreSQL.
type ProfileRepository struct {
	db DB
}

// NewProfileRepository creates a new PostgreSQL-backed profile repository.
func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get retrieves the profile for the user.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT user_id, full_name, email, phone, avatar_url, created_at, updated_at
		FROM profiles
		WHERE user_id = $1`

	var p domain.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.FullName,
		&p.Email,
		&p.Phone,
		&p.AvatarURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("profile", userID)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &p, nil
}

// Upsert creates or replaces the profile for the user.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, full_name, email, phone, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id)
		DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		p.UserID,
		p.FullName,
		p.Email,
		p.Phone,
		p.AvatarURL,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}

// UpdateAvatar sets the avatar URL on the profile.
func (r *ProfileRepository) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	query := `
		UPDATE profiles
		SET avatar_url = $2, updated_at = now()
		WHERE user_id = $1`

	ct, err := r.db.Exec(ctx, query, userID, avatarURL)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("profile", userID)
	}

	return nil
}
