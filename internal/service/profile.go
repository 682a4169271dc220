package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/event"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/mediastore"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/repository"
	apperrors "github.com/adil24689/fashion-haven-hub-sub000/pkg/errors"
)

// maxAvatarSize is the largest accepted avatar upload.
const maxAvatarSize = 5 << 20 // 5 MiB

// avatarContentTypes maps accepted upload content types to file extensions.
var avatarContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ProfileService implements the business logic for account profiles.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	media       mediastore.Storage
	producer    *event.Producer
	logger      *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(
	profileRepo repository.ProfileRepository,
	media mediastore.Storage,
	producer *event.Producer,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		media:       media,
		producer:    producer,
		logger:      logger,
	}
}

// UpdateProfileInput holds the parameters for updating a profile. Nil fields
// keep their current value.
type UpdateProfileInput struct {
	FullName *string
	Email    *string
	Phone    *string
}

// UploadAvatarInput holds the parameters for an avatar upload.
type UploadAvatarInput struct {
	ContentType string
	Size        int64
	Data        io.Reader
}

// Get returns the profile for the user.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileRepo.Get(ctx, userID)
}

// Update applies the given fields to the user's profile, creating the profile
// on first write.
func (s *ProfileService) Update(ctx context.Context, userID string, input UpdateProfileInput) (*domain.Profile, error) {
	now := time.Now().UTC()

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		profile = &domain.Profile{UserID: userID, CreatedAt: now}
	}

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.Email != nil {
		profile.Email = *input.Email
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	profile.UpdatedAt = now

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	// Publish profile event (non-blocking on failure).
	if err := s.producer.PublishProfileUpdated(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish profile.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	return profile, nil
}

// UploadAvatar validates and stores the avatar image, then points the profile
// at the stored object.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, input UploadAvatarInput) (string, error) {
	ext, ok := avatarContentTypes[strings.ToLower(input.ContentType)]
	if !ok {
		return "", apperrors.InvalidInput(fmt.Sprintf("unsupported avatar content type: %s", input.ContentType))
	}
	if input.Size > maxAvatarSize {
		return "", apperrors.InvalidInput("avatar exceeds the 5 MiB size limit")
	}

	key := path.Join("avatars", userID, uuid.New().String()+ext)
	result, err := s.media.Upload(ctx, &mediastore.UploadInput{
		Key:         key,
		ContentType: input.ContentType,
		Size:        input.Size,
		Data:        input.Data,
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	if err := s.profileRepo.UpdateAvatar(ctx, userID, result.URL); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return "", err
		}
		// First interaction with the profile; create it around the avatar.
		now := time.Now().UTC()
		profile := &domain.Profile{UserID: userID, AvatarURL: result.URL, CreatedAt: now, UpdatedAt: now}
		if err := s.profileRepo.Upsert(ctx, profile); err != nil {
			return "", err
		}
	}

	if err := s.producer.PublishProfileUpdated(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish profile.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	return result.URL, nil
}
