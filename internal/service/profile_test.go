package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/domain"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/mediastore/memory"
	apperrors "github.com/adil24689/fashion-haven-hub-sub000/pkg/errors"
)

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	args := m.Called(ctx, userID, avatarURL)
	return args.Error(0)
}

func newProfileService(repo *mockProfileRepo) *ProfileService {
	return NewProfileService(repo, memory.New("http://localhost:8080"), testEventProducer(), testLogger())
}

func strPtr(s string) *string { return &s }

// ----------------------------------------------------------------------------
// Update
// ----------------------------------------------------------------------------

func TestProfileService_Update_ExistingProfile(t *testing.T) {
	repo := new(mockProfileRepo)
	repo.On("Get", mock.Anything, "user-1").Return(&domain.Profile{
		UserID: "user-1", FullName: "Old Name", Email: "old@example.com", Phone: "111",
	}, nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.UserID == "user-1" &&
			p.FullName == "New Name" &&
			p.Email == "old@example.com" &&
			p.Phone == "111"
	})).Return(nil)

	svc := newProfileService(repo)

	profile, err := svc.Update(context.Background(), "user-1", UpdateProfileInput{
		FullName: strPtr("New Name"),
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", profile.FullName)
	assert.Equal(t, "old@example.com", profile.Email, "absent fields keep their value")
	repo.AssertExpectations(t)
}

func TestProfileService_Update_CreatesProfileOnFirstWrite(t *testing.T) {
	repo := new(mockProfileRepo)
	repo.On("Get", mock.Anything, "user-1").Return(nil, apperrors.NotFound("profile", "user-1"))
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.UserID == "user-1" && p.Email == "new@example.com" && !p.CreatedAt.IsZero()
	})).Return(nil)

	svc := newProfileService(repo)

	profile, err := svc.Update(context.Background(), "user-1", UpdateProfileInput{
		Email: strPtr("new@example.com"),
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", profile.Email)
	repo.AssertExpectations(t)
}

func TestProfileService_Update_GetErrorIsSurfaced(t *testing.T) {
	repo := new(mockProfileRepo)
	repo.On("Get", mock.Anything, "user-1").Return(nil, assert.AnError)

	svc := newProfileService(repo)

	profile, err := svc.Update(context.Background(), "user-1", UpdateProfileInput{})

	assert.Nil(t, profile)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

// ----------------------------------------------------------------------------
// UploadAvatar
// ----------------------------------------------------------------------------

func TestProfileService_UploadAvatar_Success(t *testing.T) {
	repo := new(mockProfileRepo)
	repo.On("UpdateAvatar", mock.Anything, "user-1", mock.AnythingOfType("string")).Return(nil)

	svc := newProfileService(repo)

	url, err := svc.UploadAvatar(context.Background(), "user-1", UploadAvatarInput{
		ContentType: "image/png",
		Size:        1024,
		Data:        strings.NewReader("png-bytes"),
	})

	require.NoError(t, err)
	assert.Contains(t, url, "/media/avatars/user-1/")
	assert.True(t, strings.HasSuffix(url, ".png"))
	repo.AssertExpectations(t)
}

func TestProfileService_UploadAvatar_UnsupportedContentType(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := newProfileService(repo)

	url, err := svc.UploadAvatar(context.Background(), "user-1", UploadAvatarInput{
		ContentType: "image/gif",
		Size:        1024,
		Data:        strings.NewReader("gif-bytes"),
	})

	assert.Empty(t, url)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "UpdateAvatar", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_UploadAvatar_TooLarge(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := newProfileService(repo)

	url, err := svc.UploadAvatar(context.Background(), "user-1", UploadAvatarInput{
		ContentType: "image/jpeg",
		Size:        maxAvatarSize + 1,
		Data:        strings.NewReader("jpeg-bytes"),
	})

	assert.Empty(t, url)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestProfileService_UploadAvatar_CreatesProfileWhenMissing(t *testing.T) {
	repo := new(mockProfileRepo)
	repo.On("UpdateAvatar", mock.Anything, "user-1", mock.AnythingOfType("string")).
		Return(apperrors.NotFound("profile", "user-1"))
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.UserID == "user-1" && p.AvatarURL != ""
	})).Return(nil)

	svc := newProfileService(repo)

	url, err := svc.UploadAvatar(context.Background(), "user-1", UploadAvatarInput{
		ContentType: "image/webp",
		Size:        2048,
		Data:        strings.NewReader("webp-bytes"),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, url)
	repo.AssertExpectations(t)
}
