package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/lib/jwt"
	"github.com/lorenzcipher/association-backend/internal/lib/password"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *RepoMock) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) CreateProfile(ctx context.Context, profile models.Profile) (primitive.ObjectID, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *RepoMock) FindProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(repo *RepoMock) *AuthService {
	maker := jwt.NewJWTMaker("test-secret-key", time.Hour)
	return NewAuthService(repo, maker, NewNoopLogger())
}

func activeUser(t *testing.T, pass string) *models.User {
	t.Helper()
	hash, err := password.GetHash(pass)
	require.NoError(t, err)
	return &models.User{
		ID:           primitive.NewObjectID(),
		Email:        "marie@association.fr",
		PasswordHash: hash,
		Role:         models.RoleMember,
		IsActive:     true,
	}
}

func activeProfile(userID primitive.ObjectID) *models.Profile {
	return &models.Profile{
		ID:               primitive.NewObjectID(),
		UserID:           userID,
		FirstName:        "Marie",
		LastName:         "Dupont",
		MembershipStatus: models.MembershipActive,
		Status:           models.ProfileStatusActive,
	}
}

func TestRegister(t *testing.T) {
	repo := new(RepoMock)
	svc := newService(repo)

	userID := primitive.NewObjectID()
	created := &models.User{
		ID:       userID,
		Email:    "new@association.fr",
		Role:     models.RoleMember,
		IsActive: true,
	}
	profile := &models.Profile{
		UserID:           userID,
		FirstName:        "Jean",
		LastName:         "Martin",
		MembershipStatus: models.MembershipPending,
		Status:           models.ProfileStatusPending,
	}

	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "new@association.fr" &&
			u.Role == models.RoleMember &&
			u.IsActive &&
			u.PasswordHash != "" &&
			u.PasswordHash != "secret123"
	})).Return(userID, nil)
	repo.On("CreateProfile", mock.Anything, mock.MatchedBy(func(p models.Profile) bool {
		return p.UserID == userID &&
			p.MembershipStatus == models.MembershipPending &&
			p.Status == models.ProfileStatusPending
	})).Return(primitive.NewObjectID(), nil)
	repo.On("FindUserByID", mock.Anything, userID).Return(created, nil)
	repo.On("FindProfileByUserID", mock.Anything, userID).Return(profile, nil)

	user, prof, token, err := svc.Register(context.Background(), RegisterInput{
		Email:     "new@association.fr",
		Password:  "secret123",
		FirstName: "Jean",
		LastName:  "Martin",
	})
	assert.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, models.MembershipPending, prof.MembershipStatus)
	assert.NotEmpty(t, token)
	repo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(RepoMock)
	svc := newService(repo)

	repo.On("CreateUser", mock.Anything, mock.Anything).
		Return(primitive.NilObjectID, storage.ErrDuplicate)

	_, _, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "taken@association.fr",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	repo := new(RepoMock)
	svc := newService(repo)

	user := activeUser(t, "secret123")
	profile := activeProfile(user.ID)

	repo.On("FindUserByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("FindProfileByUserID", mock.Anything, user.ID).Return(profile, nil)

	got, prof, token, err := svc.Login(context.Background(), user.Email, "secret123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, prof.IsMember())
	assert.NotEmpty(t, token)
}

func TestLogin_Failures(t *testing.T) {
	user := activeUser(t, "secret123")

	tests := []struct {
		name    string
		setup   func(repo *RepoMock)
		pass    string
		wantErr error
	}{
		{
			name: "unknown email",
			setup: func(repo *RepoMock) {
				repo.On("FindUserByEmail", mock.Anything, user.Email).
					Return(nil, storage.ErrNotFound)
			},
			pass:    "secret123",
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			setup: func(repo *RepoMock) {
				repo.On("FindUserByEmail", mock.Anything, user.Email).Return(user, nil)
			},
			pass:    "wrong-password",
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "deactivated account",
			setup: func(repo *RepoMock) {
				inactive := *user
				inactive.IsActive = false
				repo.On("FindUserByEmail", mock.Anything, user.Email).Return(&inactive, nil)
			},
			pass:    "secret123",
			wantErr: ErrInactiveAccount,
		},
		{
			name: "blocked profile",
			setup: func(repo *RepoMock) {
				repo.On("FindUserByEmail", mock.Anything, user.Email).Return(user, nil)
				blocked := activeProfile(user.ID)
				blocked.Status = models.ProfileStatusBlocked
				repo.On("FindProfileByUserID", mock.Anything, user.ID).Return(blocked, nil)
			},
			pass:    "secret123",
			wantErr: ErrInactiveAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setup(repo)
			svc := newService(repo)

			_, _, _, err := svc.Login(context.Background(), user.Email, tt.pass)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	repo := new(RepoMock)
	svc := newService(repo)

	user := activeUser(t, "secret123")
	profile := activeProfile(user.ID)

	token, err := jwt.NewJWTMaker("test-secret-key", time.Hour).
		GenerateToken(user.ID.Hex(), user.Email, user.Role)
	require.NoError(t, err)

	repo.On("FindUserByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("FindProfileByUserID", mock.Anything, user.ID).Return(profile, nil)

	identity, err := svc.Authenticate(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, models.RoleMember, identity.Role)
	assert.True(t, identity.IsMember)
}

// Действительный по подписи токен отклоняется, если учётная запись
// деактивирована или профиль заблокирован после его выпуска.
func TestAuthenticate_RevokedAfterIssue(t *testing.T) {
	user := activeUser(t, "secret123")

	tests := []struct {
		name  string
		setup func(repo *RepoMock)
	}{
		{
			name: "user deactivated",
			setup: func(repo *RepoMock) {
				inactive := *user
				inactive.IsActive = false
				repo.On("FindUserByID", mock.Anything, user.ID).Return(&inactive, nil)
			},
		},
		{
			name: "user removed",
			setup: func(repo *RepoMock) {
				repo.On("FindUserByID", mock.Anything, user.ID).
					Return(nil, storage.ErrNotFound)
			},
		},
		{
			name: "profile blocked",
			setup: func(repo *RepoMock) {
				repo.On("FindUserByID", mock.Anything, user.ID).Return(user, nil)
				blocked := activeProfile(user.ID)
				blocked.Status = models.ProfileStatusBlocked
				repo.On("FindProfileByUserID", mock.Anything, user.ID).Return(blocked, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setup(repo)
			svc := newService(repo)

			token, err := jwt.NewJWTMaker("test-secret-key", time.Hour).
				GenerateToken(user.ID.Hex(), user.Email, user.Role)
			require.NoError(t, err)

			_, err = svc.Authenticate(context.Background(), token)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestAuthenticate_BadTokens(t *testing.T) {
	repo := new(RepoMock)
	svc := newService(repo)

	expiredMaker := jwt.NewJWTMaker("test-secret-key", -time.Hour)
	expired, err := expiredMaker.GenerateToken(primitive.NewObjectID().Hex(), "a@b.fr", models.RoleMember)
	require.NoError(t, err)

	foreignMaker := jwt.NewJWTMaker("another-secret", time.Hour)
	foreign, err := foreignMaker.GenerateToken(primitive.NewObjectID().Hex(), "a@b.fr", models.RoleMember)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"expired", expired},
		{"wrong signing key", foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}
