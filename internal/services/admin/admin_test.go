package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListUsers(ctx context.Context, page, limit int, isActive *bool) ([]models.User, int64, error) {
	args := m.Called(ctx, page, limit, isActive)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *RepoMock) UpdateUser(ctx context.Context, id primitive.ObjectID, update models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RepoMock) FindProfilesByUserIDs(ctx context.Context, userIDs []primitive.ObjectID) ([]models.Profile, error) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *RepoMock) ActivateProfile(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *RepoMock) SetProfileStatus(ctx context.Context, userID primitive.ObjectID, status string) (*models.Profile, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *RepoMock) CountUsers(ctx context.Context, isActive *bool) (int64, error) {
	args := m.Called(ctx, isActive)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) CountProfilesByMembership(ctx context.Context, membershipStatus string) (int64, error) {
	args := m.Called(ctx, membershipStatus)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) CountArticles(ctx context.Context, publishedOnly bool) (int64, error) {
	args := m.Called(ctx, publishedOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) CountEvents(ctx context.Context, upcomingOnly bool) (int64, error) {
	args := m.Called(ctx, upcomingOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) CountPayments(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) CountUnreadContacts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) MembershipBreakdown(ctx context.Context) ([]models.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.StatusCount), args.Error(1)
}

func (m *RepoMock) MonthlyRegistrations(ctx context.Context, since time.Time) ([]models.MonthlyCount, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]models.MonthlyCount), args.Error(1)
}

func (m *RepoMock) RevenueByType(ctx context.Context) ([]models.RevenueByType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.RevenueByType), args.Error(1)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListUsers_JoinsProfiles(t *testing.T) {
	repo := new(RepoMock)
	svc := NewAdminService(repo, NewNoopLogger())

	withProfile := models.User{ID: primitive.NewObjectID(), Email: "a@association.fr"}
	orphan := models.User{ID: primitive.NewObjectID(), Email: "b@association.fr"}
	profile := models.Profile{UserID: withProfile.ID, FirstName: "Marie"}

	repo.On("ListUsers", mock.Anything, 1, 20, (*bool)(nil)).
		Return([]models.User{withProfile, orphan}, int64(2), nil)
	repo.On("FindProfilesByUserIDs", mock.Anything, []primitive.ObjectID{withProfile.ID, orphan.ID}).
		Return([]models.Profile{profile}, nil)

	got, total, err := svc.ListUsers(context.Background(), 1, 20, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 2)
	assert.NotNil(t, got[0].Profile)
	assert.Equal(t, "Marie", got[0].Profile.FirstName)
	assert.Nil(t, got[1].Profile)
}

func TestUpdateUser_EmailTaken(t *testing.T) {
	repo := new(RepoMock)
	svc := NewAdminService(repo, NewNoopLogger())

	id := primitive.NewObjectID()
	email := "taken@association.fr"
	repo.On("UpdateUser", mock.Anything, id, mock.Anything).
		Return(nil, storage.ErrDuplicate)

	_, err := svc.UpdateUser(context.Background(), id, models.UserUpdate{Email: &email})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo := new(RepoMock)
	svc := NewAdminService(repo, NewNoopLogger())

	id := primitive.NewObjectID()
	repo.On("DeleteUser", mock.Anything, id).Return(storage.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), id), ErrUserNotFound)
}

func TestSetProfileStatus(t *testing.T) {
	repo := new(RepoMock)
	svc := NewAdminService(repo, NewNoopLogger())

	userID := primitive.NewObjectID()
	blocked := &models.Profile{UserID: userID, Status: models.ProfileStatusBlocked}
	repo.On("SetProfileStatus", mock.Anything, userID, models.ProfileStatusBlocked).
		Return(blocked, nil)

	got, err := svc.SetProfileStatus(context.Background(), userID, models.ProfileStatusBlocked)
	assert.NoError(t, err)
	assert.Equal(t, models.ProfileStatusBlocked, got.Status)
}

func TestSetProfileStatus_Invalid(t *testing.T) {
	repo := new(RepoMock)
	svc := NewAdminService(repo, NewNoopLogger())

	_, err := svc.SetProfileStatus(context.Background(), primitive.NewObjectID(), "suspended")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	repo.AssertNotCalled(t, "SetProfileStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestStats(t *testing.T) {
	repo := new(RepoMock)
	svc := NewAdminService(repo, NewNoopLogger())

	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	active := true

	repo.On("CountUsers", mock.Anything, (*bool)(nil)).Return(int64(120), nil)
	repo.On("CountUsers", mock.Anything, &active).Return(int64(100), nil)
	repo.On("CountProfilesByMembership", mock.Anything, models.MembershipPending).Return(int64(15), nil)
	repo.On("MembershipBreakdown", mock.Anything).
		Return([]models.StatusCount{{Status: models.MembershipActive, Count: 80}}, nil)
	repo.On("CountArticles", mock.Anything, false).Return(int64(40), nil)
	repo.On("CountArticles", mock.Anything, true).Return(int64(35), nil)
	repo.On("CountEvents", mock.Anything, false).Return(int64(12), nil)
	repo.On("CountEvents", mock.Anything, true).Return(int64(4), nil)
	repo.On("CountPayments", mock.Anything, "").Return(int64(90), nil)
	repo.On("CountPayments", mock.Anything, models.PaymentCompleted).Return(int64(85), nil)
	repo.On("RevenueByType", mock.Anything).
		Return([]models.RevenueByType{{Type: models.PaymentTypeMembership, Total: 10200, Count: 85}}, nil)
	repo.On("CountUnreadContacts", mock.Anything).Return(int64(3), nil)
	repo.On("MonthlyRegistrations", mock.Anything, now.AddDate(0, -6, 0)).
		Return([]models.MonthlyCount{{Year: 2026, Month: 8, Count: 9}}, nil)

	stats, err := svc.Stats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(120), stats.Users.Total)
	assert.Equal(t, int64(100), stats.Users.Active)
	assert.Equal(t, int64(35), stats.Content.Articles.Published)
	assert.Equal(t, int64(4), stats.Content.Events.Upcoming)
	assert.Equal(t, int64(85), stats.Financial.Payments.Completed)
	assert.Equal(t, int64(3), stats.Communications.UnreadContacts)
	assert.Len(t, stats.Trends.MonthlyRegistrations, 1)
	repo.AssertExpectations(t)
}
