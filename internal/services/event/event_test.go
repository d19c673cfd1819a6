package event

import (
	"context"
	"errors"
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

func (m *RepoMock) CreateEvent(ctx context.Context, event models.Event) (primitive.ObjectID, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *RepoMock) FindEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *RepoMock) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Event), args.Get(1).(int64), args.Error(2)
}

func (m *RepoMock) UpdateEvent(ctx context.Context, id primitive.ObjectID, update models.EventUpdate) (*models.Event, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *RepoMock) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RepoMock) AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *RepoMock) RemoveParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(repo *RepoMock, now time.Time) *EventService {
	svc := NewEventService(repo, NewNoopLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func openEvent(deadline *time.Time, max int, participants ...primitive.ObjectID) *models.Event {
	if participants == nil {
		participants = []primitive.ObjectID{}
	}
	return &models.Event{
		ID:                   primitive.NewObjectID(),
		Title:                "Atelier pratique",
		StartDate:            time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
		RegistrationRequired: true,
		RegistrationDeadline: deadline,
		MaxParticipants:      max,
		Participants:         participants,
	}
}

func TestRegister_Success(t *testing.T) {
	repo := new(RepoMock)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(repo, now)

	user := primitive.NewObjectID()
	ev := openEvent(nil, 0)
	after := *ev
	after.Participants = []primitive.ObjectID{user}

	repo.On("FindEventByID", mock.Anything, ev.ID).Return(ev, nil)
	repo.On("AddParticipant", mock.Anything, ev.ID, user).Return(&after, nil)

	got, err := svc.Register(context.Background(), ev.ID, models.Identity{UserID: user})
	assert.NoError(t, err)
	assert.True(t, got.HasParticipant(user))
	repo.AssertExpectations(t)
}

func TestRegister_NotRequired(t *testing.T) {
	repo := new(RepoMock)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(repo, now)

	ev := openEvent(nil, 0)
	ev.RegistrationRequired = false
	repo.On("FindEventByID", mock.Anything, ev.ID).Return(ev, nil)

	_, err := svc.Register(context.Background(), ev.ID, models.Identity{UserID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, ErrRegistrationNotRequired)
	repo.AssertNotCalled(t, "AddParticipant", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_MembersOnly(t *testing.T) {
	repo := new(RepoMock)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(repo, now)

	ev := openEvent(nil, 0)
	ev.IsMemberOnly = true
	repo.On("FindEventByID", mock.Anything, ev.ID).Return(ev, nil)

	_, err := svc.Register(context.Background(), ev.ID, models.Identity{
		UserID:   primitive.NewObjectID(),
		IsMember: false,
	})
	assert.ErrorIs(t, err, ErrMembersOnly)
}

func TestRegister_DeadlineBoundary(t *testing.T) {
	deadline := time.Date(2026, 9, 15, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"before deadline", deadline.Add(-time.Hour), nil},
		{"exactly at deadline", deadline, nil},
		{"after deadline", deadline.Add(time.Second), ErrDeadlinePassed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := newService(repo, tt.now)

			user := primitive.NewObjectID()
			ev := openEvent(&deadline, 0)
			after := *ev
			after.Participants = []primitive.ObjectID{user}

			repo.On("FindEventByID", mock.Anything, ev.ID).Return(ev, nil)
			if tt.wantErr == nil {
				repo.On("AddParticipant", mock.Anything, ev.ID, user).Return(&after, nil)
			}

			_, err := svc.Register(context.Background(), ev.ID, models.Identity{UserID: user})
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// Дубль записи классифицируется раньше переполнения даже когда
// выполняются оба условия.
func TestRegister_DuplicateBeforeFull(t *testing.T) {
	repo := new(RepoMock)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(repo, now)

	user := primitive.NewObjectID()
	ev := openEvent(nil, 1, user)
	repo.On("FindEventByID", mock.Anything, ev.ID).Return(ev, nil)
	repo.On("AddParticipant", mock.Anything, ev.ID, user).
		Return(nil, storage.ErrConditionFailed)

	_, err := svc.Register(context.Background(), ev.ID, models.Identity{UserID: user})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegister_EventFull(t *testing.T) {
	repo := new(RepoMock)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(repo, now)

	user := primitive.NewObjectID()
	ev := openEvent(nil, 1, primitive.NewObjectID())
	repo.On("FindEventByID", mock.Anything, ev.ID).Return(ev, nil)
	repo.On("AddParticipant", mock.Anything, ev.ID, user).
		Return(nil, storage.ErrConditionFailed)

	_, err := svc.Register(context.Background(), ev.ID, models.Identity{UserID: user})
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestRegister_EventNotFound(t *testing.T) {
	repo := new(RepoMock)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(repo, now)

	id := primitive.NewObjectID()
	repo.On("FindEventByID", mock.Anything, id).Return(nil, storage.ErrNotFound)

	_, err := svc.Register(context.Background(), id, models.Identity{UserID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestUnregister(t *testing.T) {
	repo := new(RepoMock)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(repo, now)

	user := primitive.NewObjectID()
	ev := openEvent(nil, 0, user)
	after := *ev
	after.Participants = []primitive.ObjectID{}

	repo.On("FindEventByID", mock.Anything, ev.ID).Return(ev, nil)
	repo.On("RemoveParticipant", mock.Anything, ev.ID, user).Return(&after, nil)

	got, err := svc.Unregister(context.Background(), ev.ID, user)
	assert.NoError(t, err)
	assert.Empty(t, got.Participants)
}

func TestUnregister_NotRegistered(t *testing.T) {
	repo := new(RepoMock)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(repo, now)

	user := primitive.NewObjectID()
	ev := openEvent(nil, 0)
	repo.On("FindEventByID", mock.Anything, ev.ID).Return(ev, nil)
	repo.On("RemoveParticipant", mock.Anything, ev.ID, user).
		Return(nil, storage.ErrConditionFailed)

	_, err := svc.Unregister(context.Background(), ev.ID, user)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestCreate_Validation(t *testing.T) {
	start := time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)
	after := start.Add(time.Hour)

	tests := []struct {
		name  string
		event models.Event
	}{
		{"end date before start", models.Event{StartDate: start, EndDate: &before}},
		{"deadline after start", models.Event{StartDate: start, RegistrationDeadline: &after}},
		{"negative max participants", models.Event{StartDate: start, MaxParticipants: -1}},
		{"negative price", models.Event{StartDate: start, MemberPrice: -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := newService(repo, time.Now())

			_, err := svc.Create(context.Background(), primitive.NewObjectID(), tt.event)
			assert.ErrorIs(t, err, ErrInvalidEvent)
			repo.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdate_MergedValidation(t *testing.T) {
	repo := new(RepoMock)
	svc := newService(repo, time.Now())

	ev := openEvent(nil, 0)
	repo.On("FindEventByID", mock.Anything, ev.ID).Return(ev, nil)

	badDeadline := ev.StartDate.Add(time.Hour)
	_, err := svc.Update(context.Background(), ev.ID, models.EventUpdate{
		RegistrationDeadline: &badDeadline,
	})
	assert.ErrorIs(t, err, ErrInvalidEvent)
	repo.AssertNotCalled(t, "UpdateEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(RepoMock)
	svc := newService(repo, time.Now())

	id := primitive.NewObjectID()
	repo.On("DeleteEvent", mock.Anything, id).Return(storage.ErrNotFound)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRead_RepoError(t *testing.T) {
	repo := new(RepoMock)
	svc := newService(repo, time.Now())

	id := primitive.NewObjectID()
	repo.On("FindEventByID", mock.Anything, id).Return(nil, errors.New("connection reset"))

	_, err := svc.Read(context.Background(), nil, id)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEventNotFound)
}

func TestRead_MemberOnlyAccess(t *testing.T) {
	eventID := primitive.NewObjectID()
	closed := &models.Event{ID: eventID, IsMemberOnly: true}

	tests := []struct {
		name     string
		identity *models.Identity
		wantErr  error
	}{
		{name: "аноним не видит мероприятие для членов", identity: nil, wantErr: ErrMembersOnly},
		{name: "пользователь без членства не видит", identity: &models.Identity{Role: models.RoleMember}, wantErr: ErrMembersOnly},
		{name: "член ассоциации видит", identity: &models.Identity{Role: models.RoleMember, IsMember: true}},
		{name: "администратор видит", identity: &models.Identity{Role: models.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := newService(repo, time.Now())
			repo.On("FindEventByID", mock.Anything, eventID).Return(closed, nil)

			got, err := svc.Read(context.Background(), tt.identity, eventID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, closed, got)
		})
	}
}
