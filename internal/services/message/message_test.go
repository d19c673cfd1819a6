package message

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateMessage(ctx context.Context, message models.Message) (primitive.ObjectID, error) {
	args := m.Called(ctx, message)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *RepoMock) ListMessages(ctx context.Context, userID primitive.ObjectID, direction string, page, limit int) ([]models.Message, int64, error) {
	args := m.Called(ctx, userID, direction, page, limit)
	return args.Get(0).([]models.Message), args.Get(1).(int64), args.Error(2)
}

func (m *RepoMock) FindProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *RepoMock) CreateContactForm(ctx context.Context, form models.ContactForm) (primitive.ObjectID, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(queue string, message any) error {
	return m.Called(queue, message).Error(0)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSend(t *testing.T) {
	repo := new(RepoMock)
	pub := new(PublisherMock)
	svc := NewMessageService(repo, pub, NewNoopLogger())

	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()
	msgID := primitive.NewObjectID()

	repo.On("FindProfileByUserID", mock.Anything, receiver).
		Return(&models.Profile{UserID: receiver}, nil)
	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m models.Message) bool {
		return m.SenderID == sender && m.ReceiverID == receiver && !m.IsRead
	})).Return(msgID, nil)

	id, err := svc.Send(context.Background(), sender, receiver, "Bonjour", "Question sur la formation")
	assert.NoError(t, err)
	assert.Equal(t, msgID, id)
	repo.AssertExpectations(t)
}

func TestSend_ReceiverWithoutProfile(t *testing.T) {
	repo := new(RepoMock)
	svc := NewMessageService(repo, new(PublisherMock), NewNoopLogger())

	receiver := primitive.NewObjectID()
	repo.On("FindProfileByUserID", mock.Anything, receiver).
		Return(nil, storage.ErrNotFound)

	_, err := svc.Send(context.Background(), primitive.NewObjectID(), receiver, "s", "c")
	assert.ErrorIs(t, err, ErrReceiverNotFound)
	repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestSend_ToSelf(t *testing.T) {
	repo := new(RepoMock)
	svc := NewMessageService(repo, new(PublisherMock), NewNoopLogger())

	user := primitive.NewObjectID()
	_, err := svc.Send(context.Background(), user, user, "s", "c")
	assert.ErrorIs(t, err, ErrSelfMessage)
	repo.AssertNotCalled(t, "FindProfileByUserID", mock.Anything, mock.Anything)
}

func TestSubmitContact(t *testing.T) {
	repo := new(RepoMock)
	pub := new(PublisherMock)
	svc := NewMessageService(repo, pub, NewNoopLogger())

	formID := primitive.NewObjectID()
	form := models.ContactForm{
		Name:    "Claire",
		Email:   "claire@example.fr",
		Subject: "Adhésion",
		Message: "Comment adhérer ?",
	}

	repo.On("CreateContactForm", mock.Anything, form).Return(formID, nil)
	pub.On("Publish", QueueContactNotifications, mock.MatchedBy(func(f models.ContactForm) bool {
		return f.ID == formID && f.Email == form.Email
	})).Return(nil)

	id, err := svc.SubmitContact(context.Background(), form)
	assert.NoError(t, err)
	assert.Equal(t, formID, id)
	pub.AssertExpectations(t)
}

// Отказ брокера не мешает приёму обращения.
func TestSubmitContact_BrokerDown(t *testing.T) {
	repo := new(RepoMock)
	pub := new(PublisherMock)
	svc := NewMessageService(repo, pub, NewNoopLogger())

	formID := primitive.NewObjectID()
	repo.On("CreateContactForm", mock.Anything, mock.Anything).Return(formID, nil)
	pub.On("Publish", QueueContactNotifications, mock.Anything).
		Return(errors.New("connection refused"))

	id, err := svc.SubmitContact(context.Background(), models.ContactForm{Name: "n", Email: "e@e.fr"})
	assert.NoError(t, err)
	assert.Equal(t, formID, id)
}

func TestList(t *testing.T) {
	repo := new(RepoMock)
	svc := NewMessageService(repo, new(PublisherMock), NewNoopLogger())

	user := primitive.NewObjectID()
	repo.On("ListMessages", mock.Anything, user, models.MessagesReceived, 1, 20).
		Return([]models.Message{{ReceiverID: user}}, int64(1), nil)

	msgs, total, err := svc.List(context.Background(), user, models.MessagesReceived, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, msgs, 1)
}
