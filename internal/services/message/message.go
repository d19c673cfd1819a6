// Package message содержит бизнес-логику личных сообщений между членами
// и обращений через публичную контактную форму.
package message

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

// QueueContactNotifications — очередь уведомлений о новых обращениях.
const QueueContactNotifications = "contact.notifications"

// Ошибки обмена сообщениями.
var (
	ErrReceiverNotFound = errors.New("receiver profile not found")
	ErrSelfMessage      = errors.New("cannot send a message to yourself")
)

// MessageRepository определяет методы для работы с сообщениями в хранилище.
type MessageRepository interface {
	// CreateMessage вставляет личное сообщение и возвращает его ID.
	CreateMessage(ctx context.Context, message models.Message) (primitive.ObjectID, error)
	// ListMessages возвращает страницу сообщений пользователя.
	ListMessages(ctx context.Context, userID primitive.ObjectID, direction string, page, limit int) ([]models.Message, int64, error)
	// FindProfileByUserID возвращает профиль по ID пользователя.
	FindProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	// CreateContactForm сохраняет обращение контактной формы.
	CreateContactForm(ctx context.Context, form models.ContactForm) (primitive.ObjectID, error)
}

// Publisher отправляет уведомления в брокер сообщений.
type Publisher interface {
	// Publish отправляет сообщение в указанную очередь.
	Publish(queue string, message any) error
}

// MessageService реализует бизнес-логику сообщений.
type MessageService struct {
	repo      MessageRepository
	publisher Publisher
	log       *slog.Logger
}

// NewMessageService создает новый экземпляр MessageService.
func NewMessageService(repo MessageRepository, publisher Publisher, log *slog.Logger) *MessageService {
	return &MessageService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Send отправляет личное сообщение. Получатель должен существовать
// и иметь профиль; отправка самому себе запрещена.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID primitive.ObjectID, subject, content string) (primitive.ObjectID, error) {
	if senderID == receiverID {
		return primitive.NilObjectID, ErrSelfMessage
	}

	if _, err := s.repo.FindProfileByUserID(ctx, receiverID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return primitive.NilObjectID, ErrReceiverNotFound
		}
		return primitive.NilObjectID, err
	}

	id, err := s.repo.CreateMessage(ctx, models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Subject:    subject,
		Content:    content,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	s.log.Info("sent message",
		slog.String("message_id", id.Hex()),
		slog.String("sender_id", senderID.Hex()),
		slog.String("receiver_id", receiverID.Hex()))
	return id, nil
}

// List возвращает страницу сообщений пользователя по направлению.
func (s *MessageService) List(ctx context.Context, userID primitive.ObjectID, direction string, page, limit int) ([]models.Message, int64, error) {
	return s.repo.ListMessages(ctx, userID, direction, page, limit)
}

// SubmitContact сохраняет обращение контактной формы и публикует
// уведомление в очередь. Отказ брокера не роняет приём обращения.
func (s *MessageService) SubmitContact(ctx context.Context, form models.ContactForm) (primitive.ObjectID, error) {
	id, err := s.repo.CreateContactForm(ctx, form)
	if err != nil {
		return primitive.NilObjectID, err
	}

	form.ID = id
	if err := s.publisher.Publish(QueueContactNotifications, form); err != nil {
		s.log.Error("failed to publish contact notification",
			slog.String("contact_id", id.Hex()),
			slog.Any("err", err))
	}

	s.log.Info("received contact form", slog.String("contact_id", id.Hex()))
	return id, nil
}
