// Package event содержит бизнес-логику мероприятий: CRUD для
// администраторов и процесс записи участников с проверкой членства,
// дедлайна и лимита мест.
package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

// Ошибки процесса записи. Хэндлеры транслируют их в ответы API.
var (
	ErrEventNotFound           = errors.New("event not found")
	ErrInvalidEvent            = errors.New("invalid event data")
	ErrRegistrationNotRequired = errors.New("registration is not required for this event")
	ErrMembersOnly             = errors.New("event is reserved for active members")
	ErrDeadlinePassed          = errors.New("registration deadline has passed")
	ErrAlreadyRegistered       = errors.New("already registered for this event")
	ErrEventFull               = errors.New("event has reached maximum participants")
	ErrNotRegistered           = errors.New("not registered for this event")
)

// EventRepository определяет методы для работы с мероприятиями в хранилище.
type EventRepository interface {
	// CreateEvent вставляет мероприятие и возвращает его ID.
	CreateEvent(ctx context.Context, event models.Event) (primitive.ObjectID, error)
	// FindEventByID возвращает мероприятие по идентификатору.
	FindEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	// ListEvents возвращает страницу мероприятий и общее количество.
	ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, int64, error)
	// UpdateEvent частично обновляет мероприятие.
	UpdateEvent(ctx context.Context, id primitive.ObjectID, update models.EventUpdate) (*models.Event, error)
	// DeleteEvent удаляет мероприятие.
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error
	// AddParticipant добавляет участника одним условным обновлением.
	AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error)
	// RemoveParticipant убирает участника одним условным обновлением.
	RemoveParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error)
}

// EventService реализует бизнес-логику мероприятий.
type EventService struct {
	repo EventRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewEventService создает новый экземпляр EventService.
func NewEventService(repo EventRepository, log *slog.Logger) *EventService {
	return &EventService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Create валидирует и сохраняет новое мероприятие.
func (s *EventService) Create(ctx context.Context, createdBy primitive.ObjectID, event models.Event) (*models.Event, error) {
	if err := validateEvent(&event); err != nil {
		return nil, err
	}

	event.CreatedBy = createdBy
	event.Participants = []primitive.ObjectID{}

	id, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new event", slog.String("event_id", id.Hex()))

	return s.repo.FindEventByID(ctx, id)
}

// List возвращает страницу мероприятий под фильтром.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int64, error) {
	return s.repo.ListEvents(ctx, filter)
}

// Read возвращает мероприятие с учётом членства читателя. Мероприятие
// только для членов закрыто от анонимов и пользователей без членства.
func (s *EventService) Read(ctx context.Context, identity *models.Identity, id primitive.ObjectID) (*models.Event, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := identity != nil && (identity.IsMember || identity.IsAdmin())
	if event.IsMemberOnly && !allowed {
		return nil, ErrMembersOnly
	}
	return event, nil
}

func (s *EventService) find(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	event, err := s.repo.FindEventByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	return event, err
}

// Update частично обновляет мероприятие. Поля даты и лимита проверяются
// в сочетании с текущим состоянием документа.
func (s *EventService) Update(ctx context.Context, id primitive.ObjectID, update models.EventUpdate) (*models.Event, error) {
	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateUpdate(current, update); err != nil {
		return nil, err
	}

	event, err := s.repo.UpdateEvent(ctx, id, update)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("updated event", slog.String("event_id", id.Hex()))
	return event, nil
}

// Delete удаляет мероприятие.
func (s *EventService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteEvent(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}
	s.log.Info("deleted event", slog.String("event_id", id.Hex()))
	return nil
}

// Register записывает пользователя на мероприятие. Проверки порядка:
// запись требуется, членство при необходимости, дедлайн, затем атомарное
// добавление участника. Отказ условного обновления классифицируется
// повторным чтением: дубль записи имеет приоритет над переполнением.
func (s *EventService) Register(ctx context.Context, eventID primitive.ObjectID, identity models.Identity) (*models.Event, error) {
	event, err := s.find(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !event.RegistrationRequired {
		return nil, ErrRegistrationNotRequired
	}
	if event.IsMemberOnly && !identity.IsMember {
		return nil, ErrMembersOnly
	}
	// Граница включительная: заявка ровно в момент дедлайна проходит.
	if event.RegistrationDeadline != nil && s.now().After(*event.RegistrationDeadline) {
		return nil, ErrDeadlinePassed
	}

	updated, err := s.repo.AddParticipant(ctx, eventID, identity.UserID)
	if errors.Is(err, storage.ErrConditionFailed) {
		return nil, s.classifyRegisterFailure(ctx, eventID, identity.UserID)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("registered participant",
		slog.String("event_id", eventID.Hex()),
		slog.String("user_id", identity.UserID.Hex()))
	return updated, nil
}

// Unregister отменяет запись пользователя на мероприятие.
func (s *EventService) Unregister(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	if _, err := s.find(ctx, eventID); err != nil {
		return nil, err
	}

	updated, err := s.repo.RemoveParticipant(ctx, eventID, userID)
	if errors.Is(err, storage.ErrConditionFailed) {
		return nil, ErrNotRegistered
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("unregistered participant",
		slog.String("event_id", eventID.Hex()),
		slog.String("user_id", userID.Hex()))
	return updated, nil
}

func (s *EventService) classifyRegisterFailure(ctx context.Context, eventID, userID primitive.ObjectID) error {
	event, err := s.find(ctx, eventID)
	if err != nil {
		return err
	}
	if event.HasParticipant(userID) {
		return ErrAlreadyRegistered
	}
	if event.IsFull() {
		return ErrEventFull
	}
	// Между отказом и повторным чтением место освободилось.
	return ErrEventFull
}

func validateEvent(event *models.Event) error {
	if event.EndDate != nil && event.EndDate.Before(event.StartDate) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidEvent)
	}
	if event.RegistrationDeadline != nil && event.RegistrationDeadline.After(event.StartDate) {
		return fmt.Errorf("%w: registration deadline is after start date", ErrInvalidEvent)
	}
	if event.MaxParticipants < 0 {
		return fmt.Errorf("%w: max participants must not be negative", ErrInvalidEvent)
	}
	if event.MemberPrice < 0 || event.NonMemberPrice < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidEvent)
	}
	return nil
}

func validateUpdate(current *models.Event, update models.EventUpdate) error {
	merged := *current
	if update.StartDate != nil {
		merged.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		merged.EndDate = update.EndDate
	}
	if update.RegistrationDeadline != nil {
		merged.RegistrationDeadline = update.RegistrationDeadline
	}
	if update.MaxParticipants != nil {
		merged.MaxParticipants = *update.MaxParticipants
	}
	if update.MemberPrice != nil {
		merged.MemberPrice = *update.MemberPrice
	}
	if update.NonMemberPrice != nil {
		merged.NonMemberPrice = *update.NonMemberPrice
	}
	return validateEvent(&merged)
}
