// Package admin содержит бизнес-логику административной панели:
// управление пользователями, модерацию профилей и сводную статистику.
package admin

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

// Ошибки административных операций.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email is already registered")
	ErrInvalidStatus   = errors.New("invalid profile status")
	ErrProfileNotFound = errors.New("profile not found")
)

// AdminRepository определяет методы хранилища для административных операций.
type AdminRepository interface {
	// ListUsers возвращает страницу пользователей и общее количество.
	ListUsers(ctx context.Context, page, limit int, isActive *bool) ([]models.User, int64, error)
	// UpdateUser частично обновляет пользователя.
	UpdateUser(ctx context.Context, id primitive.ObjectID, update models.UserUpdate) (*models.User, error)
	// DeleteUser удаляет пользователя вместе с профилем.
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	// FindProfilesByUserIDs возвращает профили для набора пользователей.
	FindProfilesByUserIDs(ctx context.Context, userIDs []primitive.ObjectID) ([]models.Profile, error)
	// ActivateProfile включает профиль решением администратора.
	ActivateProfile(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	// SetProfileStatus выставляет операционный статус профиля.
	SetProfileStatus(ctx context.Context, userID primitive.ObjectID, status string) (*models.Profile, error)

	// CountUsers возвращает число пользователей под фильтром активности.
	CountUsers(ctx context.Context, isActive *bool) (int64, error)
	// CountProfilesByMembership возвращает число профилей по статусу членства.
	CountProfilesByMembership(ctx context.Context, membershipStatus string) (int64, error)
	// CountArticles возвращает число статей, опционально только опубликованных.
	CountArticles(ctx context.Context, publishedOnly bool) (int64, error)
	// CountEvents возвращает число мероприятий, опционально только предстоящих.
	CountEvents(ctx context.Context, upcomingOnly bool) (int64, error)
	// CountPayments возвращает число платежей по статусу.
	CountPayments(ctx context.Context, status string) (int64, error)
	// CountUnreadContacts возвращает число непрочитанных обращений.
	CountUnreadContacts(ctx context.Context) (int64, error)
	// MembershipBreakdown группирует профили по статусу членства.
	MembershipBreakdown(ctx context.Context) ([]models.StatusCount, error)
	// MonthlyRegistrations считает регистрации по месяцам с указанной даты.
	MonthlyRegistrations(ctx context.Context, since time.Time) ([]models.MonthlyCount, error)
	// RevenueByType суммирует завершённые платежи в разрезе типа.
	RevenueByType(ctx context.Context) ([]models.RevenueByType, error)
}

// UserWithProfile объединяет учётную запись с профилем для списков
// административной панели. Профиль может отсутствовать.
type UserWithProfile struct {
	User    models.User     `json:"user"`
	Profile *models.Profile `json:"profile,omitempty"`
}

// AdminService реализует бизнес-логику административной панели.
type AdminService struct {
	repo AdminRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo AdminRepository, log *slog.Logger) *AdminService {
	return &AdminService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// ListUsers возвращает страницу пользователей с присоединёнными профилями.
func (s *AdminService) ListUsers(ctx context.Context, page, limit int, isActive *bool) ([]UserWithProfile, int64, error) {
	users, total, err := s.repo.ListUsers(ctx, page, limit, isActive)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	profiles, err := s.repo.FindProfilesByUserIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byUser := make(map[primitive.ObjectID]*models.Profile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	result := make([]UserWithProfile, 0, len(users))
	for _, u := range users {
		result = append(result, UserWithProfile{User: u, Profile: byUser[u.ID]})
	}
	return result, total, nil
}

// UpdateUser частично обновляет учётную запись.
func (s *AdminService) UpdateUser(ctx context.Context, id primitive.ObjectID, update models.UserUpdate) (*models.User, error) {
	user, err := s.repo.UpdateUser(ctx, id, update)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("updated user", slog.String("user_id", id.Hex()))
	return user, nil
}

// DeleteUser удаляет учётную запись вместе с профилем.
func (s *AdminService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteUser(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	s.log.Info("deleted user", slog.String("user_id", id.Hex()))
	return nil
}

// ActivateProfile включает профиль пользователя решением администратора.
func (s *AdminService) ActivateProfile(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	profile, err := s.repo.ActivateProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("activated profile", slog.String("user_id", userID.Hex()))
	return profile, nil
}

// SetProfileStatus выставляет операционный статус профиля.
func (s *AdminService) SetProfileStatus(ctx context.Context, userID primitive.ObjectID, status string) (*models.Profile, error) {
	if !models.ValidProfileStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	profile, err := s.repo.SetProfileStatus(ctx, userID, status)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("set profile status",
		slog.String("user_id", userID.Hex()),
		slog.String("status", status))
	return profile, nil
}

// Stats собирает сводную статистику панели администратора.
// Регистрации считаются за последние шесть месяцев.
func (s *AdminService) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	var err error

	if stats.Users.Total, err = s.repo.CountUsers(ctx, nil); err != nil {
		return nil, err
	}
	active := true
	if stats.Users.Active, err = s.repo.CountUsers(ctx, &active); err != nil {
		return nil, err
	}
	if stats.Users.Pending, err = s.repo.CountProfilesByMembership(ctx, models.MembershipPending); err != nil {
		return nil, err
	}
	if stats.Users.MembershipBreakdown, err = s.repo.MembershipBreakdown(ctx); err != nil {
		return nil, err
	}

	if stats.Content.Articles.Total, err = s.repo.CountArticles(ctx, false); err != nil {
		return nil, err
	}
	if stats.Content.Articles.Published, err = s.repo.CountArticles(ctx, true); err != nil {
		return nil, err
	}
	if stats.Content.Events.Total, err = s.repo.CountEvents(ctx, false); err != nil {
		return nil, err
	}
	if stats.Content.Events.Upcoming, err = s.repo.CountEvents(ctx, true); err != nil {
		return nil, err
	}

	if stats.Financial.Payments.Total, err = s.repo.CountPayments(ctx, ""); err != nil {
		return nil, err
	}
	if stats.Financial.Payments.Completed, err = s.repo.CountPayments(ctx, models.PaymentCompleted); err != nil {
		return nil, err
	}
	if stats.Financial.Revenue, err = s.repo.RevenueByType(ctx); err != nil {
		return nil, err
	}

	if stats.Communications.UnreadContacts, err = s.repo.CountUnreadContacts(ctx); err != nil {
		return nil, err
	}

	since := s.now().UTC().AddDate(0, -6, 0)
	if stats.Trends.MonthlyRegistrations, err = s.repo.MonthlyRegistrations(ctx, since); err != nil {
		return nil, err
	}

	return &stats, nil
}
