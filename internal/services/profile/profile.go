// Package profile содержит бизнес-логику профилей: просмотр и
// редактирование собственного профиля, обработку платёжного коллбека
// и справочник действующих членов.
package profile

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

// ErrProfileNotFound возвращается, когда профиль пользователя не существует.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository определяет методы для работы с профилями в хранилище.
type ProfileRepository interface {
	// FindProfileByUserID возвращает профиль по ID пользователя.
	FindProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	// UpdateProfile частично обновляет профиль.
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update models.ProfileUpdate) (*models.Profile, error)
	// SetProfilePayment применяет результат успешной оплаты.
	SetProfilePayment(ctx context.Context, userID primitive.ObjectID, orderID string) (*models.Profile, error)
	// ListMembers возвращает страницу профилей с действующим членством.
	ListMembers(ctx context.Context, page, limit int, search string) ([]models.Profile, int64, error)
	// CreatePayment фиксирует платёж.
	CreatePayment(ctx context.Context, payment models.Payment) (primitive.ObjectID, error)
}

// ProfileService реализует бизнес-логику профилей.
type ProfileService struct {
	repo ProfileRepository
	log  *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo ProfileRepository, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo: repo,
		log:  log,
	}
}

// Get возвращает профиль пользователя.
func (s *ProfileService) Get(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return profile, err
}

// Update частично обновляет профиль владельца.
func (s *ProfileService) Update(ctx context.Context, userID primitive.ObjectID, update models.ProfileUpdate) (*models.Profile, error) {
	profile, err := s.repo.UpdateProfile(ctx, userID, update)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("updated profile", slog.String("user_id", userID.Hex()))
	return profile, nil
}

// ConfirmPayment применяет коллбек платёжного шлюза: активирует профиль,
// сохраняет orderId и фиксирует завершённый платёж в истории.
func (s *ProfileService) ConfirmPayment(ctx context.Context, userID primitive.ObjectID, orderID string, amount float64) (*models.Profile, error) {
	profile, err := s.repo.SetProfilePayment(ctx, userID, orderID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	payment := models.Payment{
		UserID:  userID,
		OrderID: orderID,
		Amount:  amount,
		Type:    models.PaymentTypeMembership,
		Status:  models.PaymentCompleted,
	}
	if _, err := s.repo.CreatePayment(ctx, payment); err != nil {
		// Профиль уже активирован, потеря записи платежа не откатывает его.
		s.log.Error("failed to record payment",
			slog.String("user_id", userID.Hex()),
			slog.String("order_id", orderID),
			slog.Any("err", err))
	}

	s.log.Info("payment confirmed",
		slog.String("user_id", userID.Hex()),
		slog.String("order_id", orderID))
	return profile, nil
}

// ListMembers возвращает страницу справочника действующих членов.
func (s *ProfileService) ListMembers(ctx context.Context, page, limit int, search string) ([]models.Profile, int64, error) {
	return s.repo.ListMembers(ctx, page, limit, search)
}
