// Package auth содержит бизнес-логику аутентификации: регистрацию,
// вход по паролю и проверку токена с восстановлением Identity.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/lib/jwt"
	"github.com/lorenzcipher/association-backend/internal/lib/password"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

// Ошибки аутентификации. Хэндлеры транслируют их в ответы API.
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is deactivated")
	ErrUnauthenticated    = errors.New("authentication required")
)

// UserRepository определяет методы для работы с учётными записями.
type UserRepository interface {
	// CreateUser вставляет пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (primitive.ObjectID, error)
	// FindUserByEmail возвращает пользователя по email.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUserByID возвращает пользователя по идентификатору.
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// CreateProfile вставляет профиль пользователя.
	CreateProfile(ctx context.Context, profile models.Profile) (primitive.ObjectID, error)
	// FindProfileByUserID возвращает профиль по ID пользователя.
	FindProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
}

// RegisterInput содержит данные регистрации нового пользователя.
type RegisterInput struct {
	Email              string
	Password           string
	FirstName          string
	LastName           string
	Phone              string
	ProfessionalStatus string
	DomainOfInterest   []string
}

// AuthService реализует бизнес-логику аутентификации.
type AuthService struct {
	repo  UserRepository
	maker jwt.Maker
	log   *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo UserRepository, maker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		repo:  repo,
		maker: maker,
		log:   log,
	}
}

// Register создает учётную запись с ролью member и профиль в ожидании
// подтверждения членства, затем сразу выдаёт токен.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, *models.Profile, string, error) {
	hash, err := password.GetHash(input.Password)
	if err != nil {
		return nil, nil, "", err
	}

	userID, err := s.repo.CreateUser(ctx, models.User{
		Email:        input.Email,
		PasswordHash: hash,
		Role:         models.RoleMember,
		IsActive:     true,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, nil, "", ErrEmailTaken
	}
	if err != nil {
		return nil, nil, "", err
	}

	profile := models.Profile{
		UserID:             userID,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Phone:              input.Phone,
		ProfessionalStatus: input.ProfessionalStatus,
		DomainOfInterest:   input.DomainOfInterest,
		MembershipStatus:   models.MembershipPending,
		Status:             models.ProfileStatusPending,
	}
	if _, err := s.repo.CreateProfile(ctx, profile); err != nil {
		return nil, nil, "", err
	}

	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, "", err
	}
	created, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, nil, "", err
	}

	token, err := s.maker.GenerateToken(userID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, nil, "", err
	}

	s.log.Info("registered new user", slog.String("user_id", userID.Hex()))
	return user, created, token, nil
}

// Login проверяет пароль и состояние учётной записи, выдаёт токен.
// Неверный email и неверный пароль неразличимы для вызывающей стороны.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*models.User, *models.Profile, string, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, "", err
	}
	if err := password.CompareHash(pass, user.PasswordHash); err != nil {
		return nil, nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, "", ErrInactiveAccount
	}

	profile, err := s.repo.FindProfileByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, "", err
	}
	if profile.Status == models.ProfileStatusBlocked {
		return nil, nil, "", ErrInactiveAccount
	}

	token, err := s.maker.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, nil, "", err
	}

	s.log.Info("user logged in", slog.String("user_id", user.ID.Hex()))
	return user, profile, token, nil
}

// Authenticate разбирает токен и восстанавливает Identity по текущему
// состоянию учётной записи и профиля. Любой отказ сводится к
// ErrUnauthenticated: отозванный доступ неотличим от кривого токена.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := s.maker.ParseToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, ErrUnauthenticated
	}

	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil || profile.Status == models.ProfileStatusBlocked {
		return nil, ErrUnauthenticated
	}

	return &models.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		IsMember: profile.IsMember(),
	}, nil
}
