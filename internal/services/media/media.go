// Package media содержит бизнес-логику медиатеки: CRUD для
// администраторов и выдачу с учётом членства зрителя.
package media

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

// ErrMediaNotFound возвращается, когда медиаматериал не существует.
var ErrMediaNotFound = errors.New("media not found")

// MediaRepository определяет методы для работы с медиатекой в хранилище.
type MediaRepository interface {
	// CreateMedia вставляет медиаматериал и возвращает его ID.
	CreateMedia(ctx context.Context, media models.Media) (primitive.ObjectID, error)
	// ListMedia возвращает страницу медиаматериалов и общее количество.
	ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.Media, int64, error)
	// UpdateMedia частично обновляет медиаматериал.
	UpdateMedia(ctx context.Context, id primitive.ObjectID, update models.MediaUpdate) (*models.Media, error)
	// DeleteMedia удаляет медиаматериал.
	DeleteMedia(ctx context.Context, id primitive.ObjectID) error
}

// MediaService реализует бизнес-логику медиатеки.
type MediaService struct {
	repo MediaRepository
	log  *slog.Logger
}

// NewMediaService создает новый экземпляр MediaService.
func NewMediaService(repo MediaRepository, log *slog.Logger) *MediaService {
	return &MediaService{
		repo: repo,
		log:  log,
	}
}

// Create сохраняет новый медиаматериал от имени загрузившего.
func (s *MediaService) Create(ctx context.Context, uploadedBy primitive.ObjectID, media models.Media) (primitive.ObjectID, error) {
	media.UploadedBy = uploadedBy

	id, err := s.repo.CreateMedia(ctx, media)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.log.Info("created new media", slog.String("media_id", id.Hex()))
	return id, nil
}

// List возвращает страницу медиаматериалов, видимых отправителю.
// Материалы для членов скрываются от зрителей без действующего членства.
func (s *MediaService) List(ctx context.Context, identity *models.Identity, filter models.MediaFilter) ([]models.Media, int64, error) {
	isAdmin := identity != nil && identity.IsAdmin()
	isMember := identity != nil && identity.IsMember

	if !isAdmin && !isMember {
		publicOnly := false
		filter.MemberOnly = &publicOnly
	}
	return s.repo.ListMedia(ctx, filter)
}

// Update частично обновляет медиаматериал.
func (s *MediaService) Update(ctx context.Context, id primitive.ObjectID, update models.MediaUpdate) (*models.Media, error) {
	media, err := s.repo.UpdateMedia(ctx, id, update)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("updated media", slog.String("media_id", id.Hex()))
	return media, nil
}

// Delete удаляет медиаматериал.
func (s *MediaService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteMedia(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrMediaNotFound
	}
	if err != nil {
		return err
	}
	s.log.Info("deleted media", slog.String("media_id", id.Hex()))
	return nil
}
