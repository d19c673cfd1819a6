// Package category содержит бизнес-логику рубрик публикаций.
package category

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

// Ошибки работы с рубриками.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category with this name already exists")
)

// CategoryRepository определяет методы для работы с рубриками в хранилище.
type CategoryRepository interface {
	// CreateCategory вставляет рубрику и возвращает её ID.
	CreateCategory(ctx context.Context, category models.Category) (primitive.ObjectID, error)
	// ListCategories возвращает страницу рубрик и общее количество.
	ListCategories(ctx context.Context, page, limit int) ([]models.Category, int64, error)
	// UpdateCategory частично обновляет рубрику.
	UpdateCategory(ctx context.Context, id primitive.ObjectID, update models.CategoryUpdate) (*models.Category, error)
	// DeleteCategory удаляет рубрику.
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
}

// CategoryService реализует бизнес-логику рубрик.
type CategoryService struct {
	repo CategoryRepository
	log  *slog.Logger
}

// NewCategoryService создает новый экземпляр CategoryService.
func NewCategoryService(repo CategoryRepository, log *slog.Logger) *CategoryService {
	return &CategoryService{
		repo: repo,
		log:  log,
	}
}

// Create сохраняет новую рубрику. Имя рубрики уникально.
func (s *CategoryService) Create(ctx context.Context, category models.Category) (primitive.ObjectID, error) {
	id, err := s.repo.CreateCategory(ctx, category)
	if errors.Is(err, storage.ErrDuplicate) {
		return primitive.NilObjectID, ErrCategoryExists
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.log.Info("created new category", slog.String("category_id", id.Hex()))
	return id, nil
}

// List возвращает страницу рубрик.
func (s *CategoryService) List(ctx context.Context, page, limit int) ([]models.Category, int64, error) {
	return s.repo.ListCategories(ctx, page, limit)
}

// Update частично обновляет рубрику.
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, update models.CategoryUpdate) (*models.Category, error) {
	category, err := s.repo.UpdateCategory(ctx, id, update)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, ErrCategoryExists
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("updated category", slog.String("category_id", id.Hex()))
	return category, nil
}

// Delete удаляет рубрику.
func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteCategory(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return err
	}
	s.log.Info("deleted category", slog.String("category_id", id.Hex()))
	return nil
}
