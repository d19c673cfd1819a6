// Package article содержит бизнес-логику публикаций: CRUD для
// администраторов и выдачу с учётом членства читателя.
package article

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

// Ошибки доступа к публикациям.
var (
	ErrArticleNotFound = errors.New("article not found")
	ErrMembersOnly     = errors.New("article is reserved for active members")
)

// ArticleRepository определяет методы для работы со статьями в хранилище.
type ArticleRepository interface {
	// CreateArticle вставляет статью и возвращает её ID.
	CreateArticle(ctx context.Context, article models.Article) (primitive.ObjectID, error)
	// FindArticleByID возвращает статью, увеличив счётчик просмотров.
	FindArticleByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error)
	// ListArticles возвращает страницу статей и общее количество.
	ListArticles(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int64, error)
	// UpdateArticle частично обновляет статью.
	UpdateArticle(ctx context.Context, id primitive.ObjectID, update models.ArticleUpdate) (*models.Article, error)
	// DeleteArticle удаляет статью.
	DeleteArticle(ctx context.Context, id primitive.ObjectID) error
}

// ArticleService реализует бизнес-логику публикаций.
type ArticleService struct {
	repo ArticleRepository
	log  *slog.Logger
}

// NewArticleService создает новый экземпляр ArticleService.
func NewArticleService(repo ArticleRepository, log *slog.Logger) *ArticleService {
	return &ArticleService{
		repo: repo,
		log:  log,
	}
}

// Create сохраняет новую статью от имени автора. Статья, созданная
// сразу опубликованной, получает отметку времени публикации.
func (s *ArticleService) Create(ctx context.Context, authorID primitive.ObjectID, article models.Article) (*models.Article, error) {
	article.AuthorID = authorID
	if article.IsPublished && article.PublishedAt == nil {
		now := time.Now().UTC()
		article.PublishedAt = &now
	}

	id, err := s.repo.CreateArticle(ctx, article)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new article", slog.String("article_id", id.Hex()))

	created, err := s.repo.FindArticleByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	return created, err
}

// List возвращает страницу статей, видимых отправителю. Анонимный читатель
// видит только публичные опубликованные статьи, член ассоциации — также
// материалы для членов, администратор — всё, включая черновики.
func (s *ArticleService) List(ctx context.Context, identity *models.Identity, filter models.ArticleFilter) ([]models.Article, int64, error) {
	isAdmin := identity != nil && identity.IsAdmin()
	isMember := identity != nil && identity.IsMember

	if !isAdmin {
		filter.OnlyPublished = true
	}
	if !isAdmin && !isMember {
		filter.MemberOnly = false
		filter.PublicOnly = true
	}
	return s.repo.ListArticles(ctx, filter)
}

// Read возвращает статью с учётом членства читателя. Черновик для
// неадминистратора неотличим от отсутствующей статьи.
func (s *ArticleService) Read(ctx context.Context, identity *models.Identity, id primitive.ObjectID) (*models.Article, error) {
	article, err := s.repo.FindArticleByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}

	isAdmin := identity != nil && identity.IsAdmin()
	isMember := identity != nil && identity.IsMember

	if !article.IsPublished && !isAdmin {
		return nil, ErrArticleNotFound
	}
	if article.IsMemberOnly && !isMember && !isAdmin {
		return nil, ErrMembersOnly
	}
	return article, nil
}

// Update частично обновляет статью.
func (s *ArticleService) Update(ctx context.Context, id primitive.ObjectID, update models.ArticleUpdate) (*models.Article, error) {
	article, err := s.repo.UpdateArticle(ctx, id, update)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("updated article", slog.String("article_id", id.Hex()))
	return article, nil
}

// Delete удаляет статью.
func (s *ArticleService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.DeleteArticle(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrArticleNotFound
	}
	if err != nil {
		return err
	}
	s.log.Info("deleted article", slog.String("article_id", id.Hex()))
	return nil
}
