// Package update реализует HTTP-обработчик редактирования статьи.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/services/article"
)

// Request — изменяемые поля статьи.
type Request struct {
	Title         *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content       *string  `json:"content,omitempty"`
	Excerpt       *string  `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	FeaturedImage *string  `json:"featuredImage,omitempty" validate:"omitempty,url"`
	Tags          []string `json:"tags,omitempty"`
	IsMemberOnly  *bool    `json:"isMemberOnly,omitempty"`
	IsPublished   *bool    `json:"isPublished,omitempty"`
}

// Service описывает интерфейс бизнес-логики редактирования статьи.
type Service interface {
	Update(ctx context.Context, id primitive.ObjectID, update models.ArticleUpdate) (*models.Article, error)
}

// Handler управляет HTTP-запросами на редактирование статей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить статью
// @Tags Articles
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID статьи"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновлённая статья"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /articles/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid article id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	updated, err := h.service.Update(r.Context(), id, models.ArticleUpdate{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		IsMemberOnly:  req.IsMemberOnly,
		IsPublished:   req.IsPublished,
	})
	if errors.Is(err, article.ErrArticleNotFound) {
		log.Error("article not found", slog.String("article_id", id.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}
	if err != nil {
		log.Error("failed to update article", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update article"))
		return
	}

	log.Info("article updated", slog.String("article_id", id.Hex()))
	render.JSON(w, r, response.OK(updated, "article updated"))
}
