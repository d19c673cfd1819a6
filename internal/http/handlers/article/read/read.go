// Package read реализует HTTP-обработчик чтения одной статьи.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/http/middlewarectx"
	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/services/article"
)

// Service описывает интерфейс бизнес-логики чтения статьи.
type Service interface {
	Read(ctx context.Context, identity *models.Identity, id primitive.ObjectID) (*models.Article, error)
}

// Handler управляет HTTP-запросами на чтение статьи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить статью по ID
// @Tags Articles
// @Produce  json
// @Param id path string true "ID статьи"
// @Success 200 {object} response.Response "Статья"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Статья только для членов"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /articles/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.read"
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

	identity := middlewarectx.IdentityFromContext(r.Context())

	art, err := h.service.Read(r.Context(), identity, id)
	if errors.Is(err, article.ErrArticleNotFound) {
		log.Error("article not found", slog.String("article_id", id.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}
	if errors.Is(err, article.ErrMembersOnly) {
		log.Error("article reserved for members", slog.String("article_id", id.Hex()))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("article is reserved for active members"))
		return
	}
	if err != nil {
		log.Error("failed to read article", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read article"))
		return
	}

	render.JSON(w, r, response.OK(art, "article retrieved"))
}
