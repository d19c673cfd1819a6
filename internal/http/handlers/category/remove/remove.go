// Package remove реализует HTTP-обработчик удаления рубрики.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/services/category"
)

// Service описывает интерфейс бизнес-логики удаления рубрики.
type Service interface {
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Handler управляет HTTP-запросами на удаление рубрик.
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
// @Summary Удалить рубрику
// @Tags Categories
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID рубрики"
// @Success 200 {object} response.Response "Рубрика удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Рубрика не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /categories/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid category id"))
		return
	}

	err = h.service.Delete(r.Context(), id)
	if errors.Is(err, category.ErrCategoryNotFound) {
		log.Error("category not found", slog.String("category_id", id.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("category not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete category", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete category"))
		return
	}

	log.Info("category deleted", slog.String("category_id", id.Hex()))
	render.JSON(w, r, response.OK(nil, "category deleted"))
}
