// Package remove реализует HTTP-обработчик удаления мероприятия.
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
	"github.com/lorenzcipher/association-backend/internal/services/event"
)

// Service описывает интерфейс бизнес-логики удаления мероприятия.
type Service interface {
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Handler управляет HTTP-запросами на удаление мероприятий.
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
// @Summary Удалить мероприятие
// @Tags Events
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID мероприятия"
// @Success 200 {object} response.Response "Мероприятие удалено"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Мероприятие не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid event id"))
		return
	}

	err = h.service.Delete(r.Context(), id)
	if errors.Is(err, event.ErrEventNotFound) {
		log.Error("event not found", slog.String("event_id", id.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("event not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete event", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete event"))
		return
	}

	log.Info("event deleted", slog.String("event_id", id.Hex()))
	render.JSON(w, r, response.OK(nil, "event deleted"))
}
