// Package unregister реализует HTTP-обработчик отмены записи на мероприятие.
package unregister

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
	"github.com/lorenzcipher/association-backend/internal/services/event"
)

// Service описывает интерфейс бизнес-логики отмены записи.
type Service interface {
	Unregister(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error)
}

// Handler управляет HTTP-запросами на отмену записи.
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
// @Summary Отменить запись на мероприятие
// @Tags Events
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID мероприятия"
// @Success 200 {object} response.Response "Мероприятие с обновлённым списком участников"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или пользователь не записан"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Мероприятие не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/{id}/register [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.unregister"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity := middlewarectx.IdentityFromContext(r.Context())
	if identity == nil {
		log.Error("identity missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid event id"))
		return
	}

	ev, err := h.service.Unregister(r.Context(), id, identity.UserID)
	if errors.Is(err, event.ErrEventNotFound) {
		log.Error("event not found", slog.String("event_id", id.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("event not found"))
		return
	}
	if errors.Is(err, event.ErrNotRegistered) {
		log.Error("not registered for event",
			slog.String("event_id", id.Hex()),
			slog.String("user_id", identity.UserID.Hex()))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("not registered for this event"))
		return
	}
	if err != nil {
		log.Error("failed to unregister from event", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not unregister from event"))
		return
	}

	log.Info("unregistered from event",
		slog.String("event_id", id.Hex()),
		slog.String("user_id", identity.UserID.Hex()))
	render.JSON(w, r, response.OK(ev, "unregistered from event"))
}
