// Package register реализует HTTP-обработчик записи на мероприятие.
//
// Отказы процесса записи транслируются в ответы API: конфликты процесса
// (дубль записи, исчерпанный лимит, прошедший дедлайн) считаются ошибками
// запроса, а не сервера.
package register

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

// Service описывает интерфейс бизнес-логики записи на мероприятие.
type Service interface {
	Register(ctx context.Context, eventID primitive.ObjectID, identity models.Identity) (*models.Event, error)
}

// Handler управляет HTTP-запросами на запись.
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
// @Summary Записаться на мероприятие
// @Tags Events
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID мероприятия"
// @Success 200 {object} response.Response "Мероприятие с обновлённым списком участников"
// @Failure 400 {object} response.ErrorResponse "Запись не требуется, дедлайн прошёл, дубль записи или нет мест"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Мероприятие только для членов"
// @Failure 404 {object} response.ErrorResponse "Мероприятие не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/{id}/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.register"
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

	ev, err := h.service.Register(r.Context(), id, *identity)
	if err != nil {
		status, msg := registerError(err)
		log.Error("failed to register for event", sl.Err(err),
			slog.String("event_id", id.Hex()),
			slog.String("user_id", identity.UserID.Hex()))
		render.Status(r, status)
		render.JSON(w, r, response.Error(msg))
		return
	}

	log.Info("registered for event",
		slog.String("event_id", id.Hex()),
		slog.String("user_id", identity.UserID.Hex()))
	render.JSON(w, r, response.OK(ev, "registered for event"))
}

func registerError(err error) (int, string) {
	switch {
	case errors.Is(err, event.ErrEventNotFound):
		return http.StatusNotFound, "event not found"
	case errors.Is(err, event.ErrMembersOnly):
		return http.StatusForbidden, "event is reserved for active members"
	case errors.Is(err, event.ErrRegistrationNotRequired):
		return http.StatusBadRequest, "registration is not required for this event"
	case errors.Is(err, event.ErrDeadlinePassed):
		return http.StatusBadRequest, "registration deadline has passed"
	case errors.Is(err, event.ErrAlreadyRegistered):
		return http.StatusBadRequest, "already registered for this event"
	case errors.Is(err, event.ErrEventFull):
		return http.StatusBadRequest, "event has reached maximum participants"
	default:
		return http.StatusInternalServerError, "could not register for event"
	}
}
