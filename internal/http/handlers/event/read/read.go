// Package read реализует HTTP-обработчик чтения одного мероприятия.
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
	"github.com/lorenzcipher/association-backend/internal/services/event"
)

// Service описывает интерфейс бизнес-логики чтения мероприятия.
type Service interface {
	Read(ctx context.Context, identity *models.Identity, id primitive.ObjectID) (*models.Event, error)
}

// Handler управляет HTTP-запросами на чтение мероприятия.
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
// @Summary Получить мероприятие по ID
// @Tags Events
// @Produce  json
// @Param id path string true "ID мероприятия"
// @Success 200 {object} response.Response "Мероприятие"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Мероприятие только для членов"
// @Failure 404 {object} response.ErrorResponse "Мероприятие не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.read"
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

	identity := middlewarectx.IdentityFromContext(r.Context())

	ev, err := h.service.Read(r.Context(), identity, id)
	if errors.Is(err, event.ErrEventNotFound) {
		log.Error("event not found", slog.String("event_id", id.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("event not found"))
		return
	}
	if errors.Is(err, event.ErrMembersOnly) {
		log.Error("event reserved for members", slog.String("event_id", id.Hex()))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("event is reserved for active members"))
		return
	}
	if err != nil {
		log.Error("failed to read event", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read event"))
		return
	}

	render.JSON(w, r, response.OK(ev, "event retrieved"))
}
