// Package update реализует HTTP-обработчик редактирования мероприятия.
//
// Поля запроса опциональны; присланные значения проверяются в сочетании
// с текущим состоянием документа.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/services/event"
)

// Request — изменяемые поля мероприятия. Даты в формате RFC 3339.
type Request struct {
	Title                *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description          *string    `json:"description,omitempty"`
	StartDate            *time.Time `json:"startDate,omitempty"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	Location             *string    `json:"location,omitempty"`
	IsOnline             *bool      `json:"isOnline,omitempty"`
	IsMemberOnly         *bool      `json:"isMemberOnly,omitempty"`
	MaxParticipants      *int       `json:"maxParticipants,omitempty" validate:"omitempty,gte=0"`
	RegistrationRequired *bool      `json:"registrationRequired,omitempty"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	MemberPrice          *float64   `json:"memberPrice,omitempty" validate:"omitempty,gte=0"`
	NonMemberPrice       *float64   `json:"nonMemberPrice,omitempty" validate:"omitempty,gte=0"`
}

// Service описывает интерфейс бизнес-логики редактирования мероприятия.
type Service interface {
	Update(ctx context.Context, id primitive.ObjectID, update models.EventUpdate) (*models.Event, error)
}

// Handler управляет HTTP-запросами на редактирование мероприятий.
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
// @Summary Обновить мероприятие
// @Tags Events
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID мероприятия"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновлённое мероприятие"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или несогласованные даты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Мероприятие не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.update"
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

	updated, err := h.service.Update(r.Context(), id, models.EventUpdate{
		Title:                req.Title,
		Description:          req.Description,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Location:             req.Location,
		IsOnline:             req.IsOnline,
		IsMemberOnly:         req.IsMemberOnly,
		MaxParticipants:      req.MaxParticipants,
		RegistrationRequired: req.RegistrationRequired,
		RegistrationDeadline: req.RegistrationDeadline,
		MemberPrice:          req.MemberPrice,
		NonMemberPrice:       req.NonMemberPrice,
	})
	if errors.Is(err, event.ErrEventNotFound) {
		log.Error("event not found", slog.String("event_id", id.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("event not found"))
		return
	}
	if errors.Is(err, event.ErrInvalidEvent) {
		log.Error("invalid event data", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if err != nil {
		log.Error("failed to update event", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update event"))
		return
	}

	log.Info("event updated", slog.String("event_id", id.Hex()))
	render.JSON(w, r, response.OK(updated, "event updated"))
}
