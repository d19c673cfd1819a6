// Package create реализует HTTP-обработчик создания мероприятия.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/http/middlewarectx"
	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/services/event"
)

// Request — входные данные нового мероприятия. Даты в формате RFC 3339.
type Request struct {
	Title                string     `json:"title" validate:"required,min=1,max=200"`
	Description          string     `json:"description"`
	StartDate            time.Time  `json:"startDate" validate:"required"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	Location             string     `json:"location"`
	IsOnline             bool       `json:"isOnline"`
	IsMemberOnly         bool       `json:"isMemberOnly"`
	MaxParticipants      int        `json:"maxParticipants" validate:"gte=0"`
	RegistrationRequired bool       `json:"registrationRequired"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	MemberPrice          float64    `json:"memberPrice" validate:"gte=0"`
	NonMemberPrice       float64    `json:"nonMemberPrice" validate:"gte=0"`
}

// Service описывает интерфейс бизнес-логики создания мероприятия.
type Service interface {
	Create(ctx context.Context, createdBy primitive.ObjectID, event models.Event) (*models.Event, error)
}

// Handler управляет HTTP-запросами на создание мероприятий.
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
// @Summary Создать мероприятие
// @Tags Events
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные мероприятия"
// @Success 201 {object} response.Response "Созданное мероприятие"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или несогласованные даты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.create"
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

	created, err := h.service.Create(r.Context(), identity.UserID, models.Event{
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
	if errors.Is(err, event.ErrInvalidEvent) {
		log.Error("invalid event data", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create event"))
		return
	}

	log.Info("event created", slog.String("event_id", created.ID.Hex()))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK(created, "event created"))
}
