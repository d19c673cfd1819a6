// Package update реализует HTTP-обработчик редактирования собственного профиля.
//
// Поля запроса опциональны: отсутствующее поле не меняет документ.
// Статус членства, операционный статус и платёжные поля через этот
// маршрут недоступны.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/http/middlewarectx"
	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/services/profile"
)

// Request — входные данные редактирования профиля.
type Request struct {
	FirstName          *string             `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName           *string             `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Phone              *string             `json:"phone,omitempty"`
	ProfessionalStatus *string             `json:"professionalStatus,omitempty"`
	DomainOfInterest   []string            `json:"domainOfInterest,omitempty"`
	Address            *string             `json:"address,omitempty"`
	City               *string             `json:"city,omitempty"`
	Country            *string             `json:"country,omitempty"`
	Biography          *string             `json:"biography,omitempty" validate:"omitempty,max=2000"`
	Avatar             *string             `json:"avatar,omitempty" validate:"omitempty,url"`
	SocialLinks        *models.SocialLinks `json:"socialLinks,omitempty"`
}

// Service описывает интерфейс бизнес-логики редактирования профиля.
type Service interface {
	Update(ctx context.Context, userID primitive.ObjectID, update models.ProfileUpdate) (*models.Profile, error)
}

// Handler управляет HTTP-запросами на редактирование профиля.
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
// @Summary Обновить свой профиль
// @Tags Profile
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Изменяемые поля профиля"
// @Success 200 {object} response.Response "Обновлённый профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.update"
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

	prof, err := h.service.Update(r.Context(), identity.UserID, models.ProfileUpdate{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Phone:              req.Phone,
		ProfessionalStatus: req.ProfessionalStatus,
		DomainOfInterest:   req.DomainOfInterest,
		Address:            req.Address,
		City:               req.City,
		Country:            req.Country,
		Biography:          req.Biography,
		Avatar:             req.Avatar,
		SocialLinks:        req.SocialLinks,
	})
	if errors.Is(err, profile.ErrProfileNotFound) {
		log.Error("profile not found", slog.String("user_id", identity.UserID.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("profile not found"))
		return
	}
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update profile"))
		return
	}

	log.Info("profile updated", slog.String("user_id", identity.UserID.Hex()))
	render.JSON(w, r, response.OK(prof, "profile updated"))
}
