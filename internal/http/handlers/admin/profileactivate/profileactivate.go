// Package profileactivate реализует HTTP-обработчик включения профиля
// решением администратора.
package profileactivate

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
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/services/admin"
)

// Service описывает интерфейс бизнес-логики активации профиля.
type Service interface {
	ActivateProfile(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
}

// Handler управляет HTTP-запросами на активацию профилей.
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
// @Summary Активировать профиль пользователя
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Success 200 {object} response.Response "Активированный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/profiles/{id}/activate [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.profileactivate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	profile, err := h.service.ActivateProfile(r.Context(), userID)
	if errors.Is(err, admin.ErrProfileNotFound) {
		log.Error("profile not found", slog.String("user_id", userID.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("profile not found"))
		return
	}
	if err != nil {
		log.Error("failed to activate profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not activate profile"))
		return
	}

	log.Info("profile activated", slog.String("user_id", userID.Hex()))
	render.JSON(w, r, response.OK(profile, "profile activated"))
}
