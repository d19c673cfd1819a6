// Package update реализует HTTP-обработчик редактирования медиаматериала.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/services/media"
)

// Request — изменяемые поля медиаматериала.
type Request struct {
	Title        *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	FileURL      *string  `json:"fileUrl,omitempty" validate:"omitempty,url"`
	ThumbnailURL *string  `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	IsMemberOnly *bool    `json:"isMemberOnly,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Category     *string  `json:"category,omitempty"`
}

// Service описывает интерфейс бизнес-логики редактирования медиаматериала.
type Service interface {
	Update(ctx context.Context, id primitive.ObjectID, update models.MediaUpdate) (*models.Media, error)
}

// Handler управляет HTTP-запросами на редактирование медиаматериалов.
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
// @Summary Обновить медиаматериал
// @Tags Media
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID медиаматериала"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновлённый медиаматериал"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Медиаматериал не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /media/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.media.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid media id"))
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

	updated, err := h.service.Update(r.Context(), id, models.MediaUpdate{
		Title:        req.Title,
		Description:  req.Description,
		FileURL:      req.FileURL,
		ThumbnailURL: req.ThumbnailURL,
		IsMemberOnly: req.IsMemberOnly,
		Tags:         req.Tags,
		Category:     req.Category,
	})
	if errors.Is(err, media.ErrMediaNotFound) {
		log.Error("media not found", slog.String("media_id", id.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("media not found"))
		return
	}
	if err != nil {
		log.Error("failed to update media", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update media"))
		return
	}

	log.Info("media updated", slog.String("media_id", id.Hex()))
	render.JSON(w, r, response.OK(updated, "media updated"))
}
