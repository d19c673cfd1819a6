// Package remove реализует HTTP-обработчик удаления медиаматериала.
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
	"github.com/lorenzcipher/association-backend/internal/services/media"
)

// Service описывает интерфейс бизнес-логики удаления медиаматериала.
type Service interface {
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Handler управляет HTTP-запросами на удаление медиаматериалов.
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
// @Summary Удалить медиаматериал
// @Tags Media
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID медиаматериала"
// @Success 200 {object} response.Response "Медиаматериал удалён"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Медиаматериал не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /media/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.media.remove"
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

	err = h.service.Delete(r.Context(), id)
	if errors.Is(err, media.ErrMediaNotFound) {
		log.Error("media not found", slog.String("media_id", id.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("media not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete media", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete media"))
		return
	}

	log.Info("media deleted", slog.String("media_id", id.Hex()))
	render.JSON(w, r, response.OK(nil, "media deleted"))
}
