// Package update реализует HTTP-обработчик редактирования рубрики.
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
	"github.com/lorenzcipher/association-backend/internal/services/category"
)

// Request — изменяемые поля рубрики.
type Request struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// Service описывает интерфейс бизнес-логики редактирования рубрики.
type Service interface {
	Update(ctx context.Context, id primitive.ObjectID, update models.CategoryUpdate) (*models.Category, error)
}

// Handler управляет HTTP-запросами на редактирование рубрик.
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
// @Summary Обновить рубрику
// @Tags Categories
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID рубрики"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновлённая рубрика"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или дубликат имени"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Рубрика не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /categories/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid category id"))
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

	updated, err := h.service.Update(r.Context(), id, models.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if errors.Is(err, category.ErrCategoryNotFound) {
		log.Error("category not found", slog.String("category_id", id.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("category not found"))
		return
	}
	if errors.Is(err, category.ErrCategoryExists) {
		log.Error("category name taken", slog.String("category_id", id.Hex()))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("category with this name already exists"))
		return
	}
	if err != nil {
		log.Error("failed to update category", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update category"))
		return
	}

	log.Info("category updated", slog.String("category_id", id.Hex()))
	render.JSON(w, r, response.OK(updated, "category updated"))
}
