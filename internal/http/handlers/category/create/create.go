// Package create реализует HTTP-обработчик создания рубрики.
package create

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

	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/services/category"
)

// Request — входные данные новой рубрики.
type Request struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// Service описывает интерфейс бизнес-логики создания рубрики.
type Service interface {
	Create(ctx context.Context, category models.Category) (primitive.ObjectID, error)
}

// Handler управляет HTTP-запросами на создание рубрик.
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
// @Summary Создать рубрику
// @Tags Categories
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные рубрики"
// @Success 201 {object} response.Response "ID созданной рубрики"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или дубликат имени"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /categories [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	id, err := h.service.Create(r.Context(), models.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if errors.Is(err, category.ErrCategoryExists) {
		log.Error("category name taken", slog.String("name", req.Name))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("category with this name already exists"))
		return
	}
	if err != nil {
		log.Error("failed to create category", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create category"))
		return
	}

	log.Info("category created", slog.String("category_id", id.Hex()))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK(map[string]any{"id": id.Hex()}, "category created"))
}
