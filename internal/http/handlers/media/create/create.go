// Package create реализует HTTP-обработчик добавления медиаматериала.
package create

import (
	"context"
	"encoding/json"
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
)

// Request — входные данные нового медиаматериала.
type Request struct {
	Title        string   `json:"title" validate:"required,min=1,max=200"`
	Description  string   `json:"description,omitempty" validate:"max=1000"`
	FileURL      string   `json:"fileUrl" validate:"required,url"`
	FileType     string   `json:"fileType" validate:"required,oneof=image video document"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	IsMemberOnly bool     `json:"isMemberOnly"`
	Tags         []string `json:"tags,omitempty"`
	Category     string   `json:"category,omitempty"`
}

// Service описывает интерфейс бизнес-логики добавления медиаматериала.
type Service interface {
	Create(ctx context.Context, uploadedBy primitive.ObjectID, media models.Media) (primitive.ObjectID, error)
}

// Handler управляет HTTP-запросами на добавление медиаматериалов.
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
// @Summary Добавить медиаматериал
// @Tags Media
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Метаданные медиаматериала"
// @Success 201 {object} response.Response "ID созданного медиаматериала"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /media [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.media.create"
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

	id, err := h.service.Create(r.Context(), identity.UserID, models.Media{
		Title:        req.Title,
		Description:  req.Description,
		FileURL:      req.FileURL,
		FileType:     req.FileType,
		ThumbnailURL: req.ThumbnailURL,
		IsMemberOnly: req.IsMemberOnly,
		Tags:         req.Tags,
		Category:     req.Category,
	})
	if err != nil {
		log.Error("failed to create media", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create media"))
		return
	}

	log.Info("media created", slog.String("media_id", id.Hex()))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK(map[string]any{"id": id.Hex()}, "media created"))
}
