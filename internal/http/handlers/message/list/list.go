// Package list реализует HTTP-обработчик списка личных сообщений.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/http/middlewarectx"
	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики списка сообщений.
type Service interface {
	List(ctx context.Context, userID primitive.ObjectID, direction string, page, limit int) ([]models.Message, int64, error)
}

// Handler управляет HTTP-запросами на список сообщений.
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
// @Summary Список личных сообщений
// @Tags Messages
// @Produce  json
// @Security BearerAuth
// @Param type query string false "Направление: received, sent или both" default(received)
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(20)
// @Success 200 {object} response.Response "Страница сообщений"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /messages [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.list"
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

	direction := r.URL.Query().Get("type")
	switch direction {
	case models.MessagesSent, models.MessagesBoth:
	default:
		direction = models.MessagesReceived
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	messages, total, err := h.service.List(r.Context(), identity.UserID, direction, page, limit)
	if err != nil {
		log.Error("failed to list messages", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list messages"))
		return
	}

	render.JSON(w, r, response.OK(map[string]any{
		"messages":   messages,
		"pagination": models.NewPagination(page, limit, total),
	}, "messages retrieved"))
}
