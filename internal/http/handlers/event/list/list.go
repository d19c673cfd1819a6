// Package list реализует HTTP-обработчик списка мероприятий.
//
// Мероприятия "только для членов" попадают в выдачу членам ассоциации
// и администраторам; анонимный запрос видит только открытые события.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/lorenzcipher/association-backend/internal/http/middlewarectx"
	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики списка мероприятий.
type Service interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int64, error)
}

// Handler управляет HTTP-запросами на список мероприятий.
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
// @Summary Список мероприятий
// @Tags Events
// @Produce  json
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(20)
// @Param upcoming query bool false "Только предстоящие"
// @Success 200 {object} response.Response "Страница мероприятий"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	upcoming, _ := strconv.ParseBool(r.URL.Query().Get("upcoming"))

	identity := middlewarectx.IdentityFromContext(r.Context())
	membersToo := identity != nil && (identity.IsMember || identity.IsAdmin())

	events, total, err := h.service.List(r.Context(), models.EventFilter{
		Upcoming:   upcoming,
		MembersToo: membersToo,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list events"))
		return
	}

	render.JSON(w, r, response.OK(map[string]any{
		"events":     events,
		"pagination": models.NewPagination(page, limit, total),
	}, "events retrieved"))
}
