// Package list реализует HTTP-обработчик списка медиаматериалов.
//
// Материалы для членов скрываются от зрителей без действующего членства.
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

// Service описывает интерфейс бизнес-логики списка медиаматериалов.
type Service interface {
	List(ctx context.Context, identity *models.Identity, filter models.MediaFilter) ([]models.Media, int64, error)
}

// Handler управляет HTTP-запросами на список медиаматериалов.
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
// @Summary Список медиаматериалов
// @Tags Media
// @Produce  json
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(20)
// @Param category query string false "Фильтр по рубрике"
// @Param memberOnly query bool false "Только материалы для членов"
// @Success 200 {object} response.Response "Страница медиаматериалов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /media [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.media.list"
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

	identity := middlewarectx.IdentityFromContext(r.Context())

	filter := models.MediaFilter{
		Category: r.URL.Query().Get("category"),
		Page:     page,
		Limit:    limit,
	}
	if r.URL.Query().Get("memberOnly") == "true" {
		memberOnly := true
		filter.MemberOnly = &memberOnly
	}

	media, total, err := h.service.List(r.Context(), identity, filter)
	if err != nil {
		log.Error("failed to list media", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list media"))
		return
	}

	render.JSON(w, r, response.OK(map[string]any{
		"media":      media,
		"pagination": models.NewPagination(page, limit, total),
	}, "media retrieved"))
}
