// Package list реализует HTTP-обработчик списка статей.
//
// Видимость зависит от отправителя: аноним видит только публичные
// опубликованные статьи, член ассоциации — также материалы для членов,
// администратор — всё, включая черновики.
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

// Service описывает интерфейс бизнес-логики списка статей.
type Service interface {
	List(ctx context.Context, identity *models.Identity, filter models.ArticleFilter) ([]models.Article, int64, error)
}

// Handler управляет HTTP-запросами на список статей.
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
// @Summary Список статей
// @Tags Articles
// @Produce  json
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(20)
// @Param memberOnly query bool false "Только материалы для членов"
// @Success 200 {object} response.Response "Страница статей"
// @Failure 401 {object} response.ErrorResponse "Фильтр memberOnly без авторизации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /articles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.list"
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

	memberOnly := r.URL.Query().Get("memberOnly") == "true"
	if memberOnly && identity == nil {
		log.Error("member-only listing requested anonymously")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	articles, total, err := h.service.List(r.Context(), identity, models.ArticleFilter{
		MemberOnly: memberOnly,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		log.Error("failed to list articles", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list articles"))
		return
	}

	render.JSON(w, r, response.OK(map[string]any{
		"articles":   articles,
		"pagination": models.NewPagination(page, limit, total),
	}, "articles retrieved"))
}
