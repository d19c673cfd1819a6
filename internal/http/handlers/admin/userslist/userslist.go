// Package userslist реализует HTTP-обработчик списка пользователей
// для административной панели.
package userslist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/services/admin"
)

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	ListUsers(ctx context.Context, page, limit int, isActive *bool) ([]admin.UserWithProfile, int64, error)
}

// Handler управляет HTTP-запросами на список пользователей.
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
// @Summary Список пользователей с профилями
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(20)
// @Param isActive query bool false "Фильтр по активности"
// @Success 200 {object} response.Response "Страница пользователей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userslist"
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

	var isActive *bool
	if raw := r.URL.Query().Get("isActive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Error("failed to parse isActive", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid isActive value"))
			return
		}
		isActive = &parsed
	}

	users, total, err := h.service.ListUsers(r.Context(), page, limit, isActive)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	render.JSON(w, r, response.OK(map[string]any{
		"users":      users,
		"pagination": models.NewPagination(page, limit, total),
	}, "users retrieved"))
}
