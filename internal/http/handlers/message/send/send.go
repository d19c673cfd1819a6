// Package send реализует HTTP-обработчик отправки личного сообщения.
package send

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

	"github.com/lorenzcipher/association-backend/internal/http/middlewarectx"
	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/services/message"
)

// Request — входные данные личного сообщения.
type Request struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Subject    string `json:"subject" validate:"required,min=1,max=200"`
	Content    string `json:"content" validate:"required,min=1,max=5000"`
}

// Service описывает интерфейс бизнес-логики отправки сообщения.
type Service interface {
	Send(ctx context.Context, senderID, receiverID primitive.ObjectID, subject, content string) (primitive.ObjectID, error)
}

// Handler управляет HTTP-запросами на отправку сообщений.
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
// @Summary Отправить личное сообщение
// @Tags Messages
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные сообщения"
// @Success 201 {object} response.Response "ID отправленного сообщения"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или отправка самому себе"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Получатель не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /messages [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.send"
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

	receiverID, err := primitive.ObjectIDFromHex(req.ReceiverID)
	if err != nil {
		log.Error("failed to decode receiver id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid receiver id"))
		return
	}

	id, err := h.service.Send(r.Context(), identity.UserID, receiverID, req.Subject, req.Content)
	if errors.Is(err, message.ErrSelfMessage) {
		log.Error("message addressed to sender")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("cannot send a message to yourself"))
		return
	}
	if errors.Is(err, message.ErrReceiverNotFound) {
		log.Error("receiver not found", slog.String("receiver_id", receiverID.Hex()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("receiver not found"))
		return
	}
	if err != nil {
		log.Error("failed to send message", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not send message"))
		return
	}

	log.Info("message sent", slog.String("message_id", id.Hex()))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK(map[string]any{"id": id.Hex()}, "message sent"))
}
