// Package middlewarectx содержит HTTP middleware авторизации и лимитов.
//
// AuthMiddleware проверяет токен из заголовка Authorization через сервис
// аутентификации и кладёт Identity отправителя в контекст запроса.
// Проверка идёт по текущему состоянию учётной записи, поэтому
// деактивация или блокировка действует немедленно, без ожидания
// истечения токена.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/lorenzcipher/association-backend/internal/http/response"
	"github.com/lorenzcipher/association-backend/internal/lib/sl"
	"github.com/lorenzcipher/association-backend/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey — ключ для Identity отправителя в контексте.
const IdentityKey Key = "identity"

// Service описывает интерфейс сервиса для проверки токена.
type Service interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// IdentityFromContext извлекает Identity отправителя из контекста.
// Возвращает nil для анонимного запроса.
func IdentityFromContext(ctx context.Context) *models.Identity {
	identity, _ := ctx.Value(IdentityKey).(*models.Identity)
	return identity
}

// AuthMiddleware возвращает HTTP middleware, требующий валидный токен.
//
// Если токен валиден и учётная запись действует, кладёт Identity в контекст,
// иначе возвращает HTTP 401 Unauthorized.
func AuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := bearerToken(r)
			if !ok {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			identity, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware кладёт Identity в контекст, если токен предъявлен
// и валиден; иначе пропускает запрос как анонимный. Используется на
// публичных маршрутах, где членство расширяет выдачу.
func OptionalAuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}
