package association

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/lorenzcipher/association-backend/internal/http/handlers/admin/profileactivate"
	"github.com/lorenzcipher/association-backend/internal/http/handlers/admin/profilestatus"
	adminstats "github.com/lorenzcipher/association-backend/internal/http/handlers/admin/stats"
	"github.com/lorenzcipher/association-backend/internal/http/handlers/admin/userremove"
	"github.com/lorenzcipher/association-backend/internal/http/handlers/admin/userslist"
	"github.com/lorenzcipher/association-backend/internal/http/handlers/admin/userupdate"
	articlecreate "github.com/lorenzcipher/association-backend/internal/http/handlers/article/create"
	articlelist "github.com/lorenzcipher/association-backend/internal/http/handlers/article/list"
	articleread "github.com/lorenzcipher/association-backend/internal/http/handlers/article/read"
	articleremove "github.com/lorenzcipher/association-backend/internal/http/handlers/article/remove"
	articleupdate "github.com/lorenzcipher/association-backend/internal/http/handlers/article/update"
	"github.com/lorenzcipher/association-backend/internal/http/handlers/auth/login"
	"github.com/lorenzcipher/association-backend/internal/http/handlers/auth/register"
	categorycreate "github.com/lorenzcipher/association-backend/internal/http/handlers/category/create"
	categorylist "github.com/lorenzcipher/association-backend/internal/http/handlers/category/list"
	categoryremove "github.com/lorenzcipher/association-backend/internal/http/handlers/category/remove"
	categoryupdate "github.com/lorenzcipher/association-backend/internal/http/handlers/category/update"
	contactsend "github.com/lorenzcipher/association-backend/internal/http/handlers/contact/send"
	eventcreate "github.com/lorenzcipher/association-backend/internal/http/handlers/event/create"
	eventlist "github.com/lorenzcipher/association-backend/internal/http/handlers/event/list"
	eventread "github.com/lorenzcipher/association-backend/internal/http/handlers/event/read"
	eventregister "github.com/lorenzcipher/association-backend/internal/http/handlers/event/register"
	eventremove "github.com/lorenzcipher/association-backend/internal/http/handlers/event/remove"
	eventunregister "github.com/lorenzcipher/association-backend/internal/http/handlers/event/unregister"
	eventupdate "github.com/lorenzcipher/association-backend/internal/http/handlers/event/update"
	mediacreate "github.com/lorenzcipher/association-backend/internal/http/handlers/media/create"
	medialist "github.com/lorenzcipher/association-backend/internal/http/handlers/media/list"
	mediaremove "github.com/lorenzcipher/association-backend/internal/http/handlers/media/remove"
	mediaupdate "github.com/lorenzcipher/association-backend/internal/http/handlers/media/update"
	memberlist "github.com/lorenzcipher/association-backend/internal/http/handlers/member/list"
	messagelist "github.com/lorenzcipher/association-backend/internal/http/handlers/message/list"
	messagesend "github.com/lorenzcipher/association-backend/internal/http/handlers/message/send"
	profileget "github.com/lorenzcipher/association-backend/internal/http/handlers/profile/get"
	profilepayment "github.com/lorenzcipher/association-backend/internal/http/handlers/profile/payment"
	profileupdate "github.com/lorenzcipher/association-backend/internal/http/handlers/profile/update"
	"github.com/lorenzcipher/association-backend/internal/http/middlewarectx"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Post("/contact", contactsend.New(logger, s.Message).ServeHTTP)

		// Публичный контент: Identity присутствует, если токен передан
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalAuthMiddleware(s.Auth, logger))
			r.Get("/events", eventlist.New(logger, s.Event).ServeHTTP)
			r.Get("/events/{id}", eventread.New(logger, s.Event).ServeHTTP)
			r.Get("/articles", articlelist.New(logger, s.Article).ServeHTTP)
			r.Get("/articles/{id}", articleread.New(logger, s.Article).ServeHTTP)
			r.Get("/categories", categorylist.New(logger, s.Category).ServeHTTP)
			r.Get("/media", medialist.New(logger, s.Media).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/profile", profileget.New(logger, s.Profile).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, s.Profile).ServeHTTP)
			r.Patch("/profile/payment", profilepayment.New(logger, s.Profile).ServeHTTP)

			r.Post("/events/{id}/register", eventregister.New(logger, s.Event).ServeHTTP)
			r.Delete("/events/{id}/register", eventunregister.New(logger, s.Event).ServeHTTP)

			r.Get("/members", memberlist.New(logger, s.Profile).ServeHTTP)

			r.Post("/messages", messagesend.New(logger, s.Message).ServeHTTP)
			r.Get("/messages", messagelist.New(logger, s.Message).ServeHTTP)

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(logger))

				r.Post("/events", eventcreate.New(logger, s.Event).ServeHTTP)
				r.Put("/events/{id}", eventupdate.New(logger, s.Event).ServeHTTP)
				r.Delete("/events/{id}", eventremove.New(logger, s.Event).ServeHTTP)

				r.Post("/articles", articlecreate.New(logger, s.Article).ServeHTTP)
				r.Put("/articles/{id}", articleupdate.New(logger, s.Article).ServeHTTP)
				r.Delete("/articles/{id}", articleremove.New(logger, s.Article).ServeHTTP)

				r.Post("/categories", categorycreate.New(logger, s.Category).ServeHTTP)
				r.Put("/categories/{id}", categoryupdate.New(logger, s.Category).ServeHTTP)
				r.Delete("/categories/{id}", categoryremove.New(logger, s.Category).ServeHTTP)

				r.Post("/media", mediacreate.New(logger, s.Media).ServeHTTP)
				r.Put("/media/{id}", mediaupdate.New(logger, s.Media).ServeHTTP)
				r.Delete("/media/{id}", mediaremove.New(logger, s.Media).ServeHTTP)

				r.Get("/admin/users", userslist.New(logger, s.Admin).ServeHTTP)
				r.Put("/admin/users/{id}", userupdate.New(logger, s.Admin).ServeHTTP)
				r.Delete("/admin/users/{id}", userremove.New(logger, s.Admin).ServeHTTP)
				r.Patch("/admin/profiles/{id}/activate", profileactivate.New(logger, s.Admin).ServeHTTP)
				r.Patch("/admin/profiles/{id}/status", profilestatus.New(logger, s.Admin).ServeHTTP)
				r.Get("/admin/stats", adminstats.New(logger, s.Admin).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
