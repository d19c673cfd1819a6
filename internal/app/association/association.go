// Package association собирает и запускает HTTP-сервис ассоциации:
// хранилище MongoDB, брокер уведомлений RabbitMQ, бизнес-сервисы
// и маршрутизатор.
package association

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/lorenzcipher/association-backend/internal/config"
	"github.com/lorenzcipher/association-backend/internal/lib/jwt"
	"github.com/lorenzcipher/association-backend/internal/lib/rabbitmq"
	adminservice "github.com/lorenzcipher/association-backend/internal/services/admin"
	articleservice "github.com/lorenzcipher/association-backend/internal/services/article"
	authservice "github.com/lorenzcipher/association-backend/internal/services/auth"
	categoryservice "github.com/lorenzcipher/association-backend/internal/services/category"
	eventservice "github.com/lorenzcipher/association-backend/internal/services/event"
	mediaservice "github.com/lorenzcipher/association-backend/internal/services/media"
	messageservice "github.com/lorenzcipher/association-backend/internal/services/message"
	profileservice "github.com/lorenzcipher/association-backend/internal/services/profile"
	"github.com/lorenzcipher/association-backend/internal/storage"
)

// App инкапсулирует HTTP-сервер и внешние соединения сервиса.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	amqp   *amqp.Connection
}

// Services объединяет бизнес-сервисы для регистрации маршрутов.
type Services struct {
	Auth     *authservice.AuthService
	Profile  *profileservice.ProfileService
	Event    *eventservice.EventService
	Article  *articleservice.ArticleService
	Category *categoryservice.CategoryService
	Media    *mediaservice.MediaService
	Message  *messageservice.MessageService
	Admin    *adminservice.AdminService
}

// New подключает внешние зависимости и собирает приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnection.ConnectTimeout)
	defer cancel()

	db, err := storage.New(connectCtx, cfg.MongoConnection.URI, cfg.MongoConnection.Database)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.AmqpURI, cfg.RabbitMQ.ConnectRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		return nil, err
	}
	notifier := rabbitmq.NewNotifier(ch)

	maker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	services := &Services{
		Auth:     authservice.NewAuthService(db, maker, logger),
		Profile:  profileservice.NewProfileService(db, logger),
		Event:    eventservice.NewEventService(db, logger),
		Article:  articleservice.NewArticleService(db, logger),
		Category: categoryservice.NewCategoryService(db, logger),
		Media:    mediaservice.NewMediaService(db, logger),
		Message:  messageservice.NewMessageService(db, notifier, logger),
		Admin:    adminservice.NewAdminService(db, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   conn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.db.Close(timeoutCtx); cerr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", cerr))
		}
		if cerr := a.amqp.Close(); cerr != nil {
			a.logger.Error("failed to close amqp connection", slog.Any("err", cerr))
		}
		return err
	}
}
