// Package storage реализует хранилище данных на основе MongoDB
// для пользователей, профилей, мероприятий и контента ассоциации.
// Предоставляет методы создания, чтения, обновления, удаления, подсчёта
// и агрегирования документов, а также условные обновления набора
// участников мероприятий.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ошибки уровня хранилища. Сервисы проверяют их через errors.Is.
var (
	// ErrNotFound — документ с заданным фильтром отсутствует.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate — нарушение уникального индекса (email, userId, name).
	ErrDuplicate = errors.New("duplicate document")
	// ErrConditionFailed — условное обновление не прошло по предикату.
	ErrConditionFailed = errors.New("conditional update did not match")
)

// Имена коллекций.
const (
	collUsers      = "users"
	collProfiles   = "profiles"
	collEvents     = "events"
	collArticles   = "articles"
	collCategories = "categories"
	collMedia      = "media"
	collMessages   = "messages"
	collContacts   = "contactforms"
	collPayments   = "payments"
)

// Storage инкапсулирует подключение к MongoDB и реализует методы
// работы с коллекциями ассоциации.
type Storage struct {
	Client *mongo.Client
	db     *mongo.Database
}

// New подключается к MongoDB, проверяет соединение и создает
// необходимые уникальные индексы.
func New(ctx context.Context, uri, database string) (*Storage, error) {
	const op = "storage.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{
		Client: client,
		db:     client.Database(database),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Close разрывает соединение с базой.
func (s *Storage) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

// ensureIndexes создает уникальные индексы, на которые опирается
// бизнес-логика: email пользователя, userId профиля, имя рубрики.
func (s *Storage) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := s.db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = s.db.Collection(collProfiles).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = s.db.Collection(collCategories).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	})
	return err
}

// wrapWriteErr переводит ошибки драйвера в ошибки уровня хранилища.
func wrapWriteErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
