package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lorenzcipher/association-backend/internal/models"
)

// CreateMessage вставляет личное сообщение и возвращает его ID.
func (s *Storage) CreateMessage(ctx context.Context, message models.Message) (primitive.ObjectID, error) {
	const op = "storage.CreateMessage"

	message.CreatedAt = time.Now().UTC()

	res, err := s.db.Collection(collMessages).InsertOne(ctx, message)
	if err != nil {
		return primitive.NilObjectID, wrapWriteErr(op, err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// ListMessages возвращает страницу сообщений пользователя.
// direction: received — входящие, sent — исходящие, иначе оба направления.
func (s *Storage) ListMessages(ctx context.Context, userID primitive.ObjectID, direction string, page, limit int) ([]models.Message, int64, error) {
	const op = "storage.ListMessages"

	var query bson.M
	switch direction {
	case models.MessagesReceived:
		query = bson.M{"receiverId": userID}
	case models.MessagesSent:
		query = bson.M{"senderId": userID}
	default:
		query = bson.M{"$or": bson.A{
			bson.M{"receiverId": userID},
			bson.M{"senderId": userID},
		}}
	}

	coll := s.db.Collection(collMessages)
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var messages []models.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return messages, total, nil
}

// CreateContactForm сохраняет обращение контактной формы.
func (s *Storage) CreateContactForm(ctx context.Context, form models.ContactForm) (primitive.ObjectID, error) {
	const op = "storage.CreateContactForm"

	form.CreatedAt = time.Now().UTC()

	res, err := s.db.Collection(collContacts).InsertOne(ctx, form)
	if err != nil {
		return primitive.NilObjectID, wrapWriteErr(op, err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// CountUnreadContacts возвращает число непрочитанных обращений.
func (s *Storage) CountUnreadContacts(ctx context.Context) (int64, error) {
	const op = "storage.CountUnreadContacts"

	total, err := s.db.Collection(collContacts).CountDocuments(ctx, bson.M{"isRead": false})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
