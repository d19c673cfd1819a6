package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/models"
)

// CreatePayment фиксирует результат оплаты и возвращает ID записи.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (primitive.ObjectID, error) {
	const op = "storage.CreatePayment"

	payment.CreatedAt = time.Now().UTC()

	res, err := s.db.Collection(collPayments).InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, wrapWriteErr(op, err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// CountPayments возвращает число платежей; status == "" — без фильтра.
func (s *Storage) CountPayments(ctx context.Context, status string) (int64, error) {
	const op = "storage.CountPayments"

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	total, err := s.db.Collection(collPayments).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
