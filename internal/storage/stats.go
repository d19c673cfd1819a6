package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/lorenzcipher/association-backend/internal/models"
)

// MembershipBreakdown группирует профили по статусу членства.
func (s *Storage) MembershipBreakdown(ctx context.Context) ([]models.StatusCount, error) {
	const op = "storage.MembershipBreakdown"

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$membershipStatus",
			"count": bson.M{"$sum": 1},
		}},
	}

	cur, err := s.db.Collection(collProfiles).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var breakdown []models.StatusCount
	if err := cur.All(ctx, &breakdown); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return breakdown, nil
}

// MonthlyRegistrations считает регистрации пользователей по месяцам
// начиная с указанной даты.
func (s *Storage) MonthlyRegistrations(ctx context.Context, since time.Time) ([]models.MonthlyCount, error) {
	const op = "storage.MonthlyRegistrations"

	pipeline := []bson.M{
		{"$match": bson.M{"createdAt": bson.M{"$gte": since}}},
		{"$group": bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
			},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}},
		{"$project": bson.M{
			"_id":   0,
			"year":  "$_id.year",
			"month": "$_id.month",
			"count": 1,
		}},
	}

	cur, err := s.db.Collection(collUsers).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var monthly []models.MonthlyCount
	if err := cur.All(ctx, &monthly); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return monthly, nil
}

// RevenueByType суммирует завершённые платежи в разрезе типа.
func (s *Storage) RevenueByType(ctx context.Context) ([]models.RevenueByType, error) {
	const op = "storage.RevenueByType"

	pipeline := []bson.M{
		{"$match": bson.M{"status": models.PaymentCompleted}},
		{"$group": bson.M{
			"_id":   "$type",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}},
	}

	cur, err := s.db.Collection(collPayments).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var revenue []models.RevenueByType
	if err := cur.All(ctx, &revenue); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return revenue, nil
}
