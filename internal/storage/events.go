package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lorenzcipher/association-backend/internal/models"
)

// CreateEvent вставляет мероприятие и возвращает его ID.
func (s *Storage) CreateEvent(ctx context.Context, event models.Event) (primitive.ObjectID, error) {
	const op = "storage.CreateEvent"

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Participants == nil {
		event.Participants = []primitive.ObjectID{}
	}

	res, err := s.db.Collection(collEvents).InsertOne(ctx, event)
	if err != nil {
		return primitive.NilObjectID, wrapWriteErr(op, err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindEventByID возвращает мероприятие по идентификатору или ErrNotFound.
func (s *Storage) FindEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	const op = "storage.FindEventByID"

	var event models.Event
	err := s.db.Collection(collEvents).FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &event, nil
}

// ListEvents возвращает страницу мероприятий (ближайшие первыми) и общее
// количество под фильтром.
func (s *Storage) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, int64, error) {
	const op = "storage.ListEvents"

	query := bson.M{}
	if filter.Upcoming {
		query["startDate"] = bson.M{"$gte": time.Now().UTC()}
	}
	if !filter.MembersToo {
		query["isMemberOnly"] = false
	}

	coll := s.db.Collection(collEvents)
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "startDate", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return events, total, nil
}

// UpdateEvent частично обновляет мероприятие и возвращает обновлённый документ.
func (s *Storage) UpdateEvent(ctx context.Context, id primitive.ObjectID, update models.EventUpdate) (*models.Event, error) {
	const op = "storage.UpdateEvent"

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.StartDate != nil {
		set["startDate"] = *update.StartDate
	}
	if update.EndDate != nil {
		set["endDate"] = *update.EndDate
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.IsOnline != nil {
		set["isOnline"] = *update.IsOnline
	}
	if update.IsMemberOnly != nil {
		set["isMemberOnly"] = *update.IsMemberOnly
	}
	if update.MaxParticipants != nil {
		set["maxParticipants"] = *update.MaxParticipants
	}
	if update.RegistrationRequired != nil {
		set["registrationRequired"] = *update.RegistrationRequired
	}
	if update.RegistrationDeadline != nil {
		set["registrationDeadline"] = *update.RegistrationDeadline
	}
	if update.MemberPrice != nil {
		set["memberPrice"] = *update.MemberPrice
	}
	if update.NonMemberPrice != nil {
		set["nonMemberPrice"] = *update.NonMemberPrice
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var event models.Event
	err := s.db.Collection(collEvents).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &event, nil
}

// DeleteEvent удаляет мероприятие. История участников не каскадируется.
func (s *Storage) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	const op = "storage.DeleteEvent"

	res, err := s.db.Collection(collEvents).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// AddParticipant добавляет пользователя в набор участников одним условным
// обновлением: документ изменяется только если пользователь ещё не записан
// и лимит мест не исчерпан. Проверка и запись атомарны на уровне документа,
// поэтому конкурентные заявки на последнее место не переполняют мероприятие.
// Непрошедший предикат возвращает ErrConditionFailed; причину различает
// вызывающая сторона повторным чтением.
func (s *Storage) AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	const op = "storage.AddParticipant"

	filter := bson.M{
		"_id":          eventID,
		"participants": bson.M{"$ne": userID},
		"$expr": bson.M{
			"$lt": bson.A{
				bson.M{"$size": "$participants"},
				bson.M{"$cond": bson.A{
					bson.M{"$gt": bson.A{bson.M{"$ifNull": bson.A{"$maxParticipants", 0}}, 0}},
					"$maxParticipants",
					math.MaxInt32,
				}},
			},
		},
	}
	update := bson.M{
		"$addToSet": bson.M{"participants": userID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var event models.Event
	err := s.db.Collection(collEvents).FindOneAndUpdate(ctx, filter, update, opts).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrConditionFailed)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &event, nil
}

// RemoveParticipant убирает пользователя из набора участников. Условие
// "пользователь записан" входит в фильтр, поэтому конкурирующая отмена
// видна как ErrConditionFailed, а не как потерянное обновление.
func (s *Storage) RemoveParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	const op = "storage.RemoveParticipant"

	filter := bson.M{
		"_id":          eventID,
		"participants": userID,
	}
	update := bson.M{
		"$pull": bson.M{"participants": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var event models.Event
	err := s.db.Collection(collEvents).FindOneAndUpdate(ctx, filter, update, opts).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrConditionFailed)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &event, nil
}

// CountEvents возвращает число мероприятий, опционально только предстоящих.
func (s *Storage) CountEvents(ctx context.Context, upcomingOnly bool) (int64, error) {
	const op = "storage.CountEvents"

	filter := bson.M{}
	if upcomingOnly {
		filter["startDate"] = bson.M{"$gte": time.Now().UTC()}
	}
	total, err := s.db.Collection(collEvents).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
