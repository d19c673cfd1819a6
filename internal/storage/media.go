package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lorenzcipher/association-backend/internal/models"
)

// CreateMedia вставляет медиаматериал и возвращает его ID.
func (s *Storage) CreateMedia(ctx context.Context, media models.Media) (primitive.ObjectID, error) {
	const op = "storage.CreateMedia"

	media.CreatedAt = time.Now().UTC()

	res, err := s.db.Collection(collMedia).InsertOne(ctx, media)
	if err != nil {
		return primitive.NilObjectID, wrapWriteErr(op, err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// ListMedia возвращает страницу медиаматериалов (новые первыми).
func (s *Storage) ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.Media, int64, error) {
	const op = "storage.ListMedia"

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.MemberOnly != nil {
		query["isMemberOnly"] = *filter.MemberOnly
	}

	coll := s.db.Collection(collMedia)
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var media []models.Media
	if err := cur.All(ctx, &media); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return media, total, nil
}

// UpdateMedia частично обновляет медиаматериал.
func (s *Storage) UpdateMedia(ctx context.Context, id primitive.ObjectID, update models.MediaUpdate) (*models.Media, error) {
	const op = "storage.UpdateMedia"

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.FileURL != nil {
		set["fileUrl"] = *update.FileURL
	}
	if update.ThumbnailURL != nil {
		set["thumbnailUrl"] = *update.ThumbnailURL
	}
	if update.IsMemberOnly != nil {
		set["isMemberOnly"] = *update.IsMemberOnly
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var media models.Media
	err := s.db.Collection(collMedia).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&media)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &media, nil
}

// DeleteMedia удаляет медиаматериал.
func (s *Storage) DeleteMedia(ctx context.Context, id primitive.ObjectID) error {
	const op = "storage.DeleteMedia"

	res, err := s.db.Collection(collMedia).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
