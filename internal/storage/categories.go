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

// CreateCategory вставляет рубрику. Дубликат имени даёт ErrDuplicate.
func (s *Storage) CreateCategory(ctx context.Context, category models.Category) (primitive.ObjectID, error) {
	const op = "storage.CreateCategory"

	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	res, err := s.db.Collection(collCategories).InsertOne(ctx, category)
	if err != nil {
		return primitive.NilObjectID, wrapWriteErr(op, err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// ListCategories возвращает страницу рубрик (новые первыми).
func (s *Storage) ListCategories(ctx context.Context, page, limit int) ([]models.Category, int64, error) {
	const op = "storage.ListCategories"

	coll := s.db.Collection(collCategories)
	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var categories []models.Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return categories, total, nil
}

// UpdateCategory частично обновляет рубрику.
func (s *Storage) UpdateCategory(ctx context.Context, id primitive.ObjectID, update models.CategoryUpdate) (*models.Category, error) {
	const op = "storage.UpdateCategory"

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var category models.Category
	err := s.db.Collection(collCategories).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, wrapWriteErr(op, err)
	}
	return &category, nil
}

// DeleteCategory удаляет рубрику.
func (s *Storage) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	const op = "storage.DeleteCategory"

	res, err := s.db.Collection(collCategories).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
