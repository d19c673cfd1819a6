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

// CreateUser вставляет нового пользователя и возвращает его ID.
// Дубликат email приводит к ErrDuplicate.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	const op = "storage.CreateUser"

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := s.db.Collection(collUsers).InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, wrapWriteErr(op, err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindUserByEmail возвращает пользователя по email или ErrNotFound.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindUserByEmail"

	var user models.User
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// FindUserByID возвращает пользователя по идентификатору или ErrNotFound.
func (s *Storage) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	const op = "storage.FindUserByID"

	var user models.User
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// ListUsers возвращает страницу пользователей (новые первыми) и общее
// количество. isActive == nil — без фильтра по активности.
func (s *Storage) ListUsers(ctx context.Context, page, limit int, isActive *bool) ([]models.User, int64, error) {
	const op = "storage.ListUsers"

	filter := bson.M{}
	if isActive != nil {
		filter["isActive"] = *isActive
	}

	coll := s.db.Collection(collUsers)
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return users, total, nil
}

// UpdateUser частично обновляет пользователя и возвращает обновлённый документ.
func (s *Storage) UpdateUser(ctx context.Context, id primitive.ObjectID, update models.UserUpdate) (*models.User, error) {
	const op = "storage.UpdateUser"

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Role != nil {
		set["role"] = *update.Role
	}
	if update.IsActive != nil {
		set["isActive"] = *update.IsActive
	}
	if update.IsVerified != nil {
		set["isVerified"] = *update.IsVerified
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.db.Collection(collUsers).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, wrapWriteErr(op, err)
	}
	return &user, nil
}

// DeleteUser удаляет пользователя вместе с его профилем.
func (s *Storage) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	const op = "storage.DeleteUser"

	res, err := s.db.Collection(collUsers).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	// Каскадное удаление профиля: ровно один профиль на пользователя.
	if _, err := s.db.Collection(collProfiles).DeleteOne(ctx, bson.M{"userId": id}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountUsers возвращает количество пользователей, опционально только активных.
func (s *Storage) CountUsers(ctx context.Context, isActive *bool) (int64, error) {
	const op = "storage.CountUsers"

	filter := bson.M{}
	if isActive != nil {
		filter["isActive"] = *isActive
	}
	total, err := s.db.Collection(collUsers).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
