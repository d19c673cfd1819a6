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

// CreateProfile вставляет профиль пользователя. Второй профиль для того же
// userId отклоняется уникальным индексом (ErrDuplicate).
func (s *Storage) CreateProfile(ctx context.Context, profile models.Profile) (primitive.ObjectID, error) {
	const op = "storage.CreateProfile"

	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	res, err := s.db.Collection(collProfiles).InsertOne(ctx, profile)
	if err != nil {
		return primitive.NilObjectID, wrapWriteErr(op, err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindProfileByUserID возвращает профиль пользователя или ErrNotFound.
func (s *Storage) FindProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	const op = "storage.FindProfileByUserID"

	var profile models.Profile
	err := s.db.Collection(collProfiles).FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &profile, nil
}

// UpdateProfile частично обновляет профиль и возвращает обновлённый документ.
func (s *Storage) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update models.ProfileUpdate) (*models.Profile, error) {
	const op = "storage.UpdateProfile"

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.FirstName != nil {
		set["firstName"] = *update.FirstName
	}
	if update.LastName != nil {
		set["lastName"] = *update.LastName
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.ProfessionalStatus != nil {
		set["professionalStatus"] = *update.ProfessionalStatus
	}
	if update.DomainOfInterest != nil {
		set["domainOfInterest"] = update.DomainOfInterest
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.City != nil {
		set["city"] = *update.City
	}
	if update.Country != nil {
		set["country"] = *update.Country
	}
	if update.Biography != nil {
		set["biography"] = *update.Biography
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if update.SocialLinks != nil {
		set["socialLinks"] = update.SocialLinks
	}

	return s.findProfileAndSet(ctx, op, bson.M{"userId": userID}, set)
}

// SetProfilePayment применяет результат оплаты: активирует профиль
// и сохраняет идентификатор заказа платёжного шлюза.
func (s *Storage) SetProfilePayment(ctx context.Context, userID primitive.ObjectID, orderID string) (*models.Profile, error) {
	const op = "storage.SetProfilePayment"

	set := bson.M{
		"status":    models.ProfileStatusActive,
		"payed":     true,
		"orderId":   orderID,
		"updatedAt": time.Now().UTC(),
	}
	return s.findProfileAndSet(ctx, op, bson.M{"userId": userID}, set)
}

// ActivateProfile включает профиль решением администратора.
func (s *Storage) ActivateProfile(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	const op = "storage.ActivateProfile"

	set := bson.M{
		"status":    models.ProfileStatusActive,
		"payed":     true,
		"updatedAt": time.Now().UTC(),
	}
	return s.findProfileAndSet(ctx, op, bson.M{"userId": userID}, set)
}

// SetProfileStatus выставляет операционный статус профиля.
func (s *Storage) SetProfileStatus(ctx context.Context, userID primitive.ObjectID, status string) (*models.Profile, error) {
	const op = "storage.SetProfileStatus"

	set := bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}
	return s.findProfileAndSet(ctx, op, bson.M{"userId": userID}, set)
}

func (s *Storage) findProfileAndSet(ctx context.Context, op string, filter, set bson.M) (*models.Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var profile models.Profile
	err := s.db.Collection(collProfiles).
		FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).
		Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &profile, nil
}

// ListMembers возвращает страницу профилей с действующим членством.
// Поиск ведётся по имени, фамилии и профессиональному статусу.
func (s *Storage) ListMembers(ctx context.Context, page, limit int, search string) ([]models.Profile, int64, error) {
	const op = "storage.ListMembers"

	filter := bson.M{"membershipStatus": models.MembershipActive}
	if search != "" {
		regex := bson.M{"$regex": search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"firstName": regex},
			bson.M{"lastName": regex},
			bson.M{"professionalStatus": regex},
		}
	}

	coll := s.db.Collection(collProfiles)
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "firstName", Value: 1}, {Key: "lastName", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var profiles []models.Profile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return profiles, total, nil
}

// FindProfilesByUserIDs возвращает профили для набора пользователей.
func (s *Storage) FindProfilesByUserIDs(ctx context.Context, userIDs []primitive.ObjectID) ([]models.Profile, error) {
	const op = "storage.FindProfilesByUserIDs"

	cur, err := s.db.Collection(collProfiles).Find(ctx, bson.M{"userId": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var profiles []models.Profile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profiles, nil
}

// CountProfilesByMembership возвращает количество профилей с данным статусом членства.
func (s *Storage) CountProfilesByMembership(ctx context.Context, membershipStatus string) (int64, error) {
	const op = "storage.CountProfilesByMembership"

	total, err := s.db.Collection(collProfiles).CountDocuments(ctx, bson.M{"membershipStatus": membershipStatus})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
