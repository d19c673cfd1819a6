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

// CreateArticle вставляет статью и возвращает её ID.
func (s *Storage) CreateArticle(ctx context.Context, article models.Article) (primitive.ObjectID, error) {
	const op = "storage.CreateArticle"

	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	res, err := s.db.Collection(collArticles).InsertOne(ctx, article)
	if err != nil {
		return primitive.NilObjectID, wrapWriteErr(op, err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindArticleByID возвращает статью, атомарно увеличив счётчик просмотров.
func (s *Storage) FindArticleByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error) {
	const op = "storage.FindArticleByID"

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var article models.Article
	err := s.db.Collection(collArticles).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}, opts).
		Decode(&article)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &article, nil
}

// ListArticles возвращает страницу статей (свежие публикации первыми).
func (s *Storage) ListArticles(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int64, error) {
	const op = "storage.ListArticles"

	query := bson.M{}
	if filter.OnlyPublished {
		query["isPublished"] = true
	}
	if filter.MemberOnly {
		query["isMemberOnly"] = true
	} else if filter.PublicOnly {
		query["isMemberOnly"] = false
	}

	coll := s.db.Collection(collArticles)
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var articles []models.Article
	if err := cur.All(ctx, &articles); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return articles, total, nil
}

// UpdateArticle частично обновляет статью. Публикация черновика
// проставляет publishedAt.
func (s *Storage) UpdateArticle(ctx context.Context, id primitive.ObjectID, update models.ArticleUpdate) (*models.Article, error) {
	const op = "storage.UpdateArticle"

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.Excerpt != nil {
		set["excerpt"] = *update.Excerpt
	}
	if update.FeaturedImage != nil {
		set["featuredImage"] = *update.FeaturedImage
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}
	if update.IsMemberOnly != nil {
		set["isMemberOnly"] = *update.IsMemberOnly
	}
	if update.IsPublished != nil {
		set["isPublished"] = *update.IsPublished
		if *update.IsPublished {
			set["publishedAt"] = time.Now().UTC()
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var article models.Article
	err := s.db.Collection(collArticles).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&article)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &article, nil
}

// DeleteArticle удаляет статью.
func (s *Storage) DeleteArticle(ctx context.Context, id primitive.ObjectID) error {
	const op = "storage.DeleteArticle"

	res, err := s.db.Collection(collArticles).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// CountArticles возвращает число статей, опционально только опубликованных.
func (s *Storage) CountArticles(ctx context.Context, publishedOnly bool) (int64, error) {
	const op = "storage.CountArticles"

	filter := bson.M{}
	if publishedOnly {
		filter["isPublished"] = true
	}
	total, err := s.db.Collection(collArticles).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
