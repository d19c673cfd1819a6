package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article представляет публикацию ассоциации.
type Article struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Content       string             `bson:"content" json:"content"`
	Excerpt       string             `bson:"excerpt" json:"excerpt"`
	FeaturedImage string             `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	AuthorID      primitive.ObjectID `bson:"authorId" json:"authorId"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	IsMemberOnly  bool               `bson:"isMemberOnly" json:"isMemberOnly"`
	IsPublished   bool               `bson:"isPublished" json:"isPublished"`
	PublishedAt   *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	Views         int64              `bson:"views" json:"views"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ArticleFilter задает параметры выборки статей.
type ArticleFilter struct {
	MemberOnly    bool // только материалы для членов
	PublicOnly    bool // скрыть материалы для членов (анонимный запрос)
	OnlyPublished bool
	Page          int
	Limit         int
}
