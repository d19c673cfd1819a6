package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Типы медиафайлов.
const (
	MediaTypeImage    = "image"
	MediaTypeVideo    = "video"
	MediaTypeDocument = "document"
)

// Media представляет медиаматериал галереи. Файлы хранятся во внешнем
// хранилище: здесь только метаданные и URL.
type Media struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	FileURL      string             `bson:"fileUrl" json:"fileUrl"`
	FileType     string             `bson:"fileType" json:"fileType"`
	ThumbnailURL string             `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	IsMemberOnly bool               `bson:"isMemberOnly" json:"isMemberOnly"`
	UploadedBy   primitive.ObjectID `bson:"uploadedBy" json:"uploadedBy"`
	Tags         []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Views        int64              `bson:"views" json:"views"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// MediaFilter задает параметры выборки медиаматериалов.
type MediaFilter struct {
	Category   string
	MemberOnly *bool // nil — не фильтровать по признаку
	Page       int
	Limit      int
}
