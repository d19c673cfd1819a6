package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message представляет личное сообщение между членами ассоциации.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID   primitive.ObjectID `bson:"senderId" json:"senderId"`
	ReceiverID primitive.ObjectID `bson:"receiverId" json:"receiverId"`
	Subject    string             `bson:"subject" json:"subject"`
	Content    string             `bson:"content" json:"content"`
	IsRead     bool               `bson:"isRead" json:"isRead"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Направления выборки сообщений.
const (
	MessagesReceived = "received"
	MessagesSent     = "sent"
	MessagesBoth     = "both"
)

// ContactForm представляет обращение через публичную контактную форму.
type ContactForm struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Email       string              `bson:"email" json:"email"`
	Subject     string              `bson:"subject" json:"subject"`
	Message     string              `bson:"message" json:"message"`
	IsRead      bool                `bson:"isRead" json:"isRead"`
	RespondedAt *time.Time          `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
	RespondedBy *primitive.ObjectID `bson:"respondedBy,omitempty" json:"respondedBy,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}
