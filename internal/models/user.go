// Package models содержит доменные структуры ассоциации: пользователей,
// профили, события, статьи и прочие документы MongoDB.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Роли пользователей системы.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User представляет учётную запись пользователя ассоциации.
// Хэш пароля никогда не сериализуется в JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	IsVerified   bool               `bson:"isVerified" json:"isVerified"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Identity описывает аутентифицированного отправителя запроса.
// Не сохраняется в базе: строится заново на каждый запрос из User и Profile.
type Identity struct {
	UserID   primitive.ObjectID `json:"userId"`
	Email    string             `json:"email"`
	Role     string             `json:"role"`
	IsMember bool               `json:"isMember"`
}

// IsAdmin сообщает, имеет ли отправитель административную роль.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
