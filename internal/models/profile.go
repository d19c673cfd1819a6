package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Статусы членства (жизненный цикл членского взноса).
const (
	MembershipPending   = "pending"
	MembershipActive    = "active"
	MembershipExpired   = "expired"
	MembershipCancelled = "cancelled"
)

// Операционные статусы профиля. Статус blocked делает недействительными
// все токены пользователя независимо от их криптографической валидности.
const (
	ProfileStatusActive   = "active"
	ProfileStatusInactive = "inactive"
	ProfileStatusPending  = "pending"
	ProfileStatusBlocked  = "blocked"
)

// ValidProfileStatus проверяет, что строка является допустимым
// операционным статусом профиля.
func ValidProfileStatus(s string) bool {
	switch s {
	case ProfileStatusActive, ProfileStatusInactive, ProfileStatusPending, ProfileStatusBlocked:
		return true
	}
	return false
}

// SocialLinks содержит ссылки профиля на внешние ресурсы.
type SocialLinks struct {
	LinkedIn string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter  string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Website  string `bson:"website,omitempty" json:"website,omitempty"`
}

// Profile хранит членские атрибуты пользователя. Ровно один профиль
// на пользователя: на userId построен уникальный индекс.
type Profile struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID               primitive.ObjectID `bson:"userId" json:"userId"`
	FirstName            string             `bson:"firstName" json:"firstName"`
	LastName             string             `bson:"lastName" json:"lastName"`
	Phone                string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfessionalStatus   string             `bson:"professionalStatus" json:"professionalStatus"`
	DomainOfInterest     []string           `bson:"domainOfInterest,omitempty" json:"domainOfInterest,omitempty"`
	Address              string             `bson:"address,omitempty" json:"address,omitempty"`
	City                 string             `bson:"city,omitempty" json:"city,omitempty"`
	Country              string             `bson:"country,omitempty" json:"country,omitempty"`
	Biography            string             `bson:"biography,omitempty" json:"biography,omitempty"`
	Avatar               string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	SocialLinks          *SocialLinks       `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	MembershipStartDate  *time.Time         `bson:"membershipStartDate,omitempty" json:"membershipStartDate,omitempty"`
	MembershipExpiryDate *time.Time         `bson:"membershipExpiryDate,omitempty" json:"membershipExpiryDate,omitempty"`
	MembershipStatus     string             `bson:"membershipStatus" json:"membershipStatus"`
	Status               string             `bson:"status" json:"status"`
	Payed                bool               `bson:"payed" json:"payed"`
	OrderID              string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsMember сообщает, действует ли членство владельца профиля.
func (p *Profile) IsMember() bool {
	return p.MembershipStatus == MembershipActive
}
