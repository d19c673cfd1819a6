package models

import "time"

// Структуры частичных обновлений: nil-поле означает "не менять".
// Заполняются на границе HTTP после валидации и передаются в хранилище,
// которое превращает их в $set-документы.

// UserUpdate описывает частичное обновление пользователя администратором.
type UserUpdate struct {
	Email      *string
	Role       *string
	IsActive   *bool
	IsVerified *bool
}

// ProfileUpdate описывает частичное обновление профиля его владельцем.
// Операционный статус и платёжные поля сюда намеренно не входят:
// ими управляют администратор и платёжный коллбек.
type ProfileUpdate struct {
	FirstName          *string
	LastName           *string
	Phone              *string
	ProfessionalStatus *string
	DomainOfInterest   []string
	Address            *string
	City               *string
	Country            *string
	Biography          *string
	Avatar             *string
	SocialLinks        *SocialLinks
}

// EventUpdate описывает частичное обновление мероприятия администратором.
type EventUpdate struct {
	Title                *string
	Description          *string
	StartDate            *time.Time
	EndDate              *time.Time
	Location             *string
	IsOnline             *bool
	IsMemberOnly         *bool
	MaxParticipants      *int
	RegistrationRequired *bool
	RegistrationDeadline *time.Time
	MemberPrice          *float64
	NonMemberPrice       *float64
}

// ArticleUpdate описывает частичное обновление статьи.
type ArticleUpdate struct {
	Title         *string
	Content       *string
	Excerpt       *string
	FeaturedImage *string
	Tags          []string
	IsMemberOnly  *bool
	IsPublished   *bool
}

// CategoryUpdate описывает частичное обновление рубрики.
type CategoryUpdate struct {
	Name        *string
	Description *string
}

// MediaUpdate описывает частичное обновление медиаматериала.
type MediaUpdate struct {
	Title        *string
	Description  *string
	FileURL      *string
	ThumbnailURL *string
	IsMemberOnly *bool
	Tags         []string
	Category     *string
}
