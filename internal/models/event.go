package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event представляет мероприятие ассоциации. Набор участников хранится
// в самом документе; уникальность участника и лимит мест обеспечиваются
// условным обновлением на стороне хранилища.
type Event struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title                string               `bson:"title" json:"title"`
	Description          string               `bson:"description" json:"description"`
	StartDate            time.Time            `bson:"startDate" json:"startDate"`
	EndDate              *time.Time           `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Location             string               `bson:"location" json:"location"`
	IsOnline             bool                 `bson:"isOnline" json:"isOnline"`
	IsMemberOnly         bool                 `bson:"isMemberOnly" json:"isMemberOnly"`
	MaxParticipants      int                  `bson:"maxParticipants,omitempty" json:"maxParticipants,omitempty"`
	RegistrationRequired bool                 `bson:"registrationRequired" json:"registrationRequired"`
	RegistrationDeadline *time.Time           `bson:"registrationDeadline,omitempty" json:"registrationDeadline,omitempty"`
	MemberPrice          float64              `bson:"memberPrice" json:"memberPrice"`
	NonMemberPrice       float64              `bson:"nonMemberPrice" json:"nonMemberPrice"`
	CreatedBy            primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Participants         []primitive.ObjectID `bson:"participants" json:"participants"`
	CreatedAt            time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasParticipant сообщает, записан ли пользователь на мероприятие.
func (e *Event) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range e.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// IsFull сообщает, достигнут ли лимит участников.
// Нулевой MaxParticipants означает отсутствие лимита.
func (e *Event) IsFull() bool {
	return e.MaxParticipants > 0 && len(e.Participants) >= e.MaxParticipants
}

// EventFilter задает параметры выборки списка мероприятий.
type EventFilter struct {
	Upcoming   bool // только события с датой начала в будущем
	MembersToo bool // включать события "только для членов"
	Page       int
	Limit      int
}
