package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Статусы платежа, передаваемые платёжным шлюзом.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// PaymentTypeMembership обозначает оплату членского взноса.
const PaymentTypeMembership = "membership"

// Payment фиксирует результат оплаты членского взноса. Создается
// обработчиком статус‑коллбека платёжного шлюза; сам шлюз вне системы.
type Payment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	OrderID   string             `bson:"orderId" json:"orderId"`
	Amount    float64            `bson:"amount" json:"amount"`
	Type      string             `bson:"type" json:"type"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
