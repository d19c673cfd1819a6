// Package jwt реализует выпуск и проверку JWT токенов сессии.
//
// Maker определяет интерфейс для создания и проверки токенов, несущих
// идентификатор пользователя, email и роль. Проверка токена удостоверяет
// только подпись и срок действия: актуальность учётной записи повторно
// проверяется авторизационным шлюзом по базе.
package jwt

import (
	"errors"
	"time"
)

// ErrEmptySecret возвращается при попытке выпустить токен
// без настроенного секретного ключа подписи.
var ErrEmptySecret = errors.New("jwt signing secret is not configured")

// Maker описывает интерфейс для выпуска и разбора токенов сессии.
type Maker interface {
	// GenerateToken выпускает подписанный токен для пользователя.
	GenerateToken(userID, email, role string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на секретном ключе HS256
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
