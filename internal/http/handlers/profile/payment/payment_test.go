package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/http/middlewarectx"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/services/profile"
)

// MockService реализует интерфейс payment.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ConfirmPayment(ctx context.Context, userID primitive.ObjectID, orderID string, amount float64) (*models.Profile, error) {
	args := m.Called(ctx, userID, orderID, amount)
	prof, _ := args.Get(0).(*models.Profile)
	return prof, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestPaymentHandler(t *testing.T) {
	userID := primitive.NewObjectID()
	identity := &models.Identity{UserID: userID, Role: models.RoleMember}
	activated := &models.Profile{
		UserID:  userID,
		Status:  models.ProfileStatusActive,
		Payed:   true,
		OrderID: "order-42",
	}

	tests := []struct {
		name           string
		body           string
		identity       *models.Identity
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное подтверждение оплаты",
			body:     `{"orderId":"order-42","amount":120}`,
			identity: identity,
			setupMock: func(m *MockService) {
				m.On("ConfirmPayment", mock.Anything, userID, "order-42", float64(120)).
					Return(activated, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"payed":true`,
		},
		{
			name:           "нет Identity в контексте",
			body:           `{"orderId":"order-42","amount":120}`,
			identity:       nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"authentication required"`,
		},
		{
			name:           "отсутствует orderId",
			body:           `{"amount":120}`,
			identity:       identity,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field OrderID is a required field`,
		},
		{
			name:     "профиль не найден",
			body:     `{"orderId":"order-42","amount":120}`,
			identity: identity,
			setupMock: func(m *MockService) {
				m.On("ConfirmPayment", mock.Anything, userID, "order-42", float64(120)).
					Return(nil, profile.ErrProfileNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"profile not found"`,
		},
		{
			name:     "ошибка сервиса",
			body:     `{"orderId":"order-42","amount":120}`,
			identity: identity,
			setupMock: func(m *MockService) {
				m.On("ConfirmPayment", mock.Anything, userID, "order-42", float64(120)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not confirm payment"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/profile/payment", strings.NewReader(tt.body))
			if tt.identity != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.IdentityKey, tt.identity)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
