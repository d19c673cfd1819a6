package send

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

	"github.com/lorenzcipher/association-backend/internal/models"
)

// MockService реализует интерфейс send.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SubmitContact(ctx context.Context, form models.ContactForm) (primitive.ObjectID, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestContactHandler(t *testing.T) {
	contactID := primitive.NewObjectID()

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный приём обращения",
			body: `{"name":"Jean Dupont","email":"jean@example.com","subject":"Adhesion","message":"Bonjour"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitContact", mock.Anything, models.ContactForm{
					Name:    "Jean Dupont",
					Email:   "jean@example.com",
					Subject: "Adhesion",
					Message: "Bonjour",
				}).Return(contactID, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   contactID.Hex(),
		},
		{
			name:           "битый JSON",
			body:           `{"name":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "некорректный email",
			body:           `{"name":"Jean","email":"not-an-email","subject":"Hi","message":"Hello"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email is not a valid email`,
		},
		{
			name:           "отсутствует сообщение",
			body:           `{"name":"Jean","email":"jean@example.com","subject":"Hi"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Message is a required field`,
		},
		{
			name: "ошибка сервиса",
			body: `{"name":"Jean","email":"jean@example.com","subject":"Hi","message":"Hello"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitContact", mock.Anything, mock.Anything).
					Return(primitive.NilObjectID, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not submit contact form"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
