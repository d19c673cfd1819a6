package register

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lorenzcipher/association-backend/internal/http/middlewarectx"
	"github.com/lorenzcipher/association-backend/internal/models"
	"github.com/lorenzcipher/association-backend/internal/services/event"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, eventID primitive.ObjectID, identity models.Identity) (*models.Event, error) {
	args := m.Called(ctx, eventID, identity)
	ev, _ := args.Get(0).(*models.Event)
	return ev, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler(t *testing.T) {
	eventID := primitive.NewObjectID()
	identity := &models.Identity{
		UserID:   primitive.NewObjectID(),
		Role:     models.RoleMember,
		IsMember: true,
	}

	tests := []struct {
		name           string
		eventID        string
		identity       *models.Identity
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная запись",
			eventID:  eventID.Hex(),
			identity: identity,
			setupMock: func(m *MockService) {
				ev := &models.Event{
					ID:           eventID,
					Participants: []primitive.ObjectID{identity.UserID},
				}
				m.On("Register", mock.Anything, eventID, *identity).Return(ev, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"registered for event"`,
		},
		{
			name:           "нет Identity в контексте",
			eventID:        eventID.Hex(),
			identity:       nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"authentication required"`,
		},
		{
			name:           "некорректный id в URL",
			eventID:        "abc",
			identity:       identity,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid event id"`,
		},
		{
			name:     "мероприятие не найдено",
			eventID:  eventID.Hex(),
			identity: identity,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, eventID, *identity).
					Return(nil, event.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"event not found"`,
		},
		{
			name:     "только для членов",
			eventID:  eventID.Hex(),
			identity: identity,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, eventID, *identity).
					Return(nil, event.ErrMembersOnly)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"error":"event is reserved for active members"`,
		},
		{
			name:     "дедлайн прошёл",
			eventID:  eventID.Hex(),
			identity: identity,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, eventID, *identity).
					Return(nil, event.ErrDeadlinePassed)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"registration deadline has passed"`,
		},
		{
			name:     "повторная запись",
			eventID:  eventID.Hex(),
			identity: identity,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, eventID, *identity).
					Return(nil, event.ErrAlreadyRegistered)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"already registered for this event"`,
		},
		{
			name:     "нет свободных мест",
			eventID:  eventID.Hex(),
			identity: identity,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, eventID, *identity).
					Return(nil, event.ErrEventFull)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"event has reached maximum participants"`,
		},
		{
			name:     "ошибка сервиса",
			eventID:  eventID.Hex(),
			identity: identity,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, eventID, *identity).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not register for event"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+tt.eventID+"/register", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.eventID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			if tt.identity != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.IdentityKey, tt.identity))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
