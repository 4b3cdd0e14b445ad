package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smv-nearby/internal/models"
	"smv-nearby/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSessionService is a mock implementation of the SessionService interface
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Open() string {
	return m.Called().String(0)
}

func (m *MockSessionService) Snapshot(id string) (models.Snapshot, error) {
	args := m.Called(id)
	return args.Get(0).(models.Snapshot), args.Error(1)
}

func (m *MockSessionService) Refresh(ctx context.Context, id string, origin models.Coordinate) (models.Snapshot, error) {
	args := m.Called(ctx, id, origin)
	return args.Get(0).(models.Snapshot), args.Error(1)
}

func (m *MockSessionService) Delete(id string) error {
	return m.Called(id).Error(0)
}

func sessionRouter(h *SessionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/sessions", h.Create)
	r.GET("/sessions/:id", h.Get)
	r.PUT("/sessions/:id/location", h.UpdateLocation)
	r.DELETE("/sessions/:id", h.Delete)
	return r
}

func TestSessionHandler_Create(t *testing.T) {
	mockSvc := new(MockSessionService)
	mockSvc.On("Open").Return("abc")

	w := httptest.NewRecorder()
	sessionRouter(NewSessionHandler(mockSvc)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sessions", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"session_id":"abc"}`, w.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestSessionHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		snapshot       models.Snapshot
		err            error
		expectedStatus int
	}{
		{
			name:           "existing session",
			snapshot:       models.Snapshot{SessionID: "abc", Places: map[models.PlaceCategory]models.ResolvedPlace{}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown session",
			err:            service.ErrSessionNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unexpected error",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockSessionService)
			mockSvc.On("Snapshot", "abc").Return(tt.snapshot, tt.err)

			w := httptest.NewRecorder()
			sessionRouter(NewSessionHandler(mockSvc)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.err == nil {
				var got models.Snapshot
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, "abc", got.SessionID)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_UpdateLocation(t *testing.T) {
	origin := models.Coordinate{Lat: 26.8467, Lon: 80.9462}

	tests := []struct {
		name           string
		body           string
		callsService   bool
		err            error
		expectedStatus int
	}{
		{
			name:           "malformed body",
			body:           `{"lat":"north"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing longitude",
			body:           `{"lat":26.8467}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "out of range",
			body:           `{"lat":-95,"lon":80.9462}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "refreshes session",
			body:           `{"lat":26.8467,"lon":80.9462}`,
			callsService:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown session",
			body:           `{"lat":26.8467,"lon":80.9462}`,
			callsService:   true,
			err:            service.ErrSessionNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockSessionService)
			if tt.callsService {
				snap := models.Snapshot{SessionID: "abc", Origin: &origin}
				mockSvc.On("Refresh", mock.Anything, "abc", origin).Return(snap, tt.err)
			}

			req := httptest.NewRequest(http.MethodPut, "/sessions/abc/location", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			sessionRouter(NewSessionHandler(mockSvc)).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var got models.Snapshot
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				require.NotNil(t, got.Origin)
				assert.Equal(t, origin, *got.Origin)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_Delete(t *testing.T) {
	mockSvc := new(MockSessionService)
	mockSvc.On("Delete", "abc").Return(nil)
	mockSvc.On("Delete", "gone").Return(service.ErrSessionNotFound)
	r := sessionRouter(NewSessionHandler(mockSvc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/abc", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/gone", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"session not found"}`, w.Body.String())

	mockSvc.AssertExpectations(t)
}
