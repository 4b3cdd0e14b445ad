package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"smv-nearby/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPlaceSearchService is a mock implementation of the PlaceSearchService interface
type MockPlaceSearchService struct {
	mock.Mock
}

func (m *MockPlaceSearchService) Search(ctx context.Context, query string) ([]models.Place, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.Place), args.Error(1)
}

func (m *MockPlaceSearchService) Get(ctx context.Context, id int64) (*models.Place, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.Place), args.Error(1)
}

func TestPlaceSearchHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		query          string
		mockPlaces     []models.Place
		mockError      error
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name:           "missing query parameter",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "missing required query parameter 'q'"},
		},
		{
			name:           "blank query parameter",
			query:          "   ",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "missing required query parameter 'q'"},
		},
		{
			name:  "matching places",
			query: "aps",
			mockPlaces: []models.Place{
				{ID: 7, Name: "APS Academy", Category: models.School, Latitude: 26.8567, Longitude: 80.9362},
			},
			expectedStatus: http.StatusOK,
			expectedBody: []interface{}{
				map[string]interface{}{
					"id":        float64(7),
					"name":      "APS Academy",
					"category":  "school",
					"latitude":  26.8567,
					"longitude": 80.9362,
				},
			},
		},
		{
			name:           "no matches",
			query:          "nowhere",
			mockPlaces:     []models.Place{},
			expectedStatus: http.StatusOK,
			expectedBody:   []interface{}{},
		},
		{
			name:           "service error",
			query:          "mall",
			mockPlaces:     nil,
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockPlaceSearchService)
			handler := NewPlaceSearchHandler(mockSvc)

			if strings.TrimSpace(tt.query) != "" {
				mockSvc.On("Search", mock.Anything, tt.query).Return(tt.mockPlaces, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/places", nil)
			if tt.query != "" {
				q := req.URL.Query()
				q.Add("q", tt.query)
				req.URL.RawQuery = q.Encode()
			}
			w := httptest.NewRecorder()

			c, _ := gin.CreateTestContext(w)
			c.Request = req

			handler.Search(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody interface{}
			err := json.Unmarshal(w.Body.Bytes(), &actualBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, actualBody)

			mockSvc.AssertExpectations(t)
		})
	}
}

func TestPlaceSearchHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mall := &models.Place{ID: 3, Name: "Lulu Mall", Category: models.Mall, Latitude: 26.7781, Longitude: 80.99}

	tests := []struct {
		name           string
		id             string
		callsService   bool
		mockPlace      *models.Place
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "non-numeric id",
			id:             "lulu",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid place id"}`,
		},
		{
			name:           "found",
			id:             "3",
			callsService:   true,
			mockPlace:      mall,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":3,"name":"Lulu Mall","category":"mall","latitude":26.7781,"longitude":80.99}`,
		},
		{
			name:           "not found",
			id:             "4",
			callsService:   true,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"place not found"}`,
		},
		{
			name:           "service error",
			id:             "5",
			callsService:   true,
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockPlaceSearchService)
			if tt.callsService {
				id, _ := strconv.ParseInt(tt.id, 10, 64)
				mockSvc.On("Get", mock.Anything, id).Return(tt.mockPlace, tt.mockError)
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/places/"+tt.id, nil)
			c.Params = gin.Params{{Key: "id", Value: tt.id}}

			NewPlaceSearchHandler(mockSvc).Get(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}
