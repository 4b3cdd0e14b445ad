package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smv-nearby/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimClient_Reverse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		expected    *models.Address
		expectError bool
	}{
		{
			name:   "address found",
			status: http.StatusOK,
			body:   `{"place_id":1,"lat":"26.8466","lon":"80.9461","display_name":"Hazratganj, Lucknow, Uttar Pradesh, India"}`,
			expected: &models.Address{
				DisplayName: "Hazratganj, Lucknow, Uttar Pradesh, India",
				Location:    models.Coordinate{Lat: 26.8466, Lon: 80.9461},
			},
		},
		{
			name:     "nothing nearby",
			status:   http.StatusOK,
			body:     `{"error":"Unable to geocode"}`,
			expected: nil,
		},
		{
			name:        "server error",
			status:      http.StatusBadGateway,
			body:        ``,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/reverse", r.URL.Path)
				assert.Equal(t, "json", r.URL.Query().Get("format"))
				assert.Equal(t, "26.8467", r.URL.Query().Get("lat"))
				assert.Equal(t, "80.9462", r.URL.Query().Get("lon"))
				assert.Equal(t, "18", r.URL.Query().Get("zoom"))
				assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewNominatimClient(srv.URL, NewHTTPClient("", time.Second))
			got, err := c.Reverse(context.Background(), lucknow)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindTransportFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
