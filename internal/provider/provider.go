// Package provider talks to the external services that know where things are:
// spatial POI sources and the reverse geocoder.
package provider

import (
	"context"
	"net/http"
	"time"

	"smv-nearby/internal/models"
)

// DefaultUserAgent identifies the service to the public OSM endpoints.
const DefaultUserAgent = "SMVGreenRickshawApp/1.0"

// Spatial returns candidate places of a category around an origin.
type Spatial interface {
	Candidates(ctx context.Context, origin models.Coordinate, category models.PlaceCategory, radiusKm float64) ([]models.Candidate, error)
	Name() string
}

// userAgentTransport sets the User-Agent on every outgoing request.
type userAgentTransport struct {
	transport http.RoundTripper
	userAgent string
}

// RoundTrip implements the http.RoundTripper interface.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.transport.RoundTrip(req)
}

// NewHTTPClient returns the client shared by the HTTP providers.
func NewHTTPClient(userAgent string, timeout time.Duration) *http.Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			transport: http.DefaultTransport,
			userAgent: userAgent,
		},
	}
}
