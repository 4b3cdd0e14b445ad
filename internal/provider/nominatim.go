package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"smv-nearby/internal/models"
)

// DefaultNominatimURL is the public Nominatim endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimClient reverse-geocodes coordinates into display addresses.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatimClient creates a client. An empty baseURL uses the public endpoint.
func NewNominatimClient(baseURL string, httpClient *http.Client) *NominatimClient {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient("", 0)
	}
	return &NominatimClient{baseURL: baseURL, httpClient: httpClient}
}

type nominatimReverseResponse struct {
	PlaceID     int64  `json:"place_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Reverse returns the address nearest to c, or nil when Nominatim has none.
func (n *NominatimClient) Reverse(ctx context.Context, c models.Coordinate) (*models.Address, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))
	params.Set("zoom", "18")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("provider: building nominatim request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, transportError("nominatim request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, transportError(fmt.Sprintf("nominatim returned status %d", resp.StatusCode), nil)
	}

	var body nominatimReverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, transportError("decoding nominatim response", err)
	}

	// Nominatim answers 200 with an "error" field when nothing is near.
	if body.Error != "" || body.DisplayName == "" {
		return nil, nil
	}

	loc := c
	if lat, err := strconv.ParseFloat(body.Lat, 64); err == nil {
		if lon, err := strconv.ParseFloat(body.Lon, 64); err == nil {
			loc = models.Coordinate{Lat: lat, Lon: lon}
		}
	}

	return &models.Address{DisplayName: body.DisplayName, Location: loc}, nil
}
