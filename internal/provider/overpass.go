package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smv-nearby/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultOverpassURL is the public Overpass API interpreter endpoint.
const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

// OverpassProvider queries the Overpass API for OSM nodes and ways.
type OverpassProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewOverpassProvider creates an Overpass provider. An empty baseURL uses the public endpoint.
func NewOverpassProvider(baseURL string, httpClient *http.Client) *OverpassProvider {
	if baseURL == "" {
		baseURL = DefaultOverpassURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient("", 0)
	}
	return &OverpassProvider{baseURL: baseURL, httpClient: httpClient}
}

// overpassElement is a node (lat/lon) or a way (center) from an `out center` query.
type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *overpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// coords returns the element point, using the way center when the element has no point.
func (e overpassElement) coords() (models.Coordinate, bool) {
	if e.Lat != nil && e.Lon != nil {
		return models.Coordinate{Lat: *e.Lat, Lon: *e.Lon}, true
	}
	if e.Center != nil {
		return models.Coordinate{Lat: e.Center.Lat, Lon: e.Center.Lon}, true
	}
	return models.Coordinate{}, false
}

// Name implements Spatial.
func (p *OverpassProvider) Name() string {
	return models.SourceOverpass
}

// BuildQuery renders the Overpass QL for a category search around origin.
func BuildQuery(origin models.Coordinate, category models.PlaceCategory, radiusKm float64) string {
	radiusM := int(math.Round(radiusKm * 1000))
	filter := category.Filter()
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node[%s](around:%d,%f,%f);
  way[%s](around:%d,%f,%f);
);
out center;`, filter, radiusM, origin.Lat, origin.Lon, filter, radiusM, origin.Lat, origin.Lon)
}

// Candidates implements Spatial.
func (p *OverpassProvider) Candidates(ctx context.Context, origin models.Coordinate, category models.PlaceCategory, radiusKm float64) ([]models.Candidate, error) {
	query := BuildQuery(origin, category, radiusKm)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, strings.NewReader("data="+url.QueryEscape(query)))
	if err != nil {
		return nil, fmt.Errorf("provider: building overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, transportError("overpass request failed", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("category", string(category)).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("overpass query")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, transportError(fmt.Sprintf("overpass returned status %d", resp.StatusCode), nil)
	}

	var ovResp overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&ovResp); err != nil {
		return nil, transportError("decoding overpass response", err)
	}

	candidates := parseElements(ovResp.Elements)
	if len(candidates) == 0 {
		return nil, emptyResult(fmt.Sprintf("no usable %s elements out of %d", category, len(ovResp.Elements)))
	}

	return candidates, nil
}

// parseElements keeps elements that have both a name and a coordinate.
func parseElements(elements []overpassElement) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(elements))
	skipped := 0
	for _, el := range elements {
		name := strings.TrimSpace(el.Tags["name"])
		loc, ok := el.coords()
		if name == "" || !ok {
			skipped++
			continue
		}
		candidates = append(candidates, models.Candidate{Name: name, Location: loc})
	}
	if skipped > 0 {
		log.Debug().
			Int("skipped", skipped).
			Str("kind", KindMalformedElement.String()).
			Msg("dropped overpass elements")
	}
	return candidates
}
