package repository

import (
	"context"
	"errors"
	"fmt"

	"smv-nearby/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the points-of-interest table and its indexes.
const Schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS places (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(32) NOT NULL,
		geom GEOGRAPHY(POINT, 4326) NOT NULL
	);

	CREATE INDEX IF NOT EXISTS places_geom_idx ON places USING GIST (geom);
	CREATE INDEX IF NOT EXISTS places_category_idx ON places (category);
	CREATE INDEX IF NOT EXISTS places_name_idx ON places (lower(name));
`

// Repository implements the places repository for PostgreSQL/PostGIS
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateSchema applies Schema.
func (r *Repository) CreateSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// SearchPlacesByText finds places whose name contains the query, case-insensitively
func (r *Repository) SearchPlacesByText(ctx context.Context, query string) ([]models.Place, error) {
	sql := `
		SELECT
			id,
			name,
			category,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude
		FROM places
		WHERE lower(name) LIKE '%' || lower($1) || '%'
		ORDER BY length(name), name
		LIMIT 10
	`

	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute search query: %w", err)
	}
	defer rows.Close()

	places := []models.Place{}
	for rows.Next() {
		var p models.Place
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Category,
			&p.Latitude,
			&p.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan place: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return places, nil
}

// GetPlaceByID returns the place with the given id, or nil if there is none
func (r *Repository) GetPlaceByID(ctx context.Context, id int64) (*models.Place, error) {
	sql := `
		SELECT
			id,
			name,
			category,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude
		FROM places
		WHERE id = $1
	`

	var p models.Place
	err := r.db.QueryRow(ctx, sql, id).Scan(&p.ID, &p.Name, &p.Category, &p.Latitude, &p.Longitude)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to get place: %w", err)
	}

	return &p, nil
}

// FindPlacesWithin returns the places of a category within radiusM metres of origin, closest first
func (r *Repository) FindPlacesWithin(ctx context.Context, origin models.Coordinate, category models.PlaceCategory, radiusM float64) ([]models.Place, error) {
	sql := `
		SELECT
			id,
			name,
			category,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude
		FROM places
		WHERE category = $3
		  AND ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $4)
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		LIMIT 50
	`

	rows, err := r.db.Query(ctx, sql, origin.Lat, origin.Lon, string(category), radiusM)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}
	defer rows.Close()

	places := []models.Place{}
	for rows.Next() {
		var p models.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Latitude, &p.Longitude); err != nil {
			return nil, fmt.Errorf("repository: failed to scan place: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return places, nil
}
