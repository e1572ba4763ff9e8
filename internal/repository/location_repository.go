package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
)

// LocationRepository handles graph access for Location nodes.
type LocationRepository struct {
	driver neo4j.DriverWithContext
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(driver neo4j.DriverWithContext) *LocationRepository {
	return &LocationRepository{driver: driver}
}

const locationReturn = `
	loc.id AS id,
	loc.name AS name,
	loc.location_type AS location_type,
	loc.env_risk AS env_risk,
	loc.latitude AS latitude,
	loc.longitude AS longitude`

// FindAll returns every location with historical and recent (since the given
// ISO date) crime counts computed from the graph.
func (r *LocationRepository) FindAll(ctx context.Context, since string) ([]models.Location, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	MATCH (loc:Location)
	OPTIONAL MATCH (loc)-[:LOCATION_OF]->(crime:Crime)
	WITH loc,
	     count(DISTINCT crime) AS crime_count,
	     count(DISTINCT CASE WHEN crime.date >= $since THEN crime END) AS recent_count
	RETURN` + locationReturn + `,
	       crime_count,
	       recent_count
	ORDER BY crime_count DESC`

	result, err := session.Run(ctx, query, map[string]any{"since": since})
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	var locations []models.Location
	for result.Next(ctx) {
		locations = append(locations, scanLocation(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read locations: %w", err)
	}
	return locations, nil
}

// FindByID returns one location with crime counts, or ErrNotFound.
func (r *LocationRepository) FindByID(ctx context.Context, id, since string) (*models.Location, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	MATCH (loc:Location {id: $id})
	OPTIONAL MATCH (loc)-[:LOCATION_OF]->(crime:Crime)
	WITH loc,
	     count(DISTINCT crime) AS crime_count,
	     count(DISTINCT CASE WHEN crime.date >= $since THEN crime END) AS recent_count
	RETURN` + locationReturn + `,
	       crime_count,
	       recent_count`

	result, err := session.Run(ctx, query, map[string]any{"id": id, "since": since})
	if err != nil {
		return nil, fmt.Errorf("failed to get location %s: %w", id, err)
	}

	if result.Next(ctx) {
		loc := scanLocation(result.Record())
		return &loc, nil
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read location %s: %w", id, err)
	}
	return nil, ErrNotFound
}

// FindByName returns the first location whose name contains the given term,
// case-insensitive, or ErrNotFound.
func (r *LocationRepository) FindByName(ctx context.Context, name, since string) (*models.Location, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	MATCH (loc:Location)
	WHERE toLower(loc.name) CONTAINS toLower($name)
	OPTIONAL MATCH (loc)-[:LOCATION_OF]->(crime:Crime)
	WITH loc,
	     count(DISTINCT crime) AS crime_count,
	     count(DISTINCT CASE WHEN crime.date >= $since THEN crime END) AS recent_count
	RETURN` + locationReturn + `,
	       crime_count,
	       recent_count
	LIMIT 1`

	result, err := session.Run(ctx, query, map[string]any{"name": name, "since": since})
	if err != nil {
		return nil, fmt.Errorf("failed to search locations: %w", err)
	}

	if result.Next(ctx) {
		loc := scanLocation(result.Record())
		return &loc, nil
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read location search: %w", err)
	}
	return nil, ErrNotFound
}

// FindHotspots ranks locations by the weighted hotspot score and limits the
// result. The score mixes crime count, average severity and environmental
// risk with the 0.6/0.3/0.1 weights.
func (r *LocationRepository) FindHotspots(ctx context.Context, limit int) ([]models.Hotspot, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	MATCH (loc:Location)
	OPTIONAL MATCH (loc)-[:LOCATION_OF]->(crime:Crime)
	WITH loc,
	     count(DISTINCT crime) AS crime_count,
	     coalesce(sum(crime.severity), 0) AS severity_total,
	     max(crime.date) AS last_crime_date
	WITH loc, crime_count, severity_total, last_crime_date,
	     CASE WHEN crime_count > 0 THEN toFloat(severity_total) / crime_count ELSE 0.0 END AS avg_severity
	WITH loc, crime_count, severity_total, avg_severity, last_crime_date,
	     crime_count * 0.6 + avg_severity * 0.3 + loc.env_risk * 10 * 0.1 AS risk_score
	RETURN loc.id AS id,
	       loc.name AS name,
	       loc.location_type AS location_type,
	       crime_count,
	       severity_total,
	       avg_severity,
	       risk_score,
	       last_crime_date
	ORDER BY risk_score DESC
	LIMIT $limit`

	result, err := session.Run(ctx, query, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to find hotspots: %w", err)
	}

	var hotspots []models.Hotspot
	for result.Next(ctx) {
		rec := result.Record()
		hotspots = append(hotspots, models.Hotspot{
			ID:              recordString(rec, "id"),
			Name:            recordString(rec, "name"),
			LocationType:    recordString(rec, "location_type"),
			CrimeCount:      int(recordInt(rec, "crime_count")),
			SeverityTotal:   int(recordInt(rec, "severity_total")),
			AverageSeverity: recordFloat(rec, "avg_severity"),
			RiskScore:       recordFloat(rec, "risk_score"),
			LastCrimeDate:   recordString(rec, "last_crime_date"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hotspots: %w", err)
	}
	return hotspots, nil
}

// Create persists a new location node.
func (r *LocationRepository) Create(ctx context.Context, loc models.Location) (*models.Location, error) {
	session := writeSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	CREATE (loc:Location {
		id: $id,
		name: $name,
		location_type: $location_type,
		env_risk: $env_risk,
		latitude: $latitude,
		longitude: $longitude,
		created_at: timestamp()
	})
	RETURN` + locationReturn + `,
	       0 AS crime_count,
	       0 AS recent_count`

	result, err := session.Run(ctx, query, map[string]any{
		"id":            loc.ID,
		"name":          loc.Name,
		"location_type": loc.LocationType,
		"env_risk":      loc.EnvRisk,
		"latitude":      loc.Latitude,
		"longitude":     loc.Longitude,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	if result.Next(ctx) {
		created := scanLocation(result.Record())
		return &created, nil
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read created location: %w", err)
	}
	return nil, fmt.Errorf("location %s was not created", loc.ID)
}

// Statistics aggregates location data across the city.
func (r *LocationRepository) Statistics(ctx context.Context) (*models.LocationStatistics, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	MATCH (loc:Location)
	WITH count(loc) AS total_locations, coalesce(avg(loc.env_risk), 0.0) AS avg_env_risk
	OPTIONAL MATCH (l:Location)-[:LOCATION_OF]->(crime:Crime)
	RETURN total_locations,
	       avg_env_risk,
	       count(DISTINCT crime) AS total_crimes,
	       count(DISTINCT l) AS locations_with_crimes`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get location statistics: %w", err)
	}

	if result.Next(ctx) {
		rec := result.Record()
		return &models.LocationStatistics{
			TotalLocations:      int(recordInt(rec, "total_locations")),
			LocationsWithCrimes: int(recordInt(rec, "locations_with_crimes")),
			AverageEnvRisk:      recordFloat(rec, "avg_env_risk"),
			TotalCrimeIncidents: int(recordInt(rec, "total_crimes")),
		}, nil
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read location statistics: %w", err)
	}
	return &models.LocationStatistics{}, nil
}

func scanLocation(rec *neo4jRecord) models.Location {
	return models.Location{
		ID:                   recordString(rec, "id"),
		Name:                 recordString(rec, "name"),
		LocationType:         recordString(rec, "location_type"),
		EnvRisk:              recordFloat(rec, "env_risk"),
		Latitude:             recordFloat(rec, "latitude"),
		Longitude:            recordFloat(rec, "longitude"),
		HistoricalCrimeCount: int(recordInt(rec, "crime_count")),
		RecentCrimeCount:     int(recordInt(rec, "recent_count")),
	}
}
