package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
	"github.com/precrime-dept/precrime-backend-go/internal/risk"
)

// recentWindowDays is the trailing window used for the recent-crime component
// of the location risk score.
const recentWindowDays = 30

// LocationStore is the location persistence contract.
type LocationStore interface {
	FindAll(ctx context.Context, since string) ([]models.Location, error)
	FindByID(ctx context.Context, id, since string) (*models.Location, error)
	FindByName(ctx context.Context, name, since string) (*models.Location, error)
	FindHotspots(ctx context.Context, limit int) ([]models.Hotspot, error)
	Create(ctx context.Context, loc models.Location) (*models.Location, error)
	Statistics(ctx context.Context) (*models.LocationStatistics, error)
}

// LocationService handles business logic for city locations
type LocationService struct {
	locations LocationStore
	crimes    CrimeStore
}

// NewLocationService creates a new location service
func NewLocationService(locations LocationStore, crimes CrimeStore) *LocationService {
	return &LocationService{locations: locations, crimes: crimes}
}

// GetLocations returns all locations with their computed risk levels.
func (s *LocationService) GetLocations(ctx context.Context) ([]models.Location, error) {
	locations, err := s.locations.FindAll(ctx, sinceDate(recentWindowDays))
	if err != nil {
		return nil, err
	}
	for i := range locations {
		classifyLocation(&locations[i])
	}
	return locations, nil
}

// GetLocationByID returns a single location with its risk level.
func (s *LocationService) GetLocationByID(ctx context.Context, id string) (*models.Location, error) {
	loc, err := s.locations.FindByID(ctx, id, sinceDate(recentWindowDays))
	if err != nil {
		return nil, err
	}
	classifyLocation(loc)
	return loc, nil
}

// SearchLocation finds the first location matching the name term.
func (s *LocationService) SearchLocation(ctx context.Context, name string) (*models.Location, error) {
	loc, err := s.locations.FindByName(ctx, name, sinceDate(recentWindowDays))
	if err != nil {
		return nil, err
	}
	classifyLocation(loc)
	return loc, nil
}

// GetHotspots returns the top criminal hotspots with normalized risk scores.
func (s *LocationService) GetHotspots(ctx context.Context, limit int) ([]models.Hotspot, error) {
	hotspots, err := s.locations.FindHotspots(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range hotspots {
		hotspots[i].RiskScore = risk.ClampScore(hotspots[i].RiskScore)
	}
	return hotspots, nil
}

// GetLocationCrimes returns crimes at a location within a trailing window of
// days. The location must exist.
func (s *LocationService) GetLocationCrimes(ctx context.Context, id string, days int) ([]models.Crime, error) {
	if _, err := s.locations.FindByID(ctx, id, sinceDate(recentWindowDays)); err != nil {
		return nil, err
	}
	return s.crimes.FindByLocationSince(ctx, id, sinceDate(days))
}

// CreateLocation registers a new location in the city graph.
func (s *LocationService) CreateLocation(ctx context.Context, req models.LocationCreateRequest) (*models.Location, error) {
	if !models.ValidLocationType(req.LocationType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLocationType, req.LocationType)
	}

	loc := models.Location{
		ID:           fmt.Sprintf("loc-%s", uuid.NewString()),
		Name:         req.Name,
		LocationType: req.LocationType,
		EnvRisk:      req.EnvRisk,
		Latitude:     req.Coordinates.Latitude,
		Longitude:    req.Coordinates.Longitude,
	}

	created, err := s.locations.Create(ctx, loc)
	if err != nil {
		return nil, err
	}
	classifyLocation(created)
	return created, nil
}

// GetStatistics aggregates location data, enriched with the current highest
// risk location and the most frequent crime type.
func (s *LocationService) GetStatistics(ctx context.Context) (*models.LocationStatistics, error) {
	stats, err := s.locations.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	if hotspots, err := s.locations.FindHotspots(ctx, 1); err == nil && len(hotspots) > 0 {
		stats.HighestRiskLocation = hotspots[0].Name
	}

	counts, err := s.crimes.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	top, topCount := "", 0
	for t, n := range counts {
		if n > topCount || (n == topCount && t < top) {
			top, topCount = t, n
		}
	}
	stats.TopCrimeType = top
	return stats, nil
}

func classifyLocation(loc *models.Location) {
	if loc == nil {
		return
	}
	loc.RiskLevel = string(risk.LevelFor(loc.HistoricalCrimeCount, loc.RecentCrimeCount, loc.EnvRisk))
}

// windowRange formats a trailing window as a human readable date range.
func windowRange(days int) string {
	now := time.Now()
	return fmt.Sprintf("%s to %s", now.AddDate(0, 0, -days).Format(dateLayout), now.Format(dateLayout))
}
