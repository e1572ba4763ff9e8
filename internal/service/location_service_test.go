package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
)

func TestGetLocationsClassifiesRisk(t *testing.T) {
	locations := &fakeLocationStore{
		findAll: func(since string) ([]models.Location, error) {
			assert.NotEmpty(t, since)
			return []models.Location{
				{ID: "loc-0", HistoricalCrimeCount: 20, RecentCrimeCount: 5, EnvRisk: 0.9},
				{ID: "loc-1", HistoricalCrimeCount: 0, RecentCrimeCount: 0, EnvRisk: 0.1},
				{ID: "loc-2", HistoricalCrimeCount: 30, RecentCrimeCount: 10, EnvRisk: 0.9},
			}, nil
		},
	}
	svc := NewLocationService(locations, &fakeCrimeStore{})

	result, err := svc.GetLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 3)

	// 20*0.6 + 5*0.3 + 0.9 = 14.4
	assert.Equal(t, "HIGH", result[0].RiskLevel)
	assert.Equal(t, "LOW", result[1].RiskLevel)
	assert.Equal(t, "CRITICAL", result[2].RiskLevel)
}

func TestGetHotspotsClampsScores(t *testing.T) {
	locations := &fakeLocationStore{
		findHotspots: func(limit int) ([]models.Hotspot, error) {
			assert.Equal(t, 5, limit)
			return []models.Hotspot{
				{ID: "loc-0", RiskScore: 14.4},
				{ID: "loc-1", RiskScore: 0.35},
				{ID: "loc-2", RiskScore: 250},
			}, nil
		},
	}
	svc := NewLocationService(locations, &fakeCrimeStore{})

	hotspots, err := svc.GetHotspots(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, hotspots, 3)

	assert.InDelta(t, 0.144, hotspots[0].RiskScore, 1e-9)
	assert.InDelta(t, 0.35, hotspots[1].RiskScore, 1e-9)
	assert.Equal(t, 1.0, hotspots[2].RiskScore)
}

func TestCreateLocationRejectsUnknownType(t *testing.T) {
	svc := NewLocationService(&fakeLocationStore{}, &fakeCrimeStore{})

	_, err := svc.CreateLocation(context.Background(), models.LocationCreateRequest{
		Name:         "Orbital Platform",
		LocationType: "Space Station",
		EnvRisk:      0.5,
	})
	assert.ErrorIs(t, err, ErrInvalidLocationType)
}

func TestCreateLocationAssignsIDAndRiskLevel(t *testing.T) {
	var saved models.Location
	locations := &fakeLocationStore{
		create: func(loc models.Location) (*models.Location, error) {
			saved = loc
			return &loc, nil
		},
	}
	svc := NewLocationService(locations, &fakeCrimeStore{})

	created, err := svc.CreateLocation(context.Background(), models.LocationCreateRequest{
		Name:         "Corner Cafe",
		LocationType: "Cafe",
		EnvRisk:      0.1,
		Coordinates:  models.Coordinates{Latitude: 40.7, Longitude: -74.0},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Contains(t, saved.ID, "loc-")
	assert.Equal(t, 40.7, saved.Latitude)
	assert.Equal(t, "LOW", created.RiskLevel)
}

func TestGetStatisticsEnrichesTopCrimeType(t *testing.T) {
	locations := &fakeLocationStore{
		statistics: func() (*models.LocationStatistics, error) {
			return &models.LocationStatistics{TotalLocations: 30}, nil
		},
		findHotspots: func(limit int) ([]models.Hotspot, error) {
			return []models.Hotspot{{Name: "Foundry Dark Alley"}}, nil
		},
	}
	crimes := &fakeCrimeStore{
		countByType: func() (map[string]int, error) {
			return map[string]int{"Theft": 12, "Robbery": 30, "Assault": 30}, nil
		},
	}
	svc := NewLocationService(locations, crimes)

	stats, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Foundry Dark Alley", stats.HighestRiskLocation)
	// tie between Robbery and Assault breaks alphabetically
	assert.Equal(t, "Assault", stats.TopCrimeType)
}
