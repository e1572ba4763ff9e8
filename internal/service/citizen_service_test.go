package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
	"github.com/precrime-dept/precrime-backend-go/internal/repository"
)

func newCitizenService(store CitizenStore) *CitizenService {
	return NewCitizenService(store, 0.60, 0.85, 2026)
}

func TestGetCitizenByIDFlagsHighRisk(t *testing.T) {
	store := &fakeCitizenStore{
		findByID: func(id int64) (*models.Citizen, error) {
			return &models.Citizen{ID: id, Name: "Leon Crow", RiskSeed: 0.72, Status: models.StatusActive}, nil
		},
	}
	svc := newCitizenService(store)

	citizen, err := svc.GetCitizenByID(context.Background(), 7)
	require.NoError(t, err)

	assert.True(t, citizen.IsHighRisk)
	assert.Equal(t, "No restrictions", citizen.StatusSummary)
}

func TestGetCitizensBelowThresholdNotFlagged(t *testing.T) {
	store := &fakeCitizenStore{
		findAll: func(limit, offset int) ([]models.Citizen, error) {
			return []models.Citizen{
				{ID: 1, RiskSeed: 0.59, Status: models.StatusActive},
				{ID: 2, RiskSeed: 0.60, Status: models.StatusWatchlist},
			}, nil
		},
		countAll: func() (int, error) { return 2, nil },
	}
	svc := newCitizenService(store)

	citizens, total, err := svc.GetCitizens(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, citizens, 2)
	assert.Equal(t, 2, total)

	assert.False(t, citizens[0].IsHighRisk)
	assert.True(t, citizens[1].IsHighRisk)
	assert.Equal(t, "Under active surveillance", citizens[1].StatusSummary)
}

func TestGetCitizensTotalCoversAllPages(t *testing.T) {
	store := &fakeCitizenStore{
		findAll: func(limit, offset int) ([]models.Citizen, error) {
			assert.Equal(t, 2, limit)
			assert.Equal(t, 4, offset)
			return []models.Citizen{{ID: 5}, {ID: 6}}, nil
		},
		countAll: func() (int, error) { return 200, nil },
	}
	svc := newCitizenService(store)

	citizens, total, err := svc.GetCitizens(context.Background(), 2, 4)
	require.NoError(t, err)
	assert.Len(t, citizens, 2)
	assert.Equal(t, 200, total)
}

func TestGetSuspectsUsesConfiguredThresholds(t *testing.T) {
	store := &fakeCitizenStore{
		findSuspects: func(watchlist, intervene float64, limit int) ([]models.Suspect, error) {
			assert.Equal(t, 0.60, watchlist)
			assert.Equal(t, 0.85, intervene)
			assert.Equal(t, 20, limit)
			return []models.Suspect{
				{ID: 9, Name: "Leon Crow", AssociatedCriminals: 4, Tier: models.TierIntervene},
				{ID: 3, Name: "Ada Marks", AssociatedCriminals: 1, Tier: models.TierMonitor},
			}, nil
		},
	}
	svc := newCitizenService(store)

	suspects, err := svc.GetSuspects(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, suspects, 2)
	assert.Equal(t, int64(9), suspects[0].ID)
	assert.Equal(t, models.TierIntervene, suspects[0].Tier)
	assert.Equal(t, models.TierMonitor, suspects[1].Tier)
}

func TestGetNetworkComputesCriminalDensity(t *testing.T) {
	store := &fakeCitizenStore{
		exists: func(id int64) (bool, error) { return true, nil },
		findNetwork: func(id int64, depth, limit int) ([]models.NetworkConnection, error) {
			assert.Equal(t, 2, depth)
			return []models.NetworkConnection{
				{ID: 2, IsCriminal: true},
				{ID: 3, IsCriminal: true},
				{ID: 4, IsCriminal: false},
				{ID: 5, IsCriminal: false},
			}, nil
		},
	}
	svc := newCitizenService(store)

	network, err := svc.GetNetwork(context.Background(), 1, 2, 200)
	require.NoError(t, err)

	assert.Equal(t, 4, network.Total)
	assert.InDelta(t, 50.0, network.CriminalPercentage, 1e-9)
	assert.Contains(t, network.RiskAnalysis, "ELEVATED")
}

func TestGetNetworkMajorityCriminalIsHighRisk(t *testing.T) {
	store := &fakeCitizenStore{
		exists: func(id int64) (bool, error) { return true, nil },
		findNetwork: func(id int64, depth, limit int) ([]models.NetworkConnection, error) {
			return []models.NetworkConnection{
				{ID: 2, IsCriminal: true},
				{ID: 3, IsCriminal: true},
				{ID: 4, IsCriminal: false},
			}, nil
		},
	}
	svc := newCitizenService(store)

	network, err := svc.GetNetwork(context.Background(), 1, 1, 200)
	require.NoError(t, err)
	assert.Contains(t, network.RiskAnalysis, "HIGH RISK")
}

func TestGetNetworkValidatesDepth(t *testing.T) {
	svc := newCitizenService(&fakeCitizenStore{})

	_, err := svc.GetNetwork(context.Background(), 1, 0, 200)
	assert.ErrorIs(t, err, ErrInvalidDepth)

	_, err = svc.GetNetwork(context.Background(), 1, 4, 200)
	assert.ErrorIs(t, err, ErrInvalidDepth)
}

func TestGetNetworkUnknownCitizen(t *testing.T) {
	store := &fakeCitizenStore{
		exists: func(id int64) (bool, error) { return false, nil },
	}
	svc := newCitizenService(store)

	_, err := svc.GetNetwork(context.Background(), 999, 1, 200)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRegisterCitizenValidatesBirthYear(t *testing.T) {
	svc := newCitizenService(&fakeCitizenStore{})

	_, err := svc.RegisterCitizen(context.Background(), models.CitizenCreateRequest{
		Name: "Ada Marks", Born: 1899,
	})
	assert.ErrorIs(t, err, ErrInvalidBirthYear)

	_, err = svc.RegisterCitizen(context.Background(), models.CitizenCreateRequest{
		Name: "Ada Marks", Born: 2027,
	})
	assert.ErrorIs(t, err, ErrInvalidBirthYear)
}

func TestRegisterCitizenDefaults(t *testing.T) {
	store := &fakeCitizenStore{
		create: func(req models.CitizenCreateRequest) (*models.Citizen, error) {
			return &models.Citizen{ID: 42, Name: req.Name, Born: req.Born, Status: models.StatusActive}, nil
		},
	}
	svc := newCitizenService(store)

	citizen, err := svc.RegisterCitizen(context.Background(), models.CitizenCreateRequest{
		Name: "Ada Marks", Born: 1990,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), citizen.ID)
	assert.False(t, citizen.IsHighRisk)
	assert.Equal(t, "No restrictions", citizen.StatusSummary)
}

func TestUpdateStatusValidates(t *testing.T) {
	svc := newCitizenService(&fakeCitizenStore{})

	err := svc.UpdateStatus(context.Background(), 1, "FUGITIVE")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusPassesThrough(t *testing.T) {
	var gotID int64
	var gotStatus string
	store := &fakeCitizenStore{
		updateStatus: func(id int64, status string) error {
			gotID, gotStatus = id, status
			return nil
		},
	}
	svc := newCitizenService(store)

	require.NoError(t, svc.UpdateStatus(context.Background(), 5, models.StatusDetained))
	assert.Equal(t, int64(5), gotID)
	assert.Equal(t, models.StatusDetained, gotStatus)
}
