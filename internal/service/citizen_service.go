package service

import (
	"context"
	"fmt"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
	"github.com/precrime-dept/precrime-backend-go/internal/repository"
)

// CitizenStore is the citizen persistence contract.
type CitizenStore interface {
	FindAll(ctx context.Context, limit, offset int) ([]models.Citizen, error)
	FindByID(ctx context.Context, id int64) (*models.Citizen, error)
	FindByName(ctx context.Context, name string, limit int) ([]models.Citizen, error)
	FindSuspects(ctx context.Context, watchlist, intervene float64, limit int) ([]models.Suspect, error)
	FindNetwork(ctx context.Context, id int64, depth, limit int) ([]models.NetworkConnection, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, req models.CitizenCreateRequest) (*models.Citizen, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	CountAll(ctx context.Context) (int, error)
}

// CitizenService handles business logic for registered citizens
type CitizenService struct {
	citizens CitizenStore

	watchlistThreshold float64
	interveneThreshold float64
	currentYear        int
}

// NewCitizenService creates a new citizen service. The watchlist threshold is
// the risk seed value above which a citizen is flagged high risk; the
// intervene threshold marks the upper suspect tier.
func NewCitizenService(citizens CitizenStore, watchlistThreshold, interveneThreshold float64, currentYear int) *CitizenService {
	return &CitizenService{
		citizens:           citizens,
		watchlistThreshold: watchlistThreshold,
		interveneThreshold: interveneThreshold,
		currentYear:        currentYear,
	}
}

// GetCitizens returns a page of citizens plus the total registered count for
// pagination.
func (s *CitizenService) GetCitizens(ctx context.Context, limit, offset int) ([]models.Citizen, int, error) {
	citizens, err := s.citizens.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.citizens.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	for i := range citizens {
		s.enrich(&citizens[i])
	}
	return citizens, total, nil
}

// GetCitizenByID returns a single citizen with derived risk fields.
func (s *CitizenService) GetCitizenByID(ctx context.Context, id int64) (*models.Citizen, error) {
	citizen, err := s.citizens.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.enrich(citizen)
	return citizen, nil
}

// SearchCitizens finds citizens by name fragment.
func (s *CitizenService) SearchCitizens(ctx context.Context, name string, limit int) ([]models.Citizen, error) {
	citizens, err := s.citizens.FindByName(ctx, name, limit)
	if err != nil {
		return nil, err
	}
	for i := range citizens {
		s.enrich(&citizens[i])
	}
	return citizens, nil
}

// GetSuspects returns the watchlist: citizens at or above the risk threshold,
// most dangerous first, tiered MONITOR or INTERVENE.
func (s *CitizenService) GetSuspects(ctx context.Context, limit int) ([]models.Suspect, error) {
	return s.citizens.FindSuspects(ctx, s.watchlistThreshold, s.interveneThreshold, limit)
}

// GetNetwork returns the social neighborhood of a citizen with a risk
// assessment of its criminal density. Depth is limited to 3 hops.
func (s *CitizenService) GetNetwork(ctx context.Context, id int64, depth, limit int) (*models.CitizenNetwork, error) {
	if depth < 1 || depth > 3 {
		return nil, ErrInvalidDepth
	}

	exists, err := s.citizens.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrNotFound
	}

	connections, err := s.citizens.FindNetwork(ctx, id, depth, limit)
	if err != nil {
		return nil, err
	}

	criminals := 0
	for _, conn := range connections {
		if conn.IsCriminal {
			criminals++
		}
	}
	pct := 0.0
	if len(connections) > 0 {
		pct = float64(criminals) / float64(len(connections)) * 100
	}

	return &models.CitizenNetwork{
		CitizenID:          id,
		Connections:        connections,
		Total:              len(connections),
		CriminalPercentage: pct,
		RiskAnalysis:       networkRiskAnalysis(pct),
	}, nil
}

// RegisterCitizen registers a new citizen after validating the birth year.
func (s *CitizenService) RegisterCitizen(ctx context.Context, req models.CitizenCreateRequest) (*models.Citizen, error) {
	if req.Born < 1900 || req.Born > s.currentYear {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBirthYear, req.Born)
	}

	citizen, err := s.citizens.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.enrich(citizen)
	return citizen, nil
}

// UpdateStatus changes a citizen's status, the only mutable citizen field.
func (s *CitizenService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !models.ValidCitizenStatus(status) {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return s.citizens.UpdateStatus(ctx, id, status)
}

func (s *CitizenService) enrich(c *models.Citizen) {
	if c == nil {
		return
	}
	c.IsHighRisk = c.RiskSeed >= s.watchlistThreshold
	c.StatusSummary = statusSummary(c.Status)
}

func statusSummary(status string) string {
	switch status {
	case models.StatusWatchlist:
		return "Under active surveillance"
	case models.StatusDetained:
		return "In custody pending review"
	case models.StatusCleared:
		return "Cleared of prior suspicion"
	default:
		return "No restrictions"
	}
}

// networkRiskAnalysis grades the criminal density of a social neighborhood.
func networkRiskAnalysis(criminalPct float64) string {
	switch {
	case criminalPct > 50:
		return "HIGH RISK: majority of network has criminal records"
	case criminalPct > 25:
		return "ELEVATED: significant criminal presence in network"
	case criminalPct > 0:
		return "MODERATE: some criminal contacts detected"
	default:
		return "LOW: no criminal contacts detected"
	}
}
