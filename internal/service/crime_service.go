package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
	"github.com/precrime-dept/precrime-backend-go/internal/repository"
	"github.com/precrime-dept/precrime-backend-go/internal/risk"
)

// CrimeStore is the crime persistence contract.
type CrimeStore interface {
	FindAll(ctx context.Context, limit int) ([]models.Crime, error)
	FindByID(ctx context.Context, id string) (*models.Crime, error)
	FindRecent(ctx context.Context, since string, limit int) ([]models.Crime, error)
	FindByType(ctx context.Context, crimeType, since string) ([]models.Crime, error)
	FindByLocation(ctx context.Context, locationID string, limit int) ([]models.Crime, error)
	FindByLocationSince(ctx context.Context, locationID, since string) ([]models.Crime, error)
	FindByPerpetrator(ctx context.Context, citizenID int64, limit int) ([]models.Crime, error)
	Create(ctx context.Context, crime models.Crime, req models.CrimeCreateRequest) (*models.Crime, error)
	MarkInvestigated(ctx context.Context, id string) error
	CountByType(ctx context.Context) (map[string]int, error)
	Statistics(ctx context.Context, since string) (*models.CrimeStatistics, error)
	Timeline(ctx context.Context, since string) ([]repository.DailyCount, error)
	RelatedCitizens(ctx context.Context, id string) (int, error)
}

// CrimeService handles business logic for recorded crimes
type CrimeService struct {
	crimes    CrimeStore
	locations LocationStore
}

// NewCrimeService creates a new crime service
func NewCrimeService(crimes CrimeStore, locations LocationStore) *CrimeService {
	return &CrimeService{crimes: crimes, locations: locations}
}

// GetCrimes returns the most recent crimes up to limit.
func (s *CrimeService) GetCrimes(ctx context.Context, limit int) ([]models.Crime, error) {
	return s.crimes.FindAll(ctx, limit)
}

// GetCrimeByID returns a full report for one crime, including the estimated
// risk impact on its location.
func (s *CrimeService) GetCrimeByID(ctx context.Context, id string) (*models.CrimeReport, error) {
	crime, err := s.crimes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildReport(ctx, crime)
}

// GetRecentCrimes returns crimes within a trailing window of days.
func (s *CrimeService) GetRecentCrimes(ctx context.Context, days, limit int) ([]models.Crime, error) {
	return s.crimes.FindRecent(ctx, sinceDate(days), limit)
}

// GetCrimesByType returns crimes of one type within a trailing window.
func (s *CrimeService) GetCrimesByType(ctx context.Context, crimeType string, days int) ([]models.Crime, error) {
	if !models.ValidCrimeType(crimeType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCrimeType, crimeType)
	}
	return s.crimes.FindByType(ctx, crimeType, sinceDate(days))
}

// GetCrimesByLocation returns crimes hosted by one location.
func (s *CrimeService) GetCrimesByLocation(ctx context.Context, locationID string, limit int) ([]models.Crime, error) {
	return s.crimes.FindByLocation(ctx, locationID, limit)
}

// GetCrimesByPerpetrator returns the criminal record of a citizen.
func (s *CrimeService) GetCrimesByPerpetrator(ctx context.Context, citizenID int64, limit int) ([]models.Crime, error) {
	return s.crimes.FindByPerpetrator(ctx, citizenID, limit)
}

// ReportCrime files a new crime and estimates its impact on local risk.
func (s *CrimeService) ReportCrime(ctx context.Context, req models.CrimeCreateRequest) (*models.CrimeReport, error) {
	if !models.ValidCrimeType(req.CrimeType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCrimeType, req.CrimeType)
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid crime date %q: %w", req.Date, err)
	}
	if date.After(time.Now()) {
		return nil, ErrFutureDate
	}

	crime := models.Crime{
		ID:          newCrimeID(),
		Date:        req.Date,
		CrimeType:   req.CrimeType,
		Severity:    req.Severity,
		Description: req.Description,
	}

	created, err := s.crimes.Create(ctx, crime, req)
	if err != nil {
		return nil, err
	}
	return s.buildReport(ctx, created)
}

// MarkInvestigated flags a crime as investigated. Already investigated crimes
// are accepted without change.
func (s *CrimeService) MarkInvestigated(ctx context.Context, id string) error {
	return s.crimes.MarkInvestigated(ctx, id)
}

// GetStatistics aggregates crimes over a trailing window of days.
func (s *CrimeService) GetStatistics(ctx context.Context, days int) (*models.CrimeStatistics, error) {
	stats, err := s.crimes.Statistics(ctx, sinceDate(days))
	if err != nil {
		return nil, err
	}
	counts, err := s.crimes.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	stats.CrimesByType = counts
	stats.DateRange = windowRange(days)
	return stats, nil
}

// GetTimeline returns the daily crime series over a trailing window together
// with the detected trend direction. The trend compares the halves of the
// whole window, so days without crimes count as zeros; the entries list stays
// sparse and only carries days with activity.
func (s *CrimeService) GetTimeline(ctx context.Context, days int) (*models.CrimeTimeline, error) {
	daily, err := s.crimes.Timeline(ctx, sinceDate(days))
	if err != nil {
		return nil, err
	}

	entries := make([]models.TimelineEntry, 0, len(daily))
	byDate := make(map[string]int, len(daily))
	total := 0
	for _, day := range daily {
		entries = append(entries, models.TimelineEntry{
			Date:              day.Date,
			CrimesCount:       day.CrimesCount,
			TotalSeverity:     day.TotalSeverity,
			AffectedLocations: day.AffectedLocations,
			PrimaryCrimeType:  primaryType(day.Types),
		})
		byDate[day.Date] = day.CrimesCount
		total += day.CrimesCount
	}

	// zero-fill the window so silent days weigh on the trend
	now := time.Now()
	series := make([]int, 0, days+1)
	for d := -days; d <= 0; d++ {
		series = append(series, byDate[now.AddDate(0, 0, d).Format(dateLayout)])
	}

	return &models.CrimeTimeline{
		Entries:     entries,
		Trend:       string(risk.DetectTrend(series)),
		PeriodDays:  days,
		TotalCrimes: total,
	}, nil
}

func (s *CrimeService) buildReport(ctx context.Context, crime *models.Crime) (*models.CrimeReport, error) {
	factor := 1.0
	if crime.LocationName != "" {
		loc, err := s.locations.FindByName(ctx, crime.LocationName, sinceDate(recentWindowDays))
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if loc != nil {
			factor = risk.LocationFactor(loc.HistoricalCrimeCount)
		}
	}

	related, err := s.crimes.RelatedCitizens(ctx, crime.ID)
	if err != nil {
		return nil, err
	}

	status := "OPEN"
	if crime.Investigated {
		status = "INVESTIGATED"
	}

	return &models.CrimeReport{
		Crime:                *crime,
		RiskImpact:           risk.CrimeImpact(crime.Severity, factor),
		RelatedCitizensCount: related,
		InvestigationStatus:  status,
	}, nil
}

// newCrimeID mints a short unique crime id like crime_3fa09c21.
func newCrimeID() string {
	return fmt.Sprintf("crime_%.8s", uuid.NewString())
}

// primaryType returns the most frequent crime type of a day. Ties break
// alphabetically so the result is stable.
func primaryType(types []string) string {
	counts := make(map[string]int, len(types))
	for _, t := range types {
		counts[t]++
	}
	best, bestCount := "", 0
	for t, n := range counts {
		if n > bestCount || (n == bestCount && t < best) {
			best, bestCount = t, n
		}
	}
	return best
}
