package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
	"github.com/precrime-dept/precrime-backend-go/internal/repository"
)

func TestReportCrimeRejectsUnknownType(t *testing.T) {
	svc := NewCrimeService(&fakeCrimeStore{}, &fakeLocationStore{})

	_, err := svc.ReportCrime(context.Background(), models.CrimeCreateRequest{
		Date:       "2026-01-15",
		CrimeType:  "Jaywalking",
		Severity:   2,
		LocationID: "loc-1",
	})
	assert.ErrorIs(t, err, ErrInvalidCrimeType)
}

func TestReportCrimeRejectsFutureDate(t *testing.T) {
	svc := NewCrimeService(&fakeCrimeStore{}, &fakeLocationStore{})

	future := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	_, err := svc.ReportCrime(context.Background(), models.CrimeCreateRequest{
		Date:       future,
		CrimeType:  "Theft",
		Severity:   3,
		LocationID: "loc-1",
	})
	assert.ErrorIs(t, err, ErrFutureDate)
}

func TestReportCrimeComputesAmplifiedImpact(t *testing.T) {
	crimes := &fakeCrimeStore{
		create: func(crime models.Crime, req models.CrimeCreateRequest) (*models.Crime, error) {
			crime.LocationName = "First National Bank"
			return &crime, nil
		},
		relatedCitizens: func(id string) (int, error) { return 3, nil },
	}
	locations := &fakeLocationStore{
		findByName: func(name, since string) (*models.Location, error) {
			return &models.Location{Name: name, HistoricalCrimeCount: 12}, nil
		},
	}
	svc := NewCrimeService(crimes, locations)

	report, err := svc.ReportCrime(context.Background(), models.CrimeCreateRequest{
		Date:       "2026-01-15",
		CrimeType:  "Robbery",
		Severity:   6,
		LocationID: "loc-1",
	})
	require.NoError(t, err)

	// 6/10 * 1.5 = 0.9 with the high-history amplifier
	assert.InDelta(t, 0.9, report.RiskImpact, 1e-9)
	assert.Equal(t, 3, report.RelatedCitizensCount)
	assert.Equal(t, "OPEN", report.InvestigationStatus)
	assert.Regexp(t, `^crime_[0-9a-f]{8}$`, report.Crime.ID)
}

func TestReportCrimeImpactIsCapped(t *testing.T) {
	crimes := &fakeCrimeStore{
		create: func(crime models.Crime, req models.CrimeCreateRequest) (*models.Crime, error) {
			crime.LocationName = "Pier 4 Warehouse"
			return &crime, nil
		},
		relatedCitizens: func(id string) (int, error) { return 0, nil },
	}
	locations := &fakeLocationStore{
		findByName: func(name, since string) (*models.Location, error) {
			return &models.Location{Name: name, HistoricalCrimeCount: 50}, nil
		},
	}
	svc := NewCrimeService(crimes, locations)

	report, err := svc.ReportCrime(context.Background(), models.CrimeCreateRequest{
		Date:       "2026-02-01",
		CrimeType:  "Arson",
		Severity:   10,
		LocationID: "loc-2",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, report.RiskImpact)
}

func TestReportCrimePropagatesMissingLocation(t *testing.T) {
	crimes := &fakeCrimeStore{
		create: func(crime models.Crime, req models.CrimeCreateRequest) (*models.Crime, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewCrimeService(crimes, &fakeLocationStore{})

	_, err := svc.ReportCrime(context.Background(), models.CrimeCreateRequest{
		Date:       "2026-01-15",
		CrimeType:  "Theft",
		Severity:   3,
		LocationID: "loc-missing",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetCrimeByIDBuildsReport(t *testing.T) {
	crimes := &fakeCrimeStore{
		findByID: func(id string) (*models.Crime, error) {
			return &models.Crime{
				ID:           id,
				Severity:     4,
				LocationName: "Arcadia Park",
				Investigated: true,
			}, nil
		},
		relatedCitizens: func(id string) (int, error) { return 2, nil },
	}
	locations := &fakeLocationStore{
		findByName: func(name, since string) (*models.Location, error) {
			return &models.Location{Name: name, HistoricalCrimeCount: 2}, nil
		},
	}
	svc := NewCrimeService(crimes, locations)

	report, err := svc.GetCrimeByID(context.Background(), "crime-7")
	require.NoError(t, err)

	assert.InDelta(t, 0.4, report.RiskImpact, 1e-9)
	assert.Equal(t, "INVESTIGATED", report.InvestigationStatus)
}

func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format("2006-01-02")
}

func TestGetTimelineDetectsTrendAndPrimaryType(t *testing.T) {
	crimes := &fakeCrimeStore{
		timeline: func(since string) ([]repository.DailyCount, error) {
			return []repository.DailyCount{
				{Date: daysAgo(3), CrimesCount: 1, Types: []string{"Theft"}},
				{Date: daysAgo(2), CrimesCount: 2, Types: []string{"Theft", "Robbery"}},
				{Date: daysAgo(1), CrimesCount: 4, Types: []string{"Robbery", "Robbery", "Assault", "Theft"}},
				{Date: daysAgo(0), CrimesCount: 6, Types: []string{"Assault"}},
			}, nil
		},
	}
	svc := NewCrimeService(crimes, &fakeLocationStore{})

	timeline, err := svc.GetTimeline(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "UP", timeline.Trend)
	assert.Equal(t, 13, timeline.TotalCrimes)
	assert.Equal(t, 7, timeline.PeriodDays)
	require.Len(t, timeline.Entries, 4)
	assert.Equal(t, "Theft", timeline.Entries[0].PrimaryCrimeType)
	assert.Equal(t, "Robbery", timeline.Entries[2].PrimaryCrimeType)
	// ties break alphabetically
	assert.Equal(t, "Robbery", timeline.Entries[1].PrimaryCrimeType)
}

func TestGetTimelineSilentDaysWeighOnTrend(t *testing.T) {
	// two rising days at the very start of a 30-day window, then silence:
	// the window as a whole is trending down, not up
	crimes := &fakeCrimeStore{
		timeline: func(since string) ([]repository.DailyCount, error) {
			return []repository.DailyCount{
				{Date: daysAgo(29), CrimesCount: 3, Types: []string{"Theft"}},
				{Date: daysAgo(28), CrimesCount: 5, Types: []string{"Theft"}},
			}, nil
		},
	}
	svc := NewCrimeService(crimes, &fakeLocationStore{})

	timeline, err := svc.GetTimeline(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, "DOWN", timeline.Trend)
	assert.Equal(t, 8, timeline.TotalCrimes)
	require.Len(t, timeline.Entries, 2)
}

func TestGetTimelineEmptyWindowIsStable(t *testing.T) {
	crimes := &fakeCrimeStore{
		timeline: func(since string) ([]repository.DailyCount, error) {
			return nil, nil
		},
	}
	svc := NewCrimeService(crimes, &fakeLocationStore{})

	timeline, err := svc.GetTimeline(context.Background(), 14)
	require.NoError(t, err)

	assert.Equal(t, "STABLE", timeline.Trend)
	assert.Equal(t, 0, timeline.TotalCrimes)
	assert.Empty(t, timeline.Entries)
}

func TestMarkInvestigatedIsIdempotent(t *testing.T) {
	investigated := map[string]bool{"crime_aa11bb22": false}
	crimes := &fakeCrimeStore{
		markInvestigated: func(id string) error {
			if _, ok := investigated[id]; !ok {
				return repository.ErrNotFound
			}
			investigated[id] = true
			return nil
		},
	}
	svc := NewCrimeService(crimes, &fakeLocationStore{})

	require.NoError(t, svc.MarkInvestigated(context.Background(), "crime_aa11bb22"))
	assert.True(t, investigated["crime_aa11bb22"])

	// repeating the call is accepted and leaves the flag set
	require.NoError(t, svc.MarkInvestigated(context.Background(), "crime_aa11bb22"))
	assert.True(t, investigated["crime_aa11bb22"])

	assert.ErrorIs(t, svc.MarkInvestigated(context.Background(), "crime_missing"), repository.ErrNotFound)
}

func TestGetCrimesByTypeValidates(t *testing.T) {
	svc := NewCrimeService(&fakeCrimeStore{}, &fakeLocationStore{})

	_, err := svc.GetCrimesByType(context.Background(), "Loitering", 30)
	assert.ErrorIs(t, err, ErrInvalidCrimeType)
}
