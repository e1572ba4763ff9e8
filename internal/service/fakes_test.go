package service

import (
	"context"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
	"github.com/precrime-dept/precrime-backend-go/internal/repository"
)

// fakeLocationStore implements LocationStore with function fields so each
// test only wires the calls it cares about.
type fakeLocationStore struct {
	findAll      func(since string) ([]models.Location, error)
	findByID     func(id, since string) (*models.Location, error)
	findByName   func(name, since string) (*models.Location, error)
	findHotspots func(limit int) ([]models.Hotspot, error)
	create       func(loc models.Location) (*models.Location, error)
	statistics   func() (*models.LocationStatistics, error)
}

func (f *fakeLocationStore) FindAll(_ context.Context, since string) ([]models.Location, error) {
	return f.findAll(since)
}

func (f *fakeLocationStore) FindByID(_ context.Context, id, since string) (*models.Location, error) {
	return f.findByID(id, since)
}

func (f *fakeLocationStore) FindByName(_ context.Context, name, since string) (*models.Location, error) {
	return f.findByName(name, since)
}

func (f *fakeLocationStore) FindHotspots(_ context.Context, limit int) ([]models.Hotspot, error) {
	return f.findHotspots(limit)
}

func (f *fakeLocationStore) Create(_ context.Context, loc models.Location) (*models.Location, error) {
	return f.create(loc)
}

func (f *fakeLocationStore) Statistics(_ context.Context) (*models.LocationStatistics, error) {
	return f.statistics()
}

type fakeCrimeStore struct {
	findAll             func(limit int) ([]models.Crime, error)
	findByID            func(id string) (*models.Crime, error)
	findRecent          func(since string, limit int) ([]models.Crime, error)
	findByType          func(crimeType, since string) ([]models.Crime, error)
	findByLocation      func(locationID string, limit int) ([]models.Crime, error)
	findByLocationSince func(locationID, since string) ([]models.Crime, error)
	findByPerpetrator   func(citizenID int64, limit int) ([]models.Crime, error)
	create              func(crime models.Crime, req models.CrimeCreateRequest) (*models.Crime, error)
	markInvestigated    func(id string) error
	countByType         func() (map[string]int, error)
	statistics          func(since string) (*models.CrimeStatistics, error)
	timeline            func(since string) ([]repository.DailyCount, error)
	relatedCitizens     func(id string) (int, error)
}

func (f *fakeCrimeStore) FindAll(_ context.Context, limit int) ([]models.Crime, error) {
	return f.findAll(limit)
}

func (f *fakeCrimeStore) FindByID(_ context.Context, id string) (*models.Crime, error) {
	return f.findByID(id)
}

func (f *fakeCrimeStore) FindRecent(_ context.Context, since string, limit int) ([]models.Crime, error) {
	return f.findRecent(since, limit)
}

func (f *fakeCrimeStore) FindByType(_ context.Context, crimeType, since string) ([]models.Crime, error) {
	return f.findByType(crimeType, since)
}

func (f *fakeCrimeStore) FindByLocation(_ context.Context, locationID string, limit int) ([]models.Crime, error) {
	return f.findByLocation(locationID, limit)
}

func (f *fakeCrimeStore) FindByLocationSince(_ context.Context, locationID, since string) ([]models.Crime, error) {
	return f.findByLocationSince(locationID, since)
}

func (f *fakeCrimeStore) FindByPerpetrator(_ context.Context, citizenID int64, limit int) ([]models.Crime, error) {
	return f.findByPerpetrator(citizenID, limit)
}

func (f *fakeCrimeStore) Create(_ context.Context, crime models.Crime, req models.CrimeCreateRequest) (*models.Crime, error) {
	return f.create(crime, req)
}

func (f *fakeCrimeStore) MarkInvestigated(_ context.Context, id string) error {
	return f.markInvestigated(id)
}

func (f *fakeCrimeStore) CountByType(_ context.Context) (map[string]int, error) {
	return f.countByType()
}

func (f *fakeCrimeStore) Statistics(_ context.Context, since string) (*models.CrimeStatistics, error) {
	return f.statistics(since)
}

func (f *fakeCrimeStore) Timeline(_ context.Context, since string) ([]repository.DailyCount, error) {
	return f.timeline(since)
}

func (f *fakeCrimeStore) RelatedCitizens(_ context.Context, id string) (int, error) {
	return f.relatedCitizens(id)
}

type fakeCitizenStore struct {
	findAll      func(limit, offset int) ([]models.Citizen, error)
	findByID     func(id int64) (*models.Citizen, error)
	findByName   func(name string, limit int) ([]models.Citizen, error)
	findSuspects func(watchlist, intervene float64, limit int) ([]models.Suspect, error)
	findNetwork  func(id int64, depth, limit int) ([]models.NetworkConnection, error)
	exists       func(id int64) (bool, error)
	create       func(req models.CitizenCreateRequest) (*models.Citizen, error)
	updateStatus func(id int64, status string) error
	countAll     func() (int, error)
}

func (f *fakeCitizenStore) FindAll(_ context.Context, limit, offset int) ([]models.Citizen, error) {
	return f.findAll(limit, offset)
}

func (f *fakeCitizenStore) FindByID(_ context.Context, id int64) (*models.Citizen, error) {
	return f.findByID(id)
}

func (f *fakeCitizenStore) FindByName(_ context.Context, name string, limit int) ([]models.Citizen, error) {
	return f.findByName(name, limit)
}

func (f *fakeCitizenStore) FindSuspects(_ context.Context, watchlist, intervene float64, limit int) ([]models.Suspect, error) {
	return f.findSuspects(watchlist, intervene, limit)
}

func (f *fakeCitizenStore) FindNetwork(_ context.Context, id int64, depth, limit int) ([]models.NetworkConnection, error) {
	return f.findNetwork(id, depth, limit)
}

func (f *fakeCitizenStore) Exists(_ context.Context, id int64) (bool, error) {
	return f.exists(id)
}

func (f *fakeCitizenStore) Create(_ context.Context, req models.CitizenCreateRequest) (*models.Citizen, error) {
	return f.create(req)
}

func (f *fakeCitizenStore) UpdateStatus(_ context.Context, id int64, status string) error {
	return f.updateStatus(id, status)
}

func (f *fakeCitizenStore) CountAll(_ context.Context) (int, error) {
	return f.countAll()
}
