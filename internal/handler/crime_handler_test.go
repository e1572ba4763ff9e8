package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
	"github.com/precrime-dept/precrime-backend-go/internal/repository"
	"github.com/precrime-dept/precrime-backend-go/internal/service"
)

// stubCrimeStore satisfies service.CrimeStore with empty results so tests
// only override what they exercise.
type stubCrimeStore struct{}

func (stubCrimeStore) FindAll(context.Context, int) ([]models.Crime, error) { return nil, nil }
func (stubCrimeStore) FindByID(context.Context, string) (*models.Crime, error) {
	return nil, repository.ErrNotFound
}
func (stubCrimeStore) FindRecent(context.Context, string, int) ([]models.Crime, error) {
	return nil, nil
}
func (stubCrimeStore) FindByType(context.Context, string, string) ([]models.Crime, error) {
	return nil, nil
}
func (stubCrimeStore) FindByLocation(context.Context, string, int) ([]models.Crime, error) {
	return nil, nil
}
func (stubCrimeStore) FindByLocationSince(context.Context, string, string) ([]models.Crime, error) {
	return nil, nil
}
func (stubCrimeStore) FindByPerpetrator(context.Context, int64, int) ([]models.Crime, error) {
	return nil, nil
}
func (stubCrimeStore) Create(_ context.Context, crime models.Crime, _ models.CrimeCreateRequest) (*models.Crime, error) {
	return &crime, nil
}
func (stubCrimeStore) MarkInvestigated(context.Context, string) error { return nil }
func (stubCrimeStore) CountByType(context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}
func (stubCrimeStore) Statistics(context.Context, string) (*models.CrimeStatistics, error) {
	return &models.CrimeStatistics{}, nil
}
func (stubCrimeStore) Timeline(context.Context, string) ([]repository.DailyCount, error) {
	return nil, nil
}
func (stubCrimeStore) RelatedCitizens(context.Context, string) (int, error) { return 0, nil }

// stubLocationStore satisfies service.LocationStore.
type stubLocationStore struct{}

func (stubLocationStore) FindAll(context.Context, string) ([]models.Location, error) {
	return nil, nil
}
func (stubLocationStore) FindByID(context.Context, string, string) (*models.Location, error) {
	return nil, repository.ErrNotFound
}
func (stubLocationStore) FindByName(context.Context, string, string) (*models.Location, error) {
	return nil, repository.ErrNotFound
}
func (stubLocationStore) FindHotspots(context.Context, int) ([]models.Hotspot, error) {
	return nil, nil
}
func (stubLocationStore) Create(_ context.Context, loc models.Location) (*models.Location, error) {
	return &loc, nil
}
func (stubLocationStore) Statistics(context.Context) (*models.LocationStatistics, error) {
	return &models.LocationStatistics{}, nil
}

// investigationStore tracks the investigated flag like the graph does.
type investigationStore struct {
	stubCrimeStore
	flags map[string]bool
}

func (s *investigationStore) MarkInvestigated(_ context.Context, id string) error {
	if _, ok := s.flags[id]; !ok {
		return repository.ErrNotFound
	}
	s.flags[id] = true
	return nil
}

func crimeRouter(store service.CrimeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCrimeHandler(service.NewCrimeService(store, stubLocationStore{}))
	r := gin.New()
	r.POST("/crimes/:id/mark-investigated", h.MarkInvestigated)
	return r
}

func TestMarkInvestigatedTwiceSucceedsBothTimes(t *testing.T) {
	store := &investigationStore{flags: map[string]bool{"crime_aa11bb22": false}}
	r := crimeRouter(store)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/crimes/crime_aa11bb22/mark-investigated", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "call %d", i+1)
		assert.Contains(t, w.Body.String(), `"investigated":true`)
	}
	assert.True(t, store.flags["crime_aa11bb22"])
}

func TestMarkInvestigatedUnknownCrime(t *testing.T) {
	store := &investigationStore{flags: map[string]bool{}}
	r := crimeRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/crimes/crime_missing/mark-investigated", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
