package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
)

// CrimeRepository handles graph access for Crime nodes and their edges to
// citizens and locations.
type CrimeRepository struct {
	driver neo4j.DriverWithContext
}

// NewCrimeRepository creates a new crime repository
func NewCrimeRepository(driver neo4j.DriverWithContext) *CrimeRepository {
	return &CrimeRepository{driver: driver}
}

const crimeReturn = `
	crime.id AS id,
	crime.date AS date,
	crime.crime_type AS crime_type,
	crime.severity AS severity,
	crime.description AS description,
	coalesce(crime.investigated, false) AS investigated,
	perp.name AS perpetrator_name,
	loc.name AS location_name,
	loc.location_type AS location_type,
	crime.created_at AS created_at`

// FindAll returns crimes ordered by date descending.
func (r *CrimeRepository) FindAll(ctx context.Context, limit int) ([]models.Crime, error) {
	query := `
	MATCH (crime:Crime)
	OPTIONAL MATCH (perp:Citizen)-[:PERPETRATOR_OF]->(crime)
	OPTIONAL MATCH (loc:Location)-[:LOCATION_OF]->(crime)
	RETURN` + crimeReturn + `
	ORDER BY crime.date DESC
	LIMIT $limit`

	return r.queryCrimes(ctx, query, map[string]any{"limit": limit})
}

// FindByID returns one crime or ErrNotFound.
func (r *CrimeRepository) FindByID(ctx context.Context, id string) (*models.Crime, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	MATCH (crime:Crime {id: $id})
	OPTIONAL MATCH (perp:Citizen)-[:PERPETRATOR_OF]->(crime)
	OPTIONAL MATCH (loc:Location)-[:LOCATION_OF]->(crime)
	RETURN` + crimeReturn

	result, err := session.Run(ctx, query, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get crime %s: %w", id, err)
	}

	if result.Next(ctx) {
		crime := scanCrime(result.Record())
		return &crime, nil
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crime %s: %w", id, err)
	}
	return nil, ErrNotFound
}

// FindRecent returns crimes on or after the given ISO date.
func (r *CrimeRepository) FindRecent(ctx context.Context, since string, limit int) ([]models.Crime, error) {
	query := `
	MATCH (crime:Crime)
	WHERE crime.date >= $since
	OPTIONAL MATCH (perp:Citizen)-[:PERPETRATOR_OF]->(crime)
	OPTIONAL MATCH (loc:Location)-[:LOCATION_OF]->(crime)
	RETURN` + crimeReturn + `
	ORDER BY crime.date DESC
	LIMIT $limit`

	return r.queryCrimes(ctx, query, map[string]any{"since": since, "limit": limit})
}

// FindByType returns crimes of one type on or after the given ISO date.
func (r *CrimeRepository) FindByType(ctx context.Context, crimeType, since string) ([]models.Crime, error) {
	query := `
	MATCH (crime:Crime {crime_type: $crime_type})
	WHERE crime.date >= $since
	OPTIONAL MATCH (perp:Citizen)-[:PERPETRATOR_OF]->(crime)
	OPTIONAL MATCH (loc:Location)-[:LOCATION_OF]->(crime)
	RETURN` + crimeReturn + `
	ORDER BY crime.date DESC`

	return r.queryCrimes(ctx, query, map[string]any{"crime_type": crimeType, "since": since})
}

// FindByLocation returns crimes hosted by one location.
func (r *CrimeRepository) FindByLocation(ctx context.Context, locationID string, limit int) ([]models.Crime, error) {
	query := `
	MATCH (loc:Location {id: $location_id})-[:LOCATION_OF]->(crime:Crime)
	OPTIONAL MATCH (perp:Citizen)-[:PERPETRATOR_OF]->(crime)
	RETURN` + crimeReturn + `
	ORDER BY crime.date DESC
	LIMIT $limit`

	return r.queryCrimes(ctx, query, map[string]any{"location_id": locationID, "limit": limit})
}

// FindByLocationSince returns crimes at a location on or after an ISO date.
func (r *CrimeRepository) FindByLocationSince(ctx context.Context, locationID, since string) ([]models.Crime, error) {
	query := `
	MATCH (loc:Location {id: $location_id})-[:LOCATION_OF]->(crime:Crime)
	WHERE crime.date >= $since
	OPTIONAL MATCH (perp:Citizen)-[:PERPETRATOR_OF]->(crime)
	RETURN` + crimeReturn + `
	ORDER BY crime.date DESC`

	return r.queryCrimes(ctx, query, map[string]any{"location_id": locationID, "since": since})
}

// FindByPerpetrator returns the criminal record of one citizen.
func (r *CrimeRepository) FindByPerpetrator(ctx context.Context, citizenID int64, limit int) ([]models.Crime, error) {
	query := `
	MATCH (perp:Citizen {id: $citizen_id})-[:PERPETRATOR_OF]->(crime:Crime)
	OPTIONAL MATCH (loc:Location)-[:LOCATION_OF]->(crime)
	RETURN` + crimeReturn + `
	ORDER BY crime.date DESC
	LIMIT $limit`

	return r.queryCrimes(ctx, query, map[string]any{"citizen_id": citizenID, "limit": limit})
}

// Create files a new crime at an existing location and links the optional
// perpetrator, victim and witnesses in the same transaction. Returns
// ErrNotFound when the location does not resolve.
func (r *CrimeRepository) Create(ctx context.Context, crime models.Crime, req models.CrimeCreateRequest) (*models.Crime, error) {
	session := writeSession(ctx, r.driver)
	defer session.Close(ctx)

	created, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
		MATCH (loc:Location {id: $location_id})
		CREATE (crime:Crime {
			id: $id,
			date: $date,
			crime_type: $crime_type,
			severity: $severity,
			description: $description,
			investigated: false,
			created_at: timestamp()
		})
		CREATE (loc)-[:LOCATION_OF]->(crime)
		OPTIONAL MATCH (perp:Citizen)-[:PERPETRATOR_OF]->(crime)
		RETURN`+crimeReturn,
			map[string]any{
				"location_id": req.LocationID,
				"id":          crime.ID,
				"date":        crime.Date,
				"crime_type":  crime.CrimeType,
				"severity":    crime.Severity,
				"description": crime.Description,
			})
		if err != nil {
			return nil, err
		}
		if !result.Next(ctx) {
			if err := result.Err(); err != nil {
				return nil, err
			}
			return nil, ErrNotFound
		}
		saved := scanCrime(result.Record())

		if req.PerpetratorID != nil {
			if _, err := tx.Run(ctx, `
			MATCH (crime:Crime {id: $id})
			MATCH (c:Citizen {id: $citizen_id})
			MERGE (c)-[:PERPETRATOR_OF]->(crime)`,
				map[string]any{"id": crime.ID, "citizen_id": *req.PerpetratorID}); err != nil {
				return nil, err
			}
		}
		if req.VictimID != nil {
			if _, err := tx.Run(ctx, `
			MATCH (crime:Crime {id: $id})
			MATCH (c:Citizen {id: $citizen_id})
			MERGE (crime)-[:HAS_VICTIM]->(c)`,
				map[string]any{"id": crime.ID, "citizen_id": *req.VictimID}); err != nil {
				return nil, err
			}
		}
		if len(req.WitnessIDs) > 0 {
			if _, err := tx.Run(ctx, `
			MATCH (crime:Crime {id: $id})
			UNWIND $witnesses AS wid
			MATCH (c:Citizen {id: wid})
			MERGE (crime)-[:HAS_WITNESS]->(c)`,
				map[string]any{"id": crime.ID, "witnesses": req.WitnessIDs}); err != nil {
				return nil, err
			}
		}
		return &saved, nil
	})
	if err != nil {
		return nil, err
	}
	return created.(*models.Crime), nil
}

// MarkInvestigated flips the investigated flag. Repeating the call is
// harmless; the flag stays true. Returns ErrNotFound for unknown ids.
func (r *CrimeRepository) MarkInvestigated(ctx context.Context, id string) error {
	session := writeSession(ctx, r.driver)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
	MATCH (crime:Crime {id: $id})
	SET crime.investigated = true, crime.investigated_at = timestamp()
	RETURN crime.id AS id`,
		map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("failed to mark crime %s investigated: %w", id, err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("failed to read mark-investigated result: %w", err)
		}
		return ErrNotFound
	}
	return nil
}

// CountByType returns crime counts grouped by type, most frequent first.
func (r *CrimeRepository) CountByType(ctx context.Context) (map[string]int, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
	MATCH (crime:Crime)
	RETURN crime.crime_type AS crime_type, count(crime) AS count
	ORDER BY count DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count crimes by type: %w", err)
	}

	counts := make(map[string]int)
	for result.Next(ctx) {
		rec := result.Record()
		counts[recordString(rec, "crime_type")] = int(recordInt(rec, "count"))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crime counts: %w", err)
	}
	return counts, nil
}

// Statistics aggregates crimes on or after the given ISO date.
func (r *CrimeRepository) Statistics(ctx context.Context, since string) (*models.CrimeStatistics, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
	MATCH (crime:Crime)
	WHERE crime.date >= $since
	RETURN count(crime) AS total_crimes,
	       coalesce(avg(crime.severity), 0.0) AS average_severity,
	       coalesce(max(crime.severity), 0) AS highest_severity,
	       count(DISTINCT crime.crime_type) AS unique_types`,
		map[string]any{"since": since})
	if err != nil {
		return nil, fmt.Errorf("failed to get crime statistics: %w", err)
	}

	if result.Next(ctx) {
		rec := result.Record()
		return &models.CrimeStatistics{
			TotalCrimes:     int(recordInt(rec, "total_crimes")),
			AverageSeverity: recordFloat(rec, "average_severity"),
			HighestSeverity: int(recordInt(rec, "highest_severity")),
			UniqueTypes:     int(recordInt(rec, "unique_types")),
		}, nil
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crime statistics: %w", err)
	}
	return &models.CrimeStatistics{}, nil
}

// DailyCount is one day of aggregated criminal activity.
type DailyCount struct {
	Date              string
	CrimesCount       int
	TotalSeverity     int
	AffectedLocations int
	Types             []string
}

// Timeline returns daily aggregates on or after the given ISO date, ordered
// oldest to newest so the service can detect the trend.
func (r *CrimeRepository) Timeline(ctx context.Context, since string) ([]DailyCount, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
	MATCH (crime:Crime)
	WHERE crime.date >= $since
	OPTIONAL MATCH (loc:Location)-[:LOCATION_OF]->(crime)
	WITH crime.date AS date,
	     count(DISTINCT crime) AS crimes_count,
	     sum(crime.severity) AS total_severity,
	     count(DISTINCT loc) AS affected_locations,
	     collect(crime.crime_type) AS types
	RETURN date, crimes_count, total_severity, affected_locations, types
	ORDER BY date`,
		map[string]any{"since": since})
	if err != nil {
		return nil, fmt.Errorf("failed to get crime timeline: %w", err)
	}

	var days []DailyCount
	for result.Next(ctx) {
		rec := result.Record()
		days = append(days, DailyCount{
			Date:              recordString(rec, "date"),
			CrimesCount:       int(recordInt(rec, "crimes_count")),
			TotalSeverity:     int(recordInt(rec, "total_severity")),
			AffectedLocations: int(recordInt(rec, "affected_locations")),
			Types:             recordStrings(rec, "types"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crime timeline: %w", err)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

// RelatedCitizens counts distinct citizens linked to a crime as perpetrator,
// victim or witness.
func (r *CrimeRepository) RelatedCitizens(ctx context.Context, id string) (int, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
	MATCH (crime:Crime {id: $id})
	OPTIONAL MATCH (perp:Citizen)-[:PERPETRATOR_OF]->(crime)
	OPTIONAL MATCH (crime)-[:HAS_VICTIM]->(victim:Citizen)
	OPTIONAL MATCH (crime)-[:HAS_WITNESS]->(witness:Citizen)
	RETURN count(DISTINCT perp) + count(DISTINCT victim) + count(DISTINCT witness) AS related`,
		map[string]any{"id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to count related citizens: %w", err)
	}

	if result.Next(ctx) {
		return int(recordInt(result.Record(), "related")), nil
	}
	if err := result.Err(); err != nil {
		return 0, fmt.Errorf("failed to read related citizens: %w", err)
	}
	return 0, nil
}

func (r *CrimeRepository) queryCrimes(ctx context.Context, query string, params map[string]any) ([]models.Crime, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query crimes: %w", err)
	}

	var crimes []models.Crime
	for result.Next(ctx) {
		crimes = append(crimes, scanCrime(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crimes: %w", err)
	}
	return crimes, nil
}

func scanCrime(rec *neo4jRecord) models.Crime {
	return models.Crime{
		ID:              recordString(rec, "id"),
		Date:            recordString(rec, "date"),
		CrimeType:       recordString(rec, "crime_type"),
		Severity:        int(recordInt(rec, "severity")),
		Description:     recordString(rec, "description"),
		Investigated:    recordBool(rec, "investigated"),
		PerpetratorName: recordString(rec, "perpetrator_name"),
		LocationName:    recordString(rec, "location_name"),
		LocationType:    recordString(rec, "location_type"),
		CreatedAt:       recordInt(rec, "created_at"),
	}
}
