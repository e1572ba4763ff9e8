package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
)

// CitizenRepository handles graph access for Citizen nodes and the social
// edges between them.
type CitizenRepository struct {
	driver neo4j.DriverWithContext
}

// NewCitizenRepository creates a new citizen repository
func NewCitizenRepository(driver neo4j.DriverWithContext) *CitizenRepository {
	return &CitizenRepository{driver: driver}
}

// FindAll returns a page of citizens ordered by id.
func (r *CitizenRepository) FindAll(ctx context.Context, limit, offset int) ([]models.Citizen, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	MATCH (c:Citizen)
	OPTIONAL MATCH (c)-[:KNOWS]-(friend:Citizen)
	WITH c, count(DISTINCT friend) AS social_network_size
	RETURN c.id AS id,
	       c.name AS name,
	       c.born AS born,
	       c.job AS job,
	       c.address AS address,
	       coalesce(c.status, 'ACTIVE') AS status,
	       coalesce(c.risk_seed, 0.0) AS risk_seed,
	       social_network_size
	ORDER BY c.id
	SKIP $offset
	LIMIT $limit`

	result, err := session.Run(ctx, query, map[string]any{"limit": limit, "offset": offset})
	if err != nil {
		return nil, fmt.Errorf("failed to list citizens: %w", err)
	}

	var citizens []models.Citizen
	for result.Next(ctx) {
		citizens = append(citizens, scanCitizen(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read citizens: %w", err)
	}
	return citizens, nil
}

// FindByID returns one citizen with the size of their social network and the
// number of criminals among their direct contacts, or ErrNotFound.
func (r *CitizenRepository) FindByID(ctx context.Context, id int64) (*models.Citizen, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	MATCH (c:Citizen {id: $id})
	OPTIONAL MATCH (c)-[:KNOWS]-(friend:Citizen)
	OPTIONAL MATCH (c)-[:KNOWS]-(criminal:Citizen)-[:PERPETRATOR_OF]->(:Crime)
	RETURN c.id AS id,
	       c.name AS name,
	       c.born AS born,
	       c.job AS job,
	       c.address AS address,
	       coalesce(c.status, 'ACTIVE') AS status,
	       coalesce(c.risk_seed, 0.0) AS risk_seed,
	       count(DISTINCT friend) AS social_network_size,
	       count(DISTINCT criminal) AS criminal_degree`

	result, err := session.Run(ctx, query, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get citizen %d: %w", id, err)
	}

	if result.Next(ctx) {
		c := scanCitizen(result.Record())
		return &c, nil
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read citizen %d: %w", id, err)
	}
	return nil, ErrNotFound
}

// FindByName returns citizens whose name contains the given term,
// case-insensitive.
func (r *CitizenRepository) FindByName(ctx context.Context, name string, limit int) ([]models.Citizen, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	MATCH (c:Citizen)
	WHERE toLower(c.name) CONTAINS toLower($name)
	OPTIONAL MATCH (c)-[:KNOWS]-(friend:Citizen)
	WITH c, count(DISTINCT friend) AS social_network_size
	RETURN c.id AS id,
	       c.name AS name,
	       c.born AS born,
	       c.job AS job,
	       c.address AS address,
	       coalesce(c.status, 'ACTIVE') AS status,
	       coalesce(c.risk_seed, 0.0) AS risk_seed,
	       social_network_size
	ORDER BY c.name
	LIMIT $limit`

	result, err := session.Run(ctx, query, map[string]any{"name": name, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to search citizens: %w", err)
	}

	var citizens []models.Citizen
	for result.Next(ctx) {
		citizens = append(citizens, scanCitizen(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read citizen search: %w", err)
	}
	return citizens, nil
}

// FindSuspects returns citizens whose risk seed meets the watchlist
// threshold, ranked by the seed. Seeds at or above the intervene threshold
// get the INTERVENE tier. The seed itself is never returned; only the
// observable criminal statistics and the derived tier are.
func (r *CitizenRepository) FindSuspects(ctx context.Context, watchlist, intervene float64, limit int) ([]models.Suspect, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	MATCH (c:Citizen)
	WHERE c.risk_seed >= $watchlist
	OPTIONAL MATCH (c)-[:PERPETRATOR_OF]->(crime:Crime)
	OPTIONAL MATCH (c)-[:KNOWS]-(contact:Citizen)-[:PERPETRATOR_OF]->(:Crime)
	WITH c,
	     count(DISTINCT crime) AS associated_criminals,
	     count(DISTINCT contact) AS criminal_contacts
	RETURN c.id AS id,
	       c.name AS name,
	       associated_criminals,
	       criminal_contacts,
	       CASE WHEN c.risk_seed >= $intervene THEN 'INTERVENE' ELSE 'MONITOR' END AS tier
	ORDER BY c.risk_seed DESC
	LIMIT $limit`

	result, err := session.Run(ctx, query, map[string]any{
		"watchlist": watchlist,
		"intervene": intervene,
		"limit":     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find suspects: %w", err)
	}

	var suspects []models.Suspect
	for result.Next(ctx) {
		rec := result.Record()
		suspects = append(suspects, models.Suspect{
			ID:                  recordInt(rec, "id"),
			Name:                recordString(rec, "name"),
			AssociatedCriminals: int(recordInt(rec, "associated_criminals")),
			CriminalContacts:    int(recordInt(rec, "criminal_contacts")),
			Tier:                recordString(rec, "tier"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read suspects: %w", err)
	}
	return suspects, nil
}

// FindNetwork returns citizens within depth hops of the given citizen.
// Depth must already be validated by the caller; it is interpolated because
// Cypher does not allow parameters in relationship patterns.
func (r *CitizenRepository) FindNetwork(ctx context.Context, id int64, depth, limit int) ([]models.NetworkConnection, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
	MATCH (c:Citizen {id: $id})-[:KNOWS*1..%d]-(other:Citizen)
	WHERE other.id <> $id
	WITH DISTINCT other
	OPTIONAL MATCH (other)-[:PERPETRATOR_OF]->(crime:Crime)
	RETURN other.id AS id,
	       other.name AS name,
	       coalesce(other.status, 'ACTIVE') AS status,
	       count(crime) > 0 AS is_criminal
	ORDER BY other.id
	LIMIT $limit`, depth)

	result, err := session.Run(ctx, query, map[string]any{"id": id, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to get citizen network: %w", err)
	}

	var connections []models.NetworkConnection
	for result.Next(ctx) {
		rec := result.Record()
		connections = append(connections, models.NetworkConnection{
			ID:         recordInt(rec, "id"),
			Name:       recordString(rec, "name"),
			Status:     recordString(rec, "status"),
			IsCriminal: recordBool(rec, "is_criminal"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read citizen network: %w", err)
	}
	return connections, nil
}

// Exists reports whether a citizen with the given id is registered.
func (r *CitizenRepository) Exists(ctx context.Context, id int64) (bool, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
	MATCH (c:Citizen {id: $id})
	RETURN c.id AS id
	LIMIT 1`, map[string]any{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to check citizen %d: %w", id, err)
	}

	found := result.Next(ctx)
	if err := result.Err(); err != nil {
		return false, fmt.Errorf("failed to read citizen check: %w", err)
	}
	return found, nil
}

// Create registers a new citizen. The id is allocated inside the query so
// concurrent registrations cannot race on a Go-side counter.
func (r *CitizenRepository) Create(ctx context.Context, req models.CitizenCreateRequest) (*models.Citizen, error) {
	session := writeSession(ctx, r.driver)
	defer session.Close(ctx)

	query := `
	MATCH (existing:Citizen)
	WITH coalesce(max(existing.id), -1) + 1 AS next_id
	CREATE (c:Citizen {
		id: next_id,
		name: $name,
		born: $born,
		job: $job,
		address: $address,
		status: 'ACTIVE',
		risk_seed: 0.0,
		created_at: timestamp()
	})
	RETURN c.id AS id,
	       c.name AS name,
	       c.born AS born,
	       c.job AS job,
	       c.address AS address,
	       c.status AS status,
	       c.risk_seed AS risk_seed,
	       0 AS social_network_size`

	result, err := session.Run(ctx, query, map[string]any{
		"name":    req.Name,
		"born":    req.Born,
		"job":     req.Job,
		"address": req.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create citizen: %w", err)
	}

	if result.Next(ctx) {
		c := scanCitizen(result.Record())
		return &c, nil
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read created citizen: %w", err)
	}
	return nil, fmt.Errorf("citizen %q was not created", req.Name)
}

// UpdateStatus sets the citizen status. Returns ErrNotFound for unknown ids.
func (r *CitizenRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	session := writeSession(ctx, r.driver)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
	MATCH (c:Citizen {id: $id})
	SET c.status = $status, c.status_changed_at = timestamp()
	RETURN c.id AS id`,
		map[string]any{"id": id, "status": status})
	if err != nil {
		return fmt.Errorf("failed to update citizen %d status: %w", id, err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("failed to read status update: %w", err)
		}
		return ErrNotFound
	}
	return nil
}

// CountAll returns the total number of registered citizens.
func (r *CitizenRepository) CountAll(ctx context.Context) (int, error) {
	session := readSession(ctx, r.driver)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `MATCH (c:Citizen) RETURN count(c) AS total`, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count citizens: %w", err)
	}

	if result.Next(ctx) {
		return int(recordInt(result.Record(), "total")), nil
	}
	if err := result.Err(); err != nil {
		return 0, fmt.Errorf("failed to read citizen count: %w", err)
	}
	return 0, nil
}

func scanCitizen(rec *neo4jRecord) models.Citizen {
	return models.Citizen{
		ID:                recordInt(rec, "id"),
		Name:              recordString(rec, "name"),
		Born:              int(recordInt(rec, "born")),
		Job:               recordString(rec, "job"),
		Address:           recordString(rec, "address"),
		Status:            recordString(rec, "status"),
		RiskSeed:          recordFloat(rec, "risk_seed"),
		SocialNetworkSize: int(recordInt(rec, "social_network_size")),
		CriminalDegree:    int(recordInt(rec, "criminal_degree")),
	}
}
