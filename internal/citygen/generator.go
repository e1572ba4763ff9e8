// Package citygen builds a synthetic city graph: locations, citizens, the
// social network between them, their movement routines and a criminal
// history seeded by each citizen's hidden risk.
package citygen

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
	"github.com/precrime-dept/precrime-backend-go/internal/spatial"
)

// offenderThreshold is the risk seed above which a citizen perpetrates crimes.
const offenderThreshold = 0.6

// Options controls the size and shape of the generated city.
type Options struct {
	Citizens  int
	Locations int
	Seed      int64
	BatchSize int

	// City center and radius the map is scattered over.
	CityLatitude     float64
	CityLongitude    float64
	CityRadiusMeters float64
}

// Stats reports what a generation run produced.
type Stats struct {
	Citizens  int `json:"citizens"`
	Locations int `json:"locations"`
	Knows     int `json:"knows_edges"`
	Visits    int `json:"visits_edges"`
	Crimes    int `json:"crimes"`
}

// Generator writes a synthetic city into the graph database.
type Generator struct {
	driver neo4j.DriverWithContext
	opts   Options
	rng    *rand.Rand
}

type genLocation struct {
	ID        string
	Name      string
	Type      string
	EnvRisk   float64
	Latitude  float64
	Longitude float64
}

type genCitizen struct {
	ID       int64
	Name     string
	Born     int
	Job      string
	Address  string
	RiskSeed float64
	HomeLat  float64
	HomeLng  float64
}

// New creates a generator. A zero seed derives one from the clock.
func New(driver neo4j.DriverWithContext, opts Options) *Generator {
	if opts.Citizens <= 0 {
		opts.Citizens = 200
	}
	if opts.Locations <= 0 {
		opts.Locations = 30
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.CityRadiusMeters <= 0 {
		opts.CityRadiusMeters = 5000
	}
	if opts.CityLatitude == 0 && opts.CityLongitude == 0 {
		opts.CityLatitude, opts.CityLongitude = 40.7128, -74.0060
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	return &Generator{
		driver: driver,
		opts:   opts,
		rng:    rand.New(rand.NewSource(opts.Seed)),
	}
}

// Clear wipes the entire graph.
func (g *Generator) Clear(ctx context.Context) error {
	session := g.session(ctx)
	defer session.Close(ctx)

	if _, err := session.Run(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
		return fmt.Errorf("clearing graph: %w", err)
	}
	return nil
}

// Generate builds the full city and writes it in batches.
func (g *Generator) Generate(ctx context.Context) (*Stats, error) {
	locations := g.buildLocations()
	citizens := g.buildCitizens()

	if err := g.insertLocations(ctx, locations); err != nil {
		return nil, err
	}
	log.Printf("Inserted %d locations", len(locations))

	if err := g.insertCitizens(ctx, citizens); err != nil {
		return nil, err
	}
	log.Printf("Inserted %d citizens", len(citizens))

	knows, err := g.generateSocialGraph(ctx, citizens)
	if err != nil {
		return nil, err
	}
	log.Printf("Inserted %d KNOWS edges", knows)

	visits, visited, err := g.generateRoutines(ctx, citizens, locations)
	if err != nil {
		return nil, err
	}
	log.Printf("Inserted %d VISITS edges", visits)

	crimes, err := g.generateCrimes(ctx, citizens, locations, visited)
	if err != nil {
		return nil, err
	}
	log.Printf("Inserted %d crimes", crimes)

	return &Stats{
		Citizens:  len(citizens),
		Locations: len(locations),
		Knows:     knows,
		Visits:    visits,
		Crimes:    crimes,
	}, nil
}

func (g *Generator) buildLocations() []genLocation {
	locations := make([]genLocation, 0, g.opts.Locations)
	for i := 0; i < g.opts.Locations; i++ {
		locType := models.LocationTypes[g.rng.Intn(len(models.LocationTypes))]
		prefixes := locationNamePrefixes[locType]
		name := fmt.Sprintf("%s %s", prefixes[g.rng.Intn(len(prefixes))], locType)

		lat, lng := g.scatterPoint()
		locations = append(locations, genLocation{
			ID:        fmt.Sprintf("loc-%d", i),
			Name:      name,
			Type:      locType,
			EnvRisk:   envRiskFor(locType),
			Latitude:  lat,
			Longitude: lng,
		})
	}
	return locations
}

func (g *Generator) buildCitizens() []genCitizen {
	citizens := make([]genCitizen, 0, g.opts.Citizens)
	for i := 0; i < g.opts.Citizens; i++ {
		lat, lng := g.scatterPoint()
		citizens = append(citizens, genCitizen{
			ID: int64(i),
			Name: fmt.Sprintf("%s %s",
				firstNames[g.rng.Intn(len(firstNames))],
				lastNames[g.rng.Intn(len(lastNames))]),
			Born:     1950 + g.rng.Intn(59),
			Job:      jobs[g.rng.Intn(len(jobs))],
			Address:  fmt.Sprintf("%d %s", 1+g.rng.Intn(999), streets[g.rng.Intn(len(streets))]),
			RiskSeed: sampleBeta(g.rng, 2, 10),
			HomeLat:  lat,
			HomeLng:  lng,
		})
	}
	return citizens
}

// scatterPoint picks a uniform point within the city radius.
func (g *Generator) scatterPoint() (float64, float64) {
	bearing := g.rng.Float64() * 360
	// sqrt keeps the density uniform over area rather than radius
	distance := g.opts.CityRadiusMeters * math.Sqrt(g.rng.Float64())
	return spatial.DestinationPoint(g.opts.CityLatitude, g.opts.CityLongitude, bearing, distance)
}

func (g *Generator) insertLocations(ctx context.Context, locations []genLocation) error {
	rows := make([]map[string]any, 0, len(locations))
	for _, loc := range locations {
		rows = append(rows, map[string]any{
			"id":            loc.ID,
			"name":          loc.Name,
			"location_type": loc.Type,
			"env_risk":      loc.EnvRisk,
			"latitude":      loc.Latitude,
			"longitude":     loc.Longitude,
		})
	}

	return g.runBatched(ctx, `
	UNWIND $rows AS row
	CREATE (l:Location {
		id: row.id,
		name: row.name,
		location_type: row.location_type,
		env_risk: row.env_risk,
		latitude: row.latitude,
		longitude: row.longitude,
		created_at: timestamp()
	})`, rows)
}

func (g *Generator) insertCitizens(ctx context.Context, citizens []genCitizen) error {
	rows := make([]map[string]any, 0, len(citizens))
	for _, c := range citizens {
		rows = append(rows, map[string]any{
			"id":        c.ID,
			"name":      c.Name,
			"born":      c.Born,
			"job":       c.Job,
			"address":   c.Address,
			"risk_seed": c.RiskSeed,
		})
	}

	return g.runBatched(ctx, `
	UNWIND $rows AS row
	CREATE (c:Citizen {
		id: row.id,
		name: row.name,
		born: row.born,
		job: row.job,
		address: row.address,
		status: 'ACTIVE',
		risk_seed: row.risk_seed,
		created_at: timestamp()
	})`, rows)
}

// generateSocialGraph connects citizens with homophily: each citizen samples
// up to 50 candidates and links with a probability that grows when both are
// high risk or when they live in the same id neighborhood.
func (g *Generator) generateSocialGraph(ctx context.Context, citizens []genCitizen) (int, error) {
	const candidateSample = 50

	var rows []map[string]any
	for i := range citizens {
		for s := 0; s < candidateSample; s++ {
			j := g.rng.Intn(len(citizens))
			if j <= i {
				continue
			}
			prob := connectionProbability(citizens[i].RiskSeed, citizens[j].RiskSeed,
				citizens[i].ID, citizens[j].ID)
			if g.rng.Float64() < prob {
				rows = append(rows, map[string]any{
					"a":     citizens[i].ID,
					"b":     citizens[j].ID,
					"since": 2010 + g.rng.Intn(16),
				})
			}
		}
	}

	err := g.runBatched(ctx, `
	UNWIND $rows AS row
	MATCH (a:Citizen {id: row.a})
	MATCH (b:Citizen {id: row.b})
	MERGE (a)-[:KNOWS {since: row.since}]->(b)`, rows)
	return len(rows), err
}

// generateRoutines gives each citizen 3 to 7 regular VISITS, biased toward
// locations near their home. Returns the edge count and the visited location
// indexes per citizen for the crime generator.
func (g *Generator) generateRoutines(ctx context.Context, citizens []genCitizen, locations []genLocation) (int, map[int64][]int, error) {
	visited := make(map[int64][]int, len(citizens))

	var rows []map[string]any
	for _, c := range citizens {
		// rank locations by distance from home, then pick from the nearest third
		order := make([]int, len(locations))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			da := spatial.HaversineDistance(c.HomeLat, c.HomeLng, locations[order[a]].Latitude, locations[order[a]].Longitude)
			db := spatial.HaversineDistance(c.HomeLat, c.HomeLng, locations[order[b]].Latitude, locations[order[b]].Longitude)
			return da < db
		})

		pool := len(order) / 3
		if pool < 7 {
			pool = min(7, len(order))
		}

		count := 3 + g.rng.Intn(5)
		if count > pool {
			count = pool
		}
		picked := g.rng.Perm(pool)[:count]
		for _, p := range picked {
			idx := order[p]
			visited[c.ID] = append(visited[c.ID], idx)
			rows = append(rows, map[string]any{
				"citizen_id":  c.ID,
				"location_id": locations[idx].ID,
				"frequency":   visitFrequency(locations[idx].Type),
			})
		}
	}

	err := g.runBatched(ctx, `
	UNWIND $rows AS row
	MATCH (c:Citizen {id: row.citizen_id})
	MATCH (l:Location {id: row.location_id})
	CREATE (c)-[:VISITS {frequency: row.frequency}]->(l)`, rows)
	return len(rows), visited, err
}

// generateCrimes makes citizens above the offender threshold perpetrate 1 to
// risk*10 crimes, mostly at locations they frequent, with contextually
// plausible types and severities. Some crimes get victims and witnesses.
func (g *Generator) generateCrimes(ctx context.Context, citizens []genCitizen, locations []genLocation, visited map[int64][]int) (int, error) {
	var crimeRows, victimRows, witnessRows []map[string]any

	for _, c := range citizens {
		count := crimeCountFor(g.rng, c.RiskSeed)
		for n := 0; n < count; n++ {
			loc := g.pickCrimeScene(c, locations, visited)
			crimeType, severity := crimeFor(g.rng, loc.Type)

			id := fmt.Sprintf("crime_%.8s", uuid.NewString())
			date := time.Now().AddDate(0, 0, -g.rng.Intn(730)).Format("2006-01-02")

			crimeRows = append(crimeRows, map[string]any{
				"id":          id,
				"date":        date,
				"crime_type":  crimeType,
				"severity":    severity,
				"description": fmt.Sprintf("%s at %s", crimeType, loc.Name),
				"location_id": loc.ID,
				"perp_id":     c.ID,
			})

			if g.rng.Float64() < 0.7 {
				victim := citizens[g.rng.Intn(len(citizens))]
				if victim.ID != c.ID {
					victimRows = append(victimRows, map[string]any{
						"crime_id":   id,
						"citizen_id": victim.ID,
					})
				}
			}
			for w := g.rng.Intn(3); w > 0; w-- {
				witness := citizens[g.rng.Intn(len(citizens))]
				if witness.ID != c.ID {
					witnessRows = append(witnessRows, map[string]any{
						"crime_id":   id,
						"citizen_id": witness.ID,
					})
				}
			}
		}
	}

	if err := g.runBatched(ctx, `
	UNWIND $rows AS row
	MATCH (l:Location {id: row.location_id})
	MATCH (p:Citizen {id: row.perp_id})
	CREATE (cr:Crime {
		id: row.id,
		date: row.date,
		crime_type: row.crime_type,
		severity: row.severity,
		description: row.description,
		investigated: false,
		created_at: timestamp()
	})
	CREATE (l)-[:LOCATION_OF]->(cr)
	CREATE (p)-[:PERPETRATOR_OF]->(cr)`, crimeRows); err != nil {
		return 0, err
	}

	if err := g.runBatched(ctx, `
	UNWIND $rows AS row
	MATCH (cr:Crime {id: row.crime_id})
	MATCH (c:Citizen {id: row.citizen_id})
	MERGE (cr)-[:HAS_VICTIM]->(c)`, victimRows); err != nil {
		return 0, err
	}

	if err := g.runBatched(ctx, `
	UNWIND $rows AS row
	MATCH (cr:Crime {id: row.crime_id})
	MATCH (c:Citizen {id: row.citizen_id})
	MERGE (cr)-[:HAS_WITNESS]->(c)`, witnessRows); err != nil {
		return 0, err
	}

	return len(crimeRows), nil
}

// pickCrimeScene prefers locations the offender visits; otherwise it draws
// two candidates and keeps the riskier one, skewing crimes toward
// high-env-risk locations.
func (g *Generator) pickCrimeScene(c genCitizen, locations []genLocation, visited map[int64][]int) genLocation {
	if own := visited[c.ID]; len(own) > 0 && g.rng.Float64() < 0.5 {
		return locations[own[g.rng.Intn(len(own))]]
	}
	a := locations[g.rng.Intn(len(locations))]
	b := locations[g.rng.Intn(len(locations))]
	if b.EnvRisk > a.EnvRisk {
		return b
	}
	return a
}

func (g *Generator) runBatched(ctx context.Context, query string, rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}

	session := g.session(ctx)
	defer session.Close(ctx)

	for start := 0; start < len(rows); start += g.opts.BatchSize {
		end := start + g.opts.BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := session.Run(ctx, query, map[string]any{"rows": rows[start:end]}); err != nil {
			return fmt.Errorf("batch insert failed: %w", err)
		}
	}
	return nil
}

func (g *Generator) session(ctx context.Context) neo4j.SessionWithContext {
	return g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
}
