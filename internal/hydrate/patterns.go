package hydrate

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// CrimePatterns summarizes the criminal history alongside a bundle export:
// how crimes distribute over crime and location types, and how severe they
// run on average.
type CrimePatterns struct {
	TotalCrimes    int            `json:"total_crimes"`
	ByCrimeType    map[string]int `json:"by_crime_type"`
	ByLocationType map[string]int `json:"by_location_type"`
	MeanSeverity   float64        `json:"mean_severity"`
}

// CrimePatterns aggregates every crime by type and location type.
func (h *Hydrator) CrimePatterns(ctx context.Context) (*CrimePatterns, error) {
	session := h.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
	MATCH (l:Location)-[:LOCATION_OF]->(cr:Crime)
	RETURN cr.crime_type AS crime_type,
	       l.location_type AS location_type,
	       count(cr) AS n,
	       sum(cr.severity) AS severity_total`, nil)
	if err != nil {
		return nil, fmt.Errorf("querying crime patterns: %w", err)
	}

	patterns := &CrimePatterns{
		ByCrimeType:    make(map[string]int),
		ByLocationType: make(map[string]int),
	}
	severityTotal := int64(0)

	for result.Next(ctx) {
		m := result.Record().AsMap()
		crimeType, _ := m["crime_type"].(string)
		locationType, _ := m["location_type"].(string)
		n := int(asInt(m["n"]))

		patterns.ByCrimeType[crimeType] += n
		patterns.ByLocationType[locationType] += n
		patterns.TotalCrimes += n
		severityTotal += asInt(m["severity_total"])
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("reading crime patterns: %w", err)
	}

	if patterns.TotalCrimes > 0 {
		patterns.MeanSeverity = float64(severityTotal) / float64(patterns.TotalCrimes)
	}
	return patterns, nil
}
