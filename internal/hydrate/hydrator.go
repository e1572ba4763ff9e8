// Package hydrate exports the citizen graph as a tensor-ready bundle for
// training risk models offline.
package hydrate

import (
	"context"
	"fmt"
	"math"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Hydrator reads the citizen graph and assembles a Bundle.
type Hydrator struct {
	driver      neo4j.DriverWithContext
	currentYear int
}

// NewHydrator creates a hydrator. currentYear anchors age normalization.
func NewHydrator(driver neo4j.DriverWithContext, currentYear int) *Hydrator {
	return &Hydrator{driver: driver, currentYear: currentYear}
}

// Hydrate queries every citizen with their graph-derived statistics, builds
// the feature matrix and labels, collects the KNOWS edges, and splits nodes
// with the given seed.
func (h *Hydrator) Hydrate(ctx context.Context, seed int64) (*Bundle, error) {
	session := h.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
	MATCH (c:Citizen)
	OPTIONAL MATCH (c)-[:KNOWS]-(friend:Citizen)
	OPTIONAL MATCH (c)-[:VISITS]->(place:Location)
	OPTIONAL MATCH (c)-[:PERPETRATOR_OF]->(crime:Crime)
	RETURN c.id AS id,
	       c.born AS born,
	       count(DISTINCT friend) AS friends,
	       count(DISTINCT place) AS places,
	       coalesce(avg(place.env_risk), 0.0) AS avg_env_risk,
	       count(DISTINCT crime) AS crimes
	ORDER BY c.id`, nil)
	if err != nil {
		return nil, fmt.Errorf("querying citizen features: %w", err)
	}

	bundle := &Bundle{FeatureNames: FeatureNames}
	index := make(map[int64]int)

	for result.Next(ctx) {
		m := result.Record().AsMap()
		id := asInt(m["id"])
		born := int(asInt(m["born"]))
		friends := int(asInt(m["friends"]))
		places := int(asInt(m["places"]))
		avgEnvRisk := asFloat(m["avg_env_risk"])
		crimes := int(asInt(m["crimes"]))

		index[id] = len(bundle.NodeIDs)
		bundle.NodeIDs = append(bundle.NodeIDs, id)
		bundle.Features = append(bundle.Features,
			featureVector(h.currentYear-born, friends, places, avgEnvRisk, crimes))

		label := 0
		if crimes > 0 {
			label = 1
		}
		bundle.Labels = append(bundle.Labels, label)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("reading citizen features: %w", err)
	}

	if err := h.collectEdges(ctx, bundle, index); err != nil {
		return nil, err
	}

	bundle.TrainMask, bundle.ValMask, bundle.TestMask = Split(len(bundle.NodeIDs), seed)
	return bundle, nil
}

// collectEdges appends every KNOWS edge in both directions, as undirected
// graph models expect.
func (h *Hydrator) collectEdges(ctx context.Context, bundle *Bundle, index map[int64]int) error {
	session := h.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
	MATCH (a:Citizen)-[:KNOWS]->(b:Citizen)
	RETURN a.id AS src, b.id AS dst`, nil)
	if err != nil {
		return fmt.Errorf("querying social edges: %w", err)
	}

	for result.Next(ctx) {
		m := result.Record().AsMap()
		src, okSrc := index[asInt(m["src"])]
		dst, okDst := index[asInt(m["dst"])]
		if !okSrc || !okDst {
			continue
		}
		bundle.EdgeSrc = append(bundle.EdgeSrc, src, dst)
		bundle.EdgeDst = append(bundle.EdgeDst, dst, src)
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("reading social edges: %w", err)
	}
	return nil
}

// featureVector normalizes raw graph statistics into [0,1] features. Degree
// uses a log scale so hub citizens do not dominate.
func featureVector(age, friends, places int, avgEnvRisk float64, crimes int) []float64 {
	return []float64{
		math.Min(float64(age)/100.0, 1.0),
		math.Min(math.Log1p(float64(friends))/5.0, 1.0),
		math.Min(float64(places)/20.0, 1.0),
		avgEnvRisk,
		math.Min(float64(crimes)/10.0, 1.0),
	}
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}
