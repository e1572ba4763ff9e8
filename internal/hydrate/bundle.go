package hydrate

import (
	"encoding/gob"
	"fmt"
	"math/rand"
	"os"
)

// FeatureNames documents the order of the per-citizen feature vector.
var FeatureNames = []string{
	"age_norm",
	"social_degree_norm",
	"places_visited_norm",
	"avg_env_risk",
	"crime_count_norm",
}

// Bundle is the tensor-ready export of the citizen graph: node features,
// binary labels (has the citizen perpetrated a crime), the undirected edge
// index in both directions, and the train/val/test masks.
type Bundle struct {
	FeatureNames []string
	NodeIDs      []int64
	Features     [][]float64
	EdgeSrc      []int
	EdgeDst      []int
	Labels       []int
	TrainMask    []bool
	ValMask      []bool
	TestMask     []bool
}

// Save writes the bundle to path as a gob stream.
func (b *Bundle) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating bundle file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(b); err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}
	return nil
}

// Load reads a bundle written by Save.
func Load(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bundle file: %w", err)
	}
	defer f.Close()

	var b Bundle
	if err := gob.NewDecoder(f).Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding bundle: %w", err)
	}
	return &b, nil
}

// Split assigns nodes to train/val/test masks in a 70/15/15 ratio using a
// seeded permutation, so the same seed always yields the same split.
func Split(n int, seed int64) (train, val, test []bool) {
	train = make([]bool, n)
	val = make([]bool, n)
	test = make([]bool, n)

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	trainEnd := int(float64(n) * 0.7)
	valEnd := trainEnd + int(float64(n)*0.15)

	for i, p := range perm {
		switch {
		case i < trainEnd:
			train[p] = true
		case i < valEnd:
			val[p] = true
		default:
			test[p] = true
		}
	}
	return train, val, test
}
