package hydrate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRatios(t *testing.T) {
	train, val, test := Split(1000, 42)

	counts := func(mask []bool) int {
		n := 0
		for _, m := range mask {
			if m {
				n++
			}
		}
		return n
	}

	assert.Equal(t, 700, counts(train))
	assert.Equal(t, 150, counts(val))
	assert.Equal(t, 150, counts(test))

	// every node lands in exactly one split
	for i := 0; i < 1000; i++ {
		in := 0
		for _, mask := range [][]bool{train, val, test} {
			if mask[i] {
				in++
			}
		}
		assert.Equal(t, 1, in, "node %d", i)
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	train1, val1, test1 := Split(200, 7)
	train2, val2, test2 := Split(200, 7)

	assert.Equal(t, train1, train2)
	assert.Equal(t, val1, val2)
	assert.Equal(t, test1, test2)

	train3, _, _ := Split(200, 8)
	assert.NotEqual(t, train1, train3)
}

func TestFeatureVectorNormalization(t *testing.T) {
	features := featureVector(36, 12, 5, 0.45, 3)

	require.Len(t, features, len(FeatureNames))
	assert.InDelta(t, 0.36, features[0], 1e-9)
	assert.Greater(t, features[1], 0.0)
	assert.Less(t, features[1], 1.0)
	assert.InDelta(t, 0.25, features[2], 1e-9)
	assert.InDelta(t, 0.45, features[3], 1e-9)
	assert.InDelta(t, 0.3, features[4], 1e-9)
}

func TestFeatureVectorClampsOutliers(t *testing.T) {
	features := featureVector(140, 10000, 90, 0.9, 45)

	assert.Equal(t, 1.0, features[0])
	assert.Equal(t, 1.0, features[1])
	assert.Equal(t, 1.0, features[2])
	assert.Equal(t, 1.0, features[4])
}

func TestBundleSaveLoadRoundTrip(t *testing.T) {
	bundle := &Bundle{
		FeatureNames: FeatureNames,
		NodeIDs:      []int64{0, 1, 2},
		Features: [][]float64{
			{0.3, 0.1, 0.2, 0.9, 0.0},
			{0.5, 0.4, 0.3, 0.1, 0.2},
			{0.2, 0.0, 0.1, 0.1, 0.0},
		},
		EdgeSrc:   []int{0, 1},
		EdgeDst:   []int{1, 0},
		Labels:    []int{0, 1, 0},
		TrainMask: []bool{true, true, false},
		ValMask:   []bool{false, false, true},
		TestMask:  []bool{false, false, false},
	}

	path := filepath.Join(t.TempDir(), "city.bundle")
	require.NoError(t, bundle.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, bundle, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.bundle"))
	assert.Error(t, err)
}
