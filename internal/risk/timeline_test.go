package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTrend(t *testing.T) {
	tests := []struct {
		name  string
		daily []int
		want  Trend
	}{
		{"strictly increasing", []int{1, 2, 3, 4, 5, 6}, TrendUp},
		{"strictly decreasing", []int{6, 5, 4, 3, 2, 1}, TrendDown},
		{"flat", []int{3, 3, 3, 3}, TrendStable},
		{"odd length ignores middle day", []int{1, 1, 99, 1, 1}, TrendStable},
		{"single day", []int{7}, TrendStable},
		{"empty", nil, TrendStable},
		{"late spike", []int{0, 0, 0, 0, 0, 12}, TrendUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectTrend(tt.daily))
		})
	}
}
