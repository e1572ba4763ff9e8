// Package risk holds the pure scoring functions used by the service layer.
// Everything here is stateless and safe for concurrent use.
package risk

import "math"

// Level classifies a location's criminal risk.
type Level string

const (
	LevelLow      Level = "LOW"
	LevelMedium   Level = "MEDIUM"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

// LocationScore computes the weighted risk score for a location:
// 60% historical crime count, 30% recent (30-day) count, 10% environmental
// risk scaled to the same magnitude.
func LocationScore(historical, recent int, envRisk float64) float64 {
	return float64(historical)*0.6 + float64(recent)*0.3 + envRisk*10*0.1
}

// Classify maps a risk score to a level. Band boundaries are closed-open:
// a score of exactly 15 is CRITICAL, 14.999 is HIGH.
func Classify(score float64) Level {
	switch {
	case score >= 15:
		return LevelCritical
	case score >= 10:
		return LevelHigh
	case score >= 5:
		return LevelMedium
	default:
		return LevelLow
	}
}

// LevelFor combines LocationScore and Classify.
func LevelFor(historical, recent int, envRisk float64) Level {
	return Classify(LocationScore(historical, recent, envRisk))
}

// LocationFactor returns the amplification factor applied to a crime's
// severity when the location already has a criminal record.
func LocationFactor(historicalCrimeCount int) float64 {
	switch {
	case historicalCrimeCount > 10:
		return 1.5
	case historicalCrimeCount > 5:
		return 1.2
	default:
		return 1.0
	}
}

// CrimeImpact estimates how much a single crime raises local risk, in [0,1].
// Severity is normalized to [0,1] and amplified by the location factor,
// then clamped and rounded to 3 decimals.
func CrimeImpact(severity int, locationFactor float64) float64 {
	impact := math.Min(1.0, float64(severity)/10.0*locationFactor)
	return math.Round(impact*1000) / 1000
}

// ClampScore normalizes a hotspot risk score into [0,1]. Scores computed on
// raw crime counts can exceed 1; those are scaled down by 100 and clamped,
// matching how hotspot output is presented.
func ClampScore(score float64) float64 {
	if score >= 0.0 && score <= 1.0 {
		return score
	}
	return math.Min(1.0, math.Max(0.0, score/100))
}
