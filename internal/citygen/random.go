package citygen

import (
	"math"
	"math/rand"
)

// sampleBeta draws from a Beta(alpha, beta) distribution with small integer
// shape parameters, via the ratio of two Gamma draws. Beta(2, 10) produces
// the long-tailed risk seed profile: most citizens near zero, few above 0.6.
func sampleBeta(rng *rand.Rand, alpha, beta int) float64 {
	x := sampleGamma(rng, alpha)
	y := sampleGamma(rng, beta)
	return x / (x + y)
}

// sampleGamma draws from Gamma(k, 1) for integer k as the negative log of a
// product of k uniforms.
func sampleGamma(rng *rand.Rand, k int) float64 {
	product := 1.0
	for i := 0; i < k; i++ {
		product *= 1 - rng.Float64()
	}
	return -math.Log(product)
}

// envRiskFor assigns the environmental risk inherent to a location type.
func envRiskFor(locationType string) float64 {
	switch locationType {
	case "Dark Alley", "Warehouse":
		return 0.9
	case "Bank", "Jewelry Store":
		return 0.7
	default:
		return 0.1
	}
}

// connectionProbability models homophily in the social graph: everyone has a
// small base chance of knowing anyone, high-risk citizens cluster together,
// and citizens with close ids live near each other and meet more often.
func connectionProbability(riskA, riskB float64, idA, idB int64) float64 {
	prob := 0.1
	if riskA > offenderThreshold && riskB > offenderThreshold {
		prob += 0.5
	}
	diff := idA - idB
	if diff < 0 {
		diff = -diff
	}
	if diff < 20 {
		prob += 0.2
	}
	return prob
}

// visitFrequency returns how often a citizen visits a location type.
func visitFrequency(locationType string) string {
	switch locationType {
	case "Cafe", "Park":
		return "daily"
	default:
		return "weekly"
	}
}

// crimeFor picks a contextually plausible crime type and severity for a
// location type.
func crimeFor(rng *rand.Rand, locationType string) (string, int) {
	switch locationType {
	case "Bank":
		return "Robbery", 7 + rng.Intn(4)
	case "Jewelry Store":
		return "Robbery", 6 + rng.Intn(4)
	case "Dark Alley":
		return "Assault", 4 + rng.Intn(5)
	case "Park":
		return "Vandalism", 2 + rng.Intn(4)
	default:
		types := []string{"Theft", "Assault", "Vandalism"}
		return types[rng.Intn(3)], 3 + rng.Intn(5)
	}
}

// crimeCountFor returns how many crimes a high-risk citizen perpetrated. The
// count scales with the risk seed; citizens at or below the offender
// threshold commit none.
func crimeCountFor(rng *rand.Rand, riskSeed float64) int {
	if riskSeed <= offenderThreshold {
		return 0
	}
	max := int(riskSeed * 10)
	if max < 1 {
		max = 1
	}
	return 1 + rng.Intn(max)
}
