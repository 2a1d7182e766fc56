package integrate

import "sort"

// Sample is one intensity measurement on the retention time axis.
type Sample struct {
	RT        float64
	Intensity float64
}

// IntegrateProfile computes the trapezoidal-rule area under an intensity
// over retention time profile. Samples are sorted by retention time before
// integrating. Fewer than two samples integrate to zero, and a negative
// area clamps to zero so reported areas are never negative.
func IntegrateProfile(samples []Sample) float64 {
	if len(samples) < 2 {
		return 0
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].RT < samples[j].RT
	})

	area := 0.0
	for i := 1; i < len(samples); i++ {
		dt := samples[i].RT - samples[i-1].RT
		area += (samples[i-1].Intensity + samples[i].Intensity) * dt / 2
	}

	if area < 0 {
		return 0
	}
	return area
}
