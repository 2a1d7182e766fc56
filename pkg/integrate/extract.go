package integrate

import "github.com/benchlab/isoquant/pkg/core"

// MatchingIntensity sums the intensities of all peaks strictly inside the
// window. Peaks sitting exactly on a boundary do not contribute.
func MatchingIntensity(peaks []core.Peak, w Window) float64 {
	total := 0.0
	for _, p := range peaks {
		if p.MZ > w.Lower && p.MZ < w.Upper {
			total += p.Intensity
		}
	}
	return total
}
