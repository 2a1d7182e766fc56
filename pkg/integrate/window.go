package integrate

import (
	"fmt"

	"github.com/benchlab/isoquant/pkg/core"
)

// Window is a mass search window around one isotopologue's target m/z.
type Window struct {
	Lower  float64
	Target float64
	Upper  float64
}

// IsotopeWindow computes the target precursor m/z of an isotopologue and its
// symmetric tolerance window. mass is the neutral monoisotopic peptide mass,
// shift the per-isotopologue mass spacing, tolerance the relative mass
// tolerance (half of which is applied on each side of the target).
func IsotopeWindow(mass float64, charge int, iso int, shift float64, tolerance float64) (Window, error) {
	if charge < 1 {
		return Window{}, fmt.Errorf("charge must be at least 1, got %d", charge)
	}

	z := float64(charge)
	target := core.PrecursorMZ(mass, charge) + float64(iso)*shift/z
	half := target * (tolerance / 2)

	return Window{
		Lower:  target - half,
		Target: target,
		Upper:  target + half,
	}, nil
}
