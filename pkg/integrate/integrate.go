// Package integrate implements the isotope peak-search-and-integration
// engine: given a peptide's accurate mass, charge and anchor scan, it finds
// the matching isotopologue peaks in the surrounding MS1 scans and integrates
// their intensity over retention time into one area per isotopologue.
package integrate

import (
	"fmt"

	"github.com/benchlab/isoquant/pkg/core"
)

// SpectrumSource provides read-only access to one fraction's spectra.
// Implementations must be safe for concurrent readers.
type SpectrumSource interface {
	// Scans returns all scan numbers in the fraction.
	Scans() []int
	// RetentionTime returns the retention time of a scan in minutes.
	RetentionTime(scan int) (float64, error)
	// MSLevel returns the MS level of a scan.
	MSLevel(scan int) (int, error)
	// Peaks returns the peak list of a scan. The peak list need not be
	// sorted by m/z.
	Peaks(scan int) ([]core.Peak, error)
}

// Config holds the integration parameters for one run. The isotopologue
// list and the tolerances are fixed once per run and shared by every
// fraction.
type Config struct {
	Isotopes      []int   // Isotopologue shifts to integrate, ascending
	RTTolerance   float64 // Retention time window, minutes, each side
	MassTolerance float64 // Relative mass tolerance (e.g. 50e-6 for 50 ppm)
	Workers       int     // Worker pool size; 0 = number of CPUs
	Deuterium     bool    // Use the deuterium mass defect for shift spacing
}

// Validate checks the configuration before any integration work begins.
func (c *Config) Validate() error {
	if len(c.Isotopes) == 0 {
		return fmt.Errorf("no isotopologues requested")
	}
	for i, iso := range c.Isotopes {
		if iso < 0 || iso > core.MaxIsotopeShift {
			return fmt.Errorf("isotopologue shift %d out of range 0-%d", iso, core.MaxIsotopeShift)
		}
		if i > 0 && iso <= c.Isotopes[i-1] {
			return fmt.Errorf("isotopologue list must be ascending and deduplicated")
		}
	}
	if c.RTTolerance <= 0 {
		return fmt.Errorf("retention time tolerance must be positive")
	}
	if c.MassTolerance <= 0 {
		return fmt.Errorf("mass tolerance must be positive")
	}
	return nil
}

// ShiftMass returns the m/z spacing per isotopologue for this run.
func (c *Config) ShiftMass() float64 {
	if c.Deuterium {
		return core.ShiftDeuterium
	}
	return core.ShiftHydrogen
}
