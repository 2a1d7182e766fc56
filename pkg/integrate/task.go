package integrate

import "github.com/benchlab/isoquant/pkg/core"

// IntegratePeptide runs the full search-and-integrate computation for one
// peptide match: it selects the MS1 scans around the anchor scan once, then
// for every requested isotopologue computes the mass window, sums the
// matching intensities per scan and integrates the resulting profile.
//
// The returned slice holds one area per isotopologue in cfg.Isotopes, in the
// same order. A lookup failure (unknown anchor scan) returns an error; the
// orchestrator records it for that row without aborting sibling rows.
func IntegratePeptide(src SpectrumSource, match *core.PeptideMatch, cfg *Config) ([]float64, error) {
	scans, err := SelectScans(src, match.Scan, cfg.RTTolerance)
	if err != nil {
		return nil, err
	}

	shift := cfg.ShiftMass()
	areas := make([]float64, len(cfg.Isotopes))
	samples := make([]Sample, 0, len(scans))

	for i, iso := range cfg.Isotopes {
		window, err := IsotopeWindow(match.Mass, match.Charge, iso, shift, cfg.MassTolerance)
		if err != nil {
			return nil, err
		}

		samples = samples[:0]
		for _, sc := range scans {
			peaks, err := src.Peaks(sc.Scan)
			if err != nil {
				return nil, err
			}
			samples = append(samples, Sample{RT: sc.RT, Intensity: MatchingIntensity(peaks, window)})
		}

		areas[i] = IntegrateProfile(samples)
	}

	return areas, nil
}
