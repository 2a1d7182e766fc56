package integrate

import (
	"fmt"
	"sort"
)

// ScanRT pairs a selected scan number with its retention time.
type ScanRT struct {
	Scan int
	RT   float64
}

// SelectScans returns the MS1 scans whose retention time lies within the
// tolerance window (inclusive) around the anchor scan's retention time,
// sorted ascending by retention time so that downstream integration samples
// a well-ordered time axis. An unknown anchor scan is an error; the caller
// treats it as a per-peptide failure.
func SelectScans(src SpectrumSource, anchorScan int, tolerance float64) ([]ScanRT, error) {
	rt0, err := src.RetentionTime(anchorScan)
	if err != nil {
		return nil, fmt.Errorf("anchor scan %d: %w", anchorScan, err)
	}

	var selected []ScanRT
	for _, scan := range src.Scans() {
		level, err := src.MSLevel(scan)
		if err != nil {
			return nil, fmt.Errorf("scan %d: %w", scan, err)
		}
		if level != 1 {
			continue
		}
		rt, err := src.RetentionTime(scan)
		if err != nil {
			return nil, fmt.Errorf("scan %d: %w", scan, err)
		}
		if rt >= rt0-tolerance && rt <= rt0+tolerance {
			selected = append(selected, ScanRT{Scan: scan, RT: rt})
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].RT < selected[j].RT
	})

	return selected, nil
}
