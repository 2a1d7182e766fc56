package percolator

import (
	"sort"
	"strings"

	"github.com/benchlab/isoquant/pkg/core"
)

// Filter holds the quality thresholds applied to PSM rows before they become
// a match list.
type Filter struct {
	QValue     float64 // Keep rows with q-value at or below this threshold
	UniqueOnly bool    // Keep only peptides mapping to a single protein
}

// MaxFileIdx returns the largest fraction index in the table, or -1 when the
// table is empty. Used to check that the expected number of spectral files is
// present.
func MaxFileIdx(psms []PSM) int {
	max := -1
	for i := range psms {
		if psms[i].FileIdx > max {
			max = psms[i].FileIdx
		}
	}
	return max
}

// BuildMatchList filters one fraction's PSMs down to unique peptides and
// converts them into the match list consumed by the integration engine.
//
// Rows above the q-value threshold are dropped. When several rows identify
// the same (sequence, charge) peptide, the row with the best (highest)
// Percolator score wins; the tie-break is explicit rather than relying on
// input row order. Row indices are assigned after filtering, in the original
// table order of the winning rows, and define output ordering.
//
// A row with no peptide mass gets one computed from its sequence; rows whose
// mass cannot be determined are dropped.
func BuildMatchList(psms []PSM, filter Filter) []core.PeptideMatch {
	type key struct {
		sequence string
		charge   int
	}

	best := make(map[key]int) // key -> index into psms of the winning row

	for i := range psms {
		p := &psms[i]
		if p.QValue > filter.QValue {
			continue
		}
		if filter.UniqueOnly && strings.Contains(p.Proteins, ",") {
			continue
		}

		k := key{sequence: p.Sequence, charge: p.Charge}
		prev, seen := best[k]
		if !seen || p.Score > psms[prev].Score {
			best[k] = i
		}
	}

	kept := make([]int, 0, len(best))
	for _, i := range best {
		kept = append(kept, i)
	}
	sort.Ints(kept)

	matches := make([]core.PeptideMatch, 0, len(kept))
	for _, i := range kept {
		p := &psms[i]

		mass := p.Mass
		if mass <= 0 {
			m, err := core.CalculateNeutralMass(p.Sequence)
			if err != nil {
				continue
			}
			mass = m
		}

		matches = append(matches, core.PeptideMatch{
			RowIndex: len(matches),
			Sequence: p.Sequence,
			Charge:   p.Charge,
			Mass:     mass,
			Scan:     p.Scan,
			Score:    p.Score,
			QValue:   p.QValue,
			Proteins: p.Proteins,
		})
	}

	return matches
}

// SplitByFraction groups PSM rows by their fraction index.
func SplitByFraction(psms []PSM) map[int][]PSM {
	fractions := make(map[int][]PSM)
	for i := range psms {
		fractions[psms[i].FileIdx] = append(fractions[psms[i].FileIdx], psms[i])
	}
	return fractions
}
