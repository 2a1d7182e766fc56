package integrate

import (
	"runtime"
	"sync"

	"github.com/benchlab/isoquant/pkg/core"
)

// ResultRow joins one peptide match with its integrated areas. Err is set
// when the task failed for this row; the areas are then all zero and the row
// is kept so the output always has one row per input match.
type ResultRow struct {
	Match *core.PeptideMatch
	Areas []float64
	Err   error
}

// FractionResult is the assembled output of one fraction: one row per
// peptide match, in match-list order, tagged with the source spectral file.
type FractionResult struct {
	SourceFile string
	Isotopes   []int
	Rows       []ResultRow
}

// IntegrateFraction runs IntegratePeptide once per match across a bounded
// worker pool. Workers share read-only access to the spectrum source and the
// match list; results are stored by source row index, so the output order is
// the match-list order regardless of pool size or scheduling.
func IntegrateFraction(src SpectrumSource, matches []core.PeptideMatch, cfg *Config, sourceFile string) *FractionResult {
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(matches) && len(matches) > 0 {
		workers = len(matches)
	}

	rows := make([]ResultRow, len(matches))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				match := &matches[i]
				areas, err := IntegratePeptide(src, match, cfg)
				if err != nil {
					areas = make([]float64, len(cfg.Isotopes))
				}
				rows[i] = ResultRow{Match: match, Areas: areas, Err: err}
			}
		}()
	}

	for i := range matches {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return &FractionResult{
		SourceFile: sourceFile,
		Isotopes:   append([]int(nil), cfg.Isotopes...),
		Rows:       rows,
	}
}
