package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/benchlab/isoquant/pkg/core"
	"github.com/benchlab/isoquant/pkg/integrate"
	"github.com/benchlab/isoquant/pkg/mzml"
	"github.com/benchlab/isoquant/pkg/project"
	"github.com/benchlab/isoquant/pkg/reader/percolator"
	"github.com/benchlab/isoquant/pkg/writer/sqlite"
	"github.com/benchlab/isoquant/pkg/writer/tsv"
)

func runIntegrate(cmd *cobra.Command, args []string) error {
	projectDir := args[0]

	isotopes, err := core.ParseIsotopes(isoList)
	if err != nil {
		return err
	}

	cfg := &integrate.Config{
		Isotopes:      isotopes,
		RTTolerance:   rtTolerance,
		MassTolerance: massTolerancePPM * 1e-6,
		Workers:       threads,
		Deuterium:     deuterium,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logFile, err := os.Create(filepath.Join(outDir, "isoquant.log"))
	if err != nil {
		return fmt.Errorf("failed to create run log: %w", err)
	}
	defer logFile.Close()
	logger := log.New(io.MultiWriter(os.Stderr, logFile), "", log.LstdFlags)

	proj, err := project.Discover(projectDir)
	if err != nil {
		return err
	}
	logger.Printf("project %s: %d sample(s), isotopologues %v, rt tolerance %.2f min, mass tolerance %.0f ppm",
		proj.Path, len(proj.Samples), isotopes, rtTolerance, massTolerancePPM)

	masterWriter, err := tsv.NewWriter(filepath.Join(outDir, "isoquant_all.txt"), isotopes)
	if err != nil {
		return err
	}
	defer masterWriter.Close()

	var dbWriter *sqlite.Writer
	if dbPath != "" {
		dbWriter, err = sqlite.NewWriter(dbPath)
		if err != nil {
			return fmt.Errorf("failed to create results database: %w", err)
		}
	}

	filter := percolator.Filter{QValue: qValueThreshold, UniqueOnly: uniqueOnly}
	failed := 0

	for _, sample := range proj.Samples {
		if err := integrateSample(proj, sample, cfg, filter, masterWriter, dbWriter, logger); err != nil {
			logger.Printf("[error] sample %s: %v", sample, err)
			failed++
		}
	}

	if dbWriter != nil {
		info := sqlite.RunInfo{
			Isotopes:         isotopes,
			RTTolerance:      rtTolerance,
			MassTolerancePPM: massTolerancePPM,
			Deuterium:        deuterium,
			Version:          rootCmd.Version,
		}
		if err := dbWriter.Finalize(info); err != nil {
			return err
		}
	}

	if err := masterWriter.Close(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sample(s) failed; see %s", failed, len(proj.Samples), filepath.Join(outDir, "isoquant.log"))
	}

	fmt.Printf("\nIntegration complete!\n")
	fmt.Printf("Output: %s\n", outDir)
	return nil
}

// integrateSample runs the per-fraction integration loop of one sample.
// Fractions within a sample run strictly sequentially so only one
// fraction's spectra are resident at a time.
func integrateSample(proj *project.Project, sample string, cfg *integrate.Config,
	filter percolator.Filter, master *tsv.Writer, db *sqlite.Writer, logger *log.Logger) error {

	psmPath, err := proj.PercolatorFile(sample, percolatorSubdir)
	if err != nil {
		return err
	}

	psmFile, err := os.Open(psmPath)
	if err != nil {
		return fmt.Errorf("failed to open PSM table: %w", err)
	}
	psms, err := percolator.ReadAll(psmFile)
	psmFile.Close()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", psmPath, err)
	}
	if len(psms) == 0 {
		return fmt.Errorf("no PSM rows in %s", psmPath)
	}

	mzmlFiles, err := proj.MzmlFiles(sample)
	if err != nil {
		return err
	}

	// The fraction indices in the identification table must line up with
	// the sorted spectral file list.
	if want := percolator.MaxFileIdx(psms) + 1; len(mzmlFiles) != want {
		return fmt.Errorf("number of mzml files (%d) does not match fraction count from identifications (%d)", len(mzmlFiles), want)
	}

	sampleWriter, err := tsv.NewWriter(filepath.Join(outDir, sample+"_isoquant.txt"), cfg.Isotopes)
	if err != nil {
		return err
	}
	defer sampleWriter.Close()

	fractions := percolator.SplitByFraction(psms)
	indices := make([]int, 0, len(fractions))
	for idx := range fractions {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		sourceFile := mzmlFiles[idx]
		logger.Printf("sample %s: integrating %s (%d of %d)", sample, sourceFile, idx+1, len(mzmlFiles))

		matches := percolator.BuildMatchList(fractions[idx], filter)
		if len(matches) == 0 {
			logger.Printf("[warning] sample %s fraction %d: no peptides passed filtering", sample, idx)
			continue
		}

		index, err := mzml.Load(filepath.Join(proj.MzmlDir(sample), sourceFile))
		if err != nil {
			return fmt.Errorf("fraction %d: %w", idx, err)
		}

		fr := integrate.IntegrateFraction(index, matches, cfg, sourceFile)
		for i := range fr.Rows {
			if fr.Rows[i].Err != nil {
				logger.Printf("[warning] sample %s fraction %d: peptide %s: %v",
					sample, idx, fr.Rows[i].Match.PeptideID(), fr.Rows[i].Err)
			}
		}

		if err := sampleWriter.WriteFraction(fr); err != nil {
			return err
		}
		if err := master.WriteFraction(fr); err != nil {
			return err
		}
		if db != nil {
			if err := db.WriteFraction(sample, fr); err != nil {
				return err
			}
		}
	}

	return sampleWriter.Close()
}
