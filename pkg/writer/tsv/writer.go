// Package tsv provides tab-delimited result table writing for integration
// results.
package tsv

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benchlab/isoquant/pkg/integrate"
)

// Writer appends fraction results to one tab-delimited output table. The
// same writer type serves the per-sample tables and the study-wide table;
// fractions are appended in processing order so concatenation happens
// naturally.
type Writer struct {
	file     *os.File
	w        *bufio.Writer
	isotopes []int
}

// NewWriter creates the output file and writes the header row. The
// isotopologue list fixes the area column set for the whole table.
func NewWriter(path string, isotopes []int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := &Writer{
		file:     f,
		w:        bufio.NewWriter(f),
		isotopes: append([]int(nil), isotopes...),
	}

	if err := w.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeHeader() error {
	columns := []string{
		"id", "pep_id", "sequence", "charge", "peptide_mass", "scan",
		"percolator_score", "percolator_qvalue", "protein_id",
	}
	for _, iso := range w.isotopes {
		columns = append(columns, fmt.Sprintf("m%d", iso))
	}
	columns = append(columns, "file")

	_, err := w.w.WriteString(strings.Join(columns, "\t") + "\n")
	return err
}

// WriteFraction appends one fraction's result rows to the table. Every input
// match row appears exactly once; rows whose task failed carry zero areas.
func (w *Writer) WriteFraction(fr *integrate.FractionResult) error {
	if len(fr.Isotopes) != len(w.isotopes) {
		return fmt.Errorf("fraction has %d isotopologue columns, table has %d", len(fr.Isotopes), len(w.isotopes))
	}

	for i := range fr.Rows {
		row := &fr.Rows[i]
		m := row.Match

		fields := []string{
			strconv.Itoa(m.RowIndex),
			m.PeptideID(),
			m.Sequence,
			strconv.Itoa(m.Charge),
			strconv.FormatFloat(m.Mass, 'f', 6, 64),
			strconv.Itoa(m.Scan),
			strconv.FormatFloat(m.Score, 'g', -1, 64),
			strconv.FormatFloat(m.QValue, 'g', -1, 64),
			m.Proteins,
		}
		for _, area := range row.Areas {
			fields = append(fields, strconv.FormatFloat(area, 'g', -1, 64))
		}
		fields = append(fields, fr.SourceFile)

		if _, err := w.w.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return fmt.Errorf("failed to write result row: %w", err)
		}
	}

	return nil
}

// Close flushes and closes the output file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	return w.file.Close()
}
