package tsv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benchlab/isoquant/pkg/core"
	"github.com/benchlab/isoquant/pkg/integrate"
)

func testFraction() *integrate.FractionResult {
	matches := []core.PeptideMatch{
		{RowIndex: 0, Sequence: "TESTPEPTIDEK", Charge: 2, Mass: 1000.014, Scan: 4912, Score: 5.25, QValue: 0.0001, Proteins: "sp|P12345"},
		{RowIndex: 1, Sequence: "ANGTTVLVGMPAGAK", Charge: 3, Mass: 1000.485, Scan: 6100, Score: 3.9, QValue: 0.002, Proteins: "sp|P67890"},
	}
	return &integrate.FractionResult{
		SourceFile: "f01.mzML",
		Isotopes:   []int{0, 6},
		Rows: []integrate.ResultRow{
			{Match: &matches[0], Areas: []float64{150.0, 12.5}},
			{Match: &matches[1], Areas: []float64{0, 0}, Err: os.ErrNotExist},
		},
	}
}

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	w, err := NewWriter(path, []int{0, 6})
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.WriteFraction(testFraction()); err != nil {
		t.Fatalf("WriteFraction() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}

	header := strings.Split(lines[0], "\t")
	wantHeader := []string{
		"id", "pep_id", "sequence", "charge", "peptide_mass", "scan",
		"percolator_score", "percolator_qvalue", "protein_id", "m0", "m6", "file",
	}
	if len(header) != len(wantHeader) {
		t.Fatalf("header has %d columns, want %d", len(header), len(wantHeader))
	}
	for i := range header {
		if header[i] != wantHeader[i] {
			t.Errorf("header[%d] = %q, want %q", i, header[i], wantHeader[i])
		}
	}

	row := strings.Split(lines[1], "\t")
	if row[0] != "0" || row[1] != "TESTPEPTIDEK/2" || row[9] != "150" {
		t.Errorf("row 1 = %v", row)
	}
	if row[len(row)-1] != "f01.mzML" {
		t.Errorf("file tag = %q, want f01.mzML", row[len(row)-1])
	}

	// The failed row is present with zero areas, not dropped
	row = strings.Split(lines[2], "\t")
	if row[1] != "ANGTTVLVGMPAGAK/3" || row[9] != "0" || row[10] != "0" {
		t.Errorf("row 2 = %v", row)
	}
}

func TestWriterRejectsIsotopeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	w, err := NewWriter(path, []int{0})
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	defer w.Close()

	if err := w.WriteFraction(testFraction()); err == nil {
		t.Error("expected error for mismatched isotopologue columns")
	}
}
