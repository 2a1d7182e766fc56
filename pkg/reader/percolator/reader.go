// Package percolator provides streaming readers for Percolator target PSM
// tables (tab-delimited, as written by crux percolator) and the quality
// filtering that turns them into per-fraction peptide match lists.
package percolator

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PSM is one peptide-spectrum match row from a Percolator output table.
type PSM struct {
	FileIdx  int     // Fraction index within the sample
	Scan     int     // Scan number in the fraction's spectral file
	Charge   int     // Precursor charge state
	Mass     float64 // Neutral monoisotopic peptide mass
	Score    float64 // Percolator score (higher is better)
	QValue   float64 // Percolator q-value
	Sequence string  // Peptide sequence
	Proteins string  // Protein id(s) as reported
}

// Reader provides streaming access to a Percolator PSM table
type Reader struct {
	scanner    *bufio.Scanner
	columns    map[string]int
	lineNum    int
	currentPSM *PSM
	err        error
}

// Required header columns. "peptide mass" is optional; callers may fall
// back to computing the mass from the sequence.
var requiredColumns = []string{"scan", "charge", "sequence", "percolator score", "percolator q-value"}

// NewReader creates a new PSM table reader and parses the header line.
func NewReader(r io.Reader) (*Reader, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		return nil, fmt.Errorf("empty PSM table")
	}

	columns := make(map[string]int)
	for i, name := range strings.Split(scanner.Text(), "\t") {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	return &Reader{
		scanner: scanner,
		columns: columns,
		lineNum: 1,
	}, nil
}

// Next advances to the next PSM. Returns false when no more rows or error.
func (r *Reader) Next() bool {
	r.currentPSM = nil

	for r.scanner.Scan() {
		r.lineNum++
		line := r.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		psm, err := r.parseRow(line)
		if err != nil {
			r.err = fmt.Errorf("line %d: %w", r.lineNum, err)
			return false
		}
		r.currentPSM = psm
		return true
	}

	if err := r.scanner.Err(); err != nil {
		r.err = err
	}
	return false
}

// PSM returns the current row
func (r *Reader) PSM() *PSM {
	return r.currentPSM
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) parseRow(line string) (*PSM, error) {
	fields := strings.Split(line, "\t")

	get := func(name string) (string, bool) {
		i, ok := r.columns[name]
		if !ok || i >= len(fields) {
			return "", false
		}
		return strings.TrimSpace(fields[i]), true
	}

	psm := &PSM{}

	scanStr, _ := get("scan")
	scan, err := strconv.Atoi(scanStr)
	if err != nil {
		return nil, fmt.Errorf("invalid scan value %q: %w", scanStr, err)
	}
	psm.Scan = scan

	chargeStr, _ := get("charge")
	charge, err := strconv.Atoi(chargeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid charge value %q: %w", chargeStr, err)
	}
	psm.Charge = charge

	scoreStr, _ := get("percolator score")
	score, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid percolator score %q: %w", scoreStr, err)
	}
	psm.Score = score

	qStr, _ := get("percolator q-value")
	q, err := strconv.ParseFloat(qStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid percolator q-value %q: %w", qStr, err)
	}
	psm.QValue = q

	seq, _ := get("sequence")
	if seq == "" {
		return nil, fmt.Errorf("empty sequence")
	}
	psm.Sequence = seq

	if s, ok := get("file_idx"); ok && s != "" {
		idx, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid file_idx value %q: %w", s, err)
		}
		psm.FileIdx = idx
	}

	if s, ok := get("peptide mass"); ok && s != "" {
		mass, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid peptide mass %q: %w", s, err)
		}
		psm.Mass = mass
	}

	if s, ok := get("protein id"); ok {
		psm.Proteins = s
	}

	return psm, nil
}

// ReadAll reads every PSM row from r.
func ReadAll(r io.Reader) ([]PSM, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, err
	}

	var psms []PSM
	for reader.Next() {
		psms = append(psms, *reader.PSM())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return psms, nil
}
