// Package core provides the domain models and validation logic for
// peptide identification matches used by isoquant.
package core

import (
	"fmt"
	"math"
	"strings"
)

// PeptideMatch is one unique peptide identification within a fraction,
// carrying everything the integration engine needs to locate its isotope
// envelope in the MS1 scans.
type PeptideMatch struct {
	// RowIndex is the stable position of this match in the filtered
	// identification list. It defines output row ordering.
	RowIndex int

	Sequence string  // Peptide sequence
	Charge   int     // Precursor charge state
	Mass     float64 // Neutral monoisotopic mass from the search engine
	Scan     int     // Anchor scan number where the peptide was identified

	// Identification metadata carried through to the output table
	Score    float64 // Percolator score
	QValue   float64 // Percolator q-value
	Proteins string  // Protein id(s), semicolon-joined
}

// PeptideID returns the peptide identifier in format "Sequence/Charge"
func (m *PeptideMatch) PeptideID() string {
	return fmt.Sprintf("%s/%d", m.Sequence, m.Charge)
}

// Validate checks that a match meets all requirements for integration.
func (m *PeptideMatch) Validate() error {
	var errs []string

	if m.Sequence == "" {
		errs = append(errs, "sequence is required")
	}
	if m.Charge <= 0 {
		errs = append(errs, "charge must be positive")
	}
	if m.Mass <= 0 || math.IsNaN(m.Mass) || math.IsInf(m.Mass, 0) {
		errs = append(errs, "peptide mass must be positive and finite")
	}
	if m.Scan <= 0 {
		errs = append(errs, "scan number must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "PeptideMatch",
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// ValidationError represents an error found during match validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}
