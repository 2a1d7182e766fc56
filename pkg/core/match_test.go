package core

import (
	"strings"
	"testing"
)

func TestPeptideMatchValidation(t *testing.T) {
	tests := []struct {
		name    string
		match   *PeptideMatch
		wantErr bool
	}{
		{
			name: "valid match",
			match: &PeptideMatch{
				Sequence: "PEPTIDE",
				Charge:   2,
				Mass:     799.36,
				Scan:     4912,
			},
			wantErr: false,
		},
		{
			name: "missing sequence",
			match: &PeptideMatch{
				Charge: 2,
				Mass:   799.36,
				Scan:   4912,
			},
			wantErr: true,
		},
		{
			name: "zero charge",
			match: &PeptideMatch{
				Sequence: "PEPTIDE",
				Charge:   0,
				Mass:     799.36,
				Scan:     4912,
			},
			wantErr: true,
		},
		{
			name: "non-positive mass",
			match: &PeptideMatch{
				Sequence: "PEPTIDE",
				Charge:   2,
				Mass:     0,
				Scan:     4912,
			},
			wantErr: true,
		},
		{
			name: "missing scan",
			match: &PeptideMatch{
				Sequence: "PEPTIDE",
				Charge:   2,
				Mass:     799.36,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.match.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPeptideID(t *testing.T) {
	m := &PeptideMatch{Sequence: "PEPTIDE", Charge: 2}
	if got := m.PeptideID(); got != "PEPTIDE/2" {
		t.Errorf("PeptideID() = %q, want %q", got, "PEPTIDE/2")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	m := &PeptideMatch{}
	err := m.Validate()
	if err == nil {
		t.Fatal("expected validation error for empty match")
	}
	if !strings.Contains(err.Error(), "PeptideMatch") {
		t.Errorf("error %q does not name the validated field", err.Error())
	}
}
