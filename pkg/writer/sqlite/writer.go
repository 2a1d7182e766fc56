// Package sqlite provides SQLite database writing for integration results
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/benchlab/isoquant/pkg/integrate"
)

// Date format for RunTable (ISO 8601)
const runDateFormat = "2006-01-02"

// RunInfo describes the integration run stored alongside the results.
type RunInfo struct {
	Isotopes         []int
	RTTolerance      float64
	MassTolerancePPM float64
	Deuterium        bool
	Version          string
}

// Writer handles writing integration results to a SQLite database file
type Writer struct {
	db         *sql.DB
	outputPath string
	resultStmt *sql.Stmt
	areaStmt   *sql.Stmt
	resultID   int
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		resultID:   1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ResultTable (
		ResultId INTEGER PRIMARY KEY,
		Sample TEXT,
		SourceFile TEXT,
		RowIdx INTEGER,
		PepId TEXT,
		Sequence TEXT,
		Charge INTEGER,
		PeptideMass DOUBLE,
		ScanNumber INTEGER,
		PercolatorScore DOUBLE,
		PercolatorQValue DOUBLE,
		ProteinId TEXT,
		Failed BOOL
	);

	CREATE TABLE IF NOT EXISTS AreaTable (
		ResultId INTEGER REFERENCES ResultTable(ResultId),
		Isotope INTEGER,
		Area DOUBLE
	);

	CREATE TABLE IF NOT EXISTS RunTable (
		CreationDate TEXT,
		Isotopes TEXT,
		RTTolerance DOUBLE,
		MassTolerancePPM DOUBLE,
		Deuterium BOOL,
		Version TEXT
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.resultStmt, err = w.db.Prepare(`
		INSERT INTO ResultTable (
			ResultId, Sample, SourceFile, RowIdx, PepId, Sequence,
			Charge, PeptideMass, ScanNumber, PercolatorScore,
			PercolatorQValue, ProteinId, Failed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare result statement: %w", err)
	}

	w.areaStmt, err = w.db.Prepare(`
		INSERT INTO AreaTable (ResultId, Isotope, Area) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare area statement: %w", err)
	}

	return nil
}

// WriteFraction writes one fraction's result rows to the database
func (w *Writer) WriteFraction(sample string, fr *integrate.FractionResult) error {
	for i := range fr.Rows {
		row := &fr.Rows[i]
		m := row.Match

		_, err := w.resultStmt.Exec(
			w.resultID,
			sample,
			fr.SourceFile,
			m.RowIndex,
			m.PeptideID(),
			m.Sequence,
			m.Charge,
			m.Mass,
			m.Scan,
			m.Score,
			m.QValue,
			m.Proteins,
			row.Err != nil,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result %s: %w", m.PeptideID(), err)
		}

		for j, iso := range fr.Isotopes {
			if _, err := w.areaStmt.Exec(w.resultID, iso, row.Areas[j]); err != nil {
				return fmt.Errorf("failed to insert area m%d for %s: %w", iso, m.PeptideID(), err)
			}
		}

		w.resultID++
	}

	return nil
}

// Finalize writes the run metadata table and closes the database
func (w *Writer) Finalize(info RunInfo) error {
	isoStrs := make([]string, len(info.Isotopes))
	for i, iso := range info.Isotopes {
		isoStrs[i] = fmt.Sprintf("%d", iso)
	}

	_, err := w.db.Exec(`
		INSERT INTO RunTable (CreationDate, Isotopes, RTTolerance, MassTolerancePPM, Deuterium, Version)
		VALUES (?, ?, ?, ?, ?, ?)
	`, time.Now().Format(runDateFormat), strings.Join(isoStrs, ","),
		info.RTTolerance, info.MassTolerancePPM, info.Deuterium, info.Version)
	if err != nil {
		return fmt.Errorf("failed to insert run metadata: %w", err)
	}

	if w.resultStmt != nil {
		w.resultStmt.Close()
	}
	if w.areaStmt != nil {
		w.areaStmt.Close()
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close closes the database without writing run metadata.
func (w *Writer) Close() error {
	if w.resultStmt != nil {
		w.resultStmt.Close()
	}
	if w.areaStmt != nil {
		w.areaStmt.Close()
	}
	return w.db.Close()
}
