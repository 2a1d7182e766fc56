// Package project discovers the sample and fraction layout of a quantitation
// project directory.
//
// A project directory holds one subdirectory per sample. Each sample
// contains an "mzml" subdirectory with one spectral file per fraction and a
// Percolator output subdirectory with the identification table:
//
//	project/
//	  sample1/
//	    mzml/        f01.mzML, f02.mzML, ...
//	    percolator/  percolator.target.psms.txt
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// mzML and mzml extensions both occur in the wild
var mzmlPattern = regexp.MustCompile(`(?i)\.mzml$`)

// Project is a discovered project directory with its samples.
type Project struct {
	Path    string
	Samples []string
}

// Discover lists the sample subdirectories of a project directory. A missing
// directory or a directory without samples is a configuration error.
func Discover(path string) (*Project, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("project directory not valid: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project directory: %w", err)
	}

	var samples []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			samples = append(samples, e.Name())
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no sample directories found in %s", path)
	}
	sort.Strings(samples)

	return &Project{Path: path, Samples: samples}, nil
}

// MzmlDir returns the spectral file directory of a sample.
func (p *Project) MzmlDir(sample string) string {
	return filepath.Join(p.Path, sample, "mzml")
}

// MzmlFiles returns the fraction spectral file names of a sample, sorted by
// name so fraction order matches the identification table's file indices.
func (p *Project) MzmlFiles(sample string) ([]string, error) {
	dir := p.MzmlDir(sample)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mzml directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && mzmlPattern.MatchString(e.Name()) {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no mzml files in %s", dir)
	}
	sort.Strings(files)

	return files, nil
}

// PercolatorFile locates the target PSM table of a sample inside the given
// Percolator subdirectory.
func (p *Project) PercolatorFile(sample, subdir string) (string, error) {
	dir := filepath.Join(p.Path, sample, subdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read percolator directory: %w", err)
	}

	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), "target.psms.txt") {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("no target PSM table found in %s", dir)
}
