package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for _, sample := range []string{"heart_d0", "heart_d14"} {
		mzmlDir := filepath.Join(dir, sample, "mzml")
		percDir := filepath.Join(dir, sample, "percolator")
		if err := os.MkdirAll(mzmlDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(percDir, 0o755); err != nil {
			t.Fatal(err)
		}

		for _, name := range []string{"f02.mzML", "f01.mzml"} {
			if err := os.WriteFile(filepath.Join(mzmlDir, name), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		if err := os.WriteFile(filepath.Join(percDir, "percolator.target.psms.txt"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func TestDiscover(t *testing.T) {
	dir := writeTestProject(t)

	proj, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(proj.Samples) != 2 {
		t.Fatalf("found %d samples, want 2", len(proj.Samples))
	}
	if proj.Samples[0] != "heart_d0" || proj.Samples[1] != "heart_d14" {
		t.Errorf("samples = %v, want sorted [heart_d0 heart_d14]", proj.Samples)
	}
}

func TestDiscoverMissingDirectory(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing project directory")
	}
}

func TestDiscoverEmptyProject(t *testing.T) {
	if _, err := Discover(t.TempDir()); err == nil {
		t.Error("expected error for project without samples")
	}
}

func TestMzmlFiles(t *testing.T) {
	dir := writeTestProject(t)
	proj, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	files, err := proj.MzmlFiles("heart_d0")
	if err != nil {
		t.Fatalf("MzmlFiles() error = %v", err)
	}
	// Both .mzml and .mzML extensions count, sorted by name
	if len(files) != 2 || files[0] != "f01.mzml" || files[1] != "f02.mzML" {
		t.Errorf("files = %v, want [f01.mzml f02.mzML]", files)
	}
}

func TestPercolatorFile(t *testing.T) {
	dir := writeTestProject(t)
	proj, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	path, err := proj.PercolatorFile("heart_d0", "percolator")
	if err != nil {
		t.Fatalf("PercolatorFile() error = %v", err)
	}
	if filepath.Base(path) != "percolator.target.psms.txt" {
		t.Errorf("found %s, want percolator.target.psms.txt", path)
	}

	if _, err := proj.PercolatorFile("heart_d0", "missing"); err == nil {
		t.Error("expected error for missing percolator subdirectory")
	}
}
