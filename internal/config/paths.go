package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: raw input,
// processed output, analysis results, model artifacts, logs, and exports.
type Paths struct {
	ExecutableDir string
	DataDir       string
	RawDir        string
	ProcessedDir  string
	ResultsDir    string
	ModelsDir     string
	LogsDir       string
	ExportsDir    string

	// Well-known output files
	ProcessedDataCSV string
	FeatureDataCSV   string
}

// GetPaths returns the application paths relative to the executable
// location, never the current working directory.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return PathsAt(filepath.Dir(exe)), nil
}

// PathsAt builds the directory layout rooted at baseDir. Split out from
// GetPaths so tests can root the layout in a temp directory.
func PathsAt(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	processedDir := filepath.Join(dataDir, "processed")
	exportsDir := filepath.Join(baseDir, "exports")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		RawDir:        filepath.Join(dataDir, "raw"),
		ProcessedDir:  processedDir,
		ResultsDir:    filepath.Join(dataDir, "results"),
		ModelsDir:     filepath.Join(baseDir, "models"),
		LogsDir:       filepath.Join(baseDir, "logs"),
		ExportsDir:    exportsDir,

		ProcessedDataCSV: filepath.Join(processedDir, ProcessedDataFile),
		FeatureDataCSV:   filepath.Join(processedDir, FeatureDataFile),
	}
}

// EnsureDirectories creates all required directories if they don't exist.
// Safe to call repeatedly.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.RawDir,
		p.ProcessedDir,
		p.ResultsDir,
		p.ModelsDir,
		p.LogsDir,
		p.ExportsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetExportPath returns the full path for an export file
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// GetProcessedPath returns the full path for a processed data file
func (p *Paths) GetProcessedPath(filename string) string {
	return filepath.Join(p.ProcessedDir, filename)
}

// GetResultsPath returns the full path for a results file
func (p *Paths) GetResultsPath(filename string) string {
	return filepath.Join(p.ResultsDir, filename)
}
