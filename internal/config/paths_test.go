package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsAt(t *testing.T) {
	base := t.TempDir()
	paths := PathsAt(base)

	assert.Equal(t, base, paths.ExecutableDir)
	assert.Equal(t, filepath.Join(base, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(base, "data", "raw"), paths.RawDir)
	assert.Equal(t, filepath.Join(base, "data", "processed"), paths.ProcessedDir)
	assert.Equal(t, filepath.Join(base, "data", "results"), paths.ResultsDir)
	assert.Equal(t, filepath.Join(base, "models"), paths.ModelsDir)
	assert.Equal(t, filepath.Join(base, "logs"), paths.LogsDir)
	assert.Equal(t, filepath.Join(base, "exports"), paths.ExportsDir)

	assert.Equal(t, filepath.Join(paths.ProcessedDir, ProcessedDataFile), paths.ProcessedDataCSV)
	assert.Equal(t, filepath.Join(paths.ProcessedDir, FeatureDataFile), paths.FeatureDataCSV)
}

func TestEnsureDirectories(t *testing.T) {
	paths := PathsAt(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{
		paths.DataDir, paths.RawDir, paths.ProcessedDir, paths.ResultsDir,
		paths.ModelsDir, paths.LogsDir, paths.ExportsDir,
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err, "directory %s", dir)
		assert.True(t, info.IsDir())
	}

	// Idempotent.
	assert.NoError(t, paths.EnsureDirectories())
}

func TestPathHelpers(t *testing.T) {
	paths := PathsAt("/base")

	assert.Equal(t, filepath.Join("/base", "exports", "out.csv"), paths.GetExportPath("out.csv"))
	assert.Equal(t, filepath.Join("/base", "data", "processed", "p.csv"), paths.GetProcessedPath("p.csv"))
	assert.Equal(t, filepath.Join("/base", "data", "results", "r.json"), paths.GetResultsPath("r.json"))
}

func TestGetPaths(t *testing.T) {
	paths, err := GetPaths()
	require.NoError(t, err)
	assert.NotEmpty(t, paths.ExecutableDir)
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "data"), paths.DataDir)
}
