package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_HelloWorld(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/hello_world.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestGoldenFilePath(t *testing.T) {
	got := GoldenFilePath(filepath.Join("scenarios", "echo.yaml"), "echo")
	assert.Equal(t, filepath.Join("scenarios", "golden", "echo.golden"), got)

	// The scenario name wins over the file name.
	got = GoldenFilePath(filepath.Join("scenarios", "io", "01_echo.yaml"), "echo_input")
	assert.Equal(t, filepath.Join("scenarios", "io", "golden", "echo_input.golden"), got)
}

func TestUpdateAndCompareGolden(t *testing.T) {
	goldenPath := filepath.Join(t.TempDir(), "golden", "echo.golden")
	result := &Result{Output: "abc"}

	_, err := CompareGolden(result, goldenPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, UpdateGolden(result, goldenPath))

	match, err := CompareGolden(result, goldenPath)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = CompareGolden(&Result{Output: "abd"}, goldenPath)
	require.NoError(t, err)
	assert.False(t, match)
}
