package cli

// Test Plan for Extract Command:
// - runExtract writes a dataset keeping typed callables and dropping
//   untyped ones under the default filter chain
// - runExtract drops test modules when TestModuleFilter is in the chain
// - runExtract skips unparsable files, records them in the report, and
//   still extracts the rest
// - runExtract fails on an unknown filter name before writing any output
// - runExtract writes an empty dataset list when the repository is
//   filtered away entirely
// - runExtract honors the --config file's filter chain when no --filters
//   flag is given

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a small Python repository on disk.
func setupTestRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// setExtractFlags points the command's flag variables at a test run and
// restores the defaults afterwards.
func setExtractFlags(t *testing.T, root, name, filters, output, report string) {
	t.Helper()
	rootFlag, nameFlag, filtersFlag = root, name, filters
	outputFlag, reportFlag = output, report
	urlFlag, pypiTagFlag, commitFlag = "", "", ""
	workersFlag = 1
	quietFlag = true
	t.Cleanup(func() {
		rootFlag, nameFlag, filtersFlag = ".", "", ""
		outputFlag, reportFlag = "", ""
		workersFlag = 0
		quietFlag = false
	})
}

func readDataset(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	return decoded
}

func TestRunExtract_DefaultChainKeepsTypedDropsUntyped(t *testing.T) {
	root := setupTestRepo(t, map[string]string{
		"mod.py": "def typed(x: int) -> int:\n    return x\n\ndef untyped(y):\n    return y\n",
	})
	output := filepath.Join(t.TempDir(), "dataset.json")
	setExtractFlags(t, root, "demo", "", output, "")

	require.NoError(t, runExtract(extractCmd, nil))

	dataset := readDataset(t, output)
	require.Len(t, dataset, 1)
	modules := dataset[0]["modules"].([]any)
	require.Len(t, modules, 1)
	functions := modules[0].(map[string]any)["functions"].([]any)
	require.Len(t, functions, 1)
	assert.Equal(t, "typed", functions[0].(map[string]any)["identifier"])
}

func TestRunExtract_TestModuleFilterDropsTests(t *testing.T) {
	root := setupTestRepo(t, map[string]string{
		"pkg/core.py":        "def f(x: int) -> int:\n    return x\n",
		"tests/test_core.py": "def test_f() -> None:\n    pass\n",
	})
	output := filepath.Join(t.TempDir(), "dataset.json")
	setExtractFlags(t, root, "demo", "TestModuleFilter,EmptyFilter", output, "")

	require.NoError(t, runExtract(extractCmd, nil))

	dataset := readDataset(t, output)
	require.Len(t, dataset, 1)
	modules := dataset[0]["modules"].([]any)
	require.Len(t, modules, 1)
	assert.Equal(t, "pkg/core.py", modules[0].(map[string]any)["file_path"])
}

func TestRunExtract_SyntaxErrorSkipsFileAndReports(t *testing.T) {
	root := setupTestRepo(t, map[string]string{
		"good.py": "def ok(x: int) -> int:\n    return x\n",
		"bad.py":  "def broken(:\n    pass\n",
	})
	output := filepath.Join(t.TempDir(), "dataset.json")
	report := filepath.Join(t.TempDir(), "report.json")
	setExtractFlags(t, root, "demo", "", output, report)

	require.NoError(t, runExtract(extractCmd, nil))

	dataset := readDataset(t, output)
	require.Len(t, dataset, 1)
	modules := dataset[0]["modules"].([]any)
	require.Len(t, modules, 1)
	assert.Equal(t, "good.py", modules[0].(map[string]any)["file_path"])

	reportData, err := os.ReadFile(report)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(reportData, &decoded))
	failures := decoded["failures"].([]any)
	require.Len(t, failures, 1)
	assert.Equal(t, "bad.py", failures[0].(map[string]any)["path"])
	assert.Equal(t, "syntax", failures[0].(map[string]any)["kind"])
}

func TestRunExtract_UnknownFilterFailsBeforeAnyWork(t *testing.T) {
	root := setupTestRepo(t, map[string]string{
		"mod.py": "def f(x: int) -> int:\n    return x\n",
	})
	output := filepath.Join(t.TempDir(), "dataset.json")
	setExtractFlags(t, root, "demo", "NoSuchFilter", output, "")

	err := runExtract(extractCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchFilter")

	// No dataset was written.
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunExtract_ConfigFileFilterChainApplies(t *testing.T) {
	root := setupTestRepo(t, map[string]string{
		"mod.py": "def typed(x: int) -> int:\n    return x\n\ndef untyped(y):\n    return y\n",
	})
	configPath := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("filters:\n  - EmptyFilter\n"), 0644))

	output := filepath.Join(t.TempDir(), "dataset.json")
	setExtractFlags(t, root, "demo", "", output, "")
	cfgFile = configPath
	t.Cleanup(func() { cfgFile = "" })

	require.NoError(t, runExtract(extractCmd, nil))

	// EmptyFilter alone keeps untyped callables that the default chain
	// would have dropped, so the custom file was consulted.
	dataset := readDataset(t, output)
	require.Len(t, dataset, 1)
	modules := dataset[0]["modules"].([]any)
	require.Len(t, modules, 1)
	functions := modules[0].(map[string]any)["functions"].([]any)
	require.Len(t, functions, 2)
}

func TestRunExtract_RepositoryFilteredAwayWritesEmptyList(t *testing.T) {
	root := setupTestRepo(t, map[string]string{
		"mod.py": "def untyped(y):\n    return y\n",
	})
	output := filepath.Join(t.TempDir(), "dataset.json")
	setExtractFlags(t, root, "demo", "", output, "")

	require.NoError(t, runExtract(extractCmd, nil))

	dataset := readDataset(t, output)
	assert.Empty(t, dataset)
}
