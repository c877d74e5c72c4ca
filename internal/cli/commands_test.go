package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/datalens/internal/cli"
	"github.com/rshade/datalens/internal/dataset"
	"github.com/rshade/datalens/internal/plot"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRootCmd(t *testing.T) {
	setupCLITest(t)
	root := cli.NewRootCmd("1.2.3")
	assert.Equal(t, "datalens", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"menu", "tui", "view", "describe", "plot", "merge", "config"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestRootCmd_ExplicitConfig(t *testing.T) {
	home := setupCLITest(t)
	cfgPath := writeFile(t, home, "custom.yaml", "schema_version: 1.0.0\ndisplay:\n  page_size: 7\n")

	out, _, err := execute(t, "", "--config", cfgPath, "config", "get", "display.page_size")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)

	_, _, err = execute(t, "", "--config", writeFile(t, home, "bad.yaml", ":\n  - ["), "config", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
}

func TestDescribe(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "people.csv", peopleCSV)

	out, _, err := execute(t, "", "describe", path, "--info")
	require.NoError(t, err)
	assert.Contains(t, out, "Shape: (5, 3)")
	assert.Contains(t, out, "object")
	assert.Contains(t, out, "mean")
	assert.Contains(t, out, "75%")

	out, _, err = execute(t, "", "describe", path, "--output", "json")
	require.NoError(t, err)
	var doc struct {
		Rows  int              `json:"rows"`
		Stats []map[string]any `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 5, doc.Rows)
	require.Len(t, doc.Stats, 8)
	assert.Equal(t, "count", doc.Stats[0]["stat"])
	assert.InDelta(t, 5.0, doc.Stats[0]["age"], 0)
	assert.InDelta(t, 37.8, doc.Stats[1]["age"], 1e-9)
}

func TestDescribe_NoNumericColumns(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "names.csv", "name\nAlice\nBob\n")

	_, _, err := execute(t, "", "describe", path)
	require.ErrorIs(t, err, dataset.ErrNotNumeric)
}

func TestPlot(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "people.csv", peopleCSV)

	out := filepath.Join(home, "charts", "age.png")
	stdout, _, err := execute(t, "", "plot", path, "--kind", "histogram", "--x", "age", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Plot saved to "+out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, data[:4])

	stdout, _, err = execute(t, "", "plot", path, "--kind", "scatter", "--x", "id", "--y", "age", "--out", "-")
	require.NoError(t, err)
	assert.Equal(t, pngMagic, []byte(stdout[:4]))
}

func TestPlot_DefaultDirectory(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "people.csv", peopleCSV)

	_, _, err := execute(t, "", "plot", path, "--x", "name")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, "plots", "name_bar.png"))
}

func TestPlot_Errors(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "people.csv", peopleCSV)

	_, _, err := execute(t, "", "plot", path, "--kind", "pie", "--x", "age")
	require.ErrorIs(t, err, plot.ErrUnknownKind)

	_, _, err = execute(t, "", "plot", path, "--kind", "scatter", "--x", "age")
	require.ErrorIs(t, err, plot.ErrMissingColumn)

	_, _, err = execute(t, "", "plot", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x")
}

func TestMerge(t *testing.T) {
	home := setupCLITest(t)
	left := writeFile(t, home, "people.csv", peopleCSV)
	right := writeFile(t, home, "cities.csv", citiesCSV)

	out, _, err := execute(t, "", "merge", left, right, "--on", "id")
	require.NoError(t, err)
	ds, err := dataset.Read(t.Context(), stringsReader(out))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Nrow())
	assert.Contains(t, ds.Columns(), "city")

	target := filepath.Join(home, "joined.csv")
	_, stderr, err := execute(t, "", "merge", left, right, "--on", "id", "--how", "left", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Merge complete")
	joined, err := dataset.Load(t.Context(), target)
	require.NoError(t, err)
	assert.Equal(t, 5, joined.Nrow())

	_, _, err = execute(t, "", "merge", left, right, "--on", "id", "--out", target)
	require.ErrorIs(t, err, cli.ErrOutputExists)

	_, _, err = execute(t, "", "merge", left, right, "--on", "id", "--out", target, "--force")
	require.NoError(t, err)
}

func TestMerge_Errors(t *testing.T) {
	home := setupCLITest(t)
	left := writeFile(t, home, "people.csv", peopleCSV)
	right := writeFile(t, home, "cities.csv", citiesCSV)

	_, _, err := execute(t, "", "merge", left, right, "--on", "id", "--how", "cross")
	require.ErrorIs(t, err, dataset.ErrInvalidJoin)

	_, _, err = execute(t, "", "merge", left, right, "--on", "city")
	require.Error(t, err)

	_, _, err = execute(t, "", "merge", left, filepath.Join(home, "missing.csv"), "--on", "id")
	require.Error(t, err)
}

func TestMenuCmd(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "people.csv", peopleCSV)

	out, _, err := execute(t, "4\nage\ndesc\n11\n", "menu", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Dataset loaded successfully.")
	assert.Contains(t, out, "Dataset Analysis CLI")
	assert.Contains(t, out, "👋 Exiting tool.")
}

func TestMenuCmd_PromptsForPath(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "people.csv", peopleCSV)

	out, _, err := execute(t, filepath.Join(home, "nope.csv")+"\n"+path+"\n11\n", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "❌ Error loading dataset")
	assert.Contains(t, out, "👋 Exiting tool.")
}

func TestTUICmd_RequiresTerminal(t *testing.T) {
	setupCLITest(t)
	_, _, err := execute(t, "", "tui")
	require.ErrorIs(t, err, cli.ErrNotInteractive)
}
