package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/datalens/internal/cli"
	"github.com/rshade/datalens/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)

	out, _, err := execute(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	path := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page_size: 500")

	_, _, err = execute(t, "", "config", "init")
	require.ErrorIs(t, err, cli.ErrOutputExists)

	_, _, err = execute(t, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigSetGet(t *testing.T) {
	home := setupCLITest(t)

	out, _, err := execute(t, "", "config", "set", "display.page_size", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Set display.page_size = 100")

	cfg, err := config.Load(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Display.PageSize)

	config.SetGlobalConfig(nil)
	out, _, err = execute(t, "", "config", "get", "display.page_size")
	require.NoError(t, err)
	assert.Equal(t, "100\n", out)
}

func TestConfigSet_Invalid(t *testing.T) {
	setupCLITest(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "unknown key", args: []string{"display.colour", "red"}, want: config.ErrUnknownKey},
		{name: "out of range", args: []string{"display.page_size", "0"}, want: config.ErrInvalidValue},
		{name: "bad format", args: []string{"output.default_format", "xml"}, want: config.ErrInvalidValue},
		{name: "bad schema", args: []string{"schema_version", "2.0.0"}, want: config.ErrSchemaVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", append([]string{"config", "set"}, tt.args...)...)
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, _, err := execute(t, "", "config", "set", "display.page_size", "many")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value")
}

func TestConfigList(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "", "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "display.page_size = 500")
	assert.Contains(t, out, "plot.hist_bins = 30")
	assert.Contains(t, out, "plot.cli_hist_bins = 10")

	out, _, err = execute(t, "", "config", "list", "--output", "json")
	require.NoError(t, err)
	var values map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	assert.Equal(t, "table", values["output.default_format"])
	assert.Len(t, values, len(config.Keys()))
}

func TestConfigValidate(t *testing.T) {
	home := setupCLITest(t)

	out, _, err := execute(t, "", "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Page size: 500")
	assert.Contains(t, out, "Logs: ")

	bad := writeFile(t, home, "bad.yaml", "schema_version: 1.0.0\ndisplay:\n  page_size: -1\n")
	_, _, err = execute(t, "", "--config", bad, "config", "validate")
	require.ErrorIs(t, err, config.ErrInvalidValue)
}
