package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/datalens/internal/cli"
	"github.com/rshade/datalens/internal/config"
)

const peopleCSV = `id,name,age
1,Alice,34
2,Bob,28
3,Carol,45
4,Dave,30
5,Eve,52
`

const citiesCSV = `id,city
1,Paris
2,Berlin
9,Rome
`

// setupCLITest isolates config and logs in a temp home and resets global state.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("DATALENS_HOME", home)
	t.Setenv("DATALENS_NO_PROJECT_CONFIG", "1")
	t.Setenv("DATALENS_LOG_LEVEL", "error")
	t.Setenv("DATALENS_PAGE_SIZE", "")
	t.Setenv("DATALENS_OUTPUT_FORMAT", "")
	t.Setenv("DATALENS_CONFIG", "")
	t.Cleanup(func() { config.SetGlobalConfig(nil) })
	return home
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func stringsReader(s string) *strings.Reader { return strings.NewReader(s) }
