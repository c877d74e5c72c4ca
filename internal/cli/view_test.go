package cli_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/datalens/internal/cli/pagination"
)

type viewJSON struct {
	Columns    []string                  `json:"columns"`
	Rows       []map[string]any          `json:"rows"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

func TestView_Table(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "people.csv", peopleCSV)

	out, _, err := execute(t, "", "view", path)
	require.NoError(t, err)
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Eve")
	assert.Contains(t, out, "[5 rows x 3 columns]")
	assert.NotContains(t, out, "Page ")
}

func TestView_PageBased(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "people.csv", peopleCSV)

	out, _, err := execute(t, "", "view", path, "--page", "2", "--page-size", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Carol")
	assert.Contains(t, out, "Dave")
	assert.NotContains(t, out, "Alice")
	assert.Contains(t, out, "Page 2 of 3. Displaying rows 3-4 of 5")

	out, _, err = execute(t, "", "view", path, "--page", "9", "--page-size", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 3 of 3. Displaying rows 5-5 of 5")
}

func TestView_JSON(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "people.csv", peopleCSV)

	out, _, err := execute(t, "", "view", path, "--limit", "2", "--offset", "2", "--output", "json")
	require.NoError(t, err)

	var doc viewJSON
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []string{"id", "name", "age"}, doc.Columns)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, "Carol", doc.Rows[0]["name"])
	assert.InDelta(t, 45.0, doc.Rows[0]["age"], 0)
	assert.Equal(t, 2, doc.Pagination.CurrentPage)
	assert.Equal(t, 3, doc.Pagination.TotalPages)
	assert.Equal(t, 5, doc.Pagination.TotalItems)
	assert.True(t, doc.Pagination.HasNext)
}

func TestView_PageUsesConfiguredSize(t *testing.T) {
	home := setupCLITest(t)
	t.Setenv("DATALENS_PAGE_SIZE", "2")
	path := writeFile(t, home, "people.csv", peopleCSV)

	out, _, err := execute(t, "", "view", path, "--page", "1", "--output", "json")
	require.NoError(t, err)

	var doc viewJSON
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Rows, 2)
	assert.Equal(t, 2, doc.Pagination.PageSize)
	assert.Equal(t, 3, doc.Pagination.TotalPages)
}

func TestView_QueryAndSort(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "people.csv", peopleCSV)

	out, _, err := execute(t, "", "view", path, "--query", "age > 30", "--sort", "age:desc", "--output", "ndjson")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"name":"Eve"`)
	assert.Contains(t, lines[2], `"name":"Alice"`)
}

func TestView_Errors(t *testing.T) {
	home := setupCLITest(t)
	path := writeFile(t, home, "people.csv", peopleCSV)

	tests := []struct {
		name string
		args []string
		want error
		msg  string
	}{
		{name: "mixed modes", args: []string{"--page", "1", "--offset", "2"}, want: pagination.ErrMixedPaginationModes},
		{name: "page size alone", args: []string{"--page-size", "2"}, want: pagination.ErrPageSizeWithoutPage},
		{name: "unknown sort column", args: []string{"--sort", "height"}, want: pagination.ErrInvalidSortField},
		{name: "bad sort order", args: []string{"--sort", "age:up"}, want: pagination.ErrInvalidSortOrder},
		{name: "bad format", args: []string{"--output", "xml"}, msg: "unsupported output format"},
		{name: "bad query", args: []string{"--query", "age >"}, msg: "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", append([]string{"view", path}, tt.args...)...)
			require.Error(t, err)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestView_MissingFile(t *testing.T) {
	setupCLITest(t)
	_, _, err := execute(t, "", "view", "does-not-exist.csv")
	require.Error(t, err)
}
