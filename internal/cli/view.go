package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/datalens/internal/cli/pagination"
	"github.com/rshade/datalens/internal/config"
	"github.com/rshade/datalens/internal/dataset"
	"github.com/rshade/datalens/internal/logging"
	"github.com/rshade/datalens/internal/tui"
)

// Output formats accepted by --output.
const (
	outputTable  = "table"
	outputJSON   = "json"
	outputNDJSON = "ndjson"
)

// viewParams holds the flags of the view command.
type viewParams struct {
	page   pagination.PaginationParams
	sort   string
	query  string
	output string
}

// viewDocument is the JSON form of a printed page.
type viewDocument struct {
	Columns    []string                  `json:"columns"`
	Rows       []map[string]any          `json:"rows"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

// newViewCmd creates the one-shot paginated print command.
func newViewCmd() *cobra.Command {
	params := viewParams{page: *pagination.NewPaginationParams()}

	cmd := &cobra.Command{
		Use:   "view CSV",
		Short: "Print rows of a CSV file",
		Long: `Prints a CSV file as a table, JSON, or NDJSON.

Rows can be filtered with --query (a boolean expression over column names),
sorted with --sort column[:asc|desc], and paged with --page/--page-size or
--limit/--offset. --page without --page-size uses display.page_size.`,
		Example: `  # First 500 rows
  datalens view sales.csv --page 1

  # Rows 100-149
  datalens view sales.csv --offset 100 --limit 50

  # Filter and sort, as JSON
  datalens view sales.csv --query "revenue > 1000" --sort revenue:desc --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeView(cmd, args[0], params)
		},
	}

	params.page.AddFlags(cmd)
	cmd.Flags().StringVar(&params.sort, "sort", "", "sort by column, e.g. age or age:desc")
	cmd.Flags().StringVar(&params.query, "query", "", "keep rows matching a boolean expression")
	cmd.Flags().StringVar(&params.output, "output", "", "output format: table, json, or ndjson (default from config)")

	return cmd
}

func executeView(cmd *cobra.Command, path string, params viewParams) error {
	ctx := commandContext(cmd)
	cfg := config.GetGlobalConfig()

	page := params.page
	if page.Page > 0 && page.PageSize == 0 {
		page.PageSize = cfg.Display.PageSize
	}
	if err := page.Validate(); err != nil {
		return err
	}
	format, err := outputFormat(params.output)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(ctx, path)
	if err != nil {
		return err
	}
	if params.query != "" {
		if ds, err = ds.Query(params.query); err != nil {
			return err
		}
	}
	if params.sort != "" {
		col, asc, sortErr := pagination.NewColumnSorter(ds.Columns()).Resolve(params.sort)
		if sortErr != nil {
			return sortErr
		}
		if col != "" {
			if ds, err = ds.Sort(col, asc); err != nil {
				return err
			}
		}
	}

	start, end := page.ApplyToRange(ds.Nrow())
	logging.FromContext(ctx).Debug().
		Str("component", "cli").
		Str("operation", "view").
		Int("start", start).
		Int("end", end).
		Str("format", format).
		Msg("printing rows")

	w := cmd.OutOrStdout()
	switch format {
	case outputJSON:
		return writeJSON(w, viewDocument{
			Columns:    ds.Columns(),
			Rows:       ds.Objects(start, end),
			Pagination: pagination.NewPaginationMeta(page, ds.Nrow()),
		})
	case outputNDJSON:
		return ds.RenderNDJSON(w, start, end)
	default:
		if err = ds.RenderTable(w, start, end, cfg.Display.MaxColWidth); err != nil {
			return err
		}
		return writeFooter(w, ds, page, start, end)
	}
}

// writeFooter prints the shape and, when paged, the page position.
func writeFooter(w io.Writer, ds *dataset.Dataset, page pagination.PaginationParams, start, end int) error {
	rows, cols := ds.Shape()
	footer := fmt.Sprintf("[%s rows x %d columns]", dataset.FormatCount(rows), cols)
	if page.IsEnabled() {
		meta := pagination.NewPaginationMeta(page, rows)
		first := start + 1
		if end == start {
			first = start
		}
		footer += fmt.Sprintf("\nPage %d of %d. Displaying rows %d-%d of %d",
			meta.CurrentPage, meta.TotalPages, first, end, rows)
	}
	if tui.DetectOutputMode(false) != tui.OutputModePlain {
		footer = tui.SubtleStyle.Render(footer)
	}
	_, err := fmt.Fprintln(w, footer)
	return err
}

// outputFormat resolves --output against the configured default.
func outputFormat(flagValue string) (string, error) {
	format := config.GetOutputFormat(flagValue)
	switch format {
	case outputTable, outputJSON, outputNDJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
