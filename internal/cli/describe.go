package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/datalens/internal/config"
	"github.com/rshade/datalens/internal/dataset"
)

// describeDocument is the JSON form of describe --info.
type describeDocument struct {
	Rows    int                  `json:"rows"`
	Columns int                  `json:"columns"`
	Dtypes  []dataset.ColumnInfo `json:"dtypes,omitempty"`
	Stats   []map[string]any     `json:"stats"`
}

// newDescribeCmd creates the summary statistics command.
func newDescribeCmd() *cobra.Command {
	var (
		info   bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "describe CSV",
		Short: "Print summary statistics for the numeric columns",
		Example: `  # count, mean, std, min, quartiles and max per numeric column
  datalens describe sales.csv

  # Also print shape, types and null counts
  datalens describe sales.csv --info`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			cfg := config.GetGlobalConfig()
			format, err := outputFormat(output)
			if err != nil {
				return err
			}

			ds, err := dataset.Load(ctx, args[0])
			if err != nil {
				return err
			}
			stats, err := ds.Describe()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format != outputTable {
				rows, cols := ds.Shape()
				doc := describeDocument{Rows: rows, Columns: cols, Stats: stats.Objects(0, stats.Nrow())}
				if info {
					doc.Dtypes = mergeInfo(ds)
				}
				return writeJSON(w, doc)
			}

			if info {
				fmt.Fprintf(w, "Shape: %s\n\n", ds.ShapeString())
				for _, c := range mergeInfo(ds) {
					fmt.Fprintf(w, "%-*s %-8s %d nulls\n", cfg.Display.MaxColWidth, c.Name, c.Dtype, c.Nulls)
				}
				fmt.Fprintln(w)
			}
			return stats.RenderTable(w, 0, stats.Nrow(), cfg.Display.MaxColWidth)
		},
	}

	cmd.Flags().BoolVar(&info, "info", false, "also print shape, data types and null counts")
	cmd.Flags().StringVar(&output, "output", "", "output format: table or json (default from config)")
	return cmd
}

// mergeInfo combines the dtype and null count of each column.
func mergeInfo(ds *dataset.Dataset) []dataset.ColumnInfo {
	out := ds.Dtypes()
	nulls := ds.NullCounts()
	for i := range out {
		out[i].Nulls = nulls[i].Nulls
	}
	return out
}
