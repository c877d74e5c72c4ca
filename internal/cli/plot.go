package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/datalens/internal/config"
	"github.com/rshade/datalens/internal/dataset"
	"github.com/rshade/datalens/internal/logging"
	"github.com/rshade/datalens/internal/plot"
)

const stdoutPath = "-"

// plotParams holds the flags of the plot command.
type plotParams struct {
	kind   string
	x      string
	y      string
	title  string
	out    string
	bins   int
	limit  int
	open   bool
	format string
}

// newPlotCmd creates the chart command.
func newPlotCmd() *cobra.Command {
	var params plotParams

	cmd := &cobra.Command{
		Use:   "plot CSV",
		Short: "Draw a bar, histogram, line or scatter chart",
		Long: `Draws a chart of one or two columns and writes it as an image.

bar counts the most common values of --x (top --limit); histogram bins the
numeric column --x; line plots --y against --x, or --x against the row
position when --y is empty; scatter plots --y against --x.

Without --out the image is written under plot.dir. --out - writes the image
to stdout.`,
		Example: `  # Top 20 regions
  datalens plot sales.csv --kind bar --x region

  # Revenue distribution with 15 bins
  datalens plot sales.csv --kind histogram --x revenue --bins 15 --out revenue.png

  # Revenue against units as SVG on stdout
  datalens plot sales.csv --kind scatter --x units --y revenue --out - --format svg > chart.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePlot(cmd, args[0], params)
		},
	}

	cmd.Flags().StringVar(&params.kind, "kind", string(plot.Bar), "chart kind: bar, histogram, line, or scatter")
	cmd.Flags().StringVar(&params.x, "x", "", "x-axis column (the plotted column for bar and histogram)")
	cmd.Flags().StringVar(&params.y, "y", "", "y-axis column for line and scatter")
	cmd.Flags().StringVar(&params.title, "title", "", "chart title (default \"<column> Plot\")")
	cmd.Flags().StringVar(&params.out, "out", "", "output file, or - for stdout (default under plot.dir)")
	cmd.Flags().IntVar(&params.bins, "bins", 0, "histogram bins (default plot.cli_hist_bins)")
	cmd.Flags().IntVar(&params.limit, "limit", 0, "bar chart categories (default plot.bar_limit)")
	cmd.Flags().BoolVar(&params.open, "open", false, "open the image with the system viewer")
	cmd.Flags().StringVar(&params.format, "format", "png", "image format when writing to stdout")
	_ = cmd.MarkFlagRequired("x")

	return cmd
}

func executePlot(cmd *cobra.Command, path string, params plotParams) error {
	ctx := commandContext(cmd)
	cfg := config.GetGlobalConfig()

	kind, err := plot.ParseKind(params.kind)
	if err != nil {
		return err
	}
	opts := plotDefaults(cfg, plot.Options{
		Kind:  kind,
		X:     params.x,
		Y:     params.y,
		Title: params.title,
		Bins:  params.bins,
		Limit: params.limit,
	})
	if opts.Title == "" {
		opts.Title = plot.ColumnTitle(params.x)
	}
	if kind == plot.Line && opts.Y == "" {
		// A single line column is drawn against the row position.
		opts.X, opts.Y = "", params.x
	}

	ds, err := dataset.Load(ctx, path)
	if err != nil {
		return err
	}
	p, err := plot.Build(ds, opts)
	if err != nil {
		return err
	}

	if params.out == stdoutPath {
		return plot.WriteTo(cmd.OutOrStdout(), p, opts, params.format)
	}

	out := params.out
	if out == "" {
		out = filepath.Join(cfg.Plot.Dir, plot.FileName(opts))
	}
	if err = os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
		return fmt.Errorf("creating plot directory: %w", err)
	}
	if err = plot.Save(p, opts, out); err != nil {
		return fmt.Errorf("saving plot to %s: %w", out, err)
	}
	logging.FromContext(ctx).Info().
		Str("component", "cli").
		Str("operation", "plot").
		Str("kind", string(kind)).
		Str("path", out).
		Msg("plot saved")
	cmd.Printf("📈 Plot saved to %s\n", out)

	if params.open || cfg.Plot.Open {
		if err = plot.Open(ctx, out); err != nil {
			cmd.PrintErrf("Warning: %v\n", err)
		}
	}
	return nil
}
