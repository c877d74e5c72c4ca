// Package plot draws bar, histogram, line and scatter charts of a dataset
// with gonum/plot and writes them as image files.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rshade/datalens/internal/dataset"
)

// Kind names a chart type.
type Kind string

// Supported chart kinds.
const (
	Bar       Kind = "bar"
	Histogram Kind = "histogram"
	Line      Kind = "line"
	Scatter   Kind = "scatter"
)

// Defaults applied when Options leaves a field zero.
const (
	DefaultBarLimit = 20
	DefaultBins     = 30
	DefaultWidth    = 7.0
	DefaultHeight   = 5.0

	tickRotation  = math.Pi / 4
	defaultFormat = "png"
	plotDirPerm   = 0o750
)

var barWidth = vg.Points(14)

var (
	// ErrUnknownKind is returned for chart kinds other than bar, histogram, line, scatter.
	ErrUnknownKind = errors.New("unknown plot kind")
	// ErrMissingColumn is returned when a required axis column is not given.
	ErrMissingColumn = errors.New("plot column required")
	// ErrNoValues is returned when the selected column has nothing to draw.
	ErrNoValues = errors.New("no values to plot")
)

// Kinds lists the chart kinds in menu order.
var Kinds = []Kind{Bar, Histogram, Line, Scatter}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Title returns the kind with an upper-case first letter, e.g. "Histogram".
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	r := []rune(string(k))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Options selects what to draw. X is the category column for bar charts,
// the value column for histograms, and the horizontal axis for line and
// scatter charts. An empty X on a line chart plots Y against row position.
type Options struct {
	Kind   Kind
	X      string
	Y      string
	Title  string
	Bins   int
	Limit  int
	Width  float64
	Height float64
}

// ColumnTitle is the title used for single-column charts, "<col> Plot".
func ColumnTitle(col string) string {
	return col + " Plot"
}

// KindTitle is the title used by the interactive view, "<Kind> Plot".
func KindTitle(k Kind) string {
	return k.Title() + " Plot"
}

func (o Options) withDefaults() Options {
	if o.Bins <= 0 {
		o.Bins = DefaultBins
	}
	if o.Limit <= 0 {
		o.Limit = DefaultBarLimit
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

// Build validates the requested columns and lays out the chart.
func Build(ds *dataset.Dataset, opts Options) (*plot.Plot, error) {
	if ds == nil {
		return nil, dataset.ErrNoDataset
	}
	opts = opts.withDefaults()
	p := plot.New()
	p.Title.Text = opts.Title

	var err error
	switch opts.Kind {
	case Bar:
		err = addBar(p, ds, opts)
	case Histogram:
		err = addHistogram(p, ds, opts)
	case Line:
		err = addLine(p, ds, opts)
	case Scatter:
		err = addScatter(p, ds, opts)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func addBar(p *plot.Plot, ds *dataset.Dataset, opts Options) error {
	if opts.X == "" {
		return fmt.Errorf("%w: bar chart needs a category column", ErrMissingColumn)
	}
	counts, err := ds.ValueCounts(opts.X)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return fmt.Errorf("%w: %q", ErrNoValues, opts.X)
	}
	counts = counts[:min(len(counts), opts.Limit)]

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
		labels[i] = c.Value
	}
	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Label.Text = opts.X
	p.Y.Label.Text = "count"
	p.X.Tick.Label.Rotation = tickRotation
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return nil
}

func addHistogram(p *plot.Plot, ds *dataset.Dataset, opts Options) error {
	if opts.X == "" {
		return fmt.Errorf("%w: histogram needs a numeric column", ErrMissingColumn)
	}
	vals, err := ds.NumericValues(opts.X)
	if err != nil {
		return err
	}
	if len(vals) == 0 {
		return fmt.Errorf("%w: %q", ErrNoValues, opts.X)
	}
	hist, err := plotter.NewHist(plotter.Values(vals), opts.Bins)
	if err != nil {
		return err
	}
	p.Add(hist)
	p.X.Label.Text = opts.X
	p.Y.Label.Text = "count"
	return nil
}

func addLine(p *plot.Plot, ds *dataset.Dataset, opts Options) error {
	xys, err := points(ds, opts)
	if err != nil {
		return err
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), line)
	labelAxes(p, opts)
	return nil
}

func addScatter(p *plot.Plot, ds *dataset.Dataset, opts Options) error {
	if opts.X == "" {
		return fmt.Errorf("%w: scatter plot needs x and y columns", ErrMissingColumn)
	}
	xys, err := points(ds, opts)
	if err != nil {
		return err
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), sc)
	labelAxes(p, opts)
	return nil
}

func labelAxes(p *plot.Plot, opts Options) {
	p.X.Label.Text = opts.X
	if opts.X == "" {
		p.X.Label.Text = "row"
	}
	p.Y.Label.Text = opts.Y
}

// points pairs X and Y row by row, skipping rows where either is missing.
func points(ds *dataset.Dataset, opts Options) (plotter.XYs, error) {
	if opts.Y == "" {
		return nil, fmt.Errorf("%w: %s plot needs a y column", ErrMissingColumn, opts.Kind)
	}
	ys, err := ds.Floats(opts.Y)
	if err != nil {
		return nil, err
	}
	xs := make([]float64, len(ys))
	if opts.X == "" {
		for i := range xs {
			xs[i] = float64(i)
		}
	} else if xs, err = ds.Floats(opts.X); err != nil {
		return nil, err
	}

	xys := make(plotter.XYs, 0, len(ys))
	for i := range ys {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		xys = append(xys, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(xys) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoValues, opts.Y)
	}
	return xys, nil
}

// Save draws the chart into path. The image format follows the extension.
func Save(p *plot.Plot, opts Options, path string) error {
	opts = opts.withDefaults()
	return p.Save(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch, path)
}

// WriteTo encodes the chart as format (png, svg, pdf, ...) into w.
func WriteTo(w io.Writer, p *plot.Plot, opts Options, format string) error {
	opts = opts.withDefaults()
	if format == "" {
		format = defaultFormat
	}
	wt, err := p.WriterTo(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// FileName derives a file name like "age_histogram.png" from the options.
func FileName(opts Options) string {
	parts := []string{}
	for _, s := range []string{opts.X, opts.Y, string(opts.Kind)} {
		if s = sanitize(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "plot")
	}
	return strings.Join(parts, "_") + "." + defaultFormat
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		if unicode.IsSpace(r) {
			return '_'
		}
		return -1
	}, strings.TrimSpace(s))
}

// Render builds the chart and writes it under dir, returning the file path.
func Render(ds *dataset.Dataset, opts Options, dir string) (string, error) {
	p, err := Build(ds, opts)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, plotDirPerm); err != nil {
		return "", fmt.Errorf("creating plot directory: %w", err)
	}
	path := filepath.Join(dir, FileName(opts))
	if err := Save(p, opts, path); err != nil {
		return "", fmt.Errorf("saving plot to %s: %w", path, err)
	}
	return path, nil
}
