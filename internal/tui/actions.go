package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/datalens/internal/dataset"
	"github.com/rshade/datalens/internal/plot"
)

// Control panel tabs.
const (
	tabInfo = iota
	tabCleaning
	tabManipulation
	tabVisualization
	numTabs
)

//nolint:gochecknoglobals // Fixed tab labels.
var tabNames = [numTabs]string{"Info", "Cleaning", "Manipulation", "Visualization"}

// Missing-data methods offered by the cleaning tab.
const (
	naDrop  = "drop"
	naMean  = "mean"
	naValue = "value"
)

var (
	errNeedsColumns  = errors.New("please select the required column(s) for the plot")
	errNeedsFill     = errors.New("please enter a value to fill")
	errMeanNumeric   = errors.New("mean can only be calculated for numeric columns")
	errUnknownMethod = errors.New("unknown missing-data method")
	errEmptyPath     = errors.New("please enter a file path")
	errNoExport      = errors.New("no data to export")
)

// action is one entry of a control panel tab. Actions with fields open a
// form first and run with the submitted values.
type action struct {
	label  string
	fields []field
	run    func(m *Model, values []string) tea.Cmd
}

func plotKindLabels() []string {
	out := make([]string, len(plot.Kinds))
	for i, k := range plot.Kinds {
		out[i] = k.Title()
	}
	return out
}

// tabActions lists the actions of a tab in display order.
func tabActions(tab int) []action {
	switch tab {
	case tabInfo:
		return []action{
			{label: "Dataset Head", run: (*Model).showHead},
			{label: "Dataset Tail", run: (*Model).showTail},
			{label: "Show Full Dataset", run: (*Model).showFull},
			{label: "Shape", run: (*Model).showShape},
			{label: "Data Types", run: (*Model).showDtypes},
			{label: "Null Value Count", run: (*Model).showNulls},
			{label: "Summary Statistics", run: (*Model).showDescribe},
		}
	case tabCleaning:
		return []action{
			{label: "Drop Column", fields: []field{{label: "Column"}}, run: (*Model).dropColumn},
			{label: "Drop Duplicate Rows", run: (*Model).dropDuplicates},
			{label: "Handle Missing Data", fields: []field{
				{label: "Column"},
				{label: "Method", choices: []string{naDrop, naMean, naValue}, value: naDrop},
				{label: "Fill value", free: true},
			}, run: (*Model).handleMissing},
		}
	case tabManipulation:
		return []action{
			{label: "Sort", fields: []field{
				{label: "Column"},
				{label: "Order", choices: []string{"asc", "desc"}, value: "asc"},
			}, run: (*Model).sortData},
			{label: "Group & Aggregate", fields: []field{
				{label: "Group by column"},
				{label: "Aggregate column"},
				{label: "Function", choices: dataset.Aggregations, value: dataset.AggMean},
			}, run: (*Model).groupAggregate},
		}
	case tabVisualization:
		return []action{
			{label: "Generate Plot", fields: []field{
				{label: "Plot type", choices: plotKindLabels(), value: plot.Bar.Title()},
				{label: "X-axis column"},
				{label: "Y-axis column (for Scatter/Line)"},
			}, run: (*Model).generatePlot},
		}
	default:
		return nil
	}
}

// loadAction and exportAction back the o and w keys.
func loadAction() action {
	return action{label: "Load CSV", fields: []field{{label: "Path", free: true}}, run: (*Model).loadPath}
}

func exportAction() action {
	return action{
		label:  "Export to CSV",
		fields: []field{{label: "Path", free: true, value: "output.csv"}},
		run:    (*Model).exportPath,
	}
}

func (m *Model) showHead(_ []string) tea.Cmd {
	return m.popupTable("Dataset Head", func(d *dataset.Dataset) (*dataset.Dataset, error) {
		return d.Head(m.opts.HeadRows)
	})
}

func (m *Model) showTail(_ []string) tea.Cmd {
	return m.popupTable("Dataset Tail", func(d *dataset.Dataset) (*dataset.Dataset, error) {
		return d.Tail(m.opts.HeadRows)
	})
}

func (m *Model) showDescribe(_ []string) tea.Cmd {
	return m.popupTable("Summary Statistics", (*dataset.Dataset).Describe)
}

func (m *Model) popupTable(title string, fn func(*dataset.Dataset) (*dataset.Dataset, error)) tea.Cmd {
	ds, err := m.session.Dataset()
	if err != nil {
		m.setError(err)
		return nil
	}
	out, err := fn(ds)
	if err != nil {
		m.setError(err)
		return nil
	}
	var b strings.Builder
	if err := out.RenderTable(&b, 0, out.Nrow(), m.opts.MaxColWidth); err != nil {
		m.setError(err)
		return nil
	}
	m.openPopup(title, strings.Split(strings.TrimRight(b.String(), "\n"), "\n"))
	return nil
}

func (m *Model) showFull(_ []string) tea.Cmd {
	ds, err := m.session.Dataset()
	if err != nil {
		m.setError(err)
		return nil
	}
	m.display(ds)
	return nil
}

func (m *Model) showShape(_ []string) tea.Cmd {
	ds, err := m.session.Dataset()
	if err != nil {
		m.setError(err)
		return nil
	}
	rows, cols := ds.Shape()
	m.openPopup("Dataset Shape", []string{fmt.Sprintf("Rows: %s, Columns: %d", dataset.FormatCount(rows), cols)})
	return nil
}

func (m *Model) showDtypes(_ []string) tea.Cmd {
	ds, err := m.session.Dataset()
	if err != nil {
		m.setError(err)
		return nil
	}
	var lines []string
	for _, c := range ds.Dtypes() {
		lines = append(lines, fmt.Sprintf("%-*s %s", m.opts.MaxColWidth, c.Name, c.Dtype))
	}
	m.openPopup("Data Types", lines)
	return nil
}

func (m *Model) showNulls(_ []string) tea.Cmd {
	ds, err := m.session.Dataset()
	if err != nil {
		m.setError(err)
		return nil
	}
	var lines []string
	for _, c := range ds.NullCounts() {
		lines = append(lines, fmt.Sprintf("%-*s %d", m.opts.MaxColWidth, c.Name, c.Nulls))
	}
	m.openPopup("Null Values", lines)
	return nil
}

func (m *Model) dropColumn(v []string) tea.Cmd {
	col := v[0]
	if col == "" {
		return nil
	}
	m.apply("drop_column", fmt.Sprintf("Dropped column: %s", col), func(d *dataset.Dataset) (*dataset.Dataset, error) {
		return d.DropColumn(col)
	})
	return nil
}

func (m *Model) dropDuplicates(_ []string) tea.Cmd {
	var dropped int
	m.apply("drop_duplicates", "", func(d *dataset.Dataset) (*dataset.Dataset, error) {
		out, n, err := d.DropDuplicates()
		dropped = n
		return out, err
	})
	if m.err == nil {
		m.setStatus(fmt.Sprintf("Dropped %d duplicate rows.", dropped))
	}
	return nil
}

func (m *Model) handleMissing(v []string) tea.Cmd {
	col, method, fill := v[0], strings.ToLower(v[1]), v[2]
	if col == "" {
		return nil
	}
	var fn func(*dataset.Dataset) (*dataset.Dataset, error)
	switch method {
	case naDrop:
		fn = func(d *dataset.Dataset) (*dataset.Dataset, error) { return d.DropNASubset(col) }
	case naMean:
		fn = func(d *dataset.Dataset) (*dataset.Dataset, error) {
			out, err := d.FillMean(col)
			if errors.Is(err, dataset.ErrNotNumeric) {
				return nil, errMeanNumeric
			}
			return out, err
		}
	case naValue:
		if fill == "" {
			m.setError(errNeedsFill)
			return nil
		}
		fn = func(d *dataset.Dataset) (*dataset.Dataset, error) { return d.FillValue(col, fill) }
	default:
		m.setError(fmt.Errorf("%w: %q", errUnknownMethod, method))
		return nil
	}
	m.apply("missing_"+method, fmt.Sprintf("Applied NA action '%s' to '%s'.", method, col), fn)
	return nil
}

func (m *Model) sortData(v []string) tea.Cmd {
	col, order := v[0], strings.ToLower(v[1])
	if col == "" {
		return nil
	}
	if order != "desc" {
		order = "asc"
	}
	m.apply("sort", fmt.Sprintf("Sorted data by '%s' (%s).", col, order), func(d *dataset.Dataset) (*dataset.Dataset, error) {
		return d.Sort(col, order == "asc")
	})
	return nil
}

// groupAggregate shows the grouped result in the table without replacing
// the working table.
func (m *Model) groupAggregate(v []string) tea.Cmd {
	groupCol, aggCol, fn := v[0], v[1], v[2]
	if groupCol == "" || aggCol == "" || fn == "" {
		return nil
	}
	ds, err := m.session.Dataset()
	if err != nil {
		m.setError(err)
		return nil
	}
	result, err := ds.GroupBy(groupCol, aggCol, fn)
	if err != nil {
		m.setError(fmt.Errorf("aggregation failed: %w", err))
		return nil
	}
	m.display(result)
	m.setStatus("Aggregation complete. Displaying result.")
	return nil
}

func (m *Model) generatePlot(v []string) tea.Cmd {
	kind, err := plot.ParseKind(v[0])
	if err != nil {
		m.setError(err)
		return nil
	}
	x, y := v[1], v[2]
	if x == "" || ((kind == plot.Scatter || kind == plot.Line) && y == "") {
		m.setError(errNeedsColumns)
		return nil
	}
	ds, err := m.session.Dataset()
	if err != nil {
		m.setError(err)
		return nil
	}
	opts := plot.Options{
		Kind:   kind,
		X:      x,
		Title:  plot.KindTitle(kind),
		Bins:   m.opts.HistBins,
		Limit:  m.opts.BarLimit,
		Width:  m.opts.PlotWidth,
		Height: m.opts.PlotHeight,
	}
	if kind == plot.Scatter || kind == plot.Line {
		opts.Y = y
	}
	m.startLoading("Rendering " + opts.Title + "...")
	return tea.Batch(m.loading.Init(), renderPlotCmd(m.ctx, ds, opts, m.opts.PlotDir, m.opts.PlotOpen))
}

func (m *Model) loadPath(v []string) tea.Cmd {
	if v[0] == "" {
		m.setError(errEmptyPath)
		return nil
	}
	m.startLoading("Loading " + v[0] + "...")
	return tea.Batch(m.loading.Init(), loadCmd(m.ctx, v[0]))
}

func (m *Model) exportPath(v []string) tea.Cmd {
	if v[0] == "" {
		m.setError(errEmptyPath)
		return nil
	}
	ds, err := m.session.Dataset()
	if err != nil {
		m.setError(errNoExport)
		return nil
	}
	m.startLoading("Exporting to " + v[0] + "...")
	return tea.Batch(m.loading.Init(), saveCmd(m.ctx, ds, v[0]))
}
