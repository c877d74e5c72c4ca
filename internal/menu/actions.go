package menu

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rshade/datalens/internal/dataset"
	"github.com/rshade/datalens/internal/logging"
	"github.com/rshade/datalens/internal/plot"
)

const tabPadding = 2

func (m *Menu) info() error {
	ds, err := m.current()
	if err != nil {
		return err
	}
	m.println("\n[1] Head\n[2] Tail\n[3] Full\n[4] Shape\n[5] Columns\n[6] Dtypes\n[7] Null Count\n[8] Summary")
	sub, err := m.prompt("Choose (1-8): ")
	if err != nil {
		return err
	}
	switch sub {
	case "1":
		head, err := ds.Head(m.opts.HeadRows)
		if err != nil {
			return err
		}
		return head.RenderTable(m.out, 0, head.Nrow(), m.opts.MaxColWidth)
	case "2":
		tail, err := ds.Tail(m.opts.HeadRows)
		if err != nil {
			return err
		}
		return tail.RenderTable(m.out, 0, tail.Nrow(), m.opts.MaxColWidth)
	case "3":
		return m.show(ds)
	case "4":
		m.println(ds.ShapeString())
	case "5":
		m.println("[" + strings.Join(ds.Columns(), ", ") + "]")
	case "6":
		return writePairs(m.out, ds.Dtypes(), func(c dataset.ColumnInfo) string { return c.Dtype })
	case "7":
		return writePairs(m.out, ds.NullCounts(), func(c dataset.ColumnInfo) string { return fmt.Sprint(c.Nulls) })
	case "8":
		desc, err := ds.Describe()
		if err != nil {
			return err
		}
		return desc.RenderTable(m.out, 0, desc.Nrow(), m.opts.MaxColWidth)
	default:
		m.println("⚠️ Invalid input. Try again.")
	}
	return nil
}

func writePairs(w io.Writer, cols []dataset.ColumnInfo, value func(dataset.ColumnInfo) string) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	for _, c := range cols {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, value(c))
	}
	return tw.Flush()
}

func (m *Menu) selection() error {
	ds, err := m.current()
	if err != nil {
		return err
	}
	m.println("\n[1] One Column\n[2] Multiple Columns\n[3] Condition\n[4] Two Conditions\n[5] iloc/loc")
	sub, err := m.prompt("Choose (1-5): ")
	if err != nil {
		return err
	}
	switch sub {
	case "1":
		col, err := m.prompt("Column: ")
		if err != nil {
			return err
		}
		out, err := ds.Column(col)
		if err != nil {
			m.println("Invalid column.")
			return nil
		}
		return m.show(out)
	case "2":
		raw, err := m.prompt("Columns (comma-separated): ")
		if err != nil {
			return err
		}
		var cols []string
		for _, c := range strings.Split(raw, ",") {
			cols = append(cols, strings.TrimSpace(c))
		}
		out, err := ds.Select(cols)
		if err != nil {
			m.println("Invalid column(s).")
			return nil
		}
		return m.show(out)
	case "3":
		cond, err := m.prompt("Condition (e.g. Age > 30): ")
		if err != nil {
			return err
		}
		return m.showQuery(ds.Query(cond))
	case "4":
		first, err := m.prompt("First condition: ")
		if err != nil {
			return err
		}
		second, err := m.prompt("Second condition: ")
		if err != nil {
			return err
		}
		return m.showQuery(ds.QueryBoth(first, second))
	case "5":
		return m.slice(ds)
	default:
		m.println("⚠️ Invalid input. Try again.")
	}
	return nil
}

func (m *Menu) showQuery(out *dataset.Dataset, err error) error {
	if err != nil {
		m.println("❌ Invalid query.")
		return nil
	}
	return m.show(out)
}

func (m *Menu) slice(ds *dataset.Dataset) error {
	mode, err := m.prompt("iloc or loc: ")
	if err != nil {
		return err
	}
	start, err := m.promptInt("Start index: ")
	if err != nil {
		return err
	}
	end, err := m.promptInt("End index: ")
	if err != nil {
		return err
	}
	var out *dataset.Dataset
	if strings.ToLower(mode) == "iloc" {
		out, err = ds.ILoc(start, end)
	} else {
		out, err = ds.Loc(start, end)
	}
	if err != nil {
		return err
	}
	return m.show(out)
}

func (m *Menu) cleaning(ctx context.Context) error {
	if _, err := m.current(); err != nil {
		return err
	}
	m.println("\n[1] Drop Column\n[2] Drop Row\n[3] Rename Column\n[4] Drop Duplicates\n[5] Convert Dtype")
	sub, err := m.prompt("Choose (1-5): ")
	if err != nil {
		return err
	}
	switch sub {
	case "1":
		col, err := m.prompt("Column to drop: ")
		if err != nil {
			return err
		}
		return m.session.Apply(ctx, "drop_column", func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return d.DropColumn(col)
		})
	case "2":
		idx, err := m.promptInt("Row index: ")
		if err != nil {
			return err
		}
		return m.session.Apply(ctx, "drop_row", func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return d.DropRow(idx)
		})
	case "3":
		oldName, err := m.prompt("Old name: ")
		if err != nil {
			return err
		}
		newName, err := m.prompt("New name: ")
		if err != nil {
			return err
		}
		return m.session.Apply(ctx, "rename", func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return d.Rename(oldName, newName)
		})
	case "4":
		var dropped int
		err := m.session.Apply(ctx, "drop_duplicates", func(d *dataset.Dataset) (*dataset.Dataset, error) {
			out, n, err := d.DropDuplicates()
			dropped = n
			return out, err
		})
		if err == nil {
			m.printf("Dropped %d duplicate rows.\n", dropped)
		}
		return err
	case "5":
		col, err := m.prompt("Column: ")
		if err != nil {
			return err
		}
		dtype, err := m.prompt("New dtype (int, float, str, bool): ")
		if err != nil {
			return err
		}
		err = m.session.Apply(ctx, "convert", func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return d.Convert(col, dtype)
		})
		if err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("conversion failed")
			m.println("❌ Conversion failed.")
		}
		return nil
	default:
		m.println("⚠️ Invalid input. Try again.")
	}
	return nil
}

func (m *Menu) sort(ctx context.Context) error {
	if _, err := m.current(); err != nil {
		return err
	}
	col, err := m.prompt("Column to sort by: ")
	if err != nil {
		return err
	}
	asc, err := m.prompt("Ascending (y/n): ")
	if err != nil {
		return err
	}
	ascending := strings.ToLower(asc) == "y"
	err = m.session.Apply(ctx, "sort", func(d *dataset.Dataset) (*dataset.Dataset, error) {
		return d.Sort(col, ascending)
	})
	if err != nil {
		return err
	}
	ds, err := m.current()
	if err != nil {
		return err
	}
	return m.show(ds)
}

func (m *Menu) group() error {
	ds, err := m.current()
	if err != nil {
		return err
	}
	groupCol, err := m.prompt("Group by column: ")
	if err != nil {
		return err
	}
	aggCol, err := m.prompt("Aggregate column: ")
	if err != nil {
		return err
	}
	fn, err := m.prompt("Function (" + strings.Join(dataset.Aggregations, ", ") + "): ")
	if err != nil {
		return err
	}
	grouped, err := ds.GroupBy(groupCol, aggCol, fn)
	if err != nil {
		return err
	}
	return m.show(grouped)
}

func (m *Menu) missing(ctx context.Context) error {
	if _, err := m.current(); err != nil {
		return err
	}
	m.println("\n[1] Fill with Value\n[2] Fill with Mean\n[3] Drop Null Rows")
	sub, err := m.prompt("Choose (1-3): ")
	if err != nil {
		return err
	}
	switch sub {
	case "1":
		col, err := m.prompt("Column: ")
		if err != nil {
			return err
		}
		val, err := m.prompt("Value: ")
		if err != nil {
			return err
		}
		return m.session.Apply(ctx, "fill_value", func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return d.FillValue(col, val)
		})
	case "2":
		col, err := m.prompt("Column: ")
		if err != nil {
			return err
		}
		return m.session.Apply(ctx, "fill_mean", func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return d.FillMean(col)
		})
	case "3":
		return m.session.Apply(ctx, "drop_na", func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return d.DropNA()
		})
	default:
		m.println("⚠️ Invalid input. Try again.")
	}
	return nil
}

func (m *Menu) derive(ctx context.Context) error {
	if _, err := m.current(); err != nil {
		return err
	}
	m.println("\n[1] Add col1 + col2\n[2] Apply formula")
	sub, err := m.prompt("Choose (1-2): ")
	if err != nil {
		return err
	}
	switch sub {
	case "1":
		c1, err := m.prompt("Column 1: ")
		if err != nil {
			return err
		}
		c2, err := m.prompt("Column 2: ")
		if err != nil {
			return err
		}
		name, err := m.prompt("New column: ")
		if err != nil {
			return err
		}
		return m.session.Apply(ctx, "add_columns", func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return d.AddColumns(c1, c2, name)
		})
	case "2":
		code, err := m.prompt("Formula (e.g. x['col1'] * 2): ")
		if err != nil {
			return err
		}
		name, err := m.prompt("New column: ")
		if err != nil {
			return err
		}
		err = m.session.Apply(ctx, "derive", func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return d.Derive(code, name)
		})
		if err != nil {
			m.println("❌ Error applying function.")
		}
		return nil
	default:
		m.println("⚠️ Invalid input. Try again.")
	}
	return nil
}

func (m *Menu) merge(ctx context.Context) error {
	if _, err := m.current(); err != nil {
		return err
	}
	path, err := m.prompt("Second CSV path: ")
	if err != nil {
		return err
	}
	other, loadErr := dataset.Load(ctx, path)
	if loadErr != nil {
		m.printf("❌ Merge failed: %v\n", loadErr)
		return nil
	}
	key, err := m.prompt("Join key: ")
	if err != nil {
		return err
	}
	how, err := m.prompt("Join method (" + strings.Join(dataset.JoinMethods, ", ") + "): ")
	if err != nil {
		return err
	}
	err = m.session.Apply(ctx, "merge", func(d *dataset.Dataset) (*dataset.Dataset, error) {
		return d.Merge(other, key, how)
	})
	if err != nil {
		m.printf("❌ Merge failed: %v\n", err)
		return nil
	}
	m.println("✅ Merge complete.")
	return nil
}

func (m *Menu) plot(ctx context.Context) error {
	ds, err := m.current()
	if err != nil {
		return err
	}
	m.println("\n[1] Bar Plot\n[2] Histogram\n[3] Line Plot")
	sub, err := m.prompt("Choose (1-3): ")
	if err != nil {
		return err
	}
	kinds := map[string]plot.Kind{"1": plot.Bar, "2": plot.Histogram, "3": plot.Line}
	kind, ok := kinds[sub]
	if !ok {
		m.println("⚠️ Invalid input. Try again.")
		return nil
	}
	col, err := m.prompt("Column to plot: ")
	if err != nil {
		return err
	}
	path, err := plot.Render(ds, m.plotOptions(kind, col), m.opts.PlotDir)
	if err != nil {
		return err
	}
	m.printf("📈 Plot saved to %s\n", path)
	if m.opts.PlotOpen {
		if err := plot.Open(ctx, path); err != nil {
			m.printf("⚠️ Could not open plot: %v\n", err)
		}
	}
	return nil
}

func (m *Menu) export(ctx context.Context) error {
	if _, err := m.current(); err != nil {
		return err
	}
	path, err := m.prompt("Save filename (e.g. output.csv): ")
	if err != nil {
		return err
	}
	if err := m.session.Save(ctx, path); err != nil {
		return err
	}
	m.println("✅ File exported.")
	return nil
}
