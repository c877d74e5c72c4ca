// Package menu implements the numbered command-line interface: a main menu
// of eleven options with numbered submenus, read line by line from an
// io.Reader and printed to an io.Writer.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rshade/datalens/internal/cli/pagination"
	"github.com/rshade/datalens/internal/dataset"
	"github.com/rshade/datalens/internal/logging"
	"github.com/rshade/datalens/internal/plot"
)

// errInputClosed ends the loop when the reader is exhausted.
var errInputClosed = errors.New("input closed")

// Main menu choices.
const (
	choiceInfo    = "1"
	choiceSelect  = "2"
	choiceClean   = "3"
	choiceSort    = "4"
	choiceGroup   = "5"
	choiceMissing = "6"
	choiceDerive  = "7"
	choiceMerge   = "8"
	choicePlot    = "9"
	choiceExport  = "10"
	choiceExit    = "11"
)

const mainMenu = `
Dataset Analysis CLI
[1] General Dataset Info
[2] Data Selection & Filtering
[3] Data Cleaning
[4] Sorting Data
[5] Grouping and Aggregation
[6] Handling Missing Data
[7] Creating New Columns
[8] Merging / Joining Datasets
[9] Data Visualization
[10] Exporting Data
[11] Exit`

// Options carries the display and plot settings the menu needs.
type Options struct {
	PageSize    int
	HeadRows    int
	MaxColWidth int
	PlotDir     string
	PlotOpen    bool
	HistBins    int
	BarLimit    int
	PlotWidth   float64
	PlotHeight  float64
}

// Menu drives a Session from line-oriented input.
type Menu struct {
	in      *bufio.Scanner
	out     io.Writer
	session *dataset.Session
	opts    Options
}

// New creates a Menu reading from in and writing to out.
func New(in io.Reader, out io.Writer, session *dataset.Session, opts Options) *Menu {
	if opts.PageSize <= 0 {
		opts.PageSize = pagination.DefaultRowsPerPage
	}
	if opts.HeadRows <= 0 {
		opts.HeadRows = dataset.DefaultPreviewRows
	}
	if session == nil {
		session = dataset.NewSession()
	}
	return &Menu{
		in:      bufio.NewScanner(in),
		out:     out,
		session: session,
		opts:    opts,
	}
}

// LoadInteractive asks for a CSV path when the session has no table yet.
func (m *Menu) LoadInteractive(ctx context.Context) error {
	for !m.session.Loaded() {
		path, err := m.prompt("Enter the path to your dataset (CSV file): ")
		if err != nil {
			return err
		}
		if err := m.load(ctx, path); err != nil {
			m.printf("❌ Error loading dataset: %v\n", err)
		}
	}
	return nil
}

func (m *Menu) load(ctx context.Context, path string) error {
	if err := m.session.Load(ctx, path); err != nil {
		return err
	}
	m.println("✅ Dataset loaded successfully.")
	return nil
}

// Run shows the main menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	if err := m.LoadInteractive(ctx); err != nil {
		if errors.Is(err, errInputClosed) {
			return nil
		}
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.println(mainMenu)
		choice, err := m.prompt("Select an option (1-11): ")
		if err != nil {
			return nil //nolint:nilerr // End of input ends the session.
		}
		if choice == choiceExit {
			m.println("👋 Exiting tool.")
			return nil
		}

		log.Debug().
			Str("component", "menu").
			Str("choice", choice).
			Msg("menu choice")

		if err := m.dispatch(ctx, choice); err != nil {
			if errors.Is(err, errInputClosed) {
				return nil
			}
			log.Warn().Str("component", "menu").Str("choice", choice).Err(err).Msg("menu action failed")
			m.printf("❌ Error: %v\n", err)
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case choiceInfo:
		return m.info()
	case choiceSelect:
		return m.selection()
	case choiceClean:
		return m.cleaning(ctx)
	case choiceSort:
		return m.sort(ctx)
	case choiceGroup:
		return m.group()
	case choiceMissing:
		return m.missing(ctx)
	case choiceDerive:
		return m.derive(ctx)
	case choiceMerge:
		return m.merge(ctx)
	case choicePlot:
		return m.plot(ctx)
	case choiceExport:
		return m.export(ctx)
	default:
		m.println("⚠️ Invalid input. Try again.")
		return nil
	}
}

// prompt writes label and returns the next trimmed input line.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) promptInt(label string) (int, error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(args ...any) {
	fmt.Fprintln(m.out, args...)
}

// show prints a table. Tables longer than a page are shown one page at a
// time with next/previous navigation.
func (m *Menu) show(ds *dataset.Dataset) error {
	pager := pagination.NewPager(ds.Nrow(), m.opts.PageSize)
	for {
		start, end := pager.Bounds()
		if err := ds.RenderTable(m.out, start, end, m.opts.MaxColWidth); err != nil {
			return err
		}
		rows, cols := ds.Shape()
		m.printf("[%s rows x %d columns]\n", dataset.FormatCount(rows), cols)
		if pager.TotalPages() <= 1 {
			return nil
		}
		m.printf("%s. %s\n", pager.Label(), pager.Status())

		for {
			nav, err := m.prompt("[n]ext, [p]revious, [q]uit: ")
			if err != nil {
				return err
			}
			moved := false
			switch strings.ToLower(nav) {
			case "n", "next":
				moved = pager.Next()
			case "p", "prev", "previous":
				moved = pager.Prev()
			case "q", "quit", "":
				return nil
			}
			if moved {
				break
			}
		}
	}
}

// current returns the working table.
func (m *Menu) current() (*dataset.Dataset, error) {
	return m.session.Dataset()
}

func (m *Menu) plotOptions(kind plot.Kind, col string) plot.Options {
	opts := plot.Options{
		Kind:   kind,
		Title:  plot.ColumnTitle(col),
		Bins:   m.opts.HistBins,
		Limit:  m.opts.BarLimit,
		Width:  m.opts.PlotWidth,
		Height: m.opts.PlotHeight,
	}
	if kind == plot.Line {
		opts.Y = col
	} else {
		opts.X = col
	}
	return opts
}
