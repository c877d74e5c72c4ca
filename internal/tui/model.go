package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/datalens/internal/cli/pagination"
	"github.com/rshade/datalens/internal/dataset"
	"github.com/rshade/datalens/internal/logging"
	"github.com/rshade/datalens/internal/plot"
	listview "github.com/rshade/datalens/internal/tui/list"
)

// Layout defaults.
const (
	defaultWidth   = 120
	defaultHeight  = 40
	panelWidth     = 36
	minHeight      = 5
	chromeHeight   = 9
	popupChrome    = 6
	minColumnWidth = 4
)

const welcomeMessage = "Welcome! Press o to load a CSV file."

// Options configures the interactive view.
type Options struct {
	Path        string
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

// Messages produced by background commands.
type (
	loadedMsg struct {
		ds   *dataset.Dataset
		path string
		err  error
	}
	savedMsg struct {
		path string
		err  error
	}
	plottedMsg struct {
		path    string
		openErr error
		err     error
	}
)

// popup is an info window over the main view.
type popup struct {
	title string
	list  *listview.VirtualListModel[string]
}

// Model is the Bubble Tea model for the datalens window: a tabbed control
// panel, a paginated table, and a status bar.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type Model struct {
	ctx     context.Context
	session *dataset.Session
	opts    Options

	state   ViewState
	shown   *dataset.Dataset
	pager   *pagination.Pager
	table   table.Model
	tab     int
	cursor  int
	form    *form
	pending *action
	popup   *popup
	loading *LoadingState

	status string
	err    error
	width  int
	height int
}

// NewModel creates the interactive model over session. When opts.Path is set
// and the session is empty, Init loads it.
func NewModel(ctx context.Context, session *dataset.Session, opts Options) Model {
	if session == nil {
		session = dataset.NewSession()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = pagination.DefaultRowsPerPage
	}
	if opts.HeadRows <= 0 {
		opts.HeadRows = dataset.DefaultPreviewRows
	}
	if opts.MaxColWidth <= 0 {
		opts.MaxColWidth = dataset.DefaultMaxColWidth
	}
	m := Model{
		ctx:     ctx,
		session: session,
		opts:    opts,
		state:   ViewStateList,
		pager:   pagination.NewPager(0, opts.PageSize),
		loading: NewLoadingState(),
		status:  welcomeMessage,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	if ds, err := session.Dataset(); err == nil {
		m.display(ds)
	}
	m.table = m.buildTable()
	return m
}

// Init starts the initial load when a path was given.
func (m Model) Init() tea.Cmd {
	if m.opts.Path != "" && !m.session.Loaded() {
		return tea.Batch(m.loading.Init(), loadCmd(m.ctx, m.opts.Path))
	}
	return nil
}

// StartLoading marks the model as loading; used with Init for initial paths.
func (m Model) StartLoading() Model {
	if m.opts.Path != "" && !m.session.Loaded() {
		m.startLoading("Loading " + m.opts.Path + "...")
	}
	return m
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.buildTable()
		if m.popup != nil {
			m.popup.list.SetSize(m.width, m.popupHeight())
		}
		return m, nil
	case loadedMsg:
		return m.handleLoaded(msg)
	case savedMsg:
		return m.handleSaved(msg)
	case plottedMsg:
		return m.handlePlotted(msg)
	}

	switch m.state {
	case ViewStateLoading:
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == keyCtrlC {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
		return m, m.loading.Update(msg)
	case ViewStateDetail:
		return m.handlePopupUpdate(msg)
	case ViewStateQuitting:
		return m, nil
	}

	if m.form != nil {
		return m.handleFormUpdate(msg)
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeypress(key)
	}
	return m, nil
}

func (m Model) handleKeypress(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	actions := tabActions(m.tab)
	switch key.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyTab:
		m.tab = (m.tab + 1) % numTabs
		m.cursor = 0
	case keyShiftTab:
		m.tab = (m.tab + numTabs - 1) % numTabs
		m.cursor = 0
	case keyUp, keyK:
		m.cursor = (m.cursor + len(actions) - 1) % len(actions)
	case keyDown, keyJ:
		m.cursor = (m.cursor + 1) % len(actions)
	case keyEnter:
		return m.trigger(actions[m.cursor])
	case keyNext, keyRight:
		if m.pager.Next() {
			m.refreshPage()
		}
	case keyPrev, keyLeft:
		if m.pager.Prev() {
			m.refreshPage()
		}
	case keyOpen:
		return m.trigger(loadAction())
	case keyWrite:
		return m.trigger(exportAction())
	case keyPgUp, keyPgDown, keyHome, keyEnd:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(key)
		return m, cmd
	}
	return m, nil
}

// trigger runs an action, opening its form first when it takes parameters.
func (m Model) trigger(a action) (tea.Model, tea.Cmd) {
	if len(a.fields) == 0 {
		m.err = nil
		cmd := a.run(&m, nil)
		return m, cmd
	}
	m.form = newForm(a.label, a.fields, m.columns())
	m.pending = &a
	return m, nil
}

func (m Model) handleFormUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, submitted, cancelled := m.form.update(msg)
	switch {
	case cancelled:
		m.form, m.pending = nil, nil
		return m, nil
	case submitted:
		values := m.form.values()
		a := m.pending
		m.form, m.pending = nil, nil
		m.err = nil
		cmd := a.run(&m, values)
		return m, cmd
	}
	return m, cmd
}

func (m Model) handlePopupUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case keyEsc, keyQuit, keyEnter:
			m.popup = nil
			m.state = ViewStateList
			return m, nil
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	m.popup.list.Update(msg)
	return m, nil
}

func (m Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	m.state = ViewStateList
	if msg.err != nil {
		m.setError(fmt.Errorf("failed to load file: %w", msg.err))
		return m, nil
	}
	m.session.Set(msg.ds, msg.path)
	m.display(msg.ds)
	m.setStatus(fmt.Sprintf("Loaded %s successfully. Shape: %s", msg.path, msg.ds.ShapeString()))
	return m, nil
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.state = ViewStateList
	if msg.err != nil {
		m.setError(fmt.Errorf("failed to export file: %w", msg.err))
		return m, nil
	}
	m.setStatus("Exported data to " + msg.path)
	return m, nil
}

func (m Model) handlePlotted(msg plottedMsg) (tea.Model, tea.Cmd) {
	m.state = ViewStateList
	if msg.err != nil {
		m.setError(fmt.Errorf("could not generate plot: %w", msg.err))
		return m, nil
	}
	status := "Plot saved to " + msg.path
	if msg.openErr != nil {
		status += fmt.Sprintf(" (viewer failed: %v)", msg.openErr)
	}
	m.setStatus(status)
	return m, nil
}

// display shows ds in the table starting from page 1.
func (m *Model) display(ds *dataset.Dataset) {
	m.shown = ds
	m.pager.Reset(ds.Nrow())
	m.refreshPage()
}

func (m *Model) refreshPage() {
	m.table = m.buildTable()
	m.setStatus(m.pager.Status())
}

// apply runs a mutating operation on the session and redisplays the
// working table on success.
func (m *Model) apply(operation, status string, fn func(*dataset.Dataset) (*dataset.Dataset, error)) {
	if err := m.session.Apply(m.ctx, operation, fn); err != nil {
		m.setError(err)
		return
	}
	ds, _ := m.session.Dataset()
	m.display(ds)
	if status != "" {
		m.setStatus(status)
	}
}

func (m *Model) openPopup(title string, lines []string) {
	m.popup = &popup{
		title: title,
		list: listview.NewVirtualListModel(lines, m.popupHeight(), m.width, func(line string, selected bool) string {
			if selected {
				return TableSelectedStyle.Render(line)
			}
			return line
		}),
	}
	m.state = ViewStateDetail
}

func (m *Model) popupHeight() int {
	return max(m.height-popupChrome, minHeight)
}

func (m *Model) startLoading(msg string) {
	m.loading.SetMessage(msg)
	m.state = ViewStateLoading
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = nil
}

func (m *Model) setError(err error) {
	logging.FromContext(m.ctx).Warn().
		Str("component", "tui").
		Err(err).
		Msg("action failed")
	m.err = err
}

func (m *Model) columns() []string {
	ds, err := m.session.Dataset()
	if err != nil {
		return nil
	}
	return ds.Columns()
}

// buildTable creates the table for the current page.
func (m *Model) buildTable() table.Model {
	var (
		columns []table.Column
		rows    []table.Row
	)
	if m.shown != nil {
		start, end := m.pager.Bounds()
		page := m.shown.Rows(start, end)
		names := m.shown.Columns()

		widths := make([]int, len(names)+1)
		widths[0] = max(len(fmt.Sprint(end)), 1)
		for j, name := range names {
			widths[j+1] = max(len(name), minColumnWidth)
		}
		rows = make([]table.Row, len(page))
		for i, cells := range page {
			row := make(table.Row, 0, len(cells)+1)
			row = append(row, fmt.Sprint(start+i))
			for j, c := range cells {
				widths[j+1] = max(widths[j+1], len(c))
				row = append(row, c)
			}
			rows[i] = row
		}
		columns = append(columns, table.Column{Title: "#", Width: widths[0]})
		for j, name := range names {
			columns = append(columns, table.Column{Title: name, Width: min(widths[j+1], m.opts.MaxColWidth)})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chromeHeight, minHeight)),
		table.WithWidth(max(m.width-panelWidth-4, minColumnWidth)),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

// Shown returns the table currently displayed, which may be a grouped
// result rather than the working table.
func (m Model) Shown() *dataset.Dataset { return m.shown }

// Pager exposes the pagination state.
func (m Model) Pager() *pagination.Pager { return m.pager }

// Status returns the status bar text.
func (m Model) Status() string {
	if m.err != nil {
		return "Error: " + m.err.Error()
	}
	return m.status
}

// State returns the view state.
func (m Model) State() ViewState { return m.state }

func loadCmd(ctx context.Context, path string) tea.Cmd {
	return func() tea.Msg {
		ds, err := dataset.Load(ctx, path)
		return loadedMsg{ds: ds, path: path, err: err}
	}
}

func saveCmd(ctx context.Context, ds *dataset.Dataset, path string) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{path: path, err: ds.Save(ctx, path)}
	}
}

func renderPlotCmd(ctx context.Context, ds *dataset.Dataset, opts plot.Options, dir string, open bool) tea.Cmd {
	return func() tea.Msg {
		path, err := plot.Render(ds, opts, dir)
		if err != nil {
			return plottedMsg{err: err}
		}
		msg := plottedMsg{path: path}
		if open {
			msg.openErr = plot.Open(ctx, path)
		}
		return msg
	}
}
