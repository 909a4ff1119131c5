package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nwaller/loadboard/internal/cli/formatter"
	"github.com/nwaller/loadboard/internal/domain"
	"github.com/nwaller/loadboard/internal/grid"
)

// boardKeyMap defines the board key bindings.
type boardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Group    key.Binding
	Division key.Binding
	SortCol  key.Binding
	SortName key.Binding
	SortLeft key.Binding
	Pick     key.Binding
	Drop     key.Binding
	Cancel   key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

var boardKeys = boardKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "left")),
	Right:    key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "right")),
	Group:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "collapse group")),
	Division: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "collapse division")),
	SortCol:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by column")),
	SortName: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "sort by name")),
	SortLeft: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "sort by remaining")),
	Pick:     key.NewBinding(key.WithKeys("m", " "), key.WithHelp("m", "pick up")),
	Drop:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type boardLoadedMsg struct {
	snap *grid.Snapshot
	err  error
}

type relocatedMsg struct {
	err error
}

// armedMove is a pending relocation gesture: the source cell has been
// picked and the cursor is choosing a destination.
type armedMove struct {
	staffID   string
	staffName string
	courseID  string
	groupID   string
	label     string
}

// boardModel is the bubbletea Model for the interactive board. All board
// data comes from pipeline snapshots; the model only tracks cursor,
// scroll and gesture state and requests a fresh snapshot after every
// mutation or view-state change.
type boardModel struct {
	app  *App
	view domain.ViewState
	snap *grid.Snapshot

	cursorRow int
	cursorCol int
	scroll    int // first content line in view, in row units

	width  int
	height int

	armed    *armedMove
	status   string
	err      error
	loading  bool
	quitting bool
}

func newBoardModel(app *App, view domain.ViewState) boardModel {
	if view.AlertThreshold == 0 {
		view.AlertThreshold = 2
	}
	return boardModel{
		app:     app,
		view:    view,
		loading: true,
	}
}

// chromeLines is the vertical space used by the header, column row,
// totals and help line.
const chromeLines = 6

func (m boardModel) contentHeight() int {
	h := m.height - chromeLines
	if h < 1 {
		h = 1
	}
	return h
}

func (m boardModel) viewport() grid.Viewport {
	return grid.Viewport{
		ScrollOffset: m.scroll,
		Size:         m.contentHeight(),
		ItemSize:     1,
		Overscan:     2,
	}
}

func (m boardModel) loadBoard() tea.Cmd {
	view, vp := m.view, m.viewport()
	return func() tea.Msg {
		snap, err := m.app.Board.Board(context.Background(), view, vp)
		return boardLoadedMsg{snap: snap, err: err}
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadBoard()
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.loadBoard()

	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.snap = msg.snap
		m.clampCursor()
		return m, nil

	case relocatedMsg:
		if msg.err != nil {
			var relErr *grid.RelocationError
			if errors.As(msg.err, &relErr) {
				m.status = relErr.Reason
				return m, nil
			}
			m.err = msg.err
			return m, nil
		}
		m.status = "moved"
		return m, m.loadBoard()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.snap == nil {
		if key.Matches(msg, boardKeys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.status = ""

	switch {
	case key.Matches(msg, boardKeys.Quit):
		// Persist the collapse/sort state before the program exits.
		m.quitting = true
		_ = m.app.ViewState.Save(context.Background(), m.view)
		return m, tea.Quit

	case key.Matches(msg, boardKeys.Up):
		if m.cursorRow > 0 {
			m.cursorRow--
		}
		m.followCursor()

	case key.Matches(msg, boardKeys.Down):
		if m.cursorRow < len(m.snap.SortedRows)-1 {
			m.cursorRow++
		}
		m.followCursor()

	case key.Matches(msg, boardKeys.Left):
		if m.cursorCol > 0 {
			m.cursorCol--
		}

	case key.Matches(msg, boardKeys.Right):
		if m.cursorCol < len(m.snap.VisibleColumns)-1 {
			m.cursorCol++
		}

	case key.Matches(msg, boardKeys.Group):
		// Collapse/expand the group owning the cursor column. With no
		// visible columns every group is collapsed; expand them all.
		if col, ok := m.cursorColumn(); ok {
			m.view.ToggleGroup(col.GroupID)
		} else {
			m.view.CollapsedGroups = make(map[string]bool)
		}
		return m, m.loadBoard()

	case key.Matches(msg, boardKeys.Division):
		if row, ok := m.cursorRowRecord(); ok {
			m.view.ToggleDivision(row.Division)
		} else if len(m.view.CollapsedDivisions) > 0 {
			m.view.CollapsedDivisions = make(map[domain.Division]bool)
		}
		return m, m.loadBoard()

	case key.Matches(msg, boardKeys.SortCol):
		if col, ok := m.cursorColumn(); ok {
			m.cycleSort(col.Key)
			return m, m.loadBoard()
		}

	case key.Matches(msg, boardKeys.SortName):
		m.cycleSort(grid.SortByName)
		return m, m.loadBoard()

	case key.Matches(msg, boardKeys.SortLeft):
		m.cycleSort(grid.SortByRemaining)
		return m, m.loadBoard()

	case key.Matches(msg, boardKeys.Pick):
		m.armMove()

	case key.Matches(msg, boardKeys.Drop):
		if m.armed != nil {
			return m, m.dropMove()
		}

	case key.Matches(msg, boardKeys.Cancel):
		if m.armed != nil {
			m.armed = nil
			m.status = "move cancelled"
		}

	case key.Matches(msg, boardKeys.Refresh):
		m.loading = true
		return m, m.loadBoard()
	}

	return m, nil
}

func (m *boardModel) cycleSort(key string) {
	m.view.SortDirection = grid.NextDirection(m.view.SortColumn == key, m.view.SortDirection)
	m.view.SortColumn = key
	if m.view.SortDirection == domain.SortNone {
		m.view.SortColumn = ""
	}
}

func (m *boardModel) armMove() {
	row, okRow := m.cursorRowRecord()
	col, okCol := m.cursorColumn()
	if !okRow || !okCol {
		return
	}
	for _, a := range row.Assignments {
		if grid.ColumnKey(a.GroupID, a.CourseID) == col.Key {
			m.armed = &armedMove{
				staffID:   row.ID,
				staffName: row.Name,
				courseID:  a.CourseID,
				groupID:   a.GroupID,
				label:     a.CourseName,
			}
			m.status = fmt.Sprintf("moving %s from %s", a.CourseName, row.Name)
			return
		}
	}
	m.status = "nothing to move in this cell"
}

func (m *boardModel) dropMove() tea.Cmd {
	row, okRow := m.cursorRowRecord()
	col, okCol := m.cursorColumn()
	if !okRow || !okCol {
		return nil
	}
	req := grid.Relocation{
		SourceStaffID: m.armed.staffID,
		CourseID:      m.armed.courseID,
		DestStaffID:   row.ID,
		DestGroupID:   col.GroupID,
		DestColumnID:  col.ColumnID,
	}
	m.armed = nil
	app := m.app
	return func() tea.Msg {
		_, err := app.Board.Relocate(context.Background(), req)
		return relocatedMsg{err: err}
	}
}

func (m *boardModel) clampCursor() {
	if m.snap == nil {
		return
	}
	if n := len(m.snap.SortedRows); m.cursorRow >= n {
		m.cursorRow = n - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	if n := len(m.snap.VisibleColumns); m.cursorCol >= n {
		m.cursorCol = n - 1
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	m.followCursor()
}

// followCursor keeps the cursor row inside the scrolled content area.
func (m *boardModel) followCursor() {
	h := m.contentHeight()
	if m.cursorRow < m.scroll {
		m.scroll = m.cursorRow
	}
	if m.cursorRow >= m.scroll+h {
		m.scroll = m.cursorRow - h + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m boardModel) cursorRowRecord() (*domain.StaffRecord, bool) {
	if m.snap == nil || m.cursorRow < 0 || m.cursorRow >= len(m.snap.SortedRows) {
		return nil, false
	}
	return &m.snap.SortedRows[m.cursorRow], true
}

func (m boardModel) cursorColumn() (grid.ColumnRef, bool) {
	if m.snap == nil || m.cursorCol < 0 || m.cursorCol >= len(m.snap.VisibleColumns) {
		return grid.ColumnRef{}, false
	}
	return m.snap.VisibleColumns[m.cursorCol], true
}

// ── rendering ────────────────────────────────────────────────────────────────

const nameColWidth = 18

func (m boardModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("%s %v\n%s\n", formatter.StyleRed.Render("error:"), m.err, formatter.Dim("q to quit"))
	}
	if m.loading || m.snap == nil {
		return formatter.Dim("loading board...")
	}

	var b strings.Builder
	b.WriteString(formatter.Header("load board"))
	b.WriteString("\n")
	b.WriteString(m.renderColumnHeader())
	b.WriteString("\n")
	b.WriteString(m.renderRows())
	b.WriteString(m.renderTotals())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderColumnHeader() string {
	var b strings.Builder
	b.WriteString(pad("", nameColWidth))
	for i, col := range m.snap.VisibleColumns {
		label := pad(col.Label, cellWidth(col))
		styled := formatter.GroupStyle(col.Color).Render(label)
		if i == m.cursorCol {
			styled = formatter.StyleBold.Underline(true).Render(label)
		}
		if m.view.SortColumn == col.Key {
			styled += sortMarker(m.view.SortDirection)
		}
		b.WriteString(styled)
		b.WriteString(" ")
	}
	b.WriteString(formatter.Dim(pad("LEFT", 5)))
	return b.String()
}

func (m boardModel) renderRows() string {
	var b strings.Builder
	w := m.snap.Window

	if w.StartIndex > 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("  … %d more above\n", w.StartIndex)))
	}

	for i := w.StartIndex; i < w.EndIndex; i++ {
		row := &m.snap.SortedRows[i]
		b.WriteString(m.renderRow(i, row))
		b.WriteString("\n")
	}

	if rest := len(m.snap.SortedRows) - w.EndIndex; rest > 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("  … %d more below\n", rest)))
	}
	return b.String()
}

func (m boardModel) renderRow(idx int, row *domain.StaffRecord) string {
	var b strings.Builder

	name := pad(row.Name, nameColWidth)
	if idx == m.cursorRow {
		name = formatter.StyleBold.Render("▸ " + pad(row.Name, nameColWidth-2))
	}
	b.WriteString(name)

	for colIdx, col := range m.snap.VisibleColumns {
		cell := "·"
		excluded := false
		for _, a := range row.Assignments {
			if grid.ColumnKey(a.GroupID, a.CourseID) == col.Key {
				cell = fmt.Sprintf("%d", a.Load)
				excluded = a.ExcludedFromLoad
			}
		}
		padded := pad(cell, cellWidth(col))
		switch {
		case idx == m.cursorRow && colIdx == m.cursorCol && m.armed != nil:
			b.WriteString(formatter.StyleYellow.Reverse(true).Render(padded))
		case idx == m.cursorRow && colIdx == m.cursorCol:
			b.WriteString(formatter.StyleFg.Reverse(true).Render(padded))
		case cell == "·" || excluded:
			b.WriteString(formatter.Dim(padded))
		default:
			b.WriteString(padded)
		}
		b.WriteString(" ")
	}

	remaining := row.RemainingCapacity()
	b.WriteString(formatter.CapacityStyle(remaining, m.view.AlertThreshold).Render(pad(fmt.Sprintf("%d", remaining), 5)))
	return b.String()
}

func (m boardModel) renderTotals() string {
	var b strings.Builder
	b.WriteString(formatter.Dim(pad("totals", nameColWidth)))
	for _, col := range m.snap.VisibleColumns {
		ct := m.snap.Totals.Columns[col.Key]
		b.WriteString(formatter.StyleBold.Render(pad(fmt.Sprintf("%d", ct.LoadSum), cellWidth(col))))
		b.WriteString(" ")
	}
	b.WriteString(formatter.StyleBold.Render(pad(fmt.Sprintf("%d", m.snap.Totals.Grand.RemainingSum), 5)))
	return b.String()
}

func (m boardModel) renderFooter() string {
	if m.armed != nil {
		return formatter.StyleYellow.Render(fmt.Sprintf("moving %s · enter drop · esc cancel", m.armed.label))
	}
	if m.status != "" {
		return formatter.StyleYellow.Render(m.status)
	}
	return formatter.Dim("arrows move · m pick up · enter drop · g/d collapse · s/n/c sort · q quit")
}

func sortMarker(d domain.SortDirection) string {
	switch d {
	case domain.SortAsc:
		return formatter.Dim("↑")
	case domain.SortDesc:
		return formatter.Dim("↓")
	default:
		return ""
	}
}

// cellWidth sizes a column to its label with room for two-digit loads.
func cellWidth(col grid.ColumnRef) int {
	w := len([]rune(col.Label))
	if w < 4 {
		w = 4
	}
	return w
}

func pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
