package main

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/memmap"
	"github.com/wippyai/memmap/controller"
)

// cellWidth is the screen columns per byte, separator included.
const cellWidth = 5

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#84919E"))

	selectedStyle = lipgloss.NewStyle().
			Reverse(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#03AF7A"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4B00"))

	anomalyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#996600"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// fieldBackground is the cell colour of each field type; wide integers get a
// darker shade than single bytes.
func fieldBackground(cell controller.Cell) (lipgloss.Color, bool) {
	switch cell.Type {
	case memmap.SignedInt:
		if cell.Span > 1 {
			return "#4DC4FF", true
		}
		return "#BFE4FF", true
	case memmap.UnsignedInt:
		if cell.Span > 1 {
			return "#C9ACE6", true
		}
		return "#FFFF80", true
	case memmap.Ascii:
		return "#FF8082", true
	case memmap.Bool:
		return "#FFCA80", true
	case memmap.Bcd:
		return "#77D9A8", true
	}
	return "", false
}

type modelState int

const (
	stateBrowse modelState = iota
	stateEdit
)

// rejectedEdit is text the core refused; the shell keeps showing it until
// the user corrects the cell.
type rejectedEdit struct {
	text   string
	reason error
}

type interactiveModel struct {
	ctl      *controller.Controller
	invalid  map[memmap.FieldKey]rejectedEdit
	filename string
	out      string
	status   string
	cells    [][]controller.Cell
	input    textinput.Model
	row      int
	col      int
	top      int
	height   int
	state    modelState
}

func newInteractiveModel(ctl *controller.Controller, filename, out string, height int) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "value: "
	ti.Width = 40
	return &interactiveModel{
		ctl:      ctl,
		invalid:  make(map[memmap.FieldKey]rejectedEdit),
		filename: filename,
		out:      out,
		input:    ti,
		height:   height,
		state:    stateBrowse,
	}
}

type decodedMsg struct {
	cells [][]controller.Cell
}

type savedMsg struct {
	err  error
	path string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.decode
}

func (m *interactiveModel) decode() tea.Msg {
	return decodedMsg{cells: m.ctl.DecodeAll()}
}

func (m *interactiveModel) save() tea.Msg {
	if m.out == "" {
		return savedMsg{err: fmt.Errorf("no -out file given")}
	}
	f, err := os.Create(m.out)
	if err != nil {
		return savedMsg{err: err}
	}
	if err := m.ctl.Dump(f); err != nil {
		f.Close()
		return savedMsg{err: err}
	}
	return savedMsg{path: m.out, err: f.Close()}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.scroll()

	case decodedMsg:
		m.cells = msg.cells

	case savedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("save: %v", msg.err))
		} else {
			m.status = resultStyle.Render("saved " + msg.path)
		}

	case tea.KeyMsg:
		if m.state == stateEdit {
			return m.updateEdit(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *interactiveModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.cells) == 0 {
		if s := msg.String(); s == "ctrl+c" || s == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.row > 0 {
			m.row--
			m.col = m.anchorCol(m.row, m.col)
		}

	case "down", "j":
		if m.row < len(m.cells)-1 {
			m.row++
			m.col = m.anchorCol(m.row, m.col)
		}

	case "left", "h":
		if m.col > 0 {
			m.col = m.anchorCol(m.row, m.col-1)
		}

	case "right", "l":
		next := m.col + m.cells[m.row][m.col].Span
		if next < len(m.cells[m.row]) {
			m.col = next
		}

	case "enter":
		m.state = stateEdit
		m.input.SetValue(m.currentText())
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case "r":
		m.status = "read"
		return m, m.decode

	case "c":
		m.ctl.Clear()
		clear(m.invalid)
		m.status = "cleared"
		return m, m.decode

	case "s":
		return m, m.save
	}
	m.scroll()
	return m, nil
}

func (m *interactiveModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.state = stateBrowse
		m.input.Blur()
		return m, nil

	case "enter":
		m.state = stateBrowse
		m.input.Blur()
		key := memmap.FieldKey{Row: m.row, Col: m.col}
		text := m.input.Value()
		res := m.ctl.ValidateAndEncode(m.row, m.col, text)
		if res.Valid {
			delete(m.invalid, key)
			status := fmt.Sprintf("%s = %s", key, res.Canonical)
			if !res.Stored {
				status += " (not stored)"
			}
			m.status = resultStyle.Render(status)
		} else {
			m.invalid[key] = rejectedEdit{text: text, reason: res.Reason}
			m.status = errorStyle.Render(res.Reason.Error())
		}
		return m, m.decode
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// anchorCol returns the column a cursor at col lands on: the anchor of the
// field covering it, or col itself.
func (m *interactiveModel) anchorCol(row, col int) int {
	if col >= len(m.cells[row]) {
		col = len(m.cells[row]) - 1
	}
	if m.cells[row][col].Span == 0 {
		return m.cells[row][col].Anchor.Col
	}
	return col
}

func (m *interactiveModel) currentText() string {
	if e, ok := m.invalid[memmap.FieldKey{Row: m.row, Col: m.col}]; ok {
		return e.text
	}
	return m.cells[m.row][m.col].Text
}

func (m *interactiveModel) visibleRows() int {
	// title, header, blank, info, status, input, help
	n := m.height - 8
	if n < 1 {
		return 1
	}
	return n
}

func (m *interactiveModel) scroll() {
	n := m.visibleRows()
	if m.row < m.top {
		m.top = m.row
	}
	if m.row >= m.top+n {
		m.top = m.row - n + 1
	}
}

func (m *interactiveModel) View() string {
	if len(m.cells) == 0 {
		return "Decoding..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("MemoryMap"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	var hdr strings.Builder
	hdr.WriteString("    ")
	for c := range m.cells[0] {
		fmt.Fprintf(&hdr, " %-*s", cellWidth-1, fmt.Sprintf("_%X", c))
	}
	b.WriteString(headerStyle.Render(hdr.String()))
	b.WriteByte('\n')

	end := min(m.top+m.visibleRows(), len(m.cells))
	for r := m.top; r < end; r++ {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%03X0", r)))
		for c, cell := range m.cells[r] {
			if cell.Span == 0 {
				continue
			}
			b.WriteByte(' ')
			b.WriteString(m.renderCell(r, c, cell))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.describe())
	b.WriteByte('\n')
	b.WriteString(m.status)
	b.WriteByte('\n')

	if m.state == stateEdit {
		b.WriteString(m.input.View())
		b.WriteByte('\n')
		b.WriteString(helpStyle.Render("enter apply • esc cancel"))
	} else {
		b.WriteByte('\n')
		b.WriteString(helpStyle.Render("←↑↓→ move • enter edit • r read • c clear • s save • q quit"))
	}
	return b.String()
}

func (m *interactiveModel) renderCell(r, c int, cell controller.Cell) string {
	width := cell.Span*cellWidth - 1
	text := displayText(cell)
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if bg, ok := fieldBackground(cell); ok {
		style = style.Background(bg).Foreground(lipgloss.Color("#000000"))
	}
	if cell.Anomaly != nil {
		style = style.Foreground(anomalyStyle.GetForeground())
	}
	if e, ok := m.invalid[memmap.FieldKey{Row: r, Col: c}]; ok {
		text = e.text
		style = style.Foreground(errorStyle.GetForeground())
	}
	if r == m.row && c == m.col {
		style = style.Inherit(selectedStyle)
	}
	return style.Render(truncate(text, width))
}

// describe is the tooltip line for the selected cell.
func (m *interactiveModel) describe() string {
	cell := m.cells[m.row][m.col]
	key := memmap.FieldKey{Row: m.row, Col: m.col}
	if !cell.Field {
		return fmt.Sprintf("%s raw byte", key)
	}
	s := fmt.Sprintf("%s %s (%s, %d byte(s))", key, cell.Name, cell.Label, cell.Span)
	if e, ok := m.invalid[key]; ok {
		s += " " + errorStyle.Render(e.reason.Error())
	} else if cell.Anomaly != nil {
		s += " " + anomalyStyle.Render(cell.Anomaly.Error())
	}
	return s
}

// displayText makes decoded text safe for a terminal cell.
func displayText(cell controller.Cell) string {
	if cell.Type != memmap.Ascii {
		return cell.Text
	}
	r := []rune(cell.Text)
	if len(r) == 1 && !unicode.IsPrint(r[0]) {
		return fmt.Sprintf("\\x%02X", r[0])
	}
	return cell.Text
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

func runInteractive(ctl *controller.Controller, filename, out string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("interactive mode needs a terminal")
	}
	height := 24
	if _, h, err := term.GetSize(fd); err == nil {
		height = h
	}
	p := tea.NewProgram(newInteractiveModel(ctl, filename, out, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
