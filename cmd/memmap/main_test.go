package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/memmap"
	"github.com/wippyai/memmap/controller"
)

const testConfig = `[SETTING]
max_row = 2
max_column = 16

[MMAP]
0000 = 1, ascii, tag
0001 = 2, signed int, offset
0003 = 2, bcd, serial
0005 = 1, bool, enabled
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	hexPath := filepath.Join(dir, "out.hex")

	var out bytes.Buffer
	err := run(options{
		configFile: writeConfig(t),
		hexOut:     hexPath,
		edits:      editList{"0000=A", "0001=-1", "0003=9A", "0010=7f", "0005=on"},
		dump:       true,
	}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"0000: 41",
		"0001: FFFF",
		"0003: rejected",
		"0010: 7f",
		"0005: on (not stored)",
		"00 :, 41, FF, FF",
		"01 :, 7F, FF",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	var again bytes.Buffer
	err = run(options{configFile: writeConfig(t), hexIn: hexPath, dump: true}, &again)
	if err != nil {
		t.Fatalf("run with -hex: %v", err)
	}
	if !strings.Contains(again.String(), "00 :, 41, FF, FF") {
		t.Errorf("image not reloaded:\n%s", again.String())
	}
}

func TestRunErrors(t *testing.T) {
	if err := run(options{configFile: filepath.Join(t.TempDir(), "none.ini")}, &bytes.Buffer{}); err == nil {
		t.Error("missing config accepted")
	}
	if err := run(options{configFile: writeConfig(t), edits: editList{"0000"}}, &bytes.Buffer{}); err == nil {
		t.Error("edit without value accepted")
	}
	if err := run(options{configFile: writeConfig(t), edits: editList{"zz00=1"}}, &bytes.Buffer{}); err == nil {
		t.Error("edit with bad key accepted")
	}
}

func newTestModel(t *testing.T) *interactiveModel {
	t.Helper()
	ctl, err := open(writeConfig(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	m := newInteractiveModel(ctl, "config.ini", "", 24)
	m.Update(m.decode())
	return m
}

func press(m *interactiveModel, keys ...tea.KeyMsg) {
	for _, k := range keys {
		_, cmd := m.Update(k)
		if cmd == nil {
			continue
		}
		if msg, ok := cmd().(decodedMsg); ok {
			m.Update(msg)
		}
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInteractiveNavigationSkipsSpans(t *testing.T) {
	m := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.col != 1 {
		t.Fatalf("col = %d, want 1", m.col)
	}
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.col != 3 {
		t.Errorf("col = %d, want 3 after skipping the signed span", m.col)
	}
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.col != 1 {
		t.Errorf("col = %d, want anchor 1", m.col)
	}
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.row != 1 || m.col != 1 {
		t.Errorf("cursor = (%d, %d), want (1, 1)", m.row, m.col)
	}
}

func TestInteractiveEdit(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyRight})

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateEdit {
		t.Fatal("enter should open the editor")
	}
	m.input.SetValue("-2")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.cells[0][1].Text; got != "-2" {
		t.Errorf("decoded = %q, want -2", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m.input.SetValue("99999")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	e, ok := m.invalid[m.cells[0][1].Anchor]
	if !ok || e.text != "99999" {
		t.Fatalf("rejected edit not kept: %+v", m.invalid)
	}
	if m.currentText() != "99999" {
		t.Errorf("currentText = %q", m.currentText())
	}
	if !strings.Contains(m.View(), "not_representable") {
		t.Error("view should show the rejection reason")
	}

	press(m, runes("c"))
	if len(m.invalid) != 0 {
		t.Error("clear should drop rejected edits")
	}
	if got := m.cells[0][1].Text; got != "-1" {
		t.Errorf("after clear = %q, want -1", got)
	}
}

func TestDisplayText(t *testing.T) {
	cell := controller.Cell{Type: memmap.Ascii, Text: "\x00"}
	if got := displayText(cell); got != `\x00` {
		t.Errorf("displayText = %q", got)
	}
	if got := truncate("-2147483648", 4); got != "-21…" {
		t.Errorf("truncate = %q", got)
	}
}
