package cli

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	wmerrors "github.com/matzehuels/writeme/pkg/errors"
)

func press(m SelectModel, keys ...tea.KeyMsg) (SelectModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(SelectModel)
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSelectModelNavigate(t *testing.T) {
	m := NewSelectModel(DefaultTheme(), "name", []string{"widget", "widget-rs", "gadget"})

	m, _ = press(m, keyDown, keyDown, keyDown, keyUp)
	if m.Cursor != 1 {
		t.Fatalf("Cursor = %d, want 1", m.Cursor)
	}

	m, cmd := press(m, keyEnter)
	if m.Chosen != 1 {
		t.Errorf("Chosen = %d, want 1", m.Chosen)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestSelectModelCursorBounds(t *testing.T) {
	m := NewSelectModel(DefaultTheme(), "name", []string{"a", "b"})
	m, _ = press(m, keyUp)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after up at top, want 0", m.Cursor)
	}
}

func TestSelectModelDigit(t *testing.T) {
	m := NewSelectModel(DefaultTheme(), "version", []string{"1.0.0", "2.0.0"})

	m, _ = press(m, keyRune('2'))
	if m.Chosen != 1 {
		t.Errorf("Chosen = %d, want 1", m.Chosen)
	}

	m = NewSelectModel(DefaultTheme(), "version", []string{"1.0.0", "2.0.0"})
	m, cmd := press(m, keyRune('7'))
	if m.Chosen != -1 || cmd != nil {
		t.Errorf("out-of-range digit should be ignored, Chosen = %d", m.Chosen)
	}
}

func TestSelectModelSkip(t *testing.T) {
	for _, key := range []tea.KeyMsg{keyEsc, keyRune('q')} {
		m := NewSelectModel(DefaultTheme(), "name", []string{"a", "b"})
		m, cmd := press(m, keyDown, key)
		if m.Aborted {
			t.Errorf("%s should not abort the run", key)
		}
		if m.Chosen != 0 || cmd == nil {
			t.Errorf("%s: Chosen = %d, want first candidate and quit", key, m.Chosen)
		}
	}
}

func TestSelectModelAbort(t *testing.T) {
	m := NewSelectModel(DefaultTheme(), "name", []string{"a", "b"})
	m, cmd := press(m, keyCtrlC)
	if !m.Aborted || cmd == nil {
		t.Errorf("ctrl+c should abort and quit, got %+v", m)
	}
}

func TestTerminalChooserKeys(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      int
		wantErr   bool
		wantAbort bool
	}{
		{name: "digit", input: "2", want: 1},
		{name: "q skips", input: "q", want: 0},
		{name: "ctrl+c aborts", input: "\x03", wantErr: true, wantAbort: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aborted := false
			c := &terminalChooser{
				in:      strings.NewReader(tt.input),
				out:     &bytes.Buffer{},
				theme:   DefaultTheme(),
				onAbort: func() { aborted = true },
			}
			got, err := c.Choose("name", []string{"widget", "widget-rs"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Choose() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Choose() = %d, want %d", got, tt.want)
			}
			if aborted != tt.wantAbort {
				t.Errorf("onAbort called = %v, want %v", aborted, tt.wantAbort)
			}
		})
	}
}

func TestSelectModelView(t *testing.T) {
	m := NewSelectModel(DefaultTheme(), "description", []string{"A tiny widget", "Widgets for everyone"})
	view := m.View()
	for _, want := range []string{"description", selectQuestion, "A tiny widget", "Widgets for everyone"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	m, _ = press(m, keyDown, keyEnter)
	if view := m.View(); !strings.Contains(view, "Widgets for everyone") || strings.Contains(view, "A tiny widget") {
		t.Errorf("final View() should show only the choice:\n%s", view)
	}
}

func TestChooserFallsBackWithoutTerminal(t *testing.T) {
	c, _ := testCLI(t)

	for _, yes := range []bool{true, false} {
		ch := c.chooser(yes, nil)
		if _, ok := ch.(*terminalChooser); ok {
			t.Errorf("chooser(yes=%v) without a terminal should not prompt", yes)
		}
		if i, err := ch.Choose("name", []string{"a", "b"}); i != 0 || err != nil {
			t.Errorf("Choose = (%d, %v), want (0, nil)", i, err)
		}
	}
}

func TestErrAborted(t *testing.T) {
	if !wmerrors.Is(errAborted, wmerrors.ErrCodeCancelled) {
		t.Error("errAborted should carry the cancelled code")
	}
}
