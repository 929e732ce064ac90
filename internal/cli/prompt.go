package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/merge"
)

// errAborted is returned by the terminal chooser when the user presses ctrl+c.
var errAborted = errors.New(errors.ErrCodeCancelled, "selection aborted")

// terminalChooser resolves merge conflicts with an interactive prompt.
type terminalChooser struct {
	in    io.Reader
	out   io.Writer
	theme Theme

	// onAbort runs when the user aborts with ctrl+c, and is expected to
	// cancel the run.
	onAbort func()
}

// Choose implements merge.Chooser.
func (c *terminalChooser) Choose(label string, items []string) (int, error) {
	p := tea.NewProgram(NewSelectModel(c.theme, label, items), tea.WithInput(c.in), tea.WithOutput(c.out))
	final, err := p.Run()
	if err != nil {
		return 0, fmt.Errorf("prompt %s: %w", label, err)
	}
	m := final.(SelectModel)
	if m.Aborted {
		if c.onAbort != nil {
			c.onAbort()
		}
		return 0, errAborted
	}
	// Input closed without an answer.
	if m.Chosen < 0 {
		return 0, nil
	}
	return m.Chosen, nil
}

// chooser returns the conflict resolver for a run. Prompts need a terminal
// on both ends; otherwise, or with assumeYes, the first candidate wins.
func (c *CLI) chooser(assumeYes bool, onAbort func()) merge.Chooser {
	if assumeYes || !isTerminal(c.In) || !isTerminal(c.Out) {
		return merge.First
	}
	return &terminalChooser{in: c.In, out: c.Out, theme: DefaultTheme(), onAbort: onAbort}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
