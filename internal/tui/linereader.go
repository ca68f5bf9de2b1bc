package tui

import (
	"io"
	"os"

	"github.com/chzyer/readline"
)

// newLineReader builds a readline instance over in and out. Anything other
// than the process's own stdin is read as a plain stream that never touches
// terminal modes.
func newLineReader(in io.Reader, out io.Writer) (*readline.Instance, error) {
	cfg := &readline.Config{
		Prompt:          PromptStyle.Render("play> "),
		InterruptPrompt: "^C",
		EOFPrompt:       "pass",
		Stdout:          out,
		Stderr:          out,
	}

	if in != os.Stdin {
		// Without a terminal there is no line editing to echo
		cfg.Stdin = io.NopCloser(in)
		cfg.Stdout = io.Discard
		cfg.Stderr = io.Discard
		cfg.FuncIsTerminal = func() bool { return false }
		cfg.FuncMakeRaw = func() error { return nil }
		cfg.FuncExitRaw = func() error { return nil }
	}
	return readline.NewEx(cfg)
}
