package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"

	"github.com/lox/auctionwar/internal/game"
)

// ErrAborted is returned when the player quits from the prompt
var ErrAborted = errors.New("prompt aborted")

// DefaultLogLines is how much narration the prompt keeps on screen
const DefaultLogLines = 8

// promptModel is the Bubble Tea model for a single decision
type promptModel struct {
	view    game.TableView
	problem string

	input textinput.Model
	log   viewport.Model

	answer  string
	done    bool
	aborted bool
}

func newPromptModel(view game.TableView, problem string, history []string) promptModel {
	ti := textinput.New()
	ti.Placeholder = "card to play (2-14, T, J, Q, K, A) or pass"
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 48
	ti.PromptStyle = PromptStyle
	ti.Prompt = "play> "

	height := max(len(history), 1)
	vp := viewport.New(72, height)
	vp.SetContent(strings.Join(history, "\n"))
	vp.GotoBottom()

	return promptModel{
		view:    view,
		problem: problem,
		input:   ti,
		log:     vp,
	}
}

// Init initializes the prompt
func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and resizes
func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.log.Width = max(msg.Width-2, 1)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.answer = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m promptModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	if m.log.TotalLineCount() > 0 && strings.TrimSpace(m.log.View()) != "" {
		b.WriteString(LogPaneStyle.Render(m.log.View()))
		b.WriteString("\n")
	}
	b.WriteString(RenderView(m.view))
	if m.problem != "" {
		b.WriteString(ErrorStyle.Render(m.problem))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("enter to confirm, esc to quit"))
	return b.String()
}

// PrompterOption configures a Prompter
type PrompterOption func(*Prompter)

// WithProgramOptions passes options to every Bubble Tea program the
// prompter starts, such as tea.WithInput for tests
func WithProgramOptions(opts ...tea.ProgramOption) PrompterOption {
	return func(p *Prompter) {
		p.programOpts = append(p.programOpts, opts...)
	}
}

// WithLogLines sets how many lines of narration are shown above the prompt
func WithLogLines(n int) PrompterOption {
	return func(p *Prompter) {
		if n >= 0 {
			p.logLines = n
		}
	}
}

// Prompter asks a human for decisions with an interactive text input.
// It also subscribes to game events so recent plays stay on screen.
type Prompter struct {
	logger      *log.Logger
	formatter   *game.EventFormatter
	programOpts []tea.ProgramOption
	logLines    int

	mu      sync.Mutex
	history []string
}

// NewPrompter creates a prompter for the named player
func NewPrompter(player string, logger *log.Logger, opts ...PrompterOption) *Prompter {
	p := &Prompter{
		logger:    logger.WithPrefix("tui"),
		formatter: game.NewEventFormatter(game.FormattingOptions{Perspective: player, ShowScores: true}),
		logLines:  DefaultLogLines,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnEvent records narration for the next prompt
func (p *Prompter) OnEvent(event game.GameEvent) {
	line := p.formatter.Format(event)
	if line == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = append(p.history, line)
	if over := len(p.history) - p.logLines; over > 0 {
		p.history = append([]string(nil), p.history[over:]...)
	}
}

// History returns the narration currently kept for display
func (p *Prompter) History() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.history...)
}

// Prompt runs a Bubble Tea program until the player confirms an answer
func (p *Prompter) Prompt(view game.TableView, problem string) (string, error) {
	model := newPromptModel(view, problem, p.History())

	final, err := tea.NewProgram(model, p.programOpts...).Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	result, ok := final.(promptModel)
	if !ok || result.aborted {
		p.logger.Debug("Prompt aborted")
		return "", ErrAborted
	}
	return result.answer, nil
}

// LinePrompter reads one decision per line, for pipes and plain terminals
type LinePrompter struct {
	rl        *readline.Instance
	out       io.Writer
	formatter *game.EventFormatter
}

// NewLinePrompter creates a prompter reading from in and writing to out.
// Close releases the underlying reader.
func NewLinePrompter(player string, in io.Reader, out io.Writer) (*LinePrompter, error) {
	rl, err := newLineReader(in, out)
	if err != nil {
		return nil, fmt.Errorf("failed to set up line input: %w", err)
	}
	return &LinePrompter{
		rl:        rl,
		out:       out,
		formatter: game.NewEventFormatter(game.FormattingOptions{Perspective: player, ShowScores: true}),
	}, nil
}

// Close stops reading input
func (p *LinePrompter) Close() error {
	return p.rl.Close()
}

// OnEvent prints narration as it happens
func (p *LinePrompter) OnEvent(event game.GameEvent) {
	if line := p.formatter.Format(event); line != "" {
		fmt.Fprintln(p.out, line)
	}
}

// Prompt prints the table and waits for one line of input
func (p *LinePrompter) Prompt(view game.TableView, problem string) (string, error) {
	fmt.Fprint(p.out, RenderView(view))
	if problem != "" {
		fmt.Fprintln(p.out, ErrorStyle.Render(problem))
	}

	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrAborted
	}
	return line, err
}
