package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/auctionwar/internal/game"
)

var (
	handStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	playStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	invalidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	gameOverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)
)

// Narrator prints a running commentary of every game it is subscribed to
type Narrator struct {
	w         io.Writer
	formatter *game.EventFormatter
}

// NewNarrator creates a narrator writing to w
func NewNarrator(w io.Writer, opts game.FormattingOptions) *Narrator {
	return &Narrator{w: w, formatter: game.NewEventFormatter(opts)}
}

// OnEvent implements game.EventSubscriber
func (n *Narrator) OnEvent(event game.GameEvent) {
	line := n.formatter.Format(event)
	if line == "" {
		return
	}

	var style lipgloss.Style
	switch event.EventType() {
	case game.EventTypeHandStart:
		style = handStyle
	case game.EventTypePlay:
		style = playStyle
	case game.EventTypePass:
		style = passStyle
	case game.EventTypeInvalidPlay:
		style = invalidStyle
	case game.EventTypeHandEnd:
		style = winStyle
	case game.EventTypeGameOver:
		style = gameOverStyle
		line += "\n"
	}
	fmt.Fprintln(n.w, style.Render(line))
}
