package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/auctionwar/internal/deck"
)

type scriptedPrompter struct {
	lines    []string
	err      error
	problems []string
}

func (p *scriptedPrompter) Prompt(_ TableView, problem string) (string, error) {
	p.problems = append(p.problems, problem)
	if p.err != nil {
		return "", p.err
	}
	if len(p.lines) == 0 {
		return "", errors.New("no more input")
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		input string
		pass  bool
		value deck.Rank
		ok    bool
	}{
		{"", true, 0, true},
		{"  pass ", true, 0, true},
		{"P", true, 0, true},
		{"7", false, deck.Seven, true},
		{"a", false, deck.Ace, true},
		{"T", false, deck.Ten, true},
		{"14", false, deck.Ace, true},
		{"play 9", false, deck.Nine, true},
		{"bid K", false, deck.King, true},
		{"15", false, 0, false},
		{"1", false, 0, false},
		{"hello", false, 0, false},
		{"play", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, ok := ParseDecision(tt.input)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.pass, d.Pass)
			if !tt.pass {
				assert.Equal(t, tt.value, d.Value)
			}
		})
	}
}

func TestHumanAgentReturnsParsedPlay(t *testing.T) {
	prompter := &scriptedPrompter{lines: []string{"q"}}
	agent := NewHumanAgent(prompter, testLogger())

	d := agent.DecidePlay(TableView{})
	assert.False(t, d.Pass)
	assert.Equal(t, deck.Queen, d.Value)
	assert.Equal(t, []string{""}, prompter.problems)
}

func TestHumanAgentRepromptsOnMalformedInput(t *testing.T) {
	prompter := &scriptedPrompter{lines: []string{"banana", "8"}}
	agent := NewHumanAgent(prompter, testLogger())

	d := agent.DecidePlay(TableView{})
	assert.Equal(t, deck.Eight, d.Value)
	require.Len(t, prompter.problems, 2)
	assert.Empty(t, prompter.problems[0])
	assert.NotEmpty(t, prompter.problems[1])
}

func TestHumanAgentPassesAfterTooManyAttempts(t *testing.T) {
	prompter := &scriptedPrompter{lines: []string{"x", "y", "z", "5"}}
	agent := NewHumanAgent(prompter, testLogger()).WithMaxAttempts(2)

	d := agent.DecidePlay(TableView{})
	assert.True(t, d.Pass)
	assert.Len(t, prompter.problems, 2)
}

func TestHumanAgentPassesOnPromptError(t *testing.T) {
	prompter := &scriptedPrompter{err: errors.New("stdin closed")}
	agent := NewHumanAgent(prompter, testLogger())

	d := agent.DecidePlay(TableView{})
	assert.True(t, d.Pass)
	assert.Equal(t, "no input", d.Reasoning)
}

func TestHumanAgentUnheldCardIsRejectedByTable(t *testing.T) {
	prompter := &scriptedPrompter{lines: []string{"A", "A"}}
	human := NewHumanAgent(prompter, testLogger())
	table := newTestTable(t, []deck.Rank{deck.Two, deck.Three}, human, lowestLegal)

	require.True(t, table.RunHand())
	assert.Equal(t, "A", table.History()[0].Winner)

	// B opens with a Two; the Ace is gone so the human's answer is rejected
	table.RunHand()
	record := table.History()[1]
	assert.Equal(t, "B", record.Winner)
	require.Len(t, record.Actions, 2)
	assert.True(t, record.Actions[1].Invalid)
}
