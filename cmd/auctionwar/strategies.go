package main

import (
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/lox/auctionwar/internal/bot"
)

// StrategiesCmd lists the strategies a player can be seated with
type StrategiesCmd struct{}

func (s *StrategiesCmd) Run() error {
	return writeStrategies(os.Stdout)
}

func writeStrategies(w io.Writer) error {
	data := pterm.TableData{{"Strategy", "Description"}}
	for _, name := range bot.Names() {
		desc, _ := bot.Describe(name)
		data = append(data, []string{name, desc})
	}
	data = append(data, []string{bot.StrategyHuman, "You choose every card at the prompt"})

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}
