package tui

import (
	"fmt"
	"strings"

	"github.com/lox/auctionwar/internal/deck"
	"github.com/lox/auctionwar/internal/game"
)

// RenderView draws the table as seen by the acting player
func RenderView(view game.TableView) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Hand #%d", view.HandNumber)))
	b.WriteString("  hole card ")
	b.WriteString(HoleCardStyle.Render(view.Hole.String()))
	b.WriteString(InfoStyle.Render(fmt.Sprintf("  pool: %d left, average %.1f", view.PoolRemaining, view.PoolExpectedValue)))
	b.WriteString("\n\n")

	for i, p := range view.Players {
		marker := "  "
		if i == view.ActingPlayerIdx {
			marker = "> "
		}
		line := fmt.Sprintf("%s%-10s score %3d  cards %2d  committed %s = %d",
			marker, p.Name, p.Score, p.BiddableCount, deck.FormatRanks(p.Commitments), p.Total)
		switch {
		case p.Out:
			line += " (out)"
			b.WriteString(PassedStyle.Render(line))
		case p.Passed:
			line += " (passed)"
			b.WriteString(PassedStyle.Render(line))
		default:
			b.WriteString(PlayerInfoStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nYour cards: ")
	b.WriteString(CardStyle.Render(deck.FormatRanks(view.Biddable)))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("To stay in you must reach more than %d. ", view.LeadingTotal)))
	if legal := view.LegalValues(); len(legal) > 0 {
		b.WriteString(InfoStyle.Render("Legal: " + deck.FormatRanks(legal)))
	} else {
		b.WriteString(InfoStyle.Render("No legal card, you can only pass."))
	}
	b.WriteString("\n")
	return b.String()
}
