// Package report renders session results and narrates games.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pterm/pterm"

	"github.com/lox/auctionwar/internal/game"
	"github.com/lox/auctionwar/internal/session"
)

// WriteLeaderboard prints the standings as a table
func WriteLeaderboard(w io.Writer, results *session.Results) error {
	data := pterm.TableData{
		{"#", "Player", "Strategy", "Points", "Win %", "Mean score", "95% CI", "Median", "Efficiency"},
	}
	for _, s := range results.Leaderboard() {
		winPct, mean, median, efficiency := 0.0, 0.0, 0.0, 0.0
		ci := "-"
		if s.Stats != nil && s.Stats.Games > 0 {
			winPct = s.Stats.WinRate() * 100
			mean = s.Stats.Mean()
			median = s.Stats.Median()
			efficiency = s.Stats.Efficiency()
			low, high := s.Stats.ConfidenceInterval95()
			ci = fmt.Sprintf("[%.1f, %.1f]", low, high)
		}
		data = append(data, []string{
			fmt.Sprintf("%d", s.Rank),
			s.Name,
			s.Strategy,
			formatPoints(s.Points),
			fmt.Sprintf("%.1f", winPct),
			fmt.Sprintf("%.2f", mean),
			ci,
			fmt.Sprintf("%.1f", median),
			fmt.Sprintf("%.3f", efficiency),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render leaderboard: %w", err)
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

// WriteSummary prints a short description of how the session ran
func WriteSummary(w io.Writer, results *session.Results) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Games:   %d", results.Games)
	if results.Games != results.Requested {
		fmt.Fprintf(&b, " of %d (interrupted)", results.Requested)
	}
	fmt.Fprintf(&b, "\nSeed:    %d\n", results.Seed)
	fmt.Fprintf(&b, "Workers: %d\n", results.Workers)
	fmt.Fprintf(&b, "Elapsed: %s\n", results.Elapsed.Round(1e6))
	if results.Games > 0 {
		fmt.Fprintf(&b, "Hands:   %.1f per game\n", float64(results.Hands)/float64(results.Games))
	}

	reasons := make([]string, 0, len(results.Endings))
	for reason := range results.Endings {
		reasons = append(reasons, string(reason))
	}
	slices.Sort(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(&b, "Ended by %s: %d\n", reason, results.Endings[game.GameOverReason(reason)])
	}

	box := pterm.DefaultBox.WithTitle("Session").WithTitleTopLeft().Sprint(strings.TrimRight(b.String(), "\n"))
	_, err := fmt.Fprintln(w, box)
	return err
}

// WriteScoreboard prints the raw final scoreboard on one line, in
// leaderboard order
func WriteScoreboard(w io.Writer, results *session.Results) error {
	parts := make([]string, 0, len(results.Scoreboard))
	for _, s := range results.Leaderboard() {
		parts = append(parts, fmt.Sprintf("%s: %s", s.Name, formatPoints(s.Points)))
	}
	_, err := fmt.Fprintf(w, "Final score: {%s}\n", strings.Join(parts, ", "))
	return err
}

// formatPoints drops the fraction when points are whole
func formatPoints(points float64) string {
	if points == float64(int64(points)) {
		return fmt.Sprintf("%d", int64(points))
	}
	return fmt.Sprintf("%.2f", points)
}
