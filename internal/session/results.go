package session

import (
	"cmp"
	"slices"
	"time"

	"github.com/lox/auctionwar/internal/game"
	"github.com/lox/auctionwar/internal/statistics"
)

// Results aggregates a session. Scoreboard credits every winner of a game
// with 1/len(winners), so the points across all players sum to Games.
type Results struct {
	Games      int
	Requested  int
	Seed       int64
	Workers    int
	Elapsed    time.Duration
	Players    []PlayerSpec
	Scoreboard map[string]float64
	Stats      map[string]*statistics.Statistics
	Endings    map[game.GameOverReason]int
	Hands      int
}

// Standing is one row of the leaderboard
type Standing struct {
	Rank     int
	Name     string
	Strategy string
	Points   float64
	Stats    *statistics.Statistics
}

func newResults(cfg Config) *Results {
	r := &Results{
		Requested:  cfg.Games,
		Seed:       cfg.Seed,
		Workers:    cfg.Workers,
		Players:    cfg.Players,
		Scoreboard: make(map[string]float64, len(cfg.Players)),
		Stats:      make(map[string]*statistics.Statistics, len(cfg.Players)),
		Endings:    make(map[game.GameOverReason]int),
	}
	for _, p := range cfg.Players {
		r.Scoreboard[p.Name] = 0
		r.Stats[p.Name] = &statistics.Statistics{}
	}
	return r
}

// record adds a finished game
func (r *Results) record(table *game.Table, winners []*game.Player) {
	r.Games++
	r.Hands += table.HandNumber()
	r.Endings[table.OverReason()]++

	share := 1.0 / float64(len(winners))
	for seat, p := range table.Players() {
		won := slices.Contains(winners, p)
		points := 0.0
		if won {
			points = share
			r.Scoreboard[p.Name] += share
		}
		r.Stats[p.Name].Add(statistics.GameResult{
			Player:   p.Name,
			Seat:     seat,
			Score:    p.Score(),
			Points:   points,
			Won:      won,
			Shared:   won && len(winners) > 1,
			CardsWon: len(p.Wins()),
			Spent:    spent(p),
		})
	}
}

// merge folds a worker's partial results into r
func (r *Results) merge(other *Results) {
	r.Games += other.Games
	r.Hands += other.Hands
	for name, points := range other.Scoreboard {
		r.Scoreboard[name] += points
	}
	for name, stats := range other.Stats {
		if mine, ok := r.Stats[name]; ok {
			mine.Merge(stats)
		} else {
			r.Stats[name] = stats
		}
	}
	for reason, n := range other.Endings {
		r.Endings[reason] += n
	}
}

// Leaderboard returns players ordered by points, highest first, ties by
// name. Players level on points share a rank.
func (r *Results) Leaderboard() []Standing {
	standings := make([]Standing, 0, len(r.Players))
	for _, p := range r.Players {
		standings = append(standings, Standing{
			Name:     p.Name,
			Strategy: p.Strategy,
			Points:   r.Scoreboard[p.Name],
			Stats:    r.Stats[p.Name],
		})
	}

	slices.SortFunc(standings, func(a, b Standing) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	for i := range standings {
		if i > 0 && nearlyEqual(standings[i].Points, standings[i-1].Points) {
			standings[i].Rank = standings[i-1].Rank
		} else {
			standings[i].Rank = i + 1
		}
	}
	return standings
}

// TotalPoints sums the scoreboard
func (r *Results) TotalPoints() float64 {
	total := 0.0
	for _, points := range r.Scoreboard {
		total += points
	}
	return total
}

func nearlyEqual(a, b float64) bool {
	const epsilon = 1e-9
	d := a - b
	return d < epsilon && d > -epsilon
}
