package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult is one player's outcome in a single game
type GameResult struct {
	Player   string
	Seat     int     // Seat index at the table, 0 starts the first hand
	Score    int     // Sum of hole cards won
	Points   float64 // Scoreboard credit: 1/len(winners) when among the winners
	Won      bool    // Among the players tied for the top score
	Shared   bool    // Won a tie rather than outright
	CardsWon int     // Number of hole cards taken
	Spent    int     // Sum of cards committed across the game
}

// SeatStats tracks results for one seat position
type SeatStats struct {
	Games     int
	SumScore  float64
	SumScore2 float64
	Points    float64
}

// Statistics aggregates a player's results across games
type Statistics struct {
	Games     int
	SumScore  float64
	SumScore2 float64   // Sum of squares for variance calculation
	Values    []float64 // Every score, for median/percentile calculation

	Points         float64 // Fractional wins credited to the scoreboard
	OutrightWins   int
	SharedWins     int
	OutrightPoints float64
	SharedPoints   float64

	CardsWon  int
	Spent     int
	MaxScore  int
	Shutouts  int // Games finished with a score of zero
	SeatStats []SeatStats
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	score := float64(result.Score)
	s.Games++
	s.SumScore += score
	s.SumScore2 += score * score
	s.Values = append(s.Values, score)

	s.Points += result.Points
	if result.Won {
		if result.Shared {
			s.SharedWins++
			s.SharedPoints += result.Points
		} else {
			s.OutrightWins++
			s.OutrightPoints += result.Points
		}
	}

	s.CardsWon += result.CardsWon
	s.Spent += result.Spent
	if result.Score > s.MaxScore {
		s.MaxScore = result.Score
	}
	if result.Score == 0 {
		s.Shutouts++
	}

	if result.Seat >= 0 {
		for len(s.SeatStats) <= result.Seat {
			s.SeatStats = append(s.SeatStats, SeatStats{})
		}
		seat := &s.SeatStats[result.Seat]
		seat.Games++
		seat.SumScore += score
		seat.SumScore2 += score * score
		seat.Points += result.Points
	}
}

// Merge folds other into s. Used to combine per-worker statistics.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Games += other.Games
	s.SumScore += other.SumScore
	s.SumScore2 += other.SumScore2
	s.Values = append(s.Values, other.Values...)
	s.Points += other.Points
	s.OutrightWins += other.OutrightWins
	s.SharedWins += other.SharedWins
	s.OutrightPoints += other.OutrightPoints
	s.SharedPoints += other.SharedPoints
	s.CardsWon += other.CardsWon
	s.Spent += other.Spent
	s.MaxScore = max(s.MaxScore, other.MaxScore)
	s.Shutouts += other.Shutouts
	for len(s.SeatStats) < len(other.SeatStats) {
		s.SeatStats = append(s.SeatStats, SeatStats{})
	}
	for i, seat := range other.SeatStats {
		s.SeatStats[i].Games += seat.Games
		s.SeatStats[i].SumScore += seat.SumScore
		s.SeatStats[i].SumScore2 += seat.SumScore2
		s.SeatStats[i].Points += seat.Points
	}
}

// Mean returns the average score per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumScore / float64(s.Games)
}

// Variance returns the sample variance of scores
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumScore2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
	if v < 0 {
		// Rounding can push a zero variance slightly negative
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation of scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean score
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median score
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the score at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// WinRate returns scoreboard points per game
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.Points / float64(s.Games)
}

// Efficiency returns points of hole card won per point of cards spent
func (s *Statistics) Efficiency() float64 {
	if s.Spent == 0 {
		return 0
	}
	return s.SumScore / float64(s.Spent)
}

// SeatMean returns the mean score from the given seat
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= len(s.SeatStats) || s.SeatStats[seat].Games == 0 {
		return 0
	}
	return s.SeatStats[seat].SumScore / float64(s.SeatStats[seat].Games)
}

// IsLedgerBalanced checks that every point is attributed to an outright
// or a shared win
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.Points-s.OutrightPoints-s.SharedPoints) <= 1e-6
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: Points=%.6f, OutrightPoints=%.6f, SharedPoints=%.6f",
			s.Points, s.OutrightPoints, s.SharedPoints)
	}

	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if wins := s.OutrightWins + s.SharedWins; wins > s.Games {
		return fmt.Errorf("total wins (%d) exceeds total games (%d)", wins, s.Games)
	}

	if s.Points > float64(s.Games)+1e-6 {
		return fmt.Errorf("points (%.3f) exceed games (%d)", s.Points, s.Games)
	}

	seatGames := 0
	for _, seat := range s.SeatStats {
		seatGames += seat.Games
	}
	if len(s.SeatStats) > 0 && seatGames != s.Games {
		return fmt.Errorf("seat games total (%d) does not match total games (%d)", seatGames, s.Games)
	}

	return nil
}
