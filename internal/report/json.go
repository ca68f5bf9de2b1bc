package report

import (
	"encoding/json"
	"io"

	"github.com/lox/auctionwar/internal/fileutil"
	"github.com/lox/auctionwar/internal/session"
)

// Document is the JSON form of a session's results
type Document struct {
	Games     int                `json:"games"`
	Requested int                `json:"requested"`
	Seed      int64              `json:"seed"`
	Workers   int                `json:"workers"`
	ElapsedMS int64              `json:"elapsed_ms"`
	Hands     int                `json:"hands"`
	Endings   map[string]int     `json:"endings"`
	Standings []StandingDocument `json:"standings"`
	Scores    map[string]float64 `json:"scoreboard"`
}

// StandingDocument is one leaderboard row
type StandingDocument struct {
	Rank         int     `json:"rank"`
	Name         string  `json:"name"`
	Strategy     string  `json:"strategy"`
	Points       float64 `json:"points"`
	WinRate      float64 `json:"win_rate"`
	OutrightWins int     `json:"outright_wins"`
	SharedWins   int     `json:"shared_wins"`
	MeanScore    float64 `json:"mean_score"`
	StdDev       float64 `json:"std_dev"`
	MedianScore  float64 `json:"median_score"`
	MaxScore     int     `json:"max_score"`
	CardsWon     int     `json:"cards_won"`
	Spent        int     `json:"spent"`
}

// NewDocument converts results into their JSON form
func NewDocument(results *session.Results) Document {
	doc := Document{
		Games:     results.Games,
		Requested: results.Requested,
		Seed:      results.Seed,
		Workers:   results.Workers,
		ElapsedMS: results.Elapsed.Milliseconds(),
		Hands:     results.Hands,
		Endings:   make(map[string]int, len(results.Endings)),
		Scores:    results.Scoreboard,
	}
	for reason, n := range results.Endings {
		doc.Endings[string(reason)] = n
	}
	for _, s := range results.Leaderboard() {
		row := StandingDocument{
			Rank:     s.Rank,
			Name:     s.Name,
			Strategy: s.Strategy,
			Points:   s.Points,
		}
		if st := s.Stats; st != nil {
			row.WinRate = st.WinRate()
			row.OutrightWins = st.OutrightWins
			row.SharedWins = st.SharedWins
			row.MeanScore = st.Mean()
			row.StdDev = st.StdDev()
			row.MedianScore = st.Median()
			row.MaxScore = st.MaxScore
			row.CardsWon = st.CardsWon
			row.Spent = st.Spent
		}
		doc.Standings = append(doc.Standings, row)
	}
	return doc
}

// WriteJSON writes results as indented JSON
func WriteJSON(w io.Writer, results *session.Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(results))
}

// SaveJSON writes results to path atomically
func SaveJSON(path string, results *session.Results) error {
	return fileutil.WriteJSONAtomic(path, NewDocument(results))
}
