package deck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRank is returned when text cannot be parsed as a card rank
var ErrInvalidRank = errors.New("invalid rank")

// Rank represents a card rank. Suits play no part in the auction, so a
// card is fully described by its rank, which is also its point value.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two, Three, Four, Five, Six, Seven, Eight, Nine:
		return strconv.Itoa(int(r))
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Value returns the point value of the rank (2 through 14, Ace high)
func (r Rank) Value() int {
	return int(r)
}

// Valid reports whether r lies within Two..Ace
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// AllRanks returns every rank from Two to Ace in ascending order
func AllRanks() []Rank {
	ranks := make([]Rank, 0, Ace-Two+1)
	for r := Two; r <= Ace; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// ParseRank parses a rank from either its numeric value ("2".."14") or
// its face letter (T, J, Q, K, A), case-insensitively.
func ParseRank(s string) (Rank, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRank, s)
	}
	r := Rank(n)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %d out of range 2-14", ErrInvalidRank, n)
	}
	return r, nil
}

// Sum returns the total point value of the given ranks
func Sum(ranks []Rank) int {
	total := 0
	for _, r := range ranks {
		total += int(r)
	}
	return total
}

// FormatRanks renders ranks as a bracketed, space separated list
func FormatRanks(ranks []Rank) string {
	parts := make([]string, len(ranks))
	for i, r := range ranks {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
