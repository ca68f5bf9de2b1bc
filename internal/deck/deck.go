package deck

import (
	"slices"
)

// Shuffler is the source of randomness used when drawing from a pool.
// *rand.Rand from math/rand/v2 satisfies it; tests can substitute a
// scripted source.
type Shuffler interface {
	IntN(n int) int
}

// CopiesPerRank is how many cards of each rank a fresh pool holds
const CopiesPerRank = 2

// Pool holds the point-valued cards that are still to be auctioned
type Pool struct {
	cards []Rank
	rng   Shuffler
}

// NewPool creates a full pool with two copies of every rank (28 cards).
// A nil rng makes draws deterministic: the last remaining card is taken.
func NewPool(rng Shuffler) *Pool {
	cards := make([]Rank, 0, CopiesPerRank*(Ace-Two+1))
	for range CopiesPerRank {
		cards = append(cards, AllRanks()...)
	}
	return &Pool{cards: cards, rng: rng}
}

// NewPoolFromCards creates a pool holding exactly the given cards
func NewPoolFromCards(cards []Rank, rng Shuffler) *Pool {
	return &Pool{cards: slices.Clone(cards), rng: rng}
}

// Draw removes one uniformly selected card from the pool and returns it.
// The boolean is false when the pool is empty.
func (p *Pool) Draw() (Rank, bool) {
	n := len(p.cards)
	if n == 0 {
		return 0, false
	}

	i := n - 1
	if p.rng != nil {
		i = p.rng.IntN(n)
	}

	card := p.cards[i]
	p.cards[i] = p.cards[n-1]
	p.cards = p.cards[:n-1]
	return card, true
}

// ExpectedValue returns the mean value of the remaining cards, or 0 when
// the pool is empty
func (p *Pool) ExpectedValue() float64 {
	if len(p.cards) == 0 {
		return 0
	}
	return float64(Sum(p.cards)) / float64(len(p.cards))
}

// Remaining returns the number of cards left in the pool
func (p *Pool) Remaining() int {
	return len(p.cards)
}

// IsEmpty returns true if the pool has no cards left
func (p *Pool) IsEmpty() bool {
	return len(p.cards) == 0
}

// Cards returns the remaining cards in ascending order
func (p *Pool) Cards() []Rank {
	cards := slices.Clone(p.cards)
	slices.Sort(cards)
	return cards
}
