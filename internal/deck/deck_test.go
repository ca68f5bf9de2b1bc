package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/auctionwar/internal/randutil"
)

func TestNewPool(t *testing.T) {
	p := NewPool(randutil.New(1))
	require.Equal(t, 28, p.Remaining())

	counts := make(map[Rank]int)
	for _, c := range p.Cards() {
		counts[c]++
	}
	for _, r := range AllRanks() {
		assert.Equal(t, CopiesPerRank, counts[r], "rank %s", r)
	}
	assert.InDelta(t, 8.0, p.ExpectedValue(), 1e-9)
}

func TestPoolDrawShrinksUntilEmpty(t *testing.T) {
	p := NewPool(randutil.New(42))
	seen := make(map[Rank]int)

	for want := 27; want >= 0; want-- {
		card, ok := p.Draw()
		require.True(t, ok)
		require.True(t, card.Valid())
		seen[card]++
		require.Equal(t, want, p.Remaining())
	}

	for _, r := range AllRanks() {
		assert.Equal(t, 2, seen[r], "rank %s drawn wrong number of times", r)
	}

	_, ok := p.Draw()
	assert.False(t, ok)
	assert.True(t, p.IsEmpty())
	assert.Zero(t, p.ExpectedValue())
}

func TestPoolDeterministicWithoutRNG(t *testing.T) {
	p := NewPoolFromCards([]Rank{Three, Ten}, nil)

	card, ok := p.Draw()
	require.True(t, ok)
	assert.Equal(t, Ten, card)

	card, ok = p.Draw()
	require.True(t, ok)
	assert.Equal(t, Three, card)
}

func TestPoolSameSeedSameOrder(t *testing.T) {
	a := NewPool(randutil.New(7))
	b := NewPool(randutil.New(7))
	for range 28 {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		require.Equal(t, ca, cb)
	}
}

func TestPoolFromCardsCopiesInput(t *testing.T) {
	cards := []Rank{Two, Four}
	p := NewPoolFromCards(cards, nil)
	p.Draw()
	assert.Equal(t, []Rank{Two, Four}, cards)
	assert.InDelta(t, 2.0, p.ExpectedValue(), 1e-9)
}
