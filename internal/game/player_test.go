package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/auctionwar/internal/deck"
)

func viewWithLeading(p *Player, leading int) TableView {
	return TableView{
		Hole:            deck.Ten,
		Players:         []PlayerView{p.View()},
		ActingPlayerIdx: 0,
		Biddable:        p.Biddable(),
		LeadingTotal:    leading,
	}
}

func TestNewPlayer(t *testing.T) {
	p := NewPlayer("Adam", &passAgent{})

	assert.Equal(t, deck.AllRanks(), p.Biddable())
	assert.Empty(t, p.Commitments())
	assert.Empty(t, p.Wins())
	assert.Empty(t, p.Discards())
	assert.False(t, p.Passed())
	assert.False(t, p.IsOut())
	assert.Zero(t, p.Score())
}

func TestCommitLegalityRequiresStrictlyHigherTotal(t *testing.T) {
	t.Run("equal total is rejected", func(t *testing.T) {
		p := NewPlayer("B", script(play(deck.Five)))
		result := p.Commit(viewWithLeading(p, 5))

		assert.True(t, result.Passed)
		assert.True(t, result.Forced)
		require.ErrorIs(t, result.Err, ErrInvalidPlay)
		assert.True(t, p.Passed())
		assert.Contains(t, p.Biddable(), deck.Five, "rejected card stays in hand")
		assert.Empty(t, p.Commitments())
	})

	t.Run("higher total is accepted", func(t *testing.T) {
		p := NewPlayer("B", script(play(deck.Six)))
		result := p.Commit(viewWithLeading(p, 5))

		require.NoError(t, result.Err)
		assert.False(t, result.Passed)
		assert.Equal(t, 6, result.Total)
		assert.NotContains(t, p.Biddable(), deck.Six)
		assert.Equal(t, []deck.Rank{deck.Six}, p.Commitments())
	})

	t.Run("cumulative total counts earlier commitments", func(t *testing.T) {
		p := NewPlayer("B", script(play(deck.Four), play(deck.Three)))
		require.NoError(t, p.Commit(viewWithLeading(p, 0)).Err)

		// 4 + 3 = 7 beats 6
		result := p.Commit(viewWithLeading(p, 6))
		require.NoError(t, result.Err)
		assert.Equal(t, 7, result.Total)
	})
}

func TestCommitRejectsCardNotHeld(t *testing.T) {
	p := NewPlayer("B", script(play(deck.Ace), play(deck.Ace)))
	require.NoError(t, p.Commit(viewWithLeading(p, 0)).Err)
	p.SettleHand(deck.Two, false)

	result := p.Commit(viewWithLeading(p, 0))
	require.ErrorIs(t, result.Err, ErrInvalidPlay)
	assert.True(t, result.Passed)
	assert.Equal(t, deck.Ace, result.Value)
}

func TestCommitRejectsOutOfRangeCard(t *testing.T) {
	p := NewPlayer("B", script(PlayDecision(deck.Rank(20), "cheat")))
	result := p.Commit(viewWithLeading(p, 0))
	require.ErrorIs(t, result.Err, ErrInvalidPlay)
	assert.Len(t, p.Biddable(), 13)
}

func TestCommitAfterPassDoesNotConsultAgent(t *testing.T) {
	agent := &passAgent{}
	p := NewPlayer("B", agent)

	first := p.Commit(viewWithLeading(p, 0))
	assert.True(t, first.Passed)
	assert.False(t, first.Forced)

	second := p.Commit(viewWithLeading(p, 0))
	assert.True(t, second.Passed)
	assert.True(t, second.Forced)
	assert.Equal(t, 1, agent.calls)
}

func TestCommitWhenOutForcesPass(t *testing.T) {
	agent := &highAgent{}
	p := NewPlayer("B", agent)
	spendAll(t, p)
	require.True(t, p.IsOut())

	result := p.Commit(viewWithLeading(p, 0))
	assert.True(t, result.Passed)
	assert.True(t, result.Forced)
	assert.Zero(t, agent.calls)
}

func TestSettleHand(t *testing.T) {
	t.Run("winner keeps hole card", func(t *testing.T) {
		p := NewPlayer("A", script(play(deck.King)))
		p.Commit(viewWithLeading(p, 0))
		p.SettleHand(deck.Nine, true)

		assert.Equal(t, []deck.Rank{deck.Nine}, p.Wins())
		assert.Equal(t, []deck.Rank{deck.King}, p.Discards())
		assert.Empty(t, p.Commitments())
		assert.False(t, p.Passed())
		assert.Equal(t, 9, p.Score())
	})

	t.Run("loser only discards", func(t *testing.T) {
		p := NewPlayer("B", script(play(deck.Two)))
		p.Commit(viewWithLeading(p, 0))
		p.SettleHand(deck.Nine, false)

		assert.Empty(t, p.Wins())
		assert.Equal(t, []deck.Rank{deck.Two}, p.Discards())
		assert.Zero(t, p.Score())
	})
}

func TestBiddableAndCommitmentsStayDisjoint(t *testing.T) {
	p := NewPlayer("A", script(play(deck.Two), play(deck.Five), play(deck.Nine)))
	for leading := range 3 {
		p.Commit(viewWithLeading(p, leading*2))
		for _, c := range p.Commitments() {
			assert.NotContains(t, p.Biddable(), c)
		}
	}
	assert.Equal(t, 13, len(p.Biddable())+len(p.Commitments()))
}

func TestPlayerReset(t *testing.T) {
	p := NewPlayer("A", script(play(deck.Ace)))
	p.Commit(viewWithLeading(p, 0))
	p.SettleHand(deck.Queen, true)

	p.Reset()
	assert.Equal(t, deck.AllRanks(), p.Biddable())
	assert.Empty(t, p.Wins())
	assert.Empty(t, p.Discards())
	assert.Zero(t, p.Score())
}
