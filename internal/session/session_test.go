package session

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/auctionwar/internal/bot"
	"github.com/lox/auctionwar/internal/deck"
	"github.com/lox/auctionwar/internal/game"
	"github.com/lox/auctionwar/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func classicPlayers() []PlayerSpec {
	return []PlayerSpec{
		{Name: "Adam", Strategy: bot.StrategyHigh},
		{Name: "Bob", Strategy: bot.StrategyPass},
	}
}

type answerPrompter struct {
	answers []string
	calls   int
}

func (p *answerPrompter) Prompt(game.TableView, string) (string, error) {
	p.calls++
	if len(p.answers) == 0 {
		return "pass", nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func TestHighBeatsPassEveryGame(t *testing.T) {
	runner, err := New(Config{
		Games:   200,
		Seed:    42,
		Workers: 3,
		Players: classicPlayers(),
		Logger:  testLogger(),
	})
	require.NoError(t, err)

	results, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 200, results.Games)
	assert.InDelta(t, 200.0, results.Scoreboard["Adam"], 1e-9)
	assert.Zero(t, results.Scoreboard["Bob"])

	board := results.Leaderboard()
	require.Len(t, board, 2)
	assert.Equal(t, "Adam", board[0].Name)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 2, board[1].Rank)

	// Adam takes 25 hands, then Bob picks up the last three cards by default
	assert.Equal(t, 200*28, results.Hands)
	assert.Equal(t, 200, results.Endings[game.ReasonPoolExhausted])
	assert.Equal(t, 200*25, results.Stats["Adam"].CardsWon)
	assert.Equal(t, 200*3, results.Stats["Bob"].CardsWon)
	require.NoError(t, results.Stats["Adam"].Validate())
}

func TestTiesShareThePoint(t *testing.T) {
	runner, err := New(Config{
		Games: 10,
		Players: []PlayerSpec{
			{Name: "Adam", Strategy: bot.StrategyPass},
			{Name: "Bob", Strategy: bot.StrategyPass},
		},
		Logger:       testLogger(),
		TableOptions: []game.TableOption{game.WithPoolFactory(game.FixedPool(deck.Five, deck.Five))},
	})
	require.NoError(t, err)

	results, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 5.0, results.Scoreboard["Adam"], 1e-9)
	assert.InDelta(t, 5.0, results.Scoreboard["Bob"], 1e-9)
	assert.Equal(t, 10, results.Stats["Adam"].SharedWins)

	board := results.Leaderboard()
	assert.Equal(t, "Adam", board[0].Name, "ties ordered by name")
	assert.Equal(t, 1, board[1].Rank, "level players share a rank")
}

func TestPointsSumToGamesPlayed(t *testing.T) {
	var players []PlayerSpec
	for _, name := range bot.Names() {
		players = append(players, PlayerSpec{Name: name, Strategy: name})
	}

	runner, err := New(Config{Games: 150, Seed: 9, Workers: 4, Players: players, Logger: testLogger()})
	require.NoError(t, err)

	results, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 150.0, results.TotalPoints(), 1e-6)

	for name, stats := range results.Stats {
		assert.Equal(t, 150, stats.Games, name)
		assert.NoError(t, stats.Validate(), name)
	}
}

func TestRunIsReproducibleForSeed(t *testing.T) {
	players := []PlayerSpec{
		{Name: "R1", Strategy: bot.StrategyRandom},
		{Name: "R2", Strategy: bot.StrategyRandom},
		{Name: "V", Strategy: bot.StrategyValue},
	}
	run := func() *Results {
		runner, err := New(Config{Games: 60, Seed: 1234, Workers: 4, Players: players, Logger: testLogger()})
		require.NoError(t, err)
		results, err := runner.Run(context.Background())
		require.NoError(t, err)
		return results
	}

	first, second := run(), run()
	assert.Equal(t, first.Scoreboard, second.Scoreboard)
	assert.Equal(t, first.Hands, second.Hands)
	for name := range first.Stats {
		assert.Equal(t, first.Stats[name].SumScore, second.Stats[name].SumScore, name)
	}
}

func TestRunCancelled(t *testing.T) {
	runner, err := New(Config{Games: 1000, Seed: 1, Players: classicPlayers(), Logger: testLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := runner.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, results)
	assert.Zero(t, results.Games)
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{Games: 0, Players: classicPlayers()})
	assert.Error(t, err)

	_, err = New(Config{Games: 1, Players: classicPlayers()[:1]})
	assert.Error(t, err)

	_, err = New(Config{Games: 1, Players: []PlayerSpec{{"A", "pass"}, {"A", "high"}}})
	assert.ErrorContains(t, err, "duplicate")

	_, err = New(Config{Games: 1, Players: []PlayerSpec{{"A", "pass"}, {"B", "shark"}}})
	assert.ErrorIs(t, err, bot.ErrUnknownStrategy)

	_, err = New(Config{Games: 1, Players: []PlayerSpec{{"A", "pass"}, {"B", "human"}}})
	assert.ErrorIs(t, err, ErrNoPrompter)
}

func TestNewDefaults(t *testing.T) {
	runner, err := New(Config{Games: 2, Workers: 8, Players: classicPlayers()})
	require.NoError(t, err)
	assert.Equal(t, 2, runner.Workers(), "never more workers than games")
	assert.NotZero(t, runner.Seed(), "zero seed is resolved")

	runner, err = New(Config{
		Games:    10,
		Workers:  4,
		Players:  []PlayerSpec{{"Me", "human"}, {"Bot", "pass"}},
		Prompter: &answerPrompter{},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, runner.Workers(), "humans play on one worker")
}

func TestHumanSeat(t *testing.T) {
	prompter := &answerPrompter{answers: []string{"A"}}
	runner, err := New(Config{
		Games:        1,
		Players:      []PlayerSpec{{"Me", "human"}, {"Bot", "pass"}},
		Prompter:     prompter,
		Logger:       testLogger(),
		TableOptions: []game.TableOption{game.WithPoolFactory(game.FixedPool(deck.Three, deck.Queen))},
	})
	require.NoError(t, err)

	var seen []game.EventType
	runner.config.Subscribers = []game.EventSubscriber{game.EventSubscriberFunc(func(e game.GameEvent) {
		seen = append(seen, e.EventType())
	})}

	results, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, results.Scoreboard["Me"], 1e-9)
	assert.Equal(t, 15, results.Stats["Me"].MaxScore)
	assert.Equal(t, 1, prompter.calls, "second hand is won without being asked")
	assert.Contains(t, seen, game.EventTypeGameOver)
}

func TestNewGameBuildsFreshAgents(t *testing.T) {
	runner, err := New(Config{Games: 1, Players: classicPlayers(), Logger: testLogger()})
	require.NoError(t, err)

	table, err := runner.NewGame(randutil.New(5))
	require.NoError(t, err)
	require.Len(t, table.Players(), 2)
	assert.Equal(t, "Adam", table.Players()[0].Name)
	assert.IsType(t, &bot.HighBot{}, table.Players()[0].Agent)
	assert.IsType(t, &bot.PassBot{}, table.Players()[1].Agent)
	assert.Equal(t, 28, table.Pool().Remaining())
}

func TestProgressReporting(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	var got []Progress
	runner, err := New(Config{
		Games:            40,
		Players:          classicPlayers(),
		Logger:           testLogger(),
		Clock:            mockClock,
		ProgressInterval: time.Second,
		OnProgress:       func(p Progress) { got = append(got, p) },
	})
	require.NoError(t, err)

	var completed atomic.Int64
	tickCtx, stop := context.WithCancel(ctx)
	defer stop()
	runner.startProgress(tickCtx, mockClock.Now(), &completed)

	completed.Store(7)
	mockClock.Advance(time.Second).MustWait(ctx)
	completed.Store(19)
	mockClock.Advance(time.Second).MustWait(ctx)

	require.Len(t, got, 2)
	assert.Equal(t, Progress{Completed: 7, Total: 40, Elapsed: time.Second}, got[0])
	assert.Equal(t, Progress{Completed: 19, Total: 40, Elapsed: 2 * time.Second}, got[1])
}

func TestElapsedUsesInjectedClock(t *testing.T) {
	mockClock := quartz.NewMock(t)
	runner, err := New(Config{Games: 5, Players: classicPlayers(), Logger: testLogger(), Clock: mockClock})
	require.NoError(t, err)

	results, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, results.Elapsed, "mock clock never advanced")
}

func TestPlayConvenience(t *testing.T) {
	results, err := Play(context.Background(), 20, 3, classicPlayers(), testLogger())
	require.NoError(t, err)
	assert.Equal(t, 20, results.Games)
	assert.Equal(t, int64(3), results.Seed)
}
