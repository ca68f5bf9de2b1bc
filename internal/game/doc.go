// Package game implements the auction war engine.
//
// Each game auctions point-valued hole cards drawn from a shared pool.
// Players commit cards from a private hand of Two..Ace; a commitment must
// push the player's running total for the hand strictly above every other
// player still in the hand. The last player who has not passed takes the
// hole card and everything committed is discarded. A game ends when the
// pool is exhausted or every player has spent their hand.
//
// # Basic Usage
//
//	players := []*game.Player{
//	    game.NewPlayer("Adam", adamAgent),
//	    game.NewPlayer("Bob", bobAgent),
//	}
//	t := game.NewTable(randutil.New(42), players)
//	winners := t.RunGame()
//	t.Reset() // ready for the next game
//
// # Deterministic Testing
//
// The pool is the only source of randomness in the engine. Pass a seeded
// generator, or fix the cards outright:
//
//	t := game.NewTable(nil, players, game.WithPoolFactory(game.FixedPool(deck.Ten)))
//
// # Architecture
//
// Table owns turn order and hand resolution; Player owns the cards and the
// legality check; Agent is the only thing that differs between a bot and a
// human. Invalid plays never abort a game: the offending player is forced
// to pass for the rest of the hand.
package game
