package bot

import (
	"errors"
	"fmt"
	"time"

	"casinotable/pkg/playable/blackjack"
)

// ErrBroke is returned when the player cannot cover another bet
var ErrBroke = errors.New("not enough cash for another bet")

// maxTicksPerRound bounds a round so a stuck table is reported instead of spinning forever
const maxTicksPerRound = 10000

// Player plays whole rounds on a table
type Player struct {
	Strategy Strategy

	// Bet is placed on every seat at the start of a round
	Bet int

	// Step is the time fed to each tick, a large step skips animations
	Step time.Duration
}

// PlayRound bets, plays every hand with the strategy and waits for the round to end
// It returns nil if the round was voided without a settlement.
func (p *Player) PlayRound(game *blackjack.Game) (*blackjack.RoundResult, error) {
	if game.State() == blackjack.StateEndRound {
		if err := game.ChangeBet(); err != nil {
			return nil, err
		}
	}

	seats := len(game.Hands())
	if game.Cash() < p.Bet*seats {
		return nil, fmt.Errorf("$%d left for %d x $%d: %w", game.Cash(), seats, p.Bet, ErrBroke)
	}

	for seat := 0; seat < seats; seat++ {
		if err := game.Bet(seat, p.Bet); err != nil {
			return nil, err
		}
	}

	if err := game.Deal(); err != nil {
		return nil, err
	}

	settled := len(game.Results())
	for i := 0; i < maxTicksPerRound; i++ {
		if game.State() == blackjack.StateEndRound {
			if results := game.Results(); len(results) > settled {
				return results[len(results)-1], nil
			}

			return nil, nil
		}

		if err := p.act(game); err != nil {
			return nil, err
		}

		if _, err := game.Tick(p.Step); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("round %d did not finish after %d ticks", game.Round(), maxTicksPerRound)
}

// act plays the current hand once the table is ready for a decision
func (p *Player) act(game *blackjack.Game) error {
	hand := game.CurrentHand()
	if hand == nil || hand.Final {
		return nil
	}

	allowed := game.Actions()
	if !contains(allowed, blackjack.ActionHit) {
		return nil
	}

	action := p.Strategy.Decide(hand.Cards, game.DealerUpCard(), allowed)
	if !contains(allowed, action) {
		action = blackjack.ActionStand
	}

	return game.Do(action)
}
