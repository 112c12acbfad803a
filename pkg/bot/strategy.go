package bot

import (
	"fmt"

	"casinotable/pkg/deck"
	"casinotable/pkg/playable/blackjack"
)

// Strategy picks the next action for a hand
// allowed is the set of player-turn actions the table offers right now.
type Strategy interface {
	Name() string
	Decide(cards []*deck.Card, dealerUp *deck.Card, allowed []blackjack.Action) blackjack.Action
}

var strategies = map[string]Strategy{
	"basic":      Basic{},
	"dealer":     MimicDealer{StandsOn: 17},
	"never-bust": MimicDealer{StandsOn: 12},
}

// Get returns a strategy by name
func Get(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}

	return s, nil
}

// MimicDealer hits like the house does and never doubles or splits
type MimicDealer struct {
	StandsOn int
}

// Name returns the name of the strategy
func (m MimicDealer) Name() string {
	return fmt.Sprintf("hit below %d", m.StandsOn)
}

// Decide hits below StandsOn
func (m MimicDealer) Decide(cards []*deck.Card, _ *deck.Card, _ []blackjack.Action) blackjack.Action {
	score, ok := blackjack.BestScore(cards)
	if ok && score < m.StandsOn {
		return blackjack.ActionHit
	}

	return blackjack.ActionStand
}

// Basic is the standard multi-deck basic strategy for a dealer who stands on soft 17
type Basic struct{}

// Name returns the name of the strategy
func (Basic) Name() string {
	return "basic"
}

// Decide looks the hand up in the split, soft and hard tables in that order
func (b Basic) Decide(cards []*deck.Card, dealerUp *deck.Card, allowed []blackjack.Action) blackjack.Action {
	if dealerUp == nil {
		return blackjack.ActionStand
	}

	up := upValue(dealerUp)
	canDouble := contains(allowed, blackjack.ActionDouble)

	if contains(allowed, blackjack.ActionSplit) && blackjack.IsPair(cards) && splitPair(cards[0].Rank, up) {
		return blackjack.ActionSplit
	}

	score, ok := blackjack.BestScore(cards)
	if !ok {
		return blackjack.ActionStand
	}

	if blackjack.IsSoft(cards) {
		return soft(score, up, canDouble)
	}

	return hard(score, up, canDouble)
}

// upValue counts an ace as 11
func upValue(card *deck.Card) int {
	if card.Rank == deck.Ace {
		return 11
	}

	return blackjack.CardValue(card)
}

func splitPair(rank, up int) bool {
	switch blackjack.CardValue(&deck.Card{Rank: rank}) {
	case deck.Ace, 8:
		return true
	case 9:
		return up <= 9 && up != 7
	case 7, 3, 2:
		return up <= 7
	case 6:
		return up <= 6
	case 4:
		return up == 5 || up == 6
	}

	// fives play as a hard ten and tens are never split
	return false
}

func soft(score, up int, canDouble bool) blackjack.Action {
	double := func(ok bool, otherwise blackjack.Action) blackjack.Action {
		if ok && canDouble {
			return blackjack.ActionDouble
		}

		return otherwise
	}

	switch {
	case score >= 20:
		return blackjack.ActionStand
	case score == 19:
		return double(up == 6, blackjack.ActionStand)
	case score == 18:
		if up >= 9 {
			return blackjack.ActionHit
		}

		return double(up <= 6, blackjack.ActionStand)
	case score == 17:
		return double(up >= 3 && up <= 6, blackjack.ActionHit)
	case score >= 15:
		return double(up >= 4 && up <= 6, blackjack.ActionHit)
	default:
		return double(up == 5 || up == 6, blackjack.ActionHit)
	}
}

func hard(score, up int, canDouble bool) blackjack.Action {
	double := func(ok bool) blackjack.Action {
		if ok && canDouble {
			return blackjack.ActionDouble
		}

		return blackjack.ActionHit
	}

	switch {
	case score >= 17:
		return blackjack.ActionStand
	case score >= 13:
		if up <= 6 {
			return blackjack.ActionStand
		}

		return blackjack.ActionHit
	case score == 12:
		if up >= 4 && up <= 6 {
			return blackjack.ActionStand
		}

		return blackjack.ActionHit
	case score == 11:
		return double(up <= 10)
	case score == 10:
		return double(up <= 9)
	case score == 9:
		return double(up >= 3 && up <= 6)
	default:
		return blackjack.ActionHit
	}
}

func contains(actions []blackjack.Action, action blackjack.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}

	return false
}
