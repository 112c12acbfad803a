package blackjack

import (
	"encoding/json"
	"fmt"

	"casinotable/pkg/deck"
)

// Outcome is how a hand fared against the dealer
type Outcome int

// Outcome constants
const (
	OutcomePending Outcome = iota
	OutcomeBlackjack
	OutcomeWin
	OutcomePush
	OutcomeLoss
	OutcomeBust
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeBlackjack:
		return "blackjack"
	case OutcomeWin:
		return "win"
	case OutcomePush:
		return "push"
	case OutcomeLoss:
		return "loss"
	case OutcomeBust:
		return "bust"
	}

	panic(fmt.Sprintf("unknown outcome: %d", o))
}

// MarshalJSON encodes the outcome as its name
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Payout returns the chips disbursed for a bet with the given outcome
// The disbursement includes the returned bet. Blackjack pays 3:2 rounded down.
func Payout(bet int, outcome Outcome) int {
	switch outcome {
	case OutcomeBlackjack:
		return bet + (3*bet)/2
	case OutcomeWin:
		return 2 * bet
	case OutcomePush:
		return bet
	}

	return 0
}

// Resolve compares a finished player hand with the dealer's hand
func Resolve(player, dealer []*deck.Card) Outcome {
	playerScore, ok := BestScore(player)
	if !ok {
		return OutcomeBust
	}

	playerBlackjack := IsBlackjack(player)
	if IsBlackjack(dealer) {
		if playerBlackjack {
			return OutcomePush
		}

		return OutcomeLoss
	}

	if playerBlackjack {
		return OutcomeBlackjack
	}

	dealerScore, ok := BestScore(dealer)
	if !ok {
		return OutcomeWin
	}

	switch {
	case playerScore > dealerScore:
		return OutcomeWin
	case playerScore == dealerScore:
		return OutcomePush
	}

	return OutcomeLoss
}
