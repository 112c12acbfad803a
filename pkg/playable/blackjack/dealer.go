package blackjack

import (
	"casinotable/pkg/deck"
)

// DealerDecision is what the dealer does with its hand
type DealerDecision int

// DealerDecision constants
const (
	DealerHit DealerDecision = iota
	DealerStand
	DealerBust
	DealerBlackjack
)

func (d DealerDecision) String() string {
	switch d {
	case DealerHit:
		return "hit"
	case DealerStand:
		return "stand"
	case DealerBust:
		return "bust"
	case DealerBlackjack:
		return "blackjack"
	}

	return "unknown"
}

// DealerPolicy decides the dealer's play
// The dealer hits while the best total is below StandsOn. Soft totals are not special-cased,
// so with the default of 17 the dealer stands on a soft 17.
type DealerPolicy struct {
	StandsOn int
}

// Decide returns the dealer's next move for the given cards
func (d DealerPolicy) Decide(cards []*deck.Card) DealerDecision {
	score, ok := BestScore(cards)
	if !ok {
		return DealerBust
	}

	if IsBlackjack(cards) {
		return DealerBlackjack
	}

	if score < d.StandsOn {
		return DealerHit
	}

	return DealerStand
}

// apply marks the dealer's hand for a terminal decision
func (d DealerPolicy) apply(h *Hand) DealerDecision {
	decision := d.Decide(h.Cards)
	switch decision {
	case DealerBust:
		h.Busted = true
		h.Final = true
	case DealerBlackjack:
		h.Blackjack = true
		h.Final = true
	case DealerStand:
		h.Final = true
	}

	return decision
}
