package blackjack

import (
	"casinotable/pkg/deck"
)

const blackjackTotal = 21

// CardValue returns the fixed value of a card with aces counted as one
func CardValue(card *deck.Card) int {
	if card.Rank >= 10 {
		return 10
	}

	return card.Rank
}

// BestScore returns the highest total not over 21
// Every ace may count as 1 or 11. If every possible total is over 21 the hand is
// busted and ok is false.
func BestScore(cards []*deck.Card) (score int, ok bool) {
	low, aces := lowTotal(cards)
	if low > blackjackTotal {
		return 0, false
	}

	// counting a second ace high is always a bust, so at most one ace is promoted
	if aces > 0 && low+10 <= blackjackTotal {
		return low + 10, true
	}

	return low, true
}

// IsSoft returns true if the best score counts an ace as 11
func IsSoft(cards []*deck.Card) bool {
	low, aces := lowTotal(cards)
	return aces > 0 && low+10 <= blackjackTotal
}

// IsBlackjack returns true for a two card 21
func IsBlackjack(cards []*deck.Card) bool {
	if len(cards) != 2 {
		return false
	}

	score, ok := BestScore(cards)
	return ok && score == blackjackTotal
}

// IsPair returns true if the hand is two cards of the same rank
// A king and a queen are both worth ten but are not a pair.
func IsPair(cards []*deck.Card) bool {
	return len(cards) == 2 && cards[0].Rank == cards[1].Rank
}

// VisibleScore is the best score of the face-up cards only
func VisibleScore(cards []*deck.Card) (int, bool) {
	visible := make([]*deck.Card, 0, len(cards))
	for _, card := range cards {
		if card.FaceUp {
			visible = append(visible, card)
		}
	}

	return BestScore(visible)
}

func lowTotal(cards []*deck.Card) (total int, aces int) {
	for _, card := range cards {
		if card.Rank == deck.Ace {
			aces++
		}

		total += CardValue(card)
	}

	return total, aces
}
