package blackjack

import (
	"fmt"

	"casinotable/pkg/chips"
	"casinotable/pkg/deck"
	"github.com/google/uuid"
)

// Hand is a set of cards tied to a single wager
type Hand struct {
	ID    string
	Seat  int
	Cards deck.Hand
	Bet   *chips.Container

	Final     bool
	Busted    bool
	Blackjack bool
	Winner    bool
	Loser     bool
	Push      bool
	Doubled   bool

	// Splits is the number of times this hand's lineage has been split
	Splits int

	Outcome Outcome
	Payout  int
}

func newHand(seat int, bet *chips.Container) *Hand {
	return &Hand{
		ID:    uuid.New().String(),
		Seat:  seat,
		Cards: make(deck.Hand, 0, 4),
		Bet:   bet,
	}
}

// Score returns the best score of the hand
func (h *Hand) Score() (int, bool) {
	return BestScore(h.Cards)
}

// BetValue returns the value of the chips wagered on the hand
func (h *Hand) BetValue() int {
	if h.Bet == nil {
		return 0
	}

	return h.Bet.Total()
}

// evaluate marks the hand busted, blackjack or standing on 21
// Returns true if the hand just became final.
func (h *Hand) evaluate() bool {
	if h.Final {
		return false
	}

	score, ok := h.Score()
	switch {
	case !ok:
		h.Busted = true
		h.Final = true
	case IsBlackjack(h.Cards):
		h.Blackjack = true
		h.Final = true
	case score == blackjackTotal:
		h.Final = true
	}

	return h.Final
}

func (h *Hand) canDouble() bool {
	return !h.Final && len(h.Cards) == 2
}

func (h *Hand) canSplit(maxSplits int) bool {
	return !h.Final && IsPair(h.Cards) && h.Splits < maxSplits
}

// setOutcome records the outcome and the matching flags
func (h *Hand) setOutcome(outcome Outcome, payout int) {
	h.Outcome = outcome
	h.Payout = payout
	h.Winner = outcome == OutcomeWin || outcome == OutcomeBlackjack
	h.Loser = outcome == OutcomeLoss || outcome == OutcomeBust
	h.Push = outcome == OutcomePush
}

func (h *Hand) String() string {
	score, ok := h.Score()
	if !ok {
		return fmt.Sprintf("%s (bust)", h.Cards)
	}

	return fmt.Sprintf("%s (%d)", h.Cards, score)
}
