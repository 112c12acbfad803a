package deck

import (
	"errors"

	"casinotable/internal/rng"
)

// ErrShoeExhausted is an error when Draw() is attempted and there are no more cards
// and neither reuse policy is enabled
var ErrShoeExhausted = errors.New("shoe is exhausted")

// cardsPerDeck is the size of a standard four-suit deck
const cardsPerDeck = 52

// Policy controls what the shoe does when it runs out of cards
// ReuseDiscards takes priority over Infinite when both are set.
type Policy struct {
	// ReuseDiscards shuffles the discard pile back into the shoe
	ReuseDiscards bool
	// Infinite builds a fresh set of decks and shuffles them
	Infinite bool
}

// Shoe is the live draw pile of one or more decks
// Cards[0] is the top of the shoe.
type Shoe struct {
	Cards    []*Card `json:"-"`
	Discards []*Card `json:"-"`

	decks  int
	policy Policy
	rng    rng.Generator
}

// NewShoe returns a shuffled shoe of the requested number of decks
func NewShoe(decks int, policy Policy, g rng.Generator) *Shoe {
	if decks < 1 {
		decks = 1
	}

	if g == nil {
		g = rng.Crypto{}
	}

	s := &Shoe{
		decks:  decks,
		policy: policy,
		rng:    g,
	}

	s.Cards = buildCards(decks)
	s.Shuffle()
	return s
}

func buildCards(decks int) []*Card {
	cards := make([]*Card, 0, decks*cardsPerDeck)
	for i := 0; i < decks; i++ {
		for _, suit := range Suits {
			for rank := Ace; rank <= King; rank++ {
				cards = append(cards, &Card{
					Rank: rank,
					Suit: suit,
				})
			}
		}
	}

	return cards
}

// SetPolicy replaces the exhaustion policy
func (s *Shoe) SetPolicy(policy Policy) {
	s.policy = policy
}

// Policy returns the exhaustion policy
func (s *Shoe) Policy() Policy {
	return s.policy
}

// Shuffle shuffles the cards still in the shoe
func (s *Shoe) Shuffle() {
	rng.Shuffle(s.rng, len(s.Cards), func(i, j int) {
		s.Cards[i], s.Cards[j] = s.Cards[j], s.Cards[i]
	})
}

// ShuffleFrom replaces the draw pile with the cards given, in order
// This is used by tests and replays to stack the shoe.
func (s *Shoe) ShuffleFrom(cards []*Card) {
	s.Cards = make([]*Card, len(cards))
	copy(s.Cards, cards)
}

// Draw will draw the next card
// If the shoe is empty the exhaustion policy is applied. If neither policy applies,
// ErrShoeExhausted is returned along with a nil card.
func (s *Shoe) Draw() (*Card, error) {
	if len(s.Cards) == 0 {
		if !s.replenish() {
			return nil, ErrShoeExhausted
		}
	}

	card := s.Cards[0]
	s.Cards = s.Cards[1:]

	return card, nil
}

// CanDraw returns true if n cards can be drawn without running the shoe dry
func (s *Shoe) CanDraw(n int) bool {
	if s.policy.Infinite || len(s.Cards) >= n {
		return true
	}

	return s.policy.ReuseDiscards && len(s.Cards)+len(s.Discards) >= n
}

func (s *Shoe) replenish() bool {
	if s.policy.ReuseDiscards && len(s.Discards) > 0 {
		s.Cards = s.Discards
		s.Discards = nil
		s.Shuffle()
		return true
	}

	if s.policy.Infinite {
		// the discards are replaced by the fresh decks
		s.Discards = nil
		s.Cards = buildCards(s.decks)
		s.Shuffle()
		return true
	}

	return false
}

// Discard puts cards on the discard pile
func (s *Shoe) Discard(cards ...*Card) {
	for _, card := range cards {
		if card == nil {
			continue
		}

		card.FaceUp = false
		s.Discards = append(s.Discards, card)
	}
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.Cards)
}

// DiscardCount returns the number of cards on the discard pile
func (s *Shoe) DiscardCount() int {
	return len(s.Discards)
}
